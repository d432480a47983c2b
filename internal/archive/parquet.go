package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"
)

// Compile-time interface check.
var _ Store = (*ParquetStore)(nil)

// documentRecord is the Parquet schema for archived documents.
type documentRecord struct {
	ID        string `parquet:"id"`
	CreatedAt int64  `parquet:"created_at,timestamp(millisecond)"` // Unix ms
	RefCount  int64  `parquet:"ref_count"`
	Sections  int64  `parquet:"sections"`
	Failed    int64  `parquet:"failed"`
	Kinds     string `parquet:"kinds"` // comma-joined kind names
	Markdown  string `parquet:"markdown"`
}

// ParquetStore keeps every document in one Parquet file and rewrites the
// whole file on each save. That suits the low write rate of an audit log;
// it is not a database.
type ParquetStore struct {
	Path string
}

// NewParquetStore creates a ParquetStore writing to the given file path.
func NewParquetStore(path string) *ParquetStore {
	return &ParquetStore{Path: path}
}

// Close is a no-op; every operation opens and closes the file itself.
func (s *ParquetStore) Close() error { return nil }

// SaveDocument reads the existing records, merges the new one in by ID and
// atomically replaces the file.
func (s *ParquetStore) SaveDocument(_ context.Context, doc Document) error {
	existing, err := s.readAll()
	if err != nil {
		return err
	}
	merged := mergeDocumentRecords(existing, toRecord(doc))
	if err := writeParquetFile(s.Path, merged); err != nil {
		return fmt.Errorf("saving document %s: %w", doc.ID, err)
	}
	return nil
}

// ListDocuments returns metadata for the most recent documents, newest first.
func (s *ParquetStore) ListDocuments(_ context.Context, limit int) ([]DocumentMeta, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	// readAll keeps records oldest first; walk backwards for newest first.
	var metas []DocumentMeta
	for i := len(records) - 1; i >= 0 && len(metas) < limit; i-- {
		doc := fromRecord(records[i])
		metas = append(metas, DocumentMeta{
			ID:        doc.ID,
			CreatedAt: doc.CreatedAt,
			RefCount:  doc.RefCount,
			Sections:  doc.Sections,
			Failed:    doc.Failed,
			Kinds:     doc.Kinds,
		})
	}
	return metas, nil
}

// GetDocument retrieves a single document by its ID.
func (s *ParquetStore) GetDocument(_ context.Context, id string) (Document, error) {
	records, err := s.readAll()
	if err != nil {
		return Document{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return fromRecord(r), nil
		}
	}
	return Document{}, ErrNotFound
}

// ---------------------------------------------------------------------------
// Record conversion and file helpers
// ---------------------------------------------------------------------------

func toRecord(doc Document) documentRecord {
	return documentRecord{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt.UnixMilli(),
		RefCount:  int64(doc.RefCount),
		Sections:  int64(doc.Sections),
		Failed:    int64(doc.Failed),
		Kinds:     joinKinds(doc.Kinds),
		Markdown:  doc.Markdown,
	}
}

func fromRecord(r documentRecord) Document {
	return Document{
		ID:        r.ID,
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
		RefCount:  int(r.RefCount),
		Sections:  int(r.Sections),
		Failed:    int(r.Failed),
		Kinds:     splitKinds(r.Kinds),
		Markdown:  r.Markdown,
	}
}

// readAll loads every record, oldest first. A missing file is an empty
// archive, not an error.
func (s *ParquetStore) readAll() ([]documentRecord, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, nil
	}
	records, err := parquet.ReadFile[documentRecord](s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return records, nil
}

// writeParquetFile writes records through a temp file and renames it into
// place, so a crash mid-write never truncates the archive.
func writeParquetFile(path string, records []documentRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := parquet.WriteFile(tmp, records); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// mergeDocumentRecords deduplicates by ID, preferring the incoming record,
// and keeps the result ordered oldest first.
func mergeDocumentRecords(existing []documentRecord, incoming documentRecord) []documentRecord {
	seen := make(map[string]documentRecord, len(existing)+1)
	for _, r := range existing {
		seen[r.ID] = r
	}
	seen[incoming.ID] = incoming

	merged := make([]documentRecord, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CreatedAt != merged[j].CreatedAt {
			return merged[i].CreatedAt < merged[j].CreatedAt
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
