package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS context_documents (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	ref_count  INTEGER NOT NULL,
	sections   INTEGER NOT NULL,
	failed     INTEGER NOT NULL,
	kinds      TEXT NOT NULL,
	markdown   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_context_documents_created_at
	ON context_documents (created_at DESC);
`

// SQLiteStore keeps documents in a single SQLite database file. Timestamps
// are stored as Unix milliseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveDocument inserts one document.
func (s *SQLiteStore) SaveDocument(ctx context.Context, doc Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO context_documents (id, created_at, ref_count, sections, failed, kinds, markdown)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.CreatedAt.UnixMilli(), doc.RefCount, doc.Sections, doc.Failed,
		joinKinds(doc.Kinds), doc.Markdown)
	if err != nil {
		return fmt.Errorf("saving document %s: %w", doc.ID, err)
	}
	return nil
}

// ListDocuments returns metadata for the most recent documents, newest first.
func (s *SQLiteStore) ListDocuments(ctx context.Context, limit int) ([]DocumentMeta, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, ref_count, sections, failed, kinds
		 FROM context_documents ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var metas []DocumentMeta
	for rows.Next() {
		var m DocumentMeta
		var createdMs int64
		var kinds string
		if err := rows.Scan(&m.ID, &createdMs, &m.RefCount, &m.Sections, &m.Failed, &kinds); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		m.CreatedAt = time.UnixMilli(createdMs).UTC()
		m.Kinds = splitKinds(kinds)
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// GetDocument retrieves a single document by its ID.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (Document, error) {
	var doc Document
	var createdMs int64
	var kinds string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, ref_count, sections, failed, kinds, markdown
		 FROM context_documents WHERE id = ?`, id).
		Scan(&doc.ID, &createdMs, &doc.RefCount, &doc.Sections, &doc.Failed, &kinds, &doc.Markdown)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("loading document %s: %w", id, err)
	}
	doc.CreatedAt = time.UnixMilli(createdMs).UTC()
	doc.Kinds = splitKinds(kinds)
	return doc, nil
}
