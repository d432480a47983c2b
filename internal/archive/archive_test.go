package archive

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func sampleDocument(id string, created time.Time) Document {
	return Document{
		ID:        id,
		CreatedAt: created,
		RefCount:  3,
		Sections:  3,
		Failed:    1,
		Kinds:     []string{"tv", "stock", "journal"},
		Markdown:  "# Reference Context\n\n## Stock: SPDB (CN:600000)\n",
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	drivers := []struct {
		driver string
		path   string
	}{
		{"sqlite", filepath.Join(dir, "archive.db")},
		{"parquet", filepath.Join(dir, "archive.parquet")},
	}

	for _, d := range drivers {
		t.Run(d.driver, func(t *testing.T) {
			st, err := Open(d.driver, d.path)
			if err != nil {
				t.Fatalf("Open(%q): %v", d.driver, err)
			}
			defer st.Close()
			ctx := context.Background()

			older := sampleDocument("doc-1", time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
			newer := sampleDocument("doc-2", time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC))
			if err := st.SaveDocument(ctx, older); err != nil {
				t.Fatalf("SaveDocument(older): %v", err)
			}
			if err := st.SaveDocument(ctx, newer); err != nil {
				t.Fatalf("SaveDocument(newer): %v", err)
			}

			metas, err := st.ListDocuments(ctx, 10)
			if err != nil {
				t.Fatalf("ListDocuments: %v", err)
			}
			if len(metas) != 2 {
				t.Fatalf("ListDocuments returned %d, want 2", len(metas))
			}
			if metas[0].ID != "doc-2" || metas[1].ID != "doc-1" {
				t.Errorf("listing order = [%s %s], want newest first", metas[0].ID, metas[1].ID)
			}
			if !reflect.DeepEqual(metas[0].Kinds, newer.Kinds) {
				t.Errorf("meta kinds = %v, want %v", metas[0].Kinds, newer.Kinds)
			}

			limited, err := st.ListDocuments(ctx, 1)
			if err != nil {
				t.Fatalf("ListDocuments(limit=1): %v", err)
			}
			if len(limited) != 1 || limited[0].ID != "doc-2" {
				t.Errorf("limited listing = %v, want only doc-2", limited)
			}

			got, err := st.GetDocument(ctx, "doc-1")
			if err != nil {
				t.Fatalf("GetDocument: %v", err)
			}
			if got.Markdown != older.Markdown {
				t.Errorf("markdown = %q, want %q", got.Markdown, older.Markdown)
			}
			if !got.CreatedAt.Equal(older.CreatedAt) {
				t.Errorf("createdAt = %v, want %v", got.CreatedAt, older.CreatedAt)
			}
			if got.RefCount != 3 || got.Sections != 3 || got.Failed != 1 {
				t.Errorf("counts = %d/%d/%d, want 3/3/1", got.RefCount, got.Sections, got.Failed)
			}
			if !reflect.DeepEqual(got.Kinds, older.Kinds) {
				t.Errorf("kinds = %v, want %v", got.Kinds, older.Kinds)
			}

			if _, err := st.GetDocument(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetDocument(missing) = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestParquetSaveReplacesSameID(t *testing.T) {
	dir := t.TempDir()
	st := NewParquetStore(filepath.Join(dir, "archive.parquet"))
	ctx := context.Background()

	doc := sampleDocument("doc-1", time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	if err := st.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument (first): %v", err)
	}
	doc.Markdown = "# Reference Context\n"
	if err := st.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument (second): %v", err)
	}

	metas, err := st.ListDocuments(ctx, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("ListDocuments returned %d after same-ID save, want 1", len(metas))
	}
	got, err := st.GetDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Markdown != "# Reference Context\n" {
		t.Errorf("markdown = %q, want the replacing record's body", got.Markdown)
	}
}

func TestParquetListOnMissingFile(t *testing.T) {
	st := NewParquetStore(filepath.Join(t.TempDir(), "never-written.parquet"))
	metas, err := st.ListDocuments(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("ListDocuments = %v, want empty", metas)
	}
	if _, err := st.GetDocument(context.Background(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDocument = %v, want ErrNotFound", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("postgres", "ignored"); err == nil {
		t.Fatal("Open with an unknown driver should fail")
	}
}
