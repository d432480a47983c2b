// Package archive persists built context documents for audit. It is
// write-only during a build and queried only through the history endpoints;
// the aggregator never reads it back, so it is an audit log, not a cache.
package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when no document exists for the requested ID.
var ErrNotFound = errors.New("archive: document not found")

// Document is one built context document together with its build summary.
type Document struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	RefCount  int       `json:"refCount"`
	Sections  int       `json:"sections"`
	Failed    int       `json:"failed"`
	Kinds     []string  `json:"kinds"`
	Markdown  string    `json:"markdown"`
}

// DocumentMeta is a Document without its markdown body, for listings.
type DocumentMeta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	RefCount  int       `json:"refCount"`
	Sections  int       `json:"sections"`
	Failed    int       `json:"failed"`
	Kinds     []string  `json:"kinds"`
}

// defaultListLimit bounds listings when the caller passes no limit.
const defaultListLimit = 50

// Store persists and retrieves built documents.
type Store interface {
	// SaveDocument persists one document.
	SaveDocument(ctx context.Context, doc Document) error

	// ListDocuments returns metadata for the most recent documents, newest
	// first, up to limit (a non-positive limit applies the default).
	ListDocuments(ctx context.Context, limit int) ([]DocumentMeta, error)

	// GetDocument retrieves a single document by its ID. It returns
	// ErrNotFound when no such document exists.
	GetDocument(ctx context.Context, id string) (Document, error)

	// Close releases the underlying storage.
	Close() error
}

// Open returns a Store for the given driver name, "sqlite" or "parquet".
func Open(driver, path string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLiteStore(path)
	case "parquet":
		return NewParquetStore(path), nil
	default:
		return nil, fmt.Errorf("unknown archive driver %q", driver)
	}
}

// joinKinds and splitKinds map the Kinds slice onto one column. Kind names
// are bare identifiers ("tv", "stock"), so a comma separator is safe.
func joinKinds(kinds []string) string {
	return strings.Join(kinds, ",")
}

func splitKinds(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
