package karios

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:4330/")
	if c.baseURL != "http://localhost:4330" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
	if c.httpClient == nil {
		t.Fatal("expected non-nil httpClient")
	}
}

func TestBuildContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/context" {
			t.Errorf("got %s %s, want POST /api/context", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req struct {
			References []json.RawMessage `json:"references"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request body not valid JSON: %v", err)
		}
		if len(req.References) != 2 {
			t.Errorf("request carried %d references, want 2", len(req.References))
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"document":"# Reference Context\n","sections":2,"failed":1,"refs":2,"archivedId":"abc"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	refs := json.RawMessage(`[{"kind":"journal","title":"a"},{"kind":"tv","snapshotId":"s1"}]`)
	out, err := c.BuildContext(context.Background(), refs)
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	if out.Sections != 2 || out.Failed != 1 || out.Refs != 2 {
		t.Errorf("sections/failed/refs = %d/%d/%d, want 2/1/2", out.Sections, out.Failed, out.Refs)
	}
	if out.ArchivedID != "abc" {
		t.Errorf("archivedId = %q, want abc", out.ArchivedID)
	}
	if !strings.HasPrefix(out.Document, "# Reference Context") {
		t.Errorf("document = %q", out.Document)
	}
}

func TestBuildContextSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"references required"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).BuildContext(context.Background(), json.RawMessage(`[]`))
	if err == nil {
		t.Fatal("expected error for a 400 response")
	}
	if !strings.Contains(err.Error(), "references required") {
		t.Errorf("error = %q, want the server message surfaced", err)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error = %q, want the status code included", err)
	}
}

func TestListArchiveSendsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/context/archive" {
			t.Errorf("path = %s, want /api/context/archive", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"documents":[{"id":"d1","refCount":3,"sections":3,"failed":0,"kinds":["tv"]}]}`)
	}))
	defer srv.Close()

	metas, err := NewClient(srv.URL).ListArchive(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListArchive: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != "d1" || metas[0].RefCount != 3 {
		t.Errorf("metas = %+v", metas)
	}
}

func TestGetArchivedNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"document not found"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetArchived(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for a 404 response")
	}
	if !strings.Contains(err.Error(), "document not found") {
		t.Errorf("error = %q, want the server message surfaced", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %s, want /api/health", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}
