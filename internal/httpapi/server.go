package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"karios/internal/archive"
	"karios/internal/refctx"
)

// maxRequestBody caps POST bodies. Reference lists carry inline journal and
// watchlist content but never fetched payloads, so 8 MiB is plenty.
const maxRequestBody = 8 << 20

// Server serves the context-building API. store is nil when archiving is
// disabled; the archive endpoints then return 404.
type Server struct {
	agg   *refctx.Aggregator
	store archive.Store
	log   *slog.Logger
}

// NewServer creates a Server. Pass a nil store to disable archiving.
func NewServer(agg *refctx.Aggregator, store archive.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{agg: agg, store: store, log: log}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/context", s.handleBuildContext)
	mux.HandleFunc("GET /api/context/archive", s.handleListArchive)
	mux.HandleFunc("GET /api/context/archive/{id}", s.handleGetArchived)
	mux.HandleFunc("GET /api/health", s.handleHealth)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func (s *Server) handleBuildContext(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body")
		return
	}
	var req BuildRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.References) == 0 {
		writeError(w, http.StatusBadRequest, "references required")
		return
	}
	refs, err := refctx.ParseReferences(req.References)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := s.agg.Build(r.Context(), refs)
	resp := BuildResponse{
		Document: res.Document,
		Sections: res.Sections,
		Failed:   res.Failed,
		Refs:     len(refs),
	}

	// Archiving is best-effort: the document was built, so a failed save
	// logs and drops the archivedId rather than failing the request.
	if s.store != nil {
		doc := archive.Document{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			RefCount:  len(refs),
			Sections:  res.Sections,
			Failed:    res.Failed,
			Kinds:     refKinds(refs),
			Markdown:  res.Document,
		}
		if err := s.store.SaveDocument(r.Context(), doc); err != nil {
			s.log.Error("archiving document", "id", doc.ID, "error", err)
		} else {
			resp.ArchivedID = doc.ID
		}
	}

	writeJSON(w, resp)
}

func (s *Server) handleListArchive(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "archive disabled")
		return
	}
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}
	metas, err := s.store.ListDocuments(r.Context(), limit)
	if err != nil {
		s.log.Error("listing archive", "error", err)
		writeError(w, http.StatusInternalServerError, "listing archive")
		return
	}
	if metas == nil {
		metas = []archive.DocumentMeta{}
	}
	writeJSON(w, ArchiveListResponse{Documents: metas})
}

func (s *Server) handleGetArchived(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "archive disabled")
		return
	}
	id := r.PathValue("id")
	doc, err := s.store.GetDocument(r.Context(), id)
	if errors.Is(err, archive.ErrNotFound) {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		s.log.Error("loading archived document", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "loading document")
		return
	}
	writeJSON(w, doc)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok"})
}

func refKinds(refs []refctx.Reference) []string {
	kinds := make([]string, len(refs))
	for i, ref := range refs {
		kinds[i] = ref.Kind()
	}
	return kinds
}

// corsMiddleware mirrors the request Origin so the desktop app can call the
// service from its renderer. OPTIONS preflights return 204.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
