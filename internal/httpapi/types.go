// Package httpapi exposes the reference-context aggregator over HTTP. One
// endpoint builds documents; the archive endpoints, active only when an
// archive store is configured, serve the build history.
package httpapi

import (
	"encoding/json"

	"karios/internal/archive"
)

// BuildRequest is the POST /api/context body. References stays raw JSON:
// reference parsing, including unknown-kind tolerance, belongs to refctx.
type BuildRequest struct {
	References json.RawMessage `json:"references"`
}

// BuildResponse is the POST /api/context reply.
type BuildResponse struct {
	Document   string `json:"document"`
	Sections   int    `json:"sections"`
	Failed     int    `json:"failed"`
	Refs       int    `json:"refs"`
	ArchivedID string `json:"archivedId,omitempty"`
}

// ArchiveListResponse lists recent archived documents, newest first.
type ArchiveListResponse struct {
	Documents []archive.DocumentMeta `json:"documents"`
}

// HealthResponse is the GET /api/health reply.
type HealthResponse struct {
	Status string `json:"status"`
}
