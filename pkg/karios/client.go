// Package karios is a Go client for the karios-server HTTP API.
package karios

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client calls a running karios-server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BuildResponse mirrors the POST /api/context reply.
type BuildResponse struct {
	Document   string `json:"document"`
	Sections   int    `json:"sections"`
	Failed     int    `json:"failed"`
	Refs       int    `json:"refs"`
	ArchivedID string `json:"archivedId,omitempty"`
}

// DocumentMeta is one archive listing entry.
type DocumentMeta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	RefCount  int       `json:"refCount"`
	Sections  int       `json:"sections"`
	Failed    int       `json:"failed"`
	Kinds     []string  `json:"kinds"`
}

// ArchivedDocument is one archived document with its markdown body.
type ArchivedDocument struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	RefCount  int       `json:"refCount"`
	Sections  int       `json:"sections"`
	Failed    int       `json:"failed"`
	Kinds     []string  `json:"kinds"`
	Markdown  string    `json:"markdown"`
}

// BuildContext builds a context document from a raw references JSON array.
func (c *Client) BuildContext(ctx context.Context, references json.RawMessage) (*BuildResponse, error) {
	body, err := json.Marshal(struct {
		References json.RawMessage `json:"references"`
	}{References: references})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/context", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST /api/context: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}
	var out BuildResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

// ListArchive returns recent archived documents, newest first. A limit of
// zero or less uses the server default.
func (c *Client) ListArchive(ctx context.Context, limit int) ([]DocumentMeta, error) {
	path := "/api/context/archive"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Documents []DocumentMeta `json:"documents"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// GetArchived retrieves one archived document by its ID.
func (c *Client) GetArchived(ctx context.Context, id string) (*ArchivedDocument, error) {
	var out ArchivedDocument
	if err := c.getJSON(ctx, "/api/context/archive/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports whether the server is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", out.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// apiError surfaces the server's {"error": "..."} body when present.
func apiError(resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e); err == nil && e.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
