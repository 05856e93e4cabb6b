// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend talks to the research-analysis service that generates
// drafts. It fetches the current draft and the analysis results behind it,
// and submits revision instructions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/pkg/types"
)

const (
	draftPath      = "/api/draft"
	revisePath     = "/api/revise"
	papersPath     = "/api/papers"
	pdfsPath       = "/api/pdfs"
	entitiesPath   = "/api/entities"
	synthesisPath  = "/api/synthesis"
	similarityPath = "/api/similarity"

	// maxErrorBody caps how much of a failed response is read for its detail.
	maxErrorBody = 4 << 10
)

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Op         string
	StatusCode int

	// Detail is the backend's "detail" message when it sent one.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: backend returned HTTP %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: backend returned HTTP %d", e.Op, e.StatusCode)
}

// Client calls the backend's draft, results, and revise endpoints.
type Client struct {
	HTTP *http.Client
	Cfg  types.BackendConfig
}

// New returns a Client with an http.Client honouring cfg.Timeout.
func New(cfg types.BackendConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.Cfg.URL, "/") + path
}

// get issues a GET for path and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path, op string, out any) error {
	if c.Cfg.URL == "" {
		return fmt.Errorf("%s: no backend URL configured", op)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, op, out)
}

// Draft fetches the draft as decoded JSON. The backend normally sends a
// string; null or any other value means no draft exists yet and is left for
// sections.SplitValue to treat as empty.
func (c *Client) Draft(ctx context.Context) (any, error) {
	var v any
	if err := c.get(ctx, draftPath, "fetching draft", &v); err != nil {
		return nil, err
	}
	logger.Debug("fetched draft: %T", v)
	return v, nil
}

// Papers fetches the papers of the most recent research topic.
func (c *Client) Papers(ctx context.Context) ([]types.Paper, error) {
	var papers []types.Paper
	if err := c.get(ctx, papersPath, "fetching papers", &papers); err != nil {
		return nil, err
	}
	logger.Debug("fetched %d papers", len(papers))
	return papers, nil
}

// PDFs lists the filenames of downloaded paper PDFs.
func (c *Client) PDFs(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.get(ctx, pdfsPath, "listing PDFs", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Entities fetches the common datasets and methods. It returns nil when the
// backend has not extracted entities yet.
func (c *Client) Entities(ctx context.Context) (*types.Entities, error) {
	var out *types.Entities
	if err := c.get(ctx, entitiesPath, "fetching entities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Synthesis fetches the aggregated synthesis. It returns nil when none has
// been produced yet.
func (c *Client) Synthesis(ctx context.Context) (*types.Synthesis, error) {
	var out *types.Synthesis
	if err := c.get(ctx, synthesisPath, "fetching synthesis", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Similarity fetches the pairwise similarity scores and per-paper key
// findings. It returns nil when the analysis has not run yet.
func (c *Client) Similarity(ctx context.Context) (*types.Similarity, error) {
	var out *types.Similarity
	if err := c.get(ctx, similarityPath, "fetching similarity", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Revise asks the backend to regenerate the draft following instructions
// and returns the backend's reply, including the new draft text.
func (c *Client) Revise(ctx context.Context, instructions string) (*types.ReviseResponse, error) {
	if c.Cfg.URL == "" {
		return nil, fmt.Errorf("revising draft: no backend URL configured")
	}
	if strings.TrimSpace(instructions) == "" {
		return nil, fmt.Errorf("revising draft: instructions are empty")
	}

	body, err := json.Marshal(types.ReviseRequest{Instructions: instructions})
	if err != nil {
		return nil, fmt.Errorf("encoding revise request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(revisePath), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out types.ReviseResponse
	if err := c.do(req, "revising draft", &out); err != nil {
		return nil, err
	}
	logger.Debug("revised draft: status=%q, %d bytes", out.Status, len(out.Content))
	return &out, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	if c.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.Cfg.UserAgent)
	}
	logger.Debug("%s %s", req.Method, req.URL)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: parsing response: %w", op, err)
	}
	return nil
}

// errorDetail extracts the "detail" field of an error body, falling back to
// the trimmed body text.
func errorDetail(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var e struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(data, &e) == nil && e.Detail != nil {
		if s, ok := e.Detail.(string); ok {
			return s
		}
		b, _ := json.Marshal(e.Detail)
		return string(b)
	}
	return strings.TrimSpace(string(data))
}
