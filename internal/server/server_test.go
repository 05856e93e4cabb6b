// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/draftview/internal/backend"
	"github.com/pdiddy/draftview/internal/export"
	"github.com/pdiddy/draftview/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

type fakeSource struct {
	draft        any
	err          error
	revised      string
	instructions string

	papers     []types.Paper
	pdfs       []string
	pdfsErr    error
	entities   *types.Entities
	synthesis  *types.Synthesis
	similarity *types.Similarity
}

func (f *fakeSource) Draft(context.Context) (any, error) {
	return f.draft, f.err
}

func (f *fakeSource) Papers(context.Context) ([]types.Paper, error) {
	return f.papers, f.err
}

func (f *fakeSource) PDFs(context.Context) ([]string, error) {
	return f.pdfs, f.pdfsErr
}

func (f *fakeSource) Entities(context.Context) (*types.Entities, error) {
	return f.entities, f.err
}

func (f *fakeSource) Synthesis(context.Context) (*types.Synthesis, error) {
	return f.synthesis, f.err
}

func (f *fakeSource) Similarity(context.Context) (*types.Similarity, error) {
	return f.similarity, f.err
}

func (f *fakeSource) Revise(_ context.Context, instructions string) (*types.ReviseResponse, error) {
	f.instructions = instructions
	if f.err != nil {
		return nil, f.err
	}
	return &types.ReviseResponse{Status: "success", Message: "Draft revised successfully", Content: f.revised}, nil
}

const sampleDraft = "Abstract\nHello world\nMethods\nWe did X\nResults\nIt worked\nReferences\n[1] Foo"

func serve(t *testing.T, src DraftSource, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	s := &Server{
		Source: src,
		Now:    func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
	if rs, ok := src.(ResultsSource); ok {
		s.Results = rs
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := serve(t, &fakeSource{}, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSections(t *testing.T) {
	w := serve(t, &fakeSource{draft: sampleDraft}, http.MethodGet, "/api/sections", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.Sections{
		Abstract:   "Hello world",
		Methods:    "We did X",
		Results:    "It worked",
		References: "[1] Foo",
	}, resp.Sections)
	assert.Equal(t, 9, resp.WordCount)
}

func TestSectionsNonStringDraft(t *testing.T) {
	for _, draft := range []any{nil, 42.0, map[string]any{"draft": "Abstract\nx"}} {
		w := serve(t, &fakeSource{draft: draft}, http.MethodGet, "/api/sections", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp SectionsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Sections.IsEmpty(), "draft %v", draft)
		assert.Zero(t, resp.WordCount)
	}
}

func TestSectionsBackendError(t *testing.T) {
	w := serve(t, &fakeSource{err: errors.New("connection refused")}, http.MethodGet, "/api/sections", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestSectionsBackendNotFound(t *testing.T) {
	src := &fakeSource{err: &backend.StatusError{Op: "fetching draft", StatusCode: http.StatusNotFound}}
	w := serve(t, src, http.MethodGet, "/api/sections", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportText(t *testing.T) {
	w := serve(t, &fakeSource{draft: sampleDraft}, http.MethodGet, "/export/draft.txt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "research_draft.txt")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Abstract\n\nHello world\n\n"))
}

func TestExportPDF(t *testing.T) {
	w := serve(t, &fakeSource{draft: sampleDraft}, http.MethodGet, "/export/draft.pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "research_paper_academic.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestPage(t *testing.T) {
	w := serve(t, &fakeSource{draft: sampleDraft + "\n<script>x</script>"}, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h3>Methods</h3>")
	assert.Contains(t, body, "We did X")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>")
}

func TestPageEmpty(t *testing.T) {
	w := serve(t, &fakeSource{}, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No draft has been generated yet.")
	assert.Contains(t, w.Body.String(), "(0 words)")
}

func TestRevise(t *testing.T) {
	src := &fakeSource{revised: "Abstract\nShorter now"}
	w := serve(t, src, http.MethodPost, "/api/revise", `{"instructions":"shorten it"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shorten it", src.instructions)

	var resp SectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Shorter now", resp.Sections.Abstract)
	assert.Equal(t, "Draft revised successfully", resp.Message)
}

func TestReviseRejectsEmptyInstructions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"blank", `{"instructions":"   "}`},
		{"missing", `{}`},
		{"malformed", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			w := serve(t, src, http.MethodPost, "/api/revise", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, src.instructions)
		})
	}
}

func TestExportOptionsTitle(t *testing.T) {
	s := &Server{Source: &fakeSource{draft: sampleDraft}, Export: export.Options{Title: "Custom"}}
	req := httptest.NewRequest(http.MethodGet, "/export/draft.pdf", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
