// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server serves a local web preview of the current draft, its
// split sections, and its plain-text and PDF exports, along with JSON views
// of the analysis results behind the draft.
package server

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/draftview/internal/backend"
	"github.com/pdiddy/draftview/internal/export"
	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/internal/preview"
	"github.com/pdiddy/draftview/internal/sections"
	"github.com/pdiddy/draftview/pkg/types"
)

const (
	textFilename = "research_draft.txt"
	pdfFilename  = "research_paper_academic.pdf"
)

// DraftSource supplies the draft as decoded JSON and accepts revision
// instructions. *backend.Client satisfies it.
type DraftSource interface {
	Draft(ctx context.Context) (any, error)
	Revise(ctx context.Context, instructions string) (*types.ReviseResponse, error)
}

// Server holds the dependencies of the preview handlers.
type Server struct {
	Source DraftSource

	// Results serves the /api result views. *backend.Client satisfies it.
	Results ResultsSource

	Export export.Options

	// Now stamps PDF exports. Defaults to time.Now.
	Now func() time.Time
}

// SectionsResponse is the body of GET /api/sections and POST /api/revise.
type SectionsResponse struct {
	Message   string         `json:"message,omitempty"`
	Sections  types.Sections `json:"sections"`
	WordCount int            `json:"word_count"`
}

// Router builds the gin engine with all preview routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	if logger.IsVerbose() {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/", s.handlePage)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/sections", s.handleSections)
	api.POST("/revise", s.handleRevise)
	if s.Results != nil {
		api.GET("/papers", s.handlePapers)
		api.GET("/similarity", s.handleSimilarity)
		api.GET("/entities", s.handleEntities)
		api.GET("/synthesis", s.handleSynthesis)
		api.GET("/findings", s.handleFindings)
	}

	exp := r.Group("/export")
	exp.GET("/draft.txt", s.handleText)
	exp.GET("/draft.pdf", s.handlePDF)
	return r
}

func (s *Server) sections(c *gin.Context) (types.Sections, bool) {
	raw, err := s.Source.Draft(c.Request.Context())
	if err != nil {
		abortBackend(c, err)
		return types.Sections{}, false
	}
	return sections.SplitValue(raw), true
}

// abortBackend maps a backend failure to 502 Bad Gateway.
func abortBackend(c *gin.Context, err error) {
	logger.Warn("%v", err)
	status := http.StatusBadGateway
	var se *backend.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		status = http.StatusNotFound
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleSections(c *gin.Context) {
	secs, ok := s.sections(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SectionsResponse{Sections: secs, WordCount: sections.WordCount(secs)})
}

func (s *Server) handleRevise(c *gin.Context) {
	var req types.ReviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Instructions) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "instructions are required"})
		return
	}

	resp, err := s.Source.Revise(c.Request.Context(), req.Instructions)
	if err != nil {
		abortBackend(c, err)
		return
	}
	secs := sections.Split(resp.Content)
	c.JSON(http.StatusOK, SectionsResponse{
		Message:   resp.Message,
		Sections:  secs,
		WordCount: sections.WordCount(secs),
	})
}

func (s *Server) handleText(c *gin.Context) {
	secs, ok := s.sections(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+textFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.PlainText(secs)))
}

func (s *Server) handlePDF(c *gin.Context) {
	secs, ok := s.sections(c)
	if !ok {
		return
	}
	opts := s.Export
	if s.Now != nil {
		opts.Date = s.Now()
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, secs, opts); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdfFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

type pageSection struct {
	Label string
	Body  string
	Mono  bool
}

type pageData struct {
	WordCount    int
	Sections     []pageSection
	EmptyMessage string
}

func (s *Server) handlePage(c *gin.Context) {
	secs, ok := s.sections(c)
	if !ok {
		return
	}
	data := pageData{WordCount: sections.WordCount(secs), EmptyMessage: preview.EmptyMessage}
	for _, b := range types.Buckets {
		if body := secs.Get(b); body != "" {
			data.Sections = append(data.Sections, pageSection{
				Label: export.Label(b),
				Body:  body,
				Mono:  b == types.BucketReferences,
			})
		}
	}
	c.HTML(http.StatusOK, "page", data)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Generated Draft Preview</title>
<style>
body { font-family: Georgia, serif; max-width: 52rem; margin: 2rem auto; line-height: 1.8; }
h3 { border-bottom: 2px solid #7c3aed; color: #7c3aed; }
.body { white-space: pre-wrap; }
.mono { font-family: monospace; font-size: 0.875rem; }
.muted { color: #6c7086; }
</style>
</head>
<body>
<h2>Generated Draft Preview</h2>
<p class="muted">Automatically generated research paper draft ({{.WordCount}} words)</p>
<p><a href="/export/draft.txt">Export as text</a> · <a href="/export/draft.pdf">Export as PDF</a></p>
{{if .Sections}}{{range .Sections}}
<section>
<h3>{{.Label}}</h3>
<div class="body{{if .Mono}} mono{{end}}">{{.Body}}</div>
</section>
{{end}}{{else}}
<p class="muted">{{.EmptyMessage}}</p>
{{end}}
</body>
</html>
`))
