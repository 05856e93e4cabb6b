// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/internal/results"
	"github.com/pdiddy/draftview/pkg/types"
)

// ResultsSource supplies the analysis results shown alongside the draft.
// The pointer results are nil when the backend has not produced them yet.
type ResultsSource interface {
	Papers(ctx context.Context) ([]types.Paper, error)
	PDFs(ctx context.Context) ([]string, error)
	Entities(ctx context.Context) (*types.Entities, error)
	Synthesis(ctx context.Context) (*types.Synthesis, error)
	Similarity(ctx context.Context) (*types.Similarity, error)
}

// PaperView is a paper with its download status.
type PaperView struct {
	types.Paper
	PDFDownloaded bool `json:"pdf_downloaded"`
}

// PapersResponse is the body of GET /api/papers.
type PapersResponse struct {
	Count  int         `json:"count"`
	Papers []PaperView `json:"papers"`
}

// PairView is a similarity pair graded into a band.
type PairView struct {
	types.SimilarityPair
	Percent float64      `json:"percent"`
	Band    results.Band `json:"band"`
	Color   string       `json:"color"`
}

// SimilarityResponse is the body of GET /api/similarity.
type SimilarityResponse struct {
	TotalPapers int        `json:"total_papers"`
	Comparisons int        `json:"comparisons"`
	Pairs       []PairView `json:"pairs"`
}

// EntityView is a dataset or method with its bar length.
type EntityView struct {
	types.EntityCount
	Percent float64 `json:"percent"`
}

// EntitiesResponse is the body of GET /api/entities.
type EntitiesResponse struct {
	MaxCount       int          `json:"max_count"`
	CommonDatasets []EntityView `json:"common_datasets"`
	CommonMethods  []EntityView `json:"common_methods"`
}

// SynthesisResponse is the body of GET /api/synthesis.
type SynthesisResponse struct {
	TotalPapers    int                 `json:"total_papers"`
	UniqueDatasets int                 `json:"unique_datasets"`
	UniqueMethods  int                 `json:"unique_methods"`
	TopDatasets    []types.EntityCount `json:"top_datasets"`
	TopMethods     []types.EntityCount `json:"top_methods"`
	Summary        string              `json:"summary"`
	Synthesis      string              `json:"synthesis,omitempty"`
}

// FindingView is one key finding with its highlight tone.
type FindingView struct {
	Text string       `json:"text"`
	Tone results.Tone `json:"tone"`
}

// PaperFindingsView groups the findings of one paper.
type PaperFindingsView struct {
	Paper    string        `json:"paper"`
	Findings []FindingView `json:"findings"`
}

func (s *Server) handlePapers(c *gin.Context) {
	by, err := results.ParsePaperSort(c.DefaultQuery("sort", string(results.SortByYear)))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	papers, err := s.Results.Papers(ctx)
	if err != nil {
		abortBackend(c, err)
		return
	}
	pdfs, err := s.Results.PDFs(ctx)
	if err != nil {
		logger.Warn("listing PDFs: %v", err)
	}

	papers = results.FilterPapers(papers, c.Query("filter"))
	results.SortPapers(papers, by)
	resp := PapersResponse{Count: len(papers), Papers: make([]PaperView, len(papers))}
	for i, p := range papers {
		resp.Papers[i] = PaperView{Paper: p, PDFDownloaded: results.PDFDownloaded(p.Title, pdfs)}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) similarity(c *gin.Context) (types.Similarity, bool) {
	sim, err := s.Results.Similarity(c.Request.Context())
	if err != nil {
		abortBackend(c, err)
		return types.Similarity{}, false
	}
	if sim == nil {
		return types.Similarity{}, true
	}
	return *sim, true
}

func (s *Server) handleSimilarity(c *gin.Context) {
	by, err := results.ParsePairSort(c.DefaultQuery("sort", string(results.SortByScore)))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sim, ok := s.similarity(c)
	if !ok {
		return
	}

	pairs := append([]types.SimilarityPair(nil), sim.Similarities...)
	results.SortPairs(pairs, by)
	resp := SimilarityResponse{
		TotalPapers: sim.TotalPapers,
		Comparisons: len(pairs),
		Pairs:       make([]PairView, len(pairs)),
	}
	for i, p := range pairs {
		band := results.BandOf(p.Score)
		resp.Pairs[i] = PairView{SimilarityPair: p, Percent: p.Score * 100, Band: band, Color: band.Color()}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleEntities(c *gin.Context) {
	e, err := s.Results.Entities(c.Request.Context())
	if err != nil {
		abortBackend(c, err)
		return
	}
	if e == nil {
		e = &types.Entities{}
	}

	maxCount := results.MaxCount(*e)
	views := func(items []types.EntityCount) []EntityView {
		out := make([]EntityView, len(items))
		for i, it := range items {
			out[i] = EntityView{EntityCount: it, Percent: results.Percent(it.Count, maxCount)}
		}
		return out
	}
	c.JSON(http.StatusOK, EntitiesResponse{
		MaxCount:       maxCount,
		CommonDatasets: views(e.CommonDatasets),
		CommonMethods:  views(e.CommonMethods),
	})
}

func (s *Server) handleSynthesis(c *gin.Context) {
	syn, err := s.Results.Synthesis(c.Request.Context())
	if err != nil {
		abortBackend(c, err)
		return
	}
	if syn == nil {
		syn = &types.Synthesis{}
	}
	c.JSON(http.StatusOK, SynthesisResponse{
		TotalPapers:    syn.TotalPapers,
		UniqueDatasets: len(syn.CommonDatasets),
		UniqueMethods:  len(syn.CommonMethods),
		TopDatasets:    results.TopCounts(syn.CommonDatasets, results.TopLimit),
		TopMethods:     results.TopCounts(syn.CommonMethods, results.TopLimit),
		Summary:        results.Summary(*syn),
		Synthesis:      syn.Summary,
	})
}

func (s *Server) handleFindings(c *gin.Context) {
	sim, ok := s.similarity(c)
	if !ok {
		return
	}

	list := results.KeyFindings(sim.KeyFindings)
	out := make([]PaperFindingsView, len(list))
	for i, pf := range list {
		out[i] = PaperFindingsView{Paper: pf.Paper, Findings: make([]FindingView, len(pf.Findings))}
		for j, f := range pf.Findings {
			out[i].Findings[j] = FindingView{Text: f, Tone: results.FindingTone(f)}
		}
	}
	c.JSON(http.StatusOK, out)
}
