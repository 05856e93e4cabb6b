// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results filters, sorts, and grades the analysis results served by
// the backend: fetched papers, pairwise similarity scores, common entities,
// and key findings. Every function is pure and leaves its inputs unchanged
// unless documented otherwise.
package results

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pdiddy/draftview/pkg/types"
)

const (
	// AbstractExcerpt is how many characters of an abstract a paper listing shows.
	AbstractExcerpt = 300

	// PaperNameWidth is how many characters of a paper title a similarity row shows.
	PaperNameWidth = 50

	// TopLimit is how many datasets or methods a synthesis ranks.
	TopLimit = 5

	// pdfMatchPrefix is how much of a title must appear in a PDF filename
	// for the paper to count as downloaded.
	pdfMatchPrefix = 20
)

// PaperSort orders a paper listing.
type PaperSort string

const (
	SortByYear  PaperSort = "year"
	SortByTitle PaperSort = "title"
)

// ParsePaperSort validates a paper sort key.
func ParsePaperSort(s string) (PaperSort, error) {
	switch PaperSort(s) {
	case SortByYear, SortByTitle:
		return PaperSort(s), nil
	}
	return "", fmt.Errorf("unknown paper sort %q: use year or title", s)
}

// PairSort orders similarity pairs.
type PairSort string

const (
	SortByScore  PairSort = "score"
	SortByPaper1 PairSort = "paper1"
	SortByPaper2 PairSort = "paper2"
)

// ParsePairSort validates a similarity sort key.
func ParsePairSort(s string) (PairSort, error) {
	switch PairSort(s) {
	case SortByScore, SortByPaper1, SortByPaper2:
		return PairSort(s), nil
	}
	return "", fmt.Errorf("unknown similarity sort %q: use score, paper1, or paper2", s)
}

// FilterPapers returns the papers whose title, abstract, or any author name
// contains query, ignoring case. An empty query keeps every paper.
func FilterPapers(papers []types.Paper, query string) []types.Paper {
	out := make([]types.Paper, 0, len(papers))
	if query == "" {
		return append(out, papers...)
	}
	q := strings.ToLower(query)
	for _, p := range papers {
		if paperMatches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func paperMatches(p types.Paper, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Abstract), q) {
		return true
	}
	for _, a := range p.Authors {
		if strings.Contains(strings.ToLower(a.Name), q) {
			return true
		}
	}
	return false
}

// SortPapers sorts papers in place: newest first by year (a missing year
// counts as 0), or alphabetically by title. Ties keep their input order.
func SortPapers(papers []types.Paper, by PaperSort) {
	switch by {
	case SortByYear:
		slices.SortStableFunc(papers, func(a, b types.Paper) int {
			return cmp.Compare(b.Year, a.Year)
		})
	case SortByTitle:
		c := newCollator()
		slices.SortStableFunc(papers, func(a, b types.Paper) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}

// SortPairs sorts similarity pairs in place: highest score first, or
// alphabetically by the first or second paper. Ties keep their input order.
func SortPairs(pairs []types.SimilarityPair, by PairSort) {
	switch by {
	case SortByScore:
		slices.SortStableFunc(pairs, func(a, b types.SimilarityPair) int {
			return cmp.Compare(b.Score, a.Score)
		})
	case SortByPaper1:
		c := newCollator()
		slices.SortStableFunc(pairs, func(a, b types.SimilarityPair) int {
			return c.CompareString(a.Paper1, b.Paper1)
		})
	case SortByPaper2:
		c := newCollator()
		slices.SortStableFunc(pairs, func(a, b types.SimilarityPair) int {
			return c.CompareString(a.Paper2, b.Paper2)
		})
	}
}

// newCollator returns a fresh collator; a Collator is not safe for
// concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// PDFDownloaded reports whether any of the PDF filenames contains the first
// 20 characters of title, ignoring case.
func PDFDownloaded(title string, pdfs []string) bool {
	if title == "" {
		return false
	}
	prefix := strings.ToLower(truncateRunes(title, pdfMatchPrefix))
	for _, name := range pdfs {
		if strings.Contains(strings.ToLower(name), prefix) {
			return true
		}
	}
	return false
}

// Excerpt shortens s to at most n characters, marking a cut with "...".
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return truncateRunes(s, n) + "..."
}

// Truncate is Excerpt for paper names, with "Unknown" for an empty name.
func Truncate(name string, n int) string {
	if name == "" {
		return "Unknown"
	}
	return Excerpt(name, n)
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Band grades a similarity score.
type Band int

const (
	BandMinimal Band = iota
	BandLow
	BandMedium
	BandHigh
)

// Bands lists every band from strongest to weakest, the order of a legend.
var Bands = []Band{BandHigh, BandMedium, BandLow, BandMinimal}

// BandOf grades score against the 0.5, 0.3, and 0.15 thresholds.
func BandOf(score float64) Band {
	switch {
	case score >= 0.5:
		return BandHigh
	case score >= 0.3:
		return BandMedium
	case score >= 0.15:
		return BandLow
	}
	return BandMinimal
}

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	case BandLow:
		return "low"
	}
	return "minimal"
}

// Legend returns the band's legend entry, e.g. "High (≥50%)".
func (b Band) Legend() string {
	switch b {
	case BandHigh:
		return "High (≥50%)"
	case BandMedium:
		return "Medium (30-49%)"
	case BandLow:
		return "Low (15-29%)"
	}
	return "Minimal (<15%)"
}

// Color returns the band's hex colour.
func (b Band) Color() string {
	switch b {
	case BandHigh:
		return "#10b981"
	case BandMedium:
		return "#f59e0b"
	case BandLow:
		return "#6366f1"
	}
	return "#6b7280"
}

// MarshalText implements encoding.TextMarshaler so bands encode by name.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Band) UnmarshalText(text []byte) error {
	for _, candidate := range Bands {
		if candidate.String() == string(text) {
			*b = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown similarity band %q", text)
}

// TopCounts returns the limit names with the highest counts, highest first.
// Equal counts are ordered by name.
func TopCounts(counts map[string]int, limit int) []types.EntityCount {
	out := make([]types.EntityCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, types.EntityCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b types.EntityCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summary writes the one-paragraph analysis summary of a synthesis.
func Summary(s types.Synthesis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The analysis identified %d distinct methodological approaches applied across %d different benchmarks.",
		len(s.CommonMethods), len(s.CommonDatasets))
	if top := TopCounts(s.CommonMethods, 1); len(top) > 0 {
		fmt.Fprintf(&b, " The most prevalent technique is %q (used in %d papers).", top[0].Name, top[0].Count)
	}
	if top := TopCounts(s.CommonDatasets, 1); len(top) > 0 {
		fmt.Fprintf(&b, " Evaluation frequently relies on %q (cited in %d studies).", top[0].Name, top[0].Count)
	}
	return b.String()
}

// MaxCount is the largest count across datasets and methods, at least 1.
// Entity bars are scaled against it.
func MaxCount(e types.Entities) int {
	m := 1
	for _, list := range [][]types.EntityCount{e.CommonDatasets, e.CommonMethods} {
		for _, c := range list {
			m = max(m, c.Count)
		}
	}
	return m
}

// Percent scales count against maxCount, in [0, 100] for valid input.
func Percent(count, maxCount int) float64 {
	if maxCount <= 0 {
		return 0
	}
	return float64(count) / float64(maxCount) * 100
}

// PaperCount formats n as "1 paper" or "n papers".
func PaperCount(n int) string {
	if n == 1 {
		return "1 paper"
	}
	return fmt.Sprintf("%d papers", n)
}

// Tone classifies a key finding for highlighting.
type Tone string

const (
	TonePrimary Tone = "primary"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
)

// toneRules are checked in order; the first phrase found wins.
var toneRules = []struct {
	phrase string
	tone   Tone
}{
	{"we propose", TonePrimary},
	{"our method", ToneSuccess},
	{"our approach", ToneSuccess},
	{"we demonstrate", ToneWarning},
	{"outperforms", TonePrimary},
	{"achieves", ToneSuccess},
}

// FindingTone returns the tone of the first claim phrase in finding,
// or TonePrimary when none matches.
func FindingTone(finding string) Tone {
	lower := strings.ToLower(finding)
	for _, r := range toneRules {
		if strings.Contains(lower, r.phrase) {
			return r.tone
		}
	}
	return TonePrimary
}

// KeyFindings flattens per-paper findings into a list ordered by paper title.
func KeyFindings(m map[string]types.Findings) []types.PaperFindings {
	out := make([]types.PaperFindings, 0, len(m))
	for paper, f := range m {
		out = append(out, types.PaperFindings{Paper: paper, Findings: f})
	}
	slices.SortFunc(out, func(a, b types.PaperFindings) int {
		return strings.Compare(a.Paper, b.Paper)
	})
	return out
}
