// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/draftview/internal/results"
	"github.com/pdiddy/draftview/pkg/types"
)

const (
	// barWidth is the width in cells of a full entity bar.
	barWidth = 20

	paperIDWidth = 8
)

// printer remembers the first write error so renderers can print freely and
// check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

// RenderPapers lists papers with their authors, year, abstract excerpt, and
// links. pdfs marks papers whose PDF has been downloaded.
func RenderPapers(w io.Writer, papers []types.Paper, pdfs []string, st Styles) error {
	p := &printer{w: w}
	p.println(st.Title.Render(fmt.Sprintf("Fetched Papers (%d)", len(papers))))
	if len(papers) == 0 {
		p.printf("\n%s\n", st.Muted.Render("No papers found. Try adjusting your filter."))
		return p.err
	}

	for _, paper := range papers {
		title := paper.Title
		if paper.IsOpenAccess || paper.OpenAccessPDF != nil {
			title += " [Open Access]"
		}
		p.printf("\n%s\n", st.Heading.Render(title))
		p.println(st.Muted.Render("Authors: " + authorList(paper.Authors)))
		p.println(st.Muted.Render(fmt.Sprintf("Year: %s • Paper ID: %s", orNA(paper.Year), paperID(paper.PaperID))))
		if paper.Abstract != "" {
			p.println(results.Excerpt(paper.Abstract, results.AbstractExcerpt))
		}
		if paper.URL != "" {
			p.println("View: " + paper.URL)
		}
		if results.PDFDownloaded(paper.Title, pdfs) {
			p.println("✓ PDF Downloaded")
		}
		if paper.OpenAccessPDF != nil && paper.OpenAccessPDF.URL != "" {
			p.println("Download: " + paper.OpenAccessPDF.URL)
		}
	}
	return p.err
}

func authorList(authors []types.Author) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func orNA(year int) string {
	if year == 0 {
		return "N/A"
	}
	return fmt.Sprint(year)
}

func paperID(id string) string {
	if id == "" {
		return "N/A"
	}
	if short := []rune(id); len(short) > paperIDWidth {
		return string(short[:paperIDWidth])
	}
	return id
}

// RenderSimilarity prints the similarity legend and one row per pair, in the
// order given. Percentages are coloured by band.
func RenderSimilarity(w io.Writer, sim types.Similarity, st Styles) error {
	p := &printer{w: w}
	p.println(st.Title.Render("Cross-Paper Similarity Analysis"))
	p.println(st.Muted.Render("Pairwise TF-IDF similarity scores between all analyzed papers"))
	p.printf("\n%d Papers Analyzed\n", sim.TotalPapers)
	p.println(st.Muted.Render(fmt.Sprintf("%d pairwise comparisons", len(sim.Similarities))))

	legend := make([]string, len(results.Bands))
	for i, b := range results.Bands {
		legend[i] = st.Bands[b].Render("■") + " " + b.Legend()
	}
	p.printf("\n%s\n", strings.Join(legend, "  "))

	if len(sim.Similarities) == 0 {
		p.printf("\n%s\n", st.Muted.Render("No similarity data available."))
		return p.err
	}

	p.printf("\n%4s  %-*s  %-*s  %8s  %7s\n", "#", results.PaperNameWidth+3, "Paper 1", results.PaperNameWidth+3, "Paper 2", "Score", "Sim")
	for i, pair := range sim.Similarities {
		pct := st.Bands[results.BandOf(pair.Score)].Render(fmt.Sprintf("%6.2f%%", pair.Score*100))
		p.printf("%4d  %s  %s  %.6f  %s\n", i+1,
			pad(results.Truncate(pair.Paper1, results.PaperNameWidth), results.PaperNameWidth+3),
			pad(results.Truncate(pair.Paper2, results.PaperNameWidth), results.PaperNameWidth+3),
			pair.Score, pct)
	}
	return p.err
}

// pad right-pads s with spaces to n cells.
func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// RenderEntities prints the common datasets and methods with bars scaled to
// the largest count across both lists.
func RenderEntities(w io.Writer, e types.Entities, st Styles) error {
	p := &printer{w: w}
	p.println(st.Title.Render("Common Datasets & Methods"))
	p.println(st.Muted.Render("Frequently mentioned datasets and methodologies across all papers"))

	if len(e.CommonDatasets) == 0 && len(e.CommonMethods) == 0 {
		p.printf("\n%s\n", st.Muted.Render("No common entities extracted yet."))
		return p.err
	}

	maxCount := results.MaxCount(e)
	for _, group := range []struct {
		title string
		items []types.EntityCount
	}{
		{"Common Datasets", e.CommonDatasets},
		{"Common Methods/Algorithms", e.CommonMethods},
	} {
		p.printf("\n%s\n", st.Heading.Render(group.title))
		if len(group.items) == 0 {
			p.println(st.Muted.Render(fmt.Sprintf("No %s found.", strings.ToLower(group.title))))
			continue
		}
		for _, item := range group.items {
			name := item.Name
			if name == "" {
				name = "Unknown"
			}
			p.printf("%s  %s\n%s\n", name, st.Muted.Render(results.PaperCount(item.Count)),
				bar(results.Percent(item.Count, maxCount)))
		}
	}
	return p.err
}

// bar draws pct (0 to 100) as a bar of barWidth cells.
func bar(pct float64) string {
	n := int(pct*barWidth/100 + 0.5)
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

// RenderSynthesis prints the aggregate counts, the top datasets and methods,
// and the analysis summary.
func RenderSynthesis(w io.Writer, s types.Synthesis, st Styles) error {
	p := &printer{w: w}
	p.println(st.Title.Render("Research Synthesis"))
	p.println(st.Muted.Render(fmt.Sprintf("Aggregated insights from %d analyzed papers", s.TotalPapers)))
	p.printf("\nPapers Analyzed: %d\nUnique Datasets: %d\nUnique Methods: %d\n",
		s.TotalPapers, len(s.CommonDatasets), len(s.CommonMethods))

	for _, group := range []struct {
		title, empty string
		counts       map[string]int
	}{
		{"Most Used Datasets", "No dataset data available.", s.CommonDatasets},
		{"Dominant Methods", "No method data available.", s.CommonMethods},
	} {
		p.printf("\n%s\n", st.Heading.Render(group.title))
		top := results.TopCounts(group.counts, results.TopLimit)
		if len(top) == 0 {
			p.println(st.Muted.Render(group.empty))
			continue
		}
		for _, c := range top {
			p.printf("%s  %s\n", c.Name, st.Muted.Render(fmt.Sprintf("%d papers", c.Count)))
		}
	}

	p.printf("\n%s\n%s\n", st.Heading.Render("Analysis Summary"), results.Summary(s))
	return p.err
}

// RenderFindings prints each paper's key findings, highlighted by tone.
func RenderFindings(w io.Writer, findings []types.PaperFindings, st Styles) error {
	p := &printer{w: w}
	p.println(st.Title.Render("Key Findings Across Papers"))
	p.println(st.Muted.Render("Extracted significant findings and claims from all analyzed papers"))

	if len(findings) == 0 {
		p.printf("\n%s\n", st.Muted.Render("No key findings extracted yet."))
		return p.err
	}

	for i, f := range findings {
		paper := f.Paper
		if paper == "" {
			paper = fmt.Sprintf("Paper %d", i+1)
		}
		p.printf("\n%s %s\n", st.Heading.Render(paper), st.Muted.Render(fmt.Sprintf("(%d findings)", len(f.Findings))))
		if len(f.Findings) == 0 {
			p.println(st.Muted.Render("None found from predefined phrases"))
			continue
		}
		for _, finding := range f.Findings {
			p.println("• " + st.Tones[results.FindingTone(finding)].Render(finding))
		}
	}
	return p.err
}
