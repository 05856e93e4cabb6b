// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/draftview/internal/markup"
	"github.com/pdiddy/draftview/pkg/types"
)

// Page geometry in millimetres (A4 portrait).
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	margin       = 20.0
	contentWidth = PageWidth - 2*margin
	topY         = 30.0

	// A heading starts a new page when the cursor is below headingBreakY;
	// a body line does when it is below lineBreakY.
	headingBreakY = 250.0
	lineBreakY    = 275.0

	ruleLength   = 30.0
	footerOffset = 10.0
	sectionGap   = 12.0
)

const (
	DefaultTitle     = "Research Paper Draft"
	DefaultGenerator = "AI Research Agent v1.0"
)

// Font selects a core font face. Style is "", "B", "I", or "BI".
type Font struct {
	Family string
	Style  string
	Size   float64
}

var (
	titleFont    = Font{Family: "Times", Style: "B", Size: 24}
	subtitleFont = Font{Family: "Times", Size: 12}
	headingFont  = Font{Family: "Times", Style: "B", Size: 14}
	bodyFont     = Font{Family: "Times", Size: 12}
	refsFont     = Font{Family: "Times", Size: 10}
	footerFont   = Font{Family: "Times", Style: "I", Size: 10}
)

// Measurer reports the rendered width of text in millimetres.
type Measurer interface {
	StringWidth(text string, f Font) float64
}

// Role classifies a laid-out item.
type Role int

const (
	RoleTitle Role = iota
	RoleSubtitle
	RoleHeading
	RoleRule
	RoleBody
	RoleFooter
)

// Item is one positioned element on a page. Text items are placed with their
// baseline at (X, Y); rules run from (X, Y) to (X2, Y).
type Item struct {
	Role Role
	Text string
	Font Font
	X, Y float64
	X2   float64

	// Gray is the text or stroke grey level, 0 (black) to 255.
	Gray int
}

// Page holds the items placed on one page.
type Page struct {
	Items []Item
}

// Document is a laid-out draft ready to be rendered.
type Document struct {
	Pages []*Page
}

// Lines returns the text of every item with the given role, in page order.
func (d *Document) Lines(role Role) []string {
	var out []string
	for _, p := range d.Pages {
		for _, it := range p.Items {
			if it.Role == role {
				out = append(out, it.Text)
			}
		}
	}
	return out
}

// Options controls the title block of the paginated export.
type Options struct {
	// Title defaults to DefaultTitle.
	Title string

	// Generator defaults to DefaultGenerator.
	Generator string

	// Date is printed as "Generated on M/D/YYYY". Zero means today.
	Date time.Time

	// FontFile is a TrueType font used for every face in place of Times.
	// Empty keeps the built-in font, which only covers Windows-1252.
	FontFile string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Generator == "" {
		o.Generator = DefaultGenerator
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	return o
}

// sectionStyle is the body font, line height, and heading gap of a section.
type sectionStyle struct {
	font       Font
	leading    float64
	headingGap float64
}

var (
	bodyStyle = sectionStyle{font: bodyFont, leading: 7, headingGap: 8}
	refsStyle = sectionStyle{font: refsFont, leading: 6, headingGap: 10}
)

type layouter struct {
	doc  *Document
	page *Page
	y    float64
	m    Measurer
}

func (l *layouter) newPage() {
	l.page = &Page{}
	l.doc.Pages = append(l.doc.Pages, l.page)
	l.y = topY
}

func (l *layouter) text(role Role, s string, f Font, x, y float64, gray int) {
	l.page.Items = append(l.page.Items, Item{Role: role, Text: s, Font: f, X: x, Y: y, Gray: gray})
}

func (l *layouter) centered(role Role, s string, f Font, y float64, gray int) {
	x := PageWidth/2 - l.m.StringWidth(s, f)/2
	l.text(role, s, f, x, y, gray)
}

func (l *layouter) section(label, content string, st sectionStyle) {
	if content == "" {
		return
	}
	cleaned := markup.Clean(content)

	if l.y > headingBreakY {
		l.newPage()
	}
	l.text(RoleHeading, strings.ToUpper(label), headingFont, margin, l.y, 0)
	l.y += st.headingGap
	l.page.Items = append(l.page.Items, Item{Role: RoleRule, X: margin, X2: margin + ruleLength, Y: l.y - 2, Gray: 200})

	for _, line := range Wrap(cleaned, contentWidth, st.font, l.m) {
		if l.y > lineBreakY {
			l.newPage()
		}
		l.text(RoleBody, line, st.font, margin, l.y, 0)
		l.y += st.leading
	}
	l.y += sectionGap
}

// Layout places the title block and the four sections on A4 pages, then
// stamps a "Page X of Y" footer on every page. Empty sections are omitted.
// Every wrapped body line appears on exactly one page.
func Layout(s types.Sections, opts Options, m Measurer) *Document {
	opts = opts.withDefaults()
	l := &layouter{doc: &Document{}, m: m}
	l.newPage()

	l.centered(RoleTitle, opts.Title, titleFont, l.y, 0)
	l.y += 12
	l.centered(RoleSubtitle, "Generated on "+opts.Date.Format("1/2/2006"), subtitleFont, l.y, 100)
	l.y += 8
	l.centered(RoleSubtitle, opts.Generator, subtitleFont, l.y, 100)
	l.y += 20

	for _, b := range types.Buckets {
		st := bodyStyle
		if b == types.BucketReferences {
			st = refsStyle
		}
		l.section(Label(b), s.Get(b), st)
	}

	total := len(l.doc.Pages)
	for i, p := range l.doc.Pages {
		l.page = p
		l.centered(RoleFooter, fmt.Sprintf("Page %d of %d", i+1, total), footerFont, PageHeight-footerOffset, 150)
	}
	return l.doc
}

// Wrap breaks text into lines no wider than width. Each newline-separated
// paragraph is wrapped greedily by word; an empty paragraph yields one empty
// line, and a word wider than width is split across lines by rune.
func Wrap(text string, width float64, f Font, m Measurer) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, width, f, m)...)
	}
	return lines
}

func wrapParagraph(para string, width float64, f Font, m Measurer) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, w := range words {
		for m.StringWidth(w, f) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			var head string
			head, w = breakWord(w, width, f, m)
			lines = append(lines, head)
		}
		if w == "" {
			continue
		}
		if line == "" {
			line = w
			continue
		}
		if candidate := line + " " + w; m.StringWidth(candidate, f) <= width {
			line = candidate
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// breakWord returns the longest prefix of w that fits in width (at least one
// rune) and the remainder.
func breakWord(w string, width float64, f Font, m Measurer) (string, string) {
	end := 0
	for end < len(w) {
		_, size := utf8.DecodeRuneInString(w[end:])
		if end > 0 && m.StringWidth(w[:end+size], f) > width {
			break
		}
		end += size
	}
	return w[:end], w[end:]
}
