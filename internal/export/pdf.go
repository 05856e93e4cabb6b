// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/pkg/types"
)

// unicodeFamily is the family name an embedded FontFile is registered under.
const unicodeFamily = "DraftUnicode"

// faceStyles are the font styles the layout uses.
var faceStyles = []string{"", "B", "I"}

// fpdfMeasurer measures strings with the font metrics of an fpdf document.
// Text passes through the same translation and face mapping used when
// rendering so widths match the output.
type fpdfMeasurer struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	face func(Font) Font
}

func (m *fpdfMeasurer) StringWidth(text string, f Font) float64 {
	f = m.face(f)
	m.pdf.SetFont(f.Family, f.Style, f.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// BuildPDF lays out s and renders it into a new fpdf document. The returned
// Document is the page model that was rendered. With opts.FontFile set every
// face uses that font; otherwise text is encoded as Windows-1252 and a
// warning reports how many characters could not be.
func BuildPDF(s types.Sections, opts Options) (*fpdf.Fpdf, *Document, error) {
	opts = opts.withDefaults()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator(opts.Generator, true)

	m := &fpdfMeasurer{pdf: pdf, face: func(f Font) Font { return f }}
	if opts.FontFile != "" {
		for _, style := range faceStyles {
			pdf.AddUTF8Font(unicodeFamily, style, opts.FontFile)
		}
		if err := pdf.Error(); err != nil {
			return nil, nil, fmt.Errorf("loading font %s: %w", opts.FontFile, err)
		}
		m.tr = func(s string) string { return s }
		m.face = func(f Font) Font {
			f.Family = unicodeFamily
			return f
		}
	} else {
		m.tr = pdf.UnicodeTranslatorFromDescriptor("")
		if n := countUnencodable(opts.Title, opts.Generator, s.Abstract, s.Methods, s.Results, s.References); n > 0 {
			logger.Warn("PDF export: %d characters outside Windows-1252 will print as '.'; set export.font_file to a TrueType font to keep them", n)
		}
	}

	doc := Layout(s, opts, m)
	for _, p := range doc.Pages {
		pdf.AddPage()
		for _, it := range p.Items {
			if it.Role == RoleRule {
				pdf.SetDrawColor(it.Gray, it.Gray, it.Gray)
				pdf.Line(it.X, it.Y, it.X2, it.Y)
				continue
			}
			f := m.face(it.Font)
			pdf.SetFont(f.Family, f.Style, f.Size)
			pdf.SetTextColor(it.Gray, it.Gray, it.Gray)
			pdf.Text(it.X, it.Y, m.tr(it.Text))
		}
	}
	return pdf, doc, nil
}

// countUnencodable counts the runes in texts that Windows-1252 cannot
// represent.
func countUnencodable(texts ...string) int {
	n := 0
	for _, t := range texts {
		for _, r := range t {
			if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
				n++
			}
		}
	}
	return n
}

// WritePDF renders s as a paginated PDF and writes it to w.
func WritePDF(w io.Writer, s types.Sections, opts Options) error {
	pdf, _, err := BuildPDF(s, opts)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
