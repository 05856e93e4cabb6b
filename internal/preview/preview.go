// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders split draft sections and analysis results for the
// terminal.
package preview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/draftview/internal/export"
	"github.com/pdiddy/draftview/internal/results"
	"github.com/pdiddy/draftview/internal/sections"
	"github.com/pdiddy/draftview/pkg/types"
)

// EmptyMessage is shown when no section has content.
const EmptyMessage = "No draft has been generated yet."

// Styles holds the lipgloss styles used by the renderers. A band or tone
// missing from its map renders unstyled.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Heading lipgloss.Style
	Bands   map[results.Band]lipgloss.Style
	Tones   map[results.Tone]lipgloss.Style
}

// DefaultStyles returns the preview palette.
func DefaultStyles() Styles {
	primary := lipgloss.Color("#7C3AED")
	muted := lipgloss.Color("#6C7086")
	st := Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Muted: lipgloss.NewStyle().Foreground(muted),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(primary),
		Bands: map[results.Band]lipgloss.Style{},
		Tones: map[results.Tone]lipgloss.Style{
			results.TonePrimary: lipgloss.NewStyle().Foreground(primary),
			results.ToneSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(results.BandHigh.Color())),
			results.ToneWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(results.BandMedium.Color())),
		},
	}
	for _, b := range results.Bands {
		st.Bands[b] = lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color()))
	}
	return st
}

// Render writes a header with the word count followed by every non-empty
// section as a styled heading and its text verbatim. An empty draft renders
// EmptyMessage instead.
func Render(w io.Writer, s types.Sections, st Styles) error {
	if _, err := fmt.Fprintln(w, st.Title.Render("Generated Draft Preview")); err != nil {
		return err
	}
	summary := fmt.Sprintf("Automatically generated research paper draft (%d words)", sections.WordCount(s))
	if _, err := fmt.Fprintln(w, st.Muted.Render(summary)); err != nil {
		return err
	}

	if s.IsEmpty() {
		_, err := fmt.Fprintf(w, "\n%s\n", st.Muted.Render(EmptyMessage))
		return err
	}

	for _, b := range types.Buckets {
		body := s.Get(b)
		if body == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", st.Heading.Render(export.Label(b)), body); err != nil {
			return err
		}
	}
	return nil
}
