// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders split draft sections as a plain-text document or a
// paginated PDF.
package export

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/draftview/pkg/types"
)

// Label returns the display label for a bucket ("Abstract", "Methods", ...).
func Label(b types.Bucket) string {
	return cases.Title(language.English).String(string(b))
}

// PlainText renders all four sections in canonical order, each as its label,
// a blank line, and its body. Every label is written even when its body is
// empty so the document always has the same shape; a draft with no content
// at all renders as "".
func PlainText(s types.Sections) string {
	if s.IsEmpty() {
		return ""
	}
	blocks := make([]string, 0, len(types.Buckets))
	for _, b := range types.Buckets {
		blocks = append(blocks, Label(b)+"\n\n"+s.Get(b)+"\n\n")
	}
	return strings.Join(blocks, "\n")
}
