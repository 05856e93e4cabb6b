// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  nothing to strip  ", "nothing to strip"},
		{"bold asterisks", "a **bold** word", "a bold word"},
		{"bold underscores", "a __bold__ word", "a bold word"},
		{"italic asterisk", "an *italic* word", "an italic word"},
		{"italic underscore", "an _italic_ word", "an italic word"},
		{"bold before italic", "***both***", "both"},
		{"heading", "## Key Results", "Key Results"},
		{"heading mid text", "intro\n### Sub heading\nbody", "intro\nSub heading\nbody"},
		{"inline code", "call `Split` here", "call Split here"},
		{"fenced inline code", "run ```go test``` now", "run go test now"},
		{"snake case loses underscores", "use snake_case_names", "use snakecasenames"},
		{"unpaired marker kept", "2 * 3 = 6", "2 * 3 = 6"},
		{"bold across lines drops markers", "**open\nclose**", "open\nclose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"",
		"Plain prose with no markup.",
		"Line one\n\nLine two\n  indented line",
		"Numbers 1, 2, 3 and symbols & % $ !",
		"   surrounding whitespace   ",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}
