// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup strips Markdown emphasis from generated text before it is
// laid out on a page.
package markup

import (
	"regexp"
	"strings"
)

// rules run in order. The single-marker rules rely on the double-marker
// rules having already consumed ** and __.
var rules = []*regexp.Regexp{
	regexp.MustCompile(`\*\*(.*?)\*\*`),
	regexp.MustCompile(`__(.*?)__`),
	regexp.MustCompile(`\*(.*?)\*`),
	regexp.MustCompile(`_(.*?)_`),
	regexp.MustCompile(`#+\s+(.*)`),
	regexp.MustCompile("`{1,3}(.*?)`{1,3}"),
}

// Clean removes bold, italic, heading, and inline-code markup, keeping the
// marked-up text, and trims the result.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range rules {
		text = re.ReplaceAllString(text, "${1}")
	}
	return strings.TrimSpace(text)
}
