// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections splits a generated draft into its abstract, methods,
// results, and references sections.
//
// The backend emits the draft as one flat text blob. Split recognizes
// heading lines such as "## 2. Methodology" or "**Findings**", routes the
// lines that follow into the matching bucket, and falls back to treating the
// whole draft as the abstract when no heading is present.
package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/draftview/pkg/types"
)

// maxHeadingLen is the rune length below which a trimmed line may be a
// heading. Longer lines are prose that happens to start with a keyword
// ("Results show that ...").
const maxHeadingLen = 60

// alias maps a heading keyword to the bucket it feeds.
type alias struct {
	keyword string
	bucket  types.Bucket
}

// aliases is the heading keyword table. Several keywords may feed one bucket.
var aliases = []alias{
	{"abstract", types.BucketAbstract},
	{"introduction", types.BucketAbstract},
	{"methods", types.BucketMethods},
	{"methodology", types.BucketMethods},
	{"results", types.BucketResults},
	{"findings", types.BucketResults},
	{"discussion", types.BucketResults},
	{"references", types.BucketReferences},
	{"bibliography", types.BucketReferences},
}

// headingPattern matches leading markup (#, *, whitespace), an optional
// numeral such as "2." or "3 ", and a heading keyword at a word boundary.
var headingPattern = buildHeadingPattern()

func buildHeadingPattern() *regexp.Regexp {
	keywords := make([]string, len(aliases))
	for i, a := range aliases {
		keywords[i] = regexp.QuoteMeta(a.keyword)
	}
	return regexp.MustCompile(`(?i)^[#\s*]*(?:\d\.?\s+)?\s*(` + strings.Join(keywords, "|") + `)\b`)
}

// headingBucket reports the bucket a trimmed line switches to, or false if
// the line is not a heading.
func headingBucket(trimmed string) (types.Bucket, bool) {
	if utf8.RuneCountInString(trimmed) >= maxHeadingLen {
		return "", false
	}
	m := headingPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	word := strings.ToLower(m[1])
	for _, a := range aliases {
		if a.keyword == word {
			return a.bucket, true
		}
	}
	return "", false
}

// Split divides raw draft text into the four section buckets. It never
// fails: empty input yields empty buckets, and input without any recognized
// heading is returned whole (trimmed) as the abstract.
func Split(raw string) types.Sections {
	var out types.Sections
	if raw == "" {
		return out
	}

	current := types.BucketAbstract
	found := false
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		dst := out.Ptr(current)
		if trimmed == "" && *dst == "" {
			continue
		}

		if b, ok := headingBucket(trimmed); ok {
			current = b
			found = true
			continue
		}

		if *dst != "" {
			*dst += "\n"
		}
		*dst += line
	}

	if !found {
		return types.Sections{Abstract: strings.TrimSpace(raw)}
	}
	out.TrimSpace()
	return out
}

// SplitValue splits a draft decoded from JSON. Anything other than a string
// (including nil) is treated as an empty draft.
func SplitValue(v any) types.Sections {
	s, ok := v.(string)
	if !ok {
		return types.Sections{}
	}
	return Split(s)
}

// WordCount returns the number of whitespace-separated words across all
// four buckets.
func WordCount(s types.Sections) int {
	n := 0
	for _, b := range types.Buckets {
		n += len(strings.Fields(s.Get(b)))
	}
	return n
}
