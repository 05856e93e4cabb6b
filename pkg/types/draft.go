// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Bucket names one of the four fixed sections a generated draft is split into.
type Bucket string

const (
	BucketAbstract   Bucket = "abstract"
	BucketMethods    Bucket = "methods"
	BucketResults    Bucket = "results"
	BucketReferences Bucket = "references"
)

// Buckets lists every bucket in canonical document order.
var Buckets = []Bucket{BucketAbstract, BucketMethods, BucketResults, BucketReferences}

// Sections holds the text of a generated draft grouped by bucket. The zero
// value is a valid, empty draft.
type Sections struct {
	// Abstract collects the abstract and introduction text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Methods collects methods and methodology text.
	Methods string `json:"methods" yaml:"methods"`

	// Results collects results, findings, and discussion text.
	Results string `json:"results" yaml:"results"`

	// References collects the reference list or bibliography.
	References string `json:"references" yaml:"references"`
}

// Get returns the text held in bucket b. Unknown buckets return "".
func (s Sections) Get(b Bucket) string {
	switch b {
	case BucketAbstract:
		return s.Abstract
	case BucketMethods:
		return s.Methods
	case BucketResults:
		return s.Results
	case BucketReferences:
		return s.References
	}
	return ""
}

// Ptr returns a pointer to the field backing bucket b, or nil for an
// unknown bucket.
func (s *Sections) Ptr(b Bucket) *string {
	switch b {
	case BucketAbstract:
		return &s.Abstract
	case BucketMethods:
		return &s.Methods
	case BucketResults:
		return &s.Results
	case BucketReferences:
		return &s.References
	}
	return nil
}

// IsEmpty reports whether every bucket is empty.
func (s Sections) IsEmpty() bool {
	for _, b := range Buckets {
		if s.Get(b) != "" {
			return false
		}
	}
	return true
}

// TrimSpace trims leading and trailing whitespace from every bucket.
func (s *Sections) TrimSpace() {
	for _, b := range Buckets {
		p := s.Ptr(b)
		*p = strings.TrimSpace(*p)
	}
}

// ReviseRequest is the body sent to the backend's revise endpoint.
type ReviseRequest struct {
	// Instructions is the reader's free-form feedback on the current draft.
	Instructions string `json:"instructions"`
}

// ReviseResponse is the backend's reply to a successful revision.
type ReviseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// Content is the full regenerated draft text.
	Content string `json:"content"`
}
