// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// Author is a paper author as reported by the paper search service.
type Author struct {
	Name string `json:"name" yaml:"name"`
}

// OpenAccessPDF points at a freely downloadable copy of a paper.
type OpenAccessPDF struct {
	URL string `json:"url" yaml:"url"`
}

// Paper is one fetched paper from GET /api/papers. Field names follow the
// backend's camelCase JSON.
type Paper struct {
	PaperID       string         `json:"paperId" yaml:"paper_id"`
	Title         string         `json:"title" yaml:"title"`
	Abstract      string         `json:"abstract" yaml:"abstract,omitempty"`
	Year          int            `json:"year" yaml:"year,omitempty"`
	URL           string         `json:"url" yaml:"url,omitempty"`
	Authors       []Author       `json:"authors" yaml:"authors,omitempty"`
	IsOpenAccess  bool           `json:"isOpenAccess" yaml:"is_open_access"`
	OpenAccessPDF *OpenAccessPDF `json:"openAccessPdf,omitempty" yaml:"open_access_pdf,omitempty"`
}

// EntityCount is a dataset or method name with the number of papers that
// mention it.
type EntityCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Entities is the body of GET /api/entities.
type Entities struct {
	CommonDatasets []EntityCount `json:"common_datasets" yaml:"common_datasets"`
	CommonMethods  []EntityCount `json:"common_methods" yaml:"common_methods"`
}

// SimilarityPair is the TF-IDF similarity of two papers.
type SimilarityPair struct {
	Paper1 string  `json:"paper1" yaml:"paper1"`
	Paper2 string  `json:"paper2" yaml:"paper2"`
	Score  float64 `json:"score" yaml:"score"`
}

// Findings is the list of key-finding phrases extracted from one paper.
// A JSON value that is not an array decodes as no findings.
type Findings []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Findings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		*f = nil
		return nil
	}
	*f = list
	return nil
}

// Similarity is the body of GET /api/similarity.
type Similarity struct {
	TotalPapers  int                 `json:"total_papers" yaml:"total_papers"`
	Similarities []SimilarityPair    `json:"similarities" yaml:"similarities"`
	KeyFindings  map[string]Findings `json:"key_findings" yaml:"key_findings"`
}

// PaperFindings pairs a paper title with its key findings.
type PaperFindings struct {
	Paper    string   `json:"paper" yaml:"paper"`
	Findings Findings `json:"findings" yaml:"findings"`
}

// Synthesis is the body of GET /api/synthesis. The dataset and method maps
// count the papers each name appears in.
type Synthesis struct {
	TotalPapers    int             `json:"total_papers" yaml:"total_papers"`
	KeyFindings    []PaperFindings `json:"key_findings" yaml:"key_findings"`
	Summary        string          `json:"synthesis" yaml:"synthesis"`
	CommonDatasets map[string]int  `json:"common_datasets" yaml:"common_datasets"`
	CommonMethods  map[string]int  `json:"common_methods" yaml:"common_methods"`
}
