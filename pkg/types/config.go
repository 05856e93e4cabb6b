// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that call the
// analysis backend.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "draftview/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// BackendConfig locates the research-analysis backend.
type BackendConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// URL is the backend base URL (e.g. "http://localhost:8000"). The client
	// appends /api/draft and /api/revise.
	URL string `json:"url" yaml:"url" mapstructure:"url"`
}

// ExportConfig holds settings for the paginated document export.
type ExportConfig struct {
	// Title is printed at the top of the first page (default "Research Paper Draft").
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// Generator is the attribution line under the date
	// (default "AI Research Agent v1.0").
	Generator string `json:"generator" yaml:"generator" mapstructure:"generator"`

	// FontFile is an optional TrueType font embedded in PDFs so text outside
	// Windows-1252 (Greek, CJK) renders. Without it the built-in Times face
	// is used.
	FontFile string `json:"font_file" yaml:"font_file" mapstructure:"font_file"`
}

// ServeConfig holds settings for the local web preview.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups all configuration loaded from draftview.yaml and the environment.
type Config struct {
	Backend BackendConfig `json:"backend" yaml:"backend" mapstructure:"backend"`
	Export  ExportConfig  `json:"export" yaml:"export" mapstructure:"export"`
	Serve   ServeConfig   `json:"serve" yaml:"serve" mapstructure:"serve"`
}
