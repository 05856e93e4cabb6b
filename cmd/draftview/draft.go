// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftview/internal/backend"
	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/internal/sections"
	"github.com/pdiddy/draftview/pkg/types"
)

// loadSections reads the draft named by args and splits it. With no
// argument the draft is fetched from the backend; "-" reads stdin.
func loadSections(cmd *cobra.Command, args []string) (types.Sections, error) {
	var s types.Sections
	if len(args) == 0 {
		client, err := newClient()
		if err != nil {
			return s, err
		}
		v, err := client.Draft(cmd.Context())
		if err != nil {
			return s, err
		}
		s = sections.SplitValue(v)
	} else {
		raw, err := readDraft(cmd, args[0])
		if err != nil {
			return s, err
		}
		s = sections.Split(raw)
	}
	logger.Debug("split draft: %d words", sections.WordCount(s))
	return s, nil
}

// newClient builds a backend client from the loaded config.
func newClient() (*backend.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Debug("using backend %s", cfg.Backend.URL)
	return backend.New(cfg.Backend), nil
}

func readDraft(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading draft from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading draft: %w", err)
	}
	return string(data), nil
}
