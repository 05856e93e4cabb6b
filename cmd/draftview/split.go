// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/draftview/internal/preview"
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split a draft into abstract, methods, results, and references",
	Long: `Split recognizes section headings in the draft (Abstract, Introduction,
Methods, Methodology, Results, Findings, Discussion, References, Bibliography)
and groups the text under each into four sections. A draft without any
recognizable heading is shown entirely as the abstract.

Output formats: text (styled terminal preview), json, or yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringP("format", "f", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	s, err := loadSections(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, format, s); done {
		return err
	}
	return preview.Render(out, s, preview.DefaultStyles())
}
