// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftview/internal/export"
	"github.com/pdiddy/draftview/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the split draft as plain text or PDF",
	Long: `Export writes the four draft sections to a file. The text format
always lists all four section labels; the PDF format lays out the non-empty
sections on A4 pages with a title block and page footers.`,
}

var exportTextCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Write the draft as a plain-text document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args, func(w io.Writer, s types.Sections, _ export.Options) error {
			_, err := io.WriteString(w, export.PlainText(s))
			return err
		})
	},
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf [file]",
	Short: "Write the draft as a paginated PDF",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args, export.WritePDF)
	},
}

func init() {
	exportTextCmd.Flags().StringP("output", "o", "research_draft.txt", `output file ("-" for stdout)`)
	exportPDFCmd.Flags().StringP("output", "o", "research_paper_academic.pdf", `output file ("-" for stdout)`)

	exportCmd.AddCommand(exportTextCmd, exportPDFCmd)
	rootCmd.AddCommand(exportCmd)
}

type writeFunc func(w io.Writer, s types.Sections, opts export.Options) error

func runExport(cmd *cobra.Command, args []string, write writeFunc) error {
	s, err := loadSections(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := export.Options{Title: cfg.Export.Title, Generator: cfg.Export.Generator, FontFile: cfg.Export.FontFile}

	output, _ := cmd.Flags().GetString("output")
	if output == "-" {
		return write(cmd.OutOrStdout(), s, opts)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := write(f, s, opts); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
	return nil
}
