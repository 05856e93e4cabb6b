// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/draftview/internal/preview"
	"github.com/pdiddy/draftview/internal/sections"
)

var reviseCmd = &cobra.Command{
	Use:   "revise",
	Short: "Ask the backend to regenerate the draft from feedback",
	Long: `Revise sends free-form feedback (for example "make the abstract more
technical") to the backend's /api/revise endpoint and previews the regenerated
draft.`,
	Args: cobra.NoArgs,
	RunE: runRevise,
}

func init() {
	reviseCmd.Flags().StringP("instructions", "i", "", "feedback describing the changes to make")
	reviseCmd.MarkFlagRequired("instructions")

	rootCmd.AddCommand(reviseCmd)
}

func runRevise(cmd *cobra.Command, args []string) error {
	instructions, _ := cmd.Flags().GetString("instructions")
	if strings.TrimSpace(instructions) == "" {
		return fmt.Errorf("provide revision instructions with --instructions")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Revise(cmd.Context(), instructions)
	if err != nil {
		return err
	}
	if resp.Message != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), resp.Message)
	}
	return preview.Render(cmd.OutOrStdout(), sections.Split(resp.Content), preview.DefaultStyles())
}
