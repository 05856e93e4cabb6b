// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/internal/preview"
	"github.com/pdiddy/draftview/internal/results"
	"github.com/pdiddy/draftview/pkg/types"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List the papers fetched for the current research topic",
	Long: `Papers lists the papers behind the draft with their authors, year,
abstract excerpt, and links. --filter keeps papers whose title, abstract, or
author names contain the text; --sort orders them by year (newest first) or
title.`,
	Args: cobra.NoArgs,
	RunE: runPapers,
}

var similarityCmd = &cobra.Command{
	Use:   "similarity",
	Short: "Show pairwise similarity scores between the analyzed papers",
	Long: `Similarity shows the TF-IDF similarity of every pair of analyzed papers,
graded High (>=50%), Medium (30-49%), Low (15-29%), or Minimal (<15%).`,
	Args: cobra.NoArgs,
	RunE: runSimilarity,
}

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Show datasets and methods common across the analyzed papers",
	Args:  cobra.NoArgs,
	RunE:  runEntities,
}

var synthesisCmd = &cobra.Command{
	Use:   "synthesis",
	Short: "Summarize the most used datasets and dominant methods",
	Args:  cobra.NoArgs,
	RunE:  runSynthesis,
}

var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "List the key findings extracted from each paper",
	Args:  cobra.NoArgs,
	RunE:  runFindings,
}

func init() {
	papersCmd.Flags().String("filter", "", "keep papers whose title, abstract, or authors contain this text")
	papersCmd.Flags().String("sort", string(results.SortByYear), "sort order: year or title")
	similarityCmd.Flags().String("sort", string(results.SortByScore), "sort order: score, paper1, or paper2")

	for _, c := range []*cobra.Command{papersCmd, similarityCmd, entitiesCmd, synthesisCmd, findingsCmd} {
		c.Flags().StringP("format", "f", "text", "output format: text, json, or yaml")
		rootCmd.AddCommand(c)
	}
}

// formatFlag returns the validated --format value.
func formatFlag(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	return format, checkFormat(format)
}

func runPapers(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	sortKey, _ := cmd.Flags().GetString("sort")
	by, err := results.ParsePaperSort(sortKey)
	if err != nil {
		return err
	}
	filter, _ := cmd.Flags().GetString("filter")

	client, err := newClient()
	if err != nil {
		return err
	}
	papers, err := client.Papers(cmd.Context())
	if err != nil {
		return err
	}
	papers = results.FilterPapers(papers, filter)
	results.SortPapers(papers, by)

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, format, papers); done {
		return err
	}
	pdfs, err := client.PDFs(cmd.Context())
	if err != nil {
		logger.Warn("listing PDFs: %v", err)
	}
	return preview.RenderPapers(out, papers, pdfs, preview.DefaultStyles())
}

// fetchSimilarity returns the similarity results, or the zero value when
// the analysis has not run yet.
func fetchSimilarity(cmd *cobra.Command) (types.Similarity, error) {
	client, err := newClient()
	if err != nil {
		return types.Similarity{}, err
	}
	sim, err := client.Similarity(cmd.Context())
	if err != nil || sim == nil {
		return types.Similarity{}, err
	}
	return *sim, nil
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	sortKey, _ := cmd.Flags().GetString("sort")
	by, err := results.ParsePairSort(sortKey)
	if err != nil {
		return err
	}

	sim, err := fetchSimilarity(cmd)
	if err != nil {
		return err
	}
	results.SortPairs(sim.Similarities, by)

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, format, sim); done {
		return err
	}
	return preview.RenderSimilarity(out, sim, preview.DefaultStyles())
}

func runEntities(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	e, err := client.Entities(cmd.Context())
	if err != nil {
		return err
	}
	if e == nil {
		e = &types.Entities{}
	}

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, format, e); done {
		return err
	}
	return preview.RenderEntities(out, *e, preview.DefaultStyles())
}

func runSynthesis(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	s, err := client.Synthesis(cmd.Context())
	if err != nil {
		return err
	}
	if s == nil {
		s = &types.Synthesis{}
	}

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, format, s); done {
		return err
	}
	return preview.RenderSynthesis(out, *s, preview.DefaultStyles())
}

func runFindings(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	sim, err := fetchSimilarity(cmd)
	if err != nil {
		return err
	}
	findings := results.KeyFindings(sim.KeyFindings)

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, format, findings); done {
		return err
	}
	return preview.RenderFindings(out, findings, preview.DefaultStyles())
}
