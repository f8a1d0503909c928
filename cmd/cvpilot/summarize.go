package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ysnprv/cvpilot/internal/ingest"
	"github.com/ysnprv/cvpilot/internal/jobs"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize-jobs",
	Short: "Summarize a set of job postings",
	Long:  "Summarize-jobs condenses one or more job postings into a short title and a one-paragraph summary.",
	RunE:  runSummarize,
}

var summarizeInputFile string

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeInputFile, "in", "i", "", "Path to job postings file (required)")

	_ = summarizeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	jobsText, err := ingest.LoadDocument(summarizeInputFile)
	if err != nil {
		return fmt.Errorf("loading job postings: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	summary, err := jobs.NewSummarizer(client, log).Summarize(ctx, jobsText)
	if err != nil {
		return fmt.Errorf("summarizing jobs: %w", err)
	}

	fmt.Printf("%s\n\n%s\n", summary.Title, summary.Summary)
	return nil
}
