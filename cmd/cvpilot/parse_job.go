package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ysnprv/cvpilot/internal/ingest"
	"github.com/ysnprv/cvpilot/internal/jobs"
	"github.com/ysnprv/cvpilot/internal/observability"
	"github.com/ysnprv/cvpilot/internal/types"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse job postings into structured JSON",
	Long:  "Parse one or more job postings (separated by '---') into structured job description JSON validated against the job_description schema.",
	RunE:  runParseJob,
}

var (
	parseInputFile  string
	parseOutputFile string
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to job postings file (required)")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	_ = parseJobCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
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

	jobsText, err := ingest.LoadDocument(parseInputFile)
	if err != nil {
		return fmt.Errorf("loading job postings: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	parser := jobs.NewParser(client, log)
	printer := observability.NewPrinter(os.Stderr)

	var parsed []types.JobDescription
	for i, posting := range jobs.SplitPostings(jobsText) {
		jd, err := parser.Parse(ctx, posting)
		if err != nil {
			return fmt.Errorf("parsing posting %d: %w", i+1, err)
		}
		if cfg.Verbose {
			printer.PrintJobDescription(jd)
		}
		parsed = append(parsed, *jd)
	}

	jsonBytes, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(parseOutputFile, string(jsonBytes))
}
