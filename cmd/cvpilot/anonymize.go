package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ysnprv/cvpilot/internal/anonymize"
	"github.com/ysnprv/cvpilot/internal/ingest"
)

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize",
	Short: "Strip personal details from a CV",
	Long:  "Anonymize extracts personal information from a CV and replaces it with placeholders, printing the extracted fields and the anonymized text as JSON.",
	RunE:  runAnonymize,
}

var (
	anonymizeInputFile  string
	anonymizeOutputFile string
)

func init() {
	anonymizeCmd.Flags().StringVarP(&anonymizeInputFile, "in", "i", "", "Path to CV document (required)")
	anonymizeCmd.Flags().StringVarP(&anonymizeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	_ = anonymizeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(anonymizeCmd)
}

func runAnonymize(_ *cobra.Command, _ []string) error {
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

	cvText, err := ingest.LoadDocument(anonymizeInputFile)
	if err != nil {
		return fmt.Errorf("loading CV: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := anonymize.New(client, log).Anonymize(ctx, cvText)
	if err != nil {
		return fmt.Errorf("anonymizing CV: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(anonymizeOutputFile, string(jsonBytes))
}
