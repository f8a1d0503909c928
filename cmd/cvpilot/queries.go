package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ysnprv/cvpilot/internal/ingest"
	"github.com/ysnprv/cvpilot/internal/queries"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Generate job search queries from a CV",
	Long:  "Queries reads a CV and produces a set of labeled search queries matching the candidate's profile, one per line.",
	RunE:  runQueries,
}

var (
	queriesInputFile  string
	queriesOutputFile string
)

func init() {
	queriesCmd.Flags().StringVarP(&queriesInputFile, "in", "i", "", "Path to CV document (required)")
	queriesCmd.Flags().StringVarP(&queriesOutputFile, "out", "o", "", "Path to output file (default: stdout)")

	_ = queriesCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(queriesCmd)
}

func runQueries(_ *cobra.Command, _ []string) error {
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

	cvText, err := ingest.LoadDocument(queriesInputFile)
	if err != nil {
		return fmt.Errorf("loading CV: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	generated, err := queries.NewGenerator(client, log).Generate(ctx, cvText)
	if err != nil {
		return fmt.Errorf("generating queries: %w", err)
	}

	labels := make([]string, 0, len(generated))
	for label := range generated {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var sb strings.Builder
	for _, label := range labels {
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, generated[label]))
	}
	return writeOutput(queriesOutputFile, strings.TrimRight(sb.String(), "\n"))
}
