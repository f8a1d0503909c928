package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ysnprv/cvpilot/internal/db"
)

var showRunCmd = &cobra.Command{
	Use:   "show-run",
	Short: "Show a persisted rewrite run and its stored result",
	Long:  "Show-run looks up a previously persisted rewrite run by ID and prints its status and stored result. Use --out to write the stored document to a file.",
	RunE:  runShowRun,
}

var (
	showRunID          string
	showRunOutPath     string
	showRunDatabaseURL string
)

func init() {
	showRunCmd.Flags().StringVar(&showRunID, "id", "", "Run ID (UUID) to look up (required)")
	showRunCmd.Flags().StringVarP(&showRunOutPath, "out", "o", "", "Path to write the stored document (default: not written)")
	showRunCmd.Flags().StringVar(&showRunDatabaseURL, "db-url", "", "PostgreSQL URL (overrides config)")

	_ = showRunCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(showRunCmd)
}

func runShowRun(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if showRunDatabaseURL != "" {
		cfg.DatabaseURL = showRunDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("no database URL configured; pass --db-url or set database_url in the config file")
	}

	runID, err := uuid.Parse(showRunID)
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", showRunID, err)
	}

	ctx := context.Background()

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Run:         %s\n", run.ID)
	fmt.Fprintf(os.Stdout, "Target jobs: %s\n", run.TargetJobs)
	fmt.Fprintf(os.Stdout, "Status:      %s\n", run.Status)
	fmt.Fprintf(os.Stdout, "Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if run.CompletedAt != nil {
		fmt.Fprintf(os.Stdout, "Completed:   %s\n", run.CompletedAt.Format("2006-01-02 15:04:05"))
	}

	result, err := store.GetResult(ctx, runID)
	if err != nil {
		if errors.Is(err, db.ErrRunNotFound) {
			fmt.Fprintln(os.Stdout, "No stored result for this run")
			return nil
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "Iterations:  %d\n", result.IterationsPerformed)
	fmt.Fprintf(os.Stdout, "Similarity:  %.4f\n", result.FinalSimilarity)
	fmt.Fprintf(os.Stdout, "Original:    %.4f\n", result.OriginalScore)

	if showRunOutPath != "" {
		return writeOutput(showRunOutPath, result.Content)
	}
	return nil
}
