package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ysnprv/cvpilot/internal/anonymize"
	"github.com/ysnprv/cvpilot/internal/db"
	"github.com/ysnprv/cvpilot/internal/enhance"
	"github.com/ysnprv/cvpilot/internal/ingest"
	"github.com/ysnprv/cvpilot/internal/jobs"
	"github.com/ysnprv/cvpilot/internal/observability"
	"github.com/ysnprv/cvpilot/internal/review"
	"github.com/ysnprv/cvpilot/internal/rewrite"
	"github.com/ysnprv/cvpilot/internal/similarity"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a CV toward one or more target job postings",
	Long:  "Rewrite anonymizes the CV, iteratively enhances it against the combined job postings until the similarity threshold or iteration cap is reached, then reassembles the final document with personal details restored.",
	RunE:  runRewrite,
}

var (
	rewriteCVPath        string
	rewriteJobsPath      string
	rewriteOutPath       string
	rewriteMaxIterations int
	rewriteThreshold     float64
	rewriteReview        bool
	rewriteDatabaseURL   string
)

func init() {
	rewriteCmd.Flags().StringVar(&rewriteCVPath, "cv", "", "Path to CV document (.txt, .md, or .html) (required)")
	rewriteCmd.Flags().StringVar(&rewriteJobsPath, "jobs", "", "Path to job postings document; multiple postings separated by '---' (required)")
	rewriteCmd.Flags().StringVarP(&rewriteOutPath, "out", "o", "", "Path to write the final document (default: stdout)")
	rewriteCmd.Flags().IntVar(&rewriteMaxIterations, "max-iterations", 0, "Override the enhancement iteration cap")
	rewriteCmd.Flags().Float64Var(&rewriteThreshold, "threshold", 0, "Override the similarity convergence threshold")
	rewriteCmd.Flags().BoolVar(&rewriteReview, "review", false, "Summarize the improvements after rewriting")
	rewriteCmd.Flags().StringVar(&rewriteDatabaseURL, "db-url", "", "PostgreSQL URL to persist the run (overrides config)")

	_ = rewriteCmd.MarkFlagRequired("cv")
	_ = rewriteCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if rewriteMaxIterations > 0 {
		cfg.MaxIterations = rewriteMaxIterations
	}
	if rewriteThreshold > 0 {
		cfg.SimilarityThreshold = rewriteThreshold
	}
	if rewriteDatabaseURL != "" {
		cfg.DatabaseURL = rewriteDatabaseURL
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	cvText, err := ingest.LoadDocument(rewriteCVPath)
	if err != nil {
		return fmt.Errorf("loading CV: %w", err)
	}
	jobsText, err := ingest.LoadDocument(rewriteJobsPath)
	if err != nil {
		return fmt.Errorf("loading job postings: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var store *db.DB
	if cfg.DatabaseURL != "" {
		store, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	anonymizer := anonymize.New(client, log)
	anonymized, err := anonymizer.Anonymize(ctx, cvText)
	if err != nil {
		return fmt.Errorf("anonymizing CV: %w", err)
	}

	rewriterOpts := []rewrite.Option{
		rewrite.WithMaxIterations(cfg.MaxIterations),
		rewrite.WithThreshold(cfg.SimilarityThreshold),
	}
	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		rewriterOpts = append(rewriterOpts, rewrite.WithProgress(func(rec rewrite.IterationRecord) {
			printer.PrintIteration(rec.Iteration, rec.ScoreBefore, rec.ScoreAfter)
		}))
	}

	rewriter := rewrite.NewRewriter(
		enhance.New(client, log),
		jobs.NewParser(client, log),
		similarity.NewScorer(client, log),
		log,
		rewriterOpts...,
	)

	runID := uuid.Nil
	if store != nil {
		runID, err = store.CreateRun(ctx, summarizeJobsText(jobsText))
		if err != nil {
			return err
		}
	}

	result, err := rewriter.Rewrite(ctx, anonymized.AnonymizedText, jobsText, anonymized.PersonalData, rewrite.Options{})
	if err != nil {
		if store != nil {
			_ = store.CompleteRun(ctx, runID, db.StatusFailed)
		}
		return err
	}

	if store != nil {
		if err := store.SaveResult(ctx, runID, result); err != nil {
			return err
		}
		if err := store.CompleteRun(ctx, runID, db.StatusCompleted); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		printer.PrintResult(result)
	}

	if rewriteReview {
		summary, err := review.New(client, log).Review(ctx, anonymized.AnonymizedText, result.EnhancedAnonymizedText)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: review failed: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Improvements:")
			for _, improvement := range summary.Improvements {
				fmt.Fprintf(os.Stderr, "  • %s\n", improvement)
			}
		}
	}

	return writeOutput(rewriteOutPath, result.Content)
}

// summarizeJobsText produces a short run label from the jobs blob.
func summarizeJobsText(jobsText string) string {
	postings := jobs.SplitPostings(jobsText)
	if len(postings) == 0 {
		return "empty jobs text"
	}
	first := strings.TrimSpace(postings[0])
	if idx := strings.IndexByte(first, '\n'); idx > 0 {
		first = first[:idx]
	}
	if len(first) > 120 {
		first = first[:120]
	}
	if len(postings) > 1 {
		return fmt.Sprintf("%s (+%d more)", first, len(postings)-1)
	}
	return first
}
