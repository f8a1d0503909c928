package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ysnprv/cvpilot/internal/types"
)

// ErrRunNotFound is returned when a run ID has no matching record.
var ErrRunNotFound = errors.New("rewrite run not found")

// CreateRun inserts a new rewrite run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, targetJobs string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO rewrite_runs (target_jobs, status)
		 VALUES ($1, $2)
		 RETURNING id`,
		targetJobs, StatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a rewrite run as finished with the given status
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE rewrite_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveResult stores the final document produced by a run
func (db *DB) SaveResult(ctx context.Context, runID uuid.UUID, result *types.FinalCV) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO run_results (run_id, content, iterations_performed, final_similarity, original_score)
		 VALUES ($1, $2, $3, $4, $5)`,
		runID, result.Content, result.IterationsPerformed, result.FinalSimilarity, result.OriginalScore,
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetRun retrieves a rewrite run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*RewriteRun, error) {
	var run RewriteRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, target_jobs, status, created_at, completed_at
		 FROM rewrite_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.TargetJobs, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// GetResult retrieves the stored result for a run
func (db *DB) GetResult(ctx context.Context, runID uuid.UUID) (*RunResult, error) {
	var res RunResult
	err := db.pool.QueryRow(ctx,
		`SELECT run_id, content, iterations_performed, final_similarity, original_score, created_at
		 FROM run_results WHERE run_id = $1`,
		runID,
	).Scan(&res.RunID, &res.Content, &res.IterationsPerformed, &res.FinalSimilarity, &res.OriginalScore, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return &res, nil
}
