package db

import (
	"time"

	"github.com/google/uuid"
)

// Run status constants
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RewriteRun represents one invocation of the rewrite pipeline
type RewriteRun struct {
	ID          uuid.UUID  `json:"id"`
	TargetJobs  string     `json:"target_jobs"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunResult is the stored outcome of a completed rewrite run
type RunResult struct {
	RunID               uuid.UUID `json:"run_id"`
	Content             string    `json:"content"`
	IterationsPerformed int       `json:"iterations_performed"`
	FinalSimilarity     float64   `json:"final_similarity"`
	OriginalScore       float64   `json:"original_score"`
	CreatedAt           time.Time `json:"created_at"`
}
