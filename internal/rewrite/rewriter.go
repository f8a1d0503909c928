// Package rewrite drives the iterative CV enhancement loop: score the
// working document against the target jobs text, enhance, re-score, and
// stop once the similarity threshold is reached or the iteration cap is
// hit. Each iteration's output becomes the next iteration's input; there
// is no rollback to earlier versions.
package rewrite

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/assemble"
	"github.com/ysnprv/cvpilot/internal/enhance"
	"github.com/ysnprv/cvpilot/internal/jobs"
	"github.com/ysnprv/cvpilot/internal/types"
)

const (
	// DefaultMaxIterations caps the number of enhancement rounds.
	DefaultMaxIterations = 3

	// DefaultThreshold is the similarity score at which the loop stops
	// early.
	DefaultThreshold = 0.97

	// minDocumentChars is the minimum working-document length.
	minDocumentChars = 10
)

// Enhancer performs one rewrite of the working document.
type Enhancer interface {
	Enhance(ctx context.Context, anonymizedCV string, jobDescriptions []types.JobDescription, ec enhance.Context) (*types.EnhancedCV, error)
}

// Scorer computes document-to-target similarity in [0, 1].
type Scorer interface {
	Score(ctx context.Context, docText, targetText string) (float64, error)
}

// JobParser extracts a structured description from one raw posting.
type JobParser interface {
	Parse(ctx context.Context, rawPosting string) (*types.JobDescription, error)
}

// Options carries optional context threaded through every iteration.
type Options struct {
	QAPairs []types.QuestionAnswer
	Profile *types.ProfileData
}

// IterationRecord captures one completed enhancement round.
type IterationRecord struct {
	Iteration   int
	ScoreBefore float64
	ScoreAfter  float64
	Snapshot    string
}

// EnhancementResult is the outcome of the enhancement loop. FinalScore and
// InitialScore are raw similarity values; display shaping happens only at
// the assembly boundary.
type EnhancementResult struct {
	Document     string
	Iterations   []IterationRecord
	InitialScore float64
	FinalScore   float64
}

// Rewriter orchestrates parsing, enhancement, and scoring. All
// collaborators are injected.
type Rewriter struct {
	enhancer      Enhancer
	parser        JobParser
	scorer        Scorer
	logger        *zap.Logger
	maxIterations int
	threshold     float64
	progress      func(IterationRecord)
}

// Option customizes a Rewriter.
type Option func(*Rewriter)

// WithMaxIterations overrides the iteration cap. A cap of zero disables
// enhancement entirely; negative values are ignored.
func WithMaxIterations(n int) Option {
	return func(r *Rewriter) {
		if n >= 0 {
			r.maxIterations = n
		}
	}
}

// WithProgress registers a callback invoked after each completed
// iteration, before the convergence check.
func WithProgress(fn func(IterationRecord)) Option {
	return func(r *Rewriter) {
		r.progress = fn
	}
}

// WithThreshold overrides the early-stop similarity threshold.
func WithThreshold(t float64) Option {
	return func(r *Rewriter) {
		if t > 0 {
			r.threshold = t
		}
	}
}

// NewRewriter creates a Rewriter with the default iteration cap and
// threshold.
func NewRewriter(enhancer Enhancer, parser JobParser, scorer Scorer, logger *zap.Logger, opts ...Option) *Rewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Rewriter{
		enhancer:      enhancer,
		parser:        parser,
		scorer:        scorer,
		logger:        logger,
		maxIterations: DefaultMaxIterations,
		threshold:     DefaultThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnhanceDocument runs the enhancement loop on an already-parsed set of job
// descriptions. At least one enhancement round runs regardless of the
// initial score (unless the cap is zero); the loop stops once a
// post-enhancement score reaches the threshold or the cap is hit.
func (r *Rewriter) EnhanceDocument(ctx context.Context, document string, jobDescriptions []types.JobDescription, targetText string, opts Options) (*EnhancementResult, error) {
	if len(strings.TrimSpace(document)) < minDocumentChars {
		return nil, &ValidationError{Message: fmt.Sprintf("document too short (min %d chars)", minDocumentChars)}
	}
	if len(jobDescriptions) == 0 {
		return nil, &ValidationError{Message: "at least one job description required"}
	}

	initial, err := r.scorer.Score(ctx, document, targetText)
	if err != nil {
		return nil, fmt.Errorf("scoring initial document: %w", err)
	}
	r.logger.Info("starting enhancement loop",
		zap.Float64("initial_score", initial),
		zap.Float64("threshold", r.threshold),
		zap.Int("max_iterations", r.maxIterations))

	result := &EnhancementResult{
		Document:     document,
		InitialScore: initial,
		FinalScore:   initial,
	}

	for i := 1; i <= r.maxIterations; i++ {
		enhanced, err := r.enhancer.Enhance(ctx, result.Document, jobDescriptions, enhance.Context{
			QAPairs:         opts.QAPairs,
			Profile:         opts.Profile,
			Iteration:       i,
			SimilarityScore: result.FinalScore,
		})
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i, err)
		}

		before := result.FinalScore
		result.Document = enhanced.Content

		score, err := r.scorer.Score(ctx, result.Document, targetText)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: scoring enhanced document: %w", i, err)
		}
		result.FinalScore = score
		record := IterationRecord{
			Iteration:   i,
			ScoreBefore: before,
			ScoreAfter:  score,
			Snapshot:    enhanced.Content,
		}
		result.Iterations = append(result.Iterations, record)
		if r.progress != nil {
			r.progress(record)
		}

		r.logger.Info("iteration complete",
			zap.Int("iteration", i),
			zap.Float64("score_before", before),
			zap.Float64("score_after", score))

		if result.FinalScore >= r.threshold {
			break
		}
	}

	r.logger.Info("enhancement loop finished",
		zap.Int("iterations", len(result.Iterations)),
		zap.Float64("final_score", result.FinalScore),
		zap.Bool("converged", result.FinalScore >= r.threshold))
	return result, nil
}

// Rewrite is the full pipeline entry point: split and parse the combined
// jobs text, run the enhancement loop against it, and assemble the final
// personalized document.
func (r *Rewriter) Rewrite(ctx context.Context, anonymizedCV, jobsText string, personal map[string]any, opts Options) (*types.FinalCV, error) {
	if len(strings.TrimSpace(jobsText)) < minDocumentChars {
		return nil, &ValidationError{Message: fmt.Sprintf("jobs text too short (min %d chars)", minDocumentChars)}
	}

	postings := jobs.SplitPostings(jobsText)
	jobDescriptions := make([]types.JobDescription, 0, len(postings))
	for i, posting := range postings {
		jd, err := r.parser.Parse(ctx, posting)
		if err != nil {
			return nil, fmt.Errorf("parsing job posting %d: %w", i+1, err)
		}
		jobDescriptions = append(jobDescriptions, *jd)
	}

	loop, err := r.EnhanceDocument(ctx, anonymizedCV, jobDescriptions, jobsText, opts)
	if err != nil {
		return nil, err
	}

	final := assemble.Assemble(personal, loop.Document, len(loop.Iterations), displayFinalSimilarity(loop.FinalScore))
	final.OriginalScore = displayOriginalScore(loop.InitialScore)
	final.EnhancedAnonymizedText = loop.Document
	return final, nil
}
