// Package review compares the original anonymized CV with the enhanced one
// and produces a user-facing summary of improvements.
package review

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/extract"
	"github.com/ysnprv/cvpilot/internal/llm"
	"github.com/ysnprv/cvpilot/internal/prompts"
	"github.com/ysnprv/cvpilot/internal/retry"
	"github.com/ysnprv/cvpilot/internal/types"
)

// Reviewer generates an improvement summary between two CV versions.
type Reviewer struct {
	client llm.Client
	policy *retry.Policy
	logger *zap.Logger
}

// New creates a Reviewer around the given LLM client.
func New(client llm.Client, logger *zap.Logger) *Reviewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reviewer{
		client: client,
		policy: retry.NewPolicy(logger),
		logger: logger,
	}
}

// Review compares oldCV and newCV and returns improvement bullet points.
func (r *Reviewer) Review(ctx context.Context, oldCV, newCV string) (*types.ReviewSummary, error) {
	if len(strings.TrimSpace(oldCV)) < 10 {
		return nil, fmt.Errorf("old CV text too short for review (min 10 chars)")
	}
	if len(strings.TrimSpace(newCV)) < 10 {
		return nil, fmt.Errorf("new CV text too short for review (min 10 chars)")
	}

	template := prompts.MustGet("review.json", "review")
	prompt := prompts.Format(template, map[string]string{
		"OldCV": oldCV,
		"NewCV": newCV,
	})

	var summary *types.ReviewSummary
	err := r.policy.Do(ctx, "CV review", func(ctx context.Context) error {
		response, err := r.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			return err
		}

		data, err := extract.Object(response, extract.Spec{
			RequiredKeys: []string{"improvements"},
			ListKeys:     []string{"improvements"},
		})
		if err != nil {
			return err
		}

		improvements, _ := data["improvements"].([]string)
		if len(improvements) == 0 {
			return &llm.BadResponseError{Message: "review contains no improvements"}
		}

		summary = &types.ReviewSummary{Improvements: improvements}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("review generated", zap.Int("improvements", len(summary.Improvements)))
	return summary, nil
}
