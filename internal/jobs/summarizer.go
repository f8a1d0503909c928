package jobs

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/extract"
	"github.com/ysnprv/cvpilot/internal/llm"
	"github.com/ysnprv/cvpilot/internal/prompts"
	"github.com/ysnprv/cvpilot/internal/retry"
	"github.com/ysnprv/cvpilot/internal/types"
)

// maxTitleWords bounds the generated title length
const maxTitleWords = 3

// Summarizer produces a short title and paragraph summary for one or more
// combined job descriptions.
type Summarizer struct {
	client llm.Client
	policy *retry.Policy
	logger *zap.Logger
}

// NewSummarizer creates a Summarizer around the given LLM client.
func NewSummarizer(client llm.Client, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{
		client: client,
		policy: retry.NewPolicy(logger),
		logger: logger,
	}
}

// Summarize generates a title and summary for the combined postings.
func (s *Summarizer) Summarize(ctx context.Context, jobsText string) (*types.JobsSummary, error) {
	if len(strings.TrimSpace(jobsText)) < minInputChars {
		return nil, &ValidationError{Message: "job descriptions text too short (min 10 chars)"}
	}

	template := prompts.MustGet("jobs.json", "summarize")
	prompt := prompts.Format(template, map[string]string{"JobsText": jobsText})

	var summary *types.JobsSummary
	err := s.policy.Do(ctx, "jobs summarize", func(ctx context.Context) error {
		response, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
		if err != nil {
			return err
		}

		data, err := extract.Object(response, extract.Spec{
			RequiredKeys: []string{"title", "summary"},
		})
		if err != nil {
			return err
		}

		title := clampWords(extract.NormalizeString(data["title"]), maxTitleWords)
		body := extract.NormalizeString(data["summary"])
		if title == "" || body == "" {
			return &llm.BadResponseError{Message: "empty title or summary"}
		}

		summary = &types.JobsSummary{Title: title, Summary: body}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("jobs summarized",
		zap.String("title", summary.Title),
		zap.Int("summary_chars", len(summary.Summary)))
	return summary, nil
}

// clampWords keeps at most n whitespace-separated words.
func clampWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}
