// Package queries generates clarifying questions about a CV so the user can
// supply context the enhancement step would otherwise lack.
package queries

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/extract"
	"github.com/ysnprv/cvpilot/internal/llm"
	"github.com/ysnprv/cvpilot/internal/prompts"
	"github.com/ysnprv/cvpilot/internal/retry"
)

// Generator produces 4-10 clarifying questions for a CV via LLM.
type Generator struct {
	client llm.Client
	policy *retry.Policy
	logger *zap.Logger
}

// NewGenerator creates a Generator around the given LLM client.
func NewGenerator(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client: client,
		policy: retry.NewPolicy(logger),
		logger: logger,
	}
}

// Generate asks the model for clarifying questions about the CV and returns
// them keyed by the model's own short identifiers. Every value is coerced
// to a string; empty values are dropped. At least one question is required.
func (g *Generator) Generate(ctx context.Context, cvText string) (map[string]string, error) {
	if len(strings.TrimSpace(cvText)) < 10 {
		return nil, fmt.Errorf("CV text too short for query generation (min 10 chars)")
	}

	template := prompts.MustGet("queries.json", "generate")
	prompt := prompts.Format(template, map[string]string{"CVText": cvText})

	var questions map[string]string
	err := g.policy.Do(ctx, "query generation", func(ctx context.Context) error {
		response, err := g.client.GenerateContent(ctx, prompt, llm.TierLite)
		if err != nil {
			return err
		}

		data, err := extract.Object(response, extract.Spec{})
		if err != nil {
			return err
		}

		parsed := make(map[string]string, len(data))
		for key, value := range data {
			if s := extract.NormalizeString(value); s != "" {
				parsed[key] = s
			}
		}
		if len(parsed) == 0 {
			return &llm.BadResponseError{Message: "must generate at least 1 query"}
		}

		questions = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info("queries generated", zap.Int("count", len(questions)))
	return questions, nil
}
