// Package anonymize extracts personal information from a CV and produces an
// anonymized body, using LLM extraction. It works with any language and any
// format; if the model cannot process the CV within the retry budget the
// operation fails.
package anonymize

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

// Anonymizer extracts a flexible personal-data mapping and removes it from
// the CV body.
type Anonymizer struct {
	client llm.Client
	policy *retry.Policy
	logger *zap.Logger
}

// New creates an Anonymizer around the given LLM client.
func New(client llm.Client, logger *zap.Logger) *Anonymizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Anonymizer{
		client: client,
		policy: retry.NewPolicy(logger),
		logger: logger,
	}
}

// Anonymize extracts personal info and returns the anonymized CV. The
// personal-info fields are whatever the model identifies; values are
// normalized to JSON-safe scalars and lists, never failing on shape.
func (a *Anonymizer) Anonymize(ctx context.Context, rawCV string) (*types.AnonymizedCV, error) {
	a.logger.Debug("anonymizing CV", zap.Int("chars", len(rawCV)))

	template := prompts.MustGet("anonymize.json", "privacy-extraction")
	prompt := prompts.Format(template, map[string]string{"CVText": rawCV})

	var result *types.AnonymizedCV
	err := a.policy.Do(ctx, "anonymize", func(ctx context.Context) error {
		response, err := a.client.GenerateContent(ctx, prompt, llm.TierStandard)
		if err != nil {
			return err
		}

		data, err := extract.Object(response, extract.Spec{
			RequiredKeys: []string{"personal_info", "anonymized_cv"},
		})
		if err != nil {
			return err
		}

		result = buildAnonymizedCV(data, a.logger)
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("personal data extracted",
		zap.Int("fields", len(result.PersonalData)),
		zap.Int("anonymized_chars", len(result.AnonymizedText)))
	return result, nil
}

// buildAnonymizedCV normalizes the extraction result leniently: a
// non-mapping personal_info degrades to empty, a non-string body is
// stringified, and a suspiciously short body is logged but accepted.
func buildAnonymizedCV(data map[string]any, logger *zap.Logger) *types.AnonymizedCV {
	personal, ok := data["personal_info"].(map[string]any)
	if !ok {
		logger.Warn("personal_info is not a mapping, using empty")
		personal = map[string]any{}
	}
	if len(personal) == 0 {
		logger.Warn("no personal data extracted from CV")
	}

	normalized := make(map[string]any, len(personal))
	for key, value := range personal {
		normalized[key] = normalizeValue(value)
	}

	body := extract.NormalizeString(data["anonymized_cv"])
	if len(strings.TrimSpace(body)) < 10 {
		logger.Warn("anonymized CV is suspiciously short",
			zap.Int("chars", len(strings.TrimSpace(body))))
	}

	return &types.AnonymizedCV{
		PersonalData:   normalized,
		AnonymizedText: body,
	}
}

// normalizeValue keeps scalars, flattens lists to string lists, and
// stringifies anything else.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case nil, string, bool, float64:
		return v
	case []any:
		return extract.NormalizeStringList(v)
	default:
		return extract.NormalizeString(v)
	}
}
