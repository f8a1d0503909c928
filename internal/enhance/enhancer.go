// Package enhance implements the per-iteration CV enhancement step: one LLM
// rewrite of the working document against the target jobs, with lenient
// output cleanup and a structural acceptance check.
//
// Language-preserving: the CV's original language is strictly maintained.
// There are no fallbacks; if enhancement fails after retries, the step fails.
package enhance

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/extract"
	"github.com/ysnprv/cvpilot/internal/llm"
	"github.com/ysnprv/cvpilot/internal/logger"
	"github.com/ysnprv/cvpilot/internal/prompts"
	"github.com/ysnprv/cvpilot/internal/retry"
	"github.com/ysnprv/cvpilot/internal/types"
)

// minOutputChars is the minimum accepted length of an enhanced CV
const minOutputChars = 20

// topItemsPerJob bounds how many responsibilities/requirements per posting
// are folded into the prompt.
const topItemsPerJob = 3

// Context carries optional auxiliary data forwarded verbatim into the
// enhancement prompt, plus iteration bookkeeping for the model's benefit.
type Context struct {
	QAPairs         []types.QuestionAnswer
	Profile         *types.ProfileData
	Iteration       int
	SimilarityScore float64
}

// Enhancer rewrites an anonymized CV for target jobs using an injected LLM
// client. It holds no per-call state.
type Enhancer struct {
	client llm.Client
	policy *retry.Policy
	logger *zap.Logger
}

// New creates an Enhancer around the given LLM client.
func New(client llm.Client, logger *zap.Logger) *Enhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enhancer{
		client: client,
		policy: retry.NewPolicy(logger),
		logger: logger,
	}
}

// Enhance performs one enhancement step on the anonymized CV. Output that
// is too short or structurally broken is a malformed response and is
// retried; a re-prompt frequently recovers.
func (e *Enhancer) Enhance(ctx context.Context, anonymizedCV string, jobDescriptions []types.JobDescription, ec Context) (*types.EnhancedCV, error) {
	if len(jobDescriptions) == 0 {
		return nil, fmt.Errorf("at least one job description required for enhancement")
	}

	combined := combineJobRequirements(jobDescriptions)
	e.logger.Debug("enhancing CV",
		zap.Int("jobs", len(jobDescriptions)),
		zap.String("titles", combined.Titles),
		zap.Int("iteration", ec.Iteration))

	template := prompts.MustGet("enhance.json", "cv-enhancement")
	prompt := prompts.Format(template, map[string]string{
		"CV":               anonymizedCV,
		"JobTitles":        combined.Titles,
		"KeySkills":        combined.Skills,
		"Responsibilities": combined.Responsibilities,
		"Requirements":     combined.Requirements,
		"ProfileData":      formatProfile(ec.Profile),
		"QAContext":        formatQAPairs(ec.QAPairs),
		"Iteration":        strconv.Itoa(ec.Iteration),
		"SimilarityScore":  strconv.FormatFloat(ec.SimilarityScore, 'f', 4, 64),
	})

	var enhanced *types.EnhancedCV
	err := e.policy.Do(ctx, "CV enhancement", func(ctx context.Context) error {
		response, err := e.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			return err
		}

		content := extract.StripCodeFence(extract.StripThinkingBlock(response))
		if len(strings.TrimSpace(content)) < minOutputChars {
			return &llm.BadResponseError{
				Message: fmt.Sprintf("enhanced CV too short (%d chars, min %d)", len(strings.TrimSpace(content)), minOutputChars),
			}
		}
		if err := ValidateLaTeX(content); err != nil {
			return &llm.BadResponseError{Message: "invalid LaTeX output", Cause: err}
		}

		enhanced = &types.EnhancedCV{
			Content:         strings.TrimSpace(content),
			TargetJobs:      combined.Titles,
			Iteration:       ec.Iteration,
			SimilarityScore: ec.SimilarityScore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("CV enhanced",
		zap.Int("chars", len(enhanced.Content)),
		zap.String("excerpt", logger.Truncate(enhanced.Content, 120)))
	return enhanced, nil
}

// combinedRequirements is the flattened prompt view over all target jobs.
type combinedRequirements struct {
	Titles           string
	Skills           string
	Responsibilities string
	Requirements     string
}

// combineJobRequirements merges requirements from multiple postings:
// deduplicated sorted keywords and the top responsibilities/requirements of
// each posting.
func combineJobRequirements(jobDescriptions []types.JobDescription) combinedRequirements {
	var titles []string
	skillSet := make(map[string]bool)
	var responsibilities []string
	var requirements []string

	for _, jd := range jobDescriptions {
		if jd.Title != "" {
			titles = append(titles, jd.Title)
		}
		for _, kw := range jd.Keywords {
			skillSet[kw] = true
		}
		responsibilities = append(responsibilities, topItems(jd.Responsibilities)...)
		requirements = append(requirements, topItems(jd.Requirements)...)
	}

	skills := make([]string, 0, len(skillSet))
	for skill := range skillSet {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return combinedRequirements{
		Titles:           joinOr(titles, ", ", "Multiple Positions"),
		Skills:           joinOr(skills, ", ", "Various skills"),
		Responsibilities: bulletsOr(responsibilities, "Not specified"),
		Requirements:     bulletsOr(requirements, "Not specified"),
	}
}

func topItems(items []string) []string {
	if len(items) > topItemsPerJob {
		return items[:topItemsPerJob]
	}
	return items
}

func joinOr(items []string, sep, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, sep)
}

func bulletsOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("• ")
		sb.WriteString(item)
	}
	return sb.String()
}

// formatQAPairs renders question-answer pairs for the prompt.
func formatQAPairs(pairs []types.QuestionAnswer) string {
	if len(pairs) == 0 {
		return "None"
	}
	var sb strings.Builder
	for i, qa := range pairs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, qa.Question, i+1, qa.Answer))
	}
	return sb.String()
}

// formatProfile renders the optional profile context, skipping empty
// sections.
func formatProfile(profile *types.ProfileData) string {
	if profile.Empty() {
		return "Not provided"
	}

	var sb strings.Builder
	if len(profile.Skills) > 0 {
		sb.WriteString("Skills: ")
		sb.WriteString(strings.Join(profile.Skills, ", "))
	}
	writeProfileSection(&sb, "Experiences", profile.Experiences)
	writeProfileSection(&sb, "Education", profile.Education)
	writeProfileSection(&sb, "Achievements", profile.Achievements)
	return sb.String()
}

func writeProfileSection(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(label)
	sb.WriteString(":")
	for _, item := range items {
		sb.WriteString("\n  • ")
		sb.WriteString(item)
	}
}
