// Package jobs parses raw job postings into structured descriptions and
// produces short posting summaries, both via LLM extraction.
package jobs

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/extract"
	"github.com/ysnprv/cvpilot/internal/llm"
	"github.com/ysnprv/cvpilot/internal/logger"
	"github.com/ysnprv/cvpilot/internal/prompts"
	"github.com/ysnprv/cvpilot/internal/retry"
	"github.com/ysnprv/cvpilot/internal/schemas"
	"github.com/ysnprv/cvpilot/internal/types"
)

// PostingDelimiter separates individual postings inside a combined jobs
// text blob.
const PostingDelimiter = "\n\n---\n\n"

// minInputChars is the minimum meaningful input length for LLM parsing
const minInputChars = 10

// standardFields are mapped onto JobDescription fields; everything else the
// model extracts passes through into Extra.
var standardFields = map[string]bool{
	"title":                    true,
	"company":                  true,
	"location":                 true,
	"description":              true,
	"responsibilities":         true,
	"requirements":             true,
	"preferred_qualifications": true,
	"keywords":                 true,
}

// Parser extracts structured JobDescriptions from raw postings in any
// language or format. There are no regex fallbacks: if the model cannot
// produce a parseable posting within the retry budget, parsing fails.
type Parser struct {
	client llm.Client
	policy *retry.Policy
	logger *zap.Logger
}

// NewParser creates a Parser around the given LLM client.
func NewParser(client llm.Client, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		client: client,
		policy: retry.NewPolicy(logger),
		logger: logger,
	}
}

// Parse extracts one job posting into a JobDescription.
func (p *Parser) Parse(ctx context.Context, rawPosting string) (*types.JobDescription, error) {
	if len(strings.TrimSpace(rawPosting)) < minInputChars {
		return nil, &ValidationError{Message: "job description too short (min 10 chars)"}
	}

	p.logger.Debug("parsing job description",
		zap.Int("chars", len(rawPosting)),
		zap.String("excerpt", logger.Truncate(rawPosting, 120)))

	template := prompts.MustGet("jobs.json", "parse")
	prompt := prompts.Format(template, map[string]string{"JobText": rawPosting})

	var parsed *types.JobDescription
	err := p.policy.Do(ctx, "job parse", func(ctx context.Context) error {
		response, err := p.client.GenerateContent(ctx, prompt, llm.TierStandard)
		if err != nil {
			return err
		}

		data, err := extract.Object(response, extract.Spec{
			ListKeys: []string{"responsibilities", "requirements", "preferred_qualifications", "keywords"},
		})
		if err != nil {
			return err
		}

		jd := buildJobDescription(data, rawPosting)
		if err := validateJobDescription(jd); err != nil {
			return err
		}

		parsed = jd
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Debug("job parsed",
		zap.String("title", parsed.Title),
		zap.String("company", parsed.Company))
	return parsed, nil
}

// SplitPostings splits a combined jobs text blob back into individual
// postings, dropping blank segments.
func SplitPostings(jobsText string) []string {
	parts := strings.Split(jobsText, PostingDelimiter)
	postings := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			postings = append(postings, part)
		}
	}
	return postings
}

// buildJobDescription maps a normalized response object onto the domain
// type, defaulting the core fields the way downstream stages expect.
func buildJobDescription(data map[string]any, rawPosting string) *types.JobDescription {
	title := extract.NormalizeString(data["title"])
	if title == "" {
		title = "Position"
	}

	jd := &types.JobDescription{
		Title:                   title,
		Company:                 extract.NormalizeString(data["company"]),
		Location:                extract.NormalizeString(data["location"]),
		Description:             extract.NormalizeString(data["description"]),
		Responsibilities:        extract.NormalizeStringList(data["responsibilities"]),
		Requirements:            extract.NormalizeStringList(data["requirements"]),
		PreferredQualifications: extract.NormalizeStringList(data["preferred_qualifications"]),
		Keywords:                extract.NormalizeStringList(data["keywords"]),
		RawContent:              rawPosting,
	}

	for key, value := range data {
		if standardFields[key] {
			continue
		}
		if jd.Extra == nil {
			jd.Extra = make(map[string]any)
		}
		jd.Extra[key] = value
	}

	return jd
}

// validateJobDescription checks the normalized posting against the embedded
// schema. A failure is a malformed response, so the parse attempt is
// retried.
func validateJobDescription(jd *types.JobDescription) error {
	doc := map[string]any{
		"title":                    jd.Title,
		"company":                  jd.Company,
		"location":                 jd.Location,
		"description":              jd.Description,
		"responsibilities":         jd.Responsibilities,
		"requirements":             jd.Requirements,
		"preferred_qualifications": jd.PreferredQualifications,
		"keywords":                 jd.Keywords,
	}
	if err := schemas.Validate(schemas.JobDescription, doc); err != nil {
		return &llm.BadResponseError{Message: "job description failed schema validation", Cause: err}
	}
	return nil
}
