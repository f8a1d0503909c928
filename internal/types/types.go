// Package types defines the shared domain types passed between the CV
// rewriting pipeline stages.
package types

// QuestionAnswer is a clarifying question and the user's answer, forwarded
// verbatim into the enhancement context.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// JobDescription is a parsed job posting. Fields beyond the standard set land
// in Extra untouched; list fields are always normalized to lists of strings
// before construction, so consumers never see mixed shapes.
type JobDescription struct {
	Title                   string         `json:"title"`
	Company                 string         `json:"company,omitempty"`
	Location                string         `json:"location,omitempty"`
	Description             string         `json:"description"`
	Responsibilities        []string       `json:"responsibilities"`
	Requirements            []string       `json:"requirements"`
	PreferredQualifications []string       `json:"preferred_qualifications"`
	Keywords                []string       `json:"keywords"`
	Extra                   map[string]any `json:"extra,omitempty"`
	RawContent              string         `json:"raw_content,omitempty"`
}

// ProfileData carries optional user profile context for enhancement.
type ProfileData struct {
	Skills       []string `json:"skills,omitempty"`
	Experiences  []string `json:"experiences,omitempty"`
	Education    []string `json:"education,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Empty reports whether the profile carries no usable context.
func (p *ProfileData) Empty() bool {
	if p == nil {
		return true
	}
	return len(p.Skills) == 0 && len(p.Experiences) == 0 &&
		len(p.Education) == 0 && len(p.Achievements) == 0
}

// EnhancedCV is the output of one enhancement step with iteration tracking.
type EnhancedCV struct {
	Content         string  `json:"content"`
	TargetJobs      string  `json:"target_jobs"`
	Iteration       int     `json:"iteration"`
	SimilarityScore float64 `json:"similarity_score"`
}

// AnonymizedCV is a CV with personal information extracted into a flexible
// mapping and removed from the body text.
type AnonymizedCV struct {
	PersonalData   map[string]any `json:"personal_data"`
	AnonymizedText string         `json:"anonymized_text"`
}

// JobsSummary is a short title and paragraph summary of combined postings.
type JobsSummary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// ReviewSummary lists the improvements between two CV versions.
type ReviewSummary struct {
	Improvements []string `json:"improvements"`
}

// FinalCV is the assembled rewrite output: identity header plus enhanced
// body, with iteration metadata. Scores here are presentation values; the
// loop's own control values live in rewrite.EnhancementResult.
type FinalCV struct {
	Content                string  `json:"content"`
	IterationsPerformed    int     `json:"iterations_performed"`
	FinalSimilarity        float64 `json:"final_similarity"`
	OriginalScore          float64 `json:"original_score"`
	EnhancedAnonymizedText string  `json:"enhanced_anonymized_text,omitempty"`
}
