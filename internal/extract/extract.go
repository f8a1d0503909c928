// Package extract turns free-form LLM responses into validated structured
// mappings. It is shared by every feature that consumes generator output as
// structured data: the job parser, anonymizer, query generator, reviewer and
// summarizer all parse through the same code path.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ysnprv/cvpilot/internal/llm"
)

// thinkingMarker closes the reasoning block some models emit before the
// actual answer. Everything up to and including the first occurrence is
// discarded.
const thinkingMarker = "</think>"

// Spec declares what the caller expects from the parsed object.
type Spec struct {
	// RequiredKeys must all be present at the top level. The first missing
	// key fails the extraction.
	RequiredKeys []string
	// ListKeys are normalized to []string with NormalizeStringList. Missing
	// list keys become empty lists.
	ListKeys []string
}

// Object parses an LLM response into a JSON object per spec. Soft shape
// problems (wrong value types in list fields) are normalized away; only a
// true absence of parseable structure or a missing required key fails, with
// *llm.BadResponseError.
func Object(raw string, spec Spec) (map[string]any, error) {
	cleaned := StripCodeFence(StripThinkingBlock(raw))

	data, err := parseJSONObject(cleaned)
	if err != nil {
		return nil, err
	}

	for _, key := range spec.RequiredKeys {
		if _, ok := data[key]; !ok {
			return nil, &llm.BadResponseError{Message: fmt.Sprintf("missing %q field", key)}
		}
	}

	for _, key := range spec.ListKeys {
		data[key] = NormalizeStringList(data[key])
	}

	return data, nil
}

// StripThinkingBlock removes a leading reasoning block delimited by
// </think>. If no marker is present the whole string is kept.
func StripThinkingBlock(text string) string {
	if idx := strings.Index(text, thinkingMarker); idx >= 0 {
		return strings.TrimSpace(text[idx+len(thinkingMarker):])
	}
	return strings.TrimSpace(text)
}

// StripCodeFence removes a single layer of markdown code-fence wrapping,
// optionally tagged with a language identifier. LLMs often wrap output in
// ```json ... ``` blocks even when instructed not to.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")

	// Skip a language identifier on the opening fence line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {") {
			text = text[idx+1:]
		}
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// parseJSONObject attempts a direct parse, then falls back to the substring
// between the first '{' and the last '}'.
func parseJSONObject(text string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err == nil {
		return data, nil
	}

	// A direct parse of a non-object JSON value (array, string) succeeds at
	// the decoder level but not into a map; distinguish the two cases.
	var nonObject any
	if err := json.Unmarshal([]byte(text), &nonObject); err == nil {
		return nil, &llm.BadResponseError{Message: "response must be a JSON object"}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &llm.BadResponseError{Message: "no JSON object found in response"}
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &data); err != nil {
		return nil, &llm.BadResponseError{Message: "invalid JSON in response", Cause: err}
	}
	return data, nil
}
