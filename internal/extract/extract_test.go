package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysnprv/cvpilot/internal/llm"
)

func TestObject_PlainJSON(t *testing.T) {
	raw := `{"title": "Engineer", "company": "Acme"}`
	data, err := Object(raw, Spec{RequiredKeys: []string{"title"}})

	require.NoError(t, err)
	assert.Equal(t, "Engineer", data["title"])
	assert.Equal(t, "Acme", data["company"])
}

func TestObject_CodeFencedJSON(t *testing.T) {
	raw := "```json\n{\"title\": \"Engineer\"}\n```"
	data, err := Object(raw, Spec{RequiredKeys: []string{"title"}})

	require.NoError(t, err)
	assert.Equal(t, "Engineer", data["title"])
}

func TestObject_ThinkingBlockStripped(t *testing.T) {
	raw := "Let me reason about this posting.\nIt looks senior.</think>\n{\"title\": \"Engineer\"}"
	data, err := Object(raw, Spec{RequiredKeys: []string{"title"}})

	require.NoError(t, err)
	assert.Equal(t, "Engineer", data["title"])
}

func TestObject_ProseWrappedJSON(t *testing.T) {
	raw := "Here is the extraction you asked for:\n{\"title\": \"Engineer\"}\nHope that helps!"
	data, err := Object(raw, Spec{RequiredKeys: []string{"title"}})

	require.NoError(t, err)
	assert.Equal(t, "Engineer", data["title"])
}

func TestObject_NonObjectJSON(t *testing.T) {
	_, err := Object(`["a", "b"]`, Spec{})

	require.Error(t, err)
	var badResp *llm.BadResponseError
	require.ErrorAs(t, err, &badResp)
	assert.Contains(t, badResp.Message, "JSON object")
}

func TestObject_NoJSONAtAll(t *testing.T) {
	_, err := Object("I could not process this request.", Spec{})

	var badResp *llm.BadResponseError
	require.ErrorAs(t, err, &badResp)
}

func TestObject_MissingRequiredKey(t *testing.T) {
	raw := `{"title": "Engineer"}`
	_, err := Object(raw, Spec{RequiredKeys: []string{"title", "summary"}})

	var badResp *llm.BadResponseError
	require.ErrorAs(t, err, &badResp)
	assert.Contains(t, badResp.Message, `"summary"`)
}

func TestObject_FirstMissingKeyReported(t *testing.T) {
	_, err := Object(`{}`, Spec{RequiredKeys: []string{"alpha", "beta"}})

	var badResp *llm.BadResponseError
	require.ErrorAs(t, err, &badResp)
	assert.Contains(t, badResp.Message, `"alpha"`)
}

func TestObject_ListKeysNormalized(t *testing.T) {
	raw := `{"title": "x", "keywords": "Go", "requirements": null}`
	data, err := Object(raw, Spec{ListKeys: []string{"keywords", "requirements"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, data["keywords"])
	assert.Equal(t, []string{}, data["requirements"])
}

func TestStripThinkingBlock(t *testing.T) {
	assert.Equal(t, "answer", StripThinkingBlock("reasoning</think>answer"))
	assert.Equal(t, "no marker here", StripThinkingBlock("  no marker here  "))
	assert.Equal(t, "", StripThinkingBlock("only reasoning</think>"))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, StripCodeFence("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripCodeFence("```\n{\"a\": 1}\n```"))
	assert.Equal(t, "plain text", StripCodeFence("plain text"))
}

func TestStripCodeFence_FenceWithoutLanguage(t *testing.T) {
	// An opening fence directly followed by content on the same line
	result := StripCodeFence("```{\"a\": 1}\n```")
	assert.Contains(t, result, `"a"`)
}
