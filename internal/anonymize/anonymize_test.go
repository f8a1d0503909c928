package anonymize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/llm"
)

// fakeClient plays back scripted responses.
type fakeClient struct {
	responses []string
	calls     int
}

func (f *fakeClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return f.responses[len(f.responses)-1], nil
}

func (f *fakeClient) Embed(context.Context, string) ([]float64, error) { return nil, nil }
func (f *fakeClient) GetModel(llm.ModelTier) string                    { return "fake-model" }
func (f *fakeClient) Close() error                                     { return nil }

const rawCV = "Jane Doe, jane@example.com, Berlin. Backend engineer with ten years of Go experience."

func TestAnonymize_Success(t *testing.T) {
	client := &fakeClient{responses: []string{`{
		"personal_info": {"name": "Jane Doe", "email": "jane@example.com", "languages": ["English", "German"]},
		"anonymized_cv": "[NAME], [EMAIL], Berlin. Backend engineer with ten years of Go experience."
	}`}}
	anonymizer := New(client, nil)

	result, err := anonymizer.Anonymize(context.Background(), rawCV)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.PersonalData["name"])
	assert.Equal(t, "jane@example.com", result.PersonalData["email"])
	assert.Equal(t, []string{"English", "German"}, result.PersonalData["languages"])
	assert.Contains(t, result.AnonymizedText, "[NAME]")
	assert.NotContains(t, result.AnonymizedText, "Jane Doe")
}

func TestAnonymize_NonMappingPersonalInfoDegrades(t *testing.T) {
	client := &fakeClient{responses: []string{`{
		"personal_info": "Jane Doe",
		"anonymized_cv": "[NAME]. Backend engineer with Go experience."
	}`}}
	anonymizer := New(client, zap.NewNop())

	result, err := anonymizer.Anonymize(context.Background(), rawCV)
	require.NoError(t, err)
	assert.Empty(t, result.PersonalData)
	assert.Contains(t, result.AnonymizedText, "[NAME]")
}

func TestAnonymize_MissingFieldRetried(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"anonymized_cv": "body only"}`,
		`{"personal_info": {}, "anonymized_cv": "full anonymized body text"}`,
	}}
	anonymizer := New(client, nil)

	result, err := anonymizer.Anonymize(context.Background(), rawCV)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "full anonymized body text", result.AnonymizedText)
}

func TestAnonymize_NestedValuesNormalized(t *testing.T) {
	client := &fakeClient{responses: []string{`{
		"personal_info": {
			"address": {"city": "Berlin", "country": "Germany"},
			"age": 34,
			"available": true
		},
		"anonymized_cv": "anonymized body of adequate length"
	}`}}
	anonymizer := New(client, nil)

	result, err := anonymizer.Anonymize(context.Background(), rawCV)
	require.NoError(t, err)

	assert.Equal(t, "Berlin - Germany", result.PersonalData["address"])
	assert.Equal(t, float64(34), result.PersonalData["age"])
	assert.Equal(t, true, result.PersonalData["available"])
}
