package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysnprv/cvpilot/internal/llm"
)

// fakeClient plays back scripted responses.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return f.responses[len(f.responses)-1], nil
}

func (f *fakeClient) Embed(context.Context, string) ([]float64, error) { return nil, nil }
func (f *fakeClient) GetModel(llm.ModelTier) string                    { return "fake-model" }
func (f *fakeClient) Close() error                                     { return nil }

const rawPosting = "We are hiring a Senior Backend Engineer in Berlin to build payment infrastructure."

const parsedResponse = `{
	"title": "Senior Backend Engineer",
	"company": "Acme GmbH",
	"location": "Berlin",
	"description": "Payment infrastructure team",
	"responsibilities": ["Design APIs", "Operate services"],
	"requirements": ["Go experience"],
	"preferred_qualifications": [],
	"keywords": ["Go", "payments"],
	"salary_range": "80-100k EUR"
}`

func TestParse_StructuredPosting(t *testing.T) {
	client := &fakeClient{responses: []string{parsedResponse}}
	parser := NewParser(client, nil)

	jd, err := parser.Parse(context.Background(), rawPosting)
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", jd.Title)
	assert.Equal(t, "Acme GmbH", jd.Company)
	assert.Equal(t, "Berlin", jd.Location)
	assert.Equal(t, []string{"Design APIs", "Operate services"}, jd.Responsibilities)
	assert.Equal(t, []string{"Go", "payments"}, jd.Keywords)
	assert.Equal(t, rawPosting, jd.RawContent)
}

func TestParse_ExtraFieldsPassThrough(t *testing.T) {
	client := &fakeClient{responses: []string{parsedResponse}}
	parser := NewParser(client, nil)

	jd, err := parser.Parse(context.Background(), rawPosting)
	require.NoError(t, err)

	require.NotNil(t, jd.Extra)
	assert.Equal(t, "80-100k EUR", jd.Extra["salary_range"])
	assert.NotContains(t, jd.Extra, "title")
}

func TestParse_MissingTitleDefaults(t *testing.T) {
	client := &fakeClient{responses: []string{`{"description": "Some role somewhere"}`}}
	parser := NewParser(client, nil)

	jd, err := parser.Parse(context.Background(), rawPosting)
	require.NoError(t, err)
	assert.Equal(t, "Position", jd.Title)
}

func TestParse_ShortInputRejected(t *testing.T) {
	client := &fakeClient{responses: []string{parsedResponse}}
	parser := NewParser(client, nil)

	_, err := parser.Parse(context.Background(), "hire me")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, client.calls)
}

func TestParse_MalformedResponseRetried(t *testing.T) {
	client := &fakeClient{responses: []string{"I could not parse that posting.", parsedResponse}}
	parser := NewParser(client, nil)

	jd, err := parser.Parse(context.Background(), rawPosting)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "Senior Backend Engineer", jd.Title)
}

func TestParse_CodeFencedResponse(t *testing.T) {
	client := &fakeClient{responses: []string{"```json\n" + parsedResponse + "\n```"}}
	parser := NewParser(client, nil)

	jd, err := parser.Parse(context.Background(), rawPosting)
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", jd.Title)
}

func TestSplitPostings(t *testing.T) {
	text := "first posting\n\n---\n\nsecond posting\n\n---\n\n   "
	postings := SplitPostings(text)

	require.Len(t, postings, 2)
	assert.Contains(t, postings[0], "first posting")
	assert.Contains(t, postings[1], "second posting")
}

func TestSplitPostings_SingleBlob(t *testing.T) {
	postings := SplitPostings("just one posting without a delimiter")
	assert.Len(t, postings, 1)
}
