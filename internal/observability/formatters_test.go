package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ysnprv/cvpilot/internal/types"
)

func TestPrintJobDescription(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf)

	p.PrintJobDescription(&types.JobDescription{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Requirements: []string{"Go", "SQL", "K8s", "gRPC", "AWS", "Terraform"},
		Keywords:     []string{"Go", "payments"},
	})

	out := buf.String()
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "• Go")
	assert.Contains(t, out, "... and 1 more")
	assert.Contains(t, out, "Go, payments")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestPrintJobDescription_NilSafe(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintJobDescription(nil)
	assert.Empty(t, buf.String())
}

func TestPrintIteration(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintIteration(2, 0.61, 0.74)

	out := buf.String()
	assert.Contains(t, out, "Iteration 2")
	assert.Contains(t, out, "0.6100")
	assert.Contains(t, out, "0.7400")
}

func TestPrintResult(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintResult(&types.FinalCV{
		Content:             "document body",
		IterationsPerformed: 3,
		FinalSimilarity:     0.93,
		OriginalScore:       0.31,
	})

	out := buf.String()
	assert.Contains(t, out, "Rewrite Complete")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "0.9300")
	assert.Contains(t, out, "0.3100")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf)
	p.printBox("Title", strings.Repeat("x", 200))

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
