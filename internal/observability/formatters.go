// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/ysnprv/cvpilot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDescription outputs a human-readable summary of a parsed posting.
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", jd.Title))
	if jd.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", jd.Company))
	}
	if jd.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", jd.Location))
	}

	writeList(&sb, "Requirements", jd.Requirements)
	writeList(&sb, "Responsibilities", jd.Responsibilities)
	if len(jd.Keywords) > 0 {
		sb.WriteString("\nKeywords: ")
		sb.WriteString(strings.Join(jd.Keywords, ", "))
		sb.WriteString("\n")
	}

	p.printBox("Parsed Job Description", strings.TrimRight(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(label)
	sb.WriteString(":\n")
	count := len(items)
	if count > maxItemsToShow {
		count = maxItemsToShow
	}
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintIteration outputs the score movement of one enhancement round.
func (p *Printer) PrintIteration(iteration int, scoreBefore, scoreAfter float64) {
	content := fmt.Sprintf("Score: %.4f → %.4f (Δ %+.4f)",
		scoreBefore, scoreAfter, scoreAfter-scoreBefore)
	p.printBox(fmt.Sprintf("Iteration %d", iteration), content)
}

// PrintResult outputs the final document summary.
func (p *Printer) PrintResult(result *types.FinalCV) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Iterations:       %d\n", result.IterationsPerformed))
	sb.WriteString(fmt.Sprintf("Original score:   %.4f\n", result.OriginalScore))
	sb.WriteString(fmt.Sprintf("Final similarity: %.4f\n", result.FinalSimilarity))
	sb.WriteString(fmt.Sprintf("Document length:  %d chars", len(result.Content)))

	p.printBox("Rewrite Complete", sb.String())
}
