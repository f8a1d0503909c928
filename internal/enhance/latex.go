package enhance

import (
	"fmt"
	"strings"
)

// formattingCommands are markers of minimally well-formed LaTeX body
// content; at least one must appear in an accepted enhancement.
var formattingCommands = []string{
	`\section`,
	`\subsection`,
	`\textbf`,
	`\textit`,
	`\item`,
}

// ValidateLaTeX performs a structural check on generated LaTeX content:
// non-empty, balanced braces, and at least one formatting command. It does
// not attempt compilation.
func ValidateLaTeX(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("empty LaTeX content")
	}

	open := strings.Count(content, "{")
	closed := strings.Count(content, "}")
	if open != closed {
		return fmt.Errorf("unbalanced braces: %d open, %d close", open, closed)
	}

	for _, cmd := range formattingCommands {
		if strings.Contains(content, cmd) {
			return nil
		}
	}
	return fmt.Errorf(`no LaTeX formatting commands found (missing \section, \textbf, \item, etc.)`)
}
