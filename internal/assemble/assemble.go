package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ysnprv/cvpilot/internal/extract"
	"github.com/ysnprv/cvpilot/internal/types"
)

// contactFieldsPerLine caps how many contact fields share one header line.
const contactFieldsPerLine = 3

// preferredOrder fixes the layout of well-known personal fields; anything
// else follows alphabetically.
var preferredOrder = []string{
	"name",
	"email",
	"phone",
	"location",
	"linkedin",
	"github",
	"portfolio",
	"website",
}

var fieldDisplayNames = map[string]string{
	"email":     "Email",
	"phone":     "Phone",
	"location":  "Location",
	"linkedin":  "LinkedIn",
	"github":    "GitHub",
	"portfolio": "Portfolio",
	"website":   "Website",
}

// Assemble merges the extracted personal details back into the enhanced CV
// body and returns the final document. The body is trusted LaTeX from the
// enhancement loop; only the reinserted personal values are escaped.
func Assemble(personal map[string]any, content string, iterations int, finalSimilarity float64) *types.FinalCV {
	header := buildHeader(personal)

	var doc strings.Builder
	if header != "" {
		doc.WriteString(header)
		doc.WriteString("\n")
	}
	doc.WriteString(strings.TrimSpace(content))

	return &types.FinalCV{
		Content:             doc.String(),
		IterationsPerformed: iterations,
		FinalSimilarity:     finalSimilarity,
	}
}

// buildHeader renders a centered name block followed by contact lines and a
// horizontal rule. An empty personal map yields no header at all.
func buildHeader(personal map[string]any) string {
	if len(personal) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\\begin{center}\n")

	if name := formatFieldValue(personal["name"]); name != "" {
		sb.WriteString(fmt.Sprintf("    {\\LARGE \\textbf{%s}}\\\\[4pt]\n", EscapeLaTeX(name)))
	}

	fields := contactFields(personal)
	for i := 0; i < len(fields); i += contactFieldsPerLine {
		end := i + contactFieldsPerLine
		if end > len(fields) {
			end = len(fields)
		}
		sb.WriteString("    ")
		sb.WriteString(strings.Join(fields[i:end], " \\textbar{} "))
		sb.WriteString("\\\\\n")
	}

	sb.WriteString("\\end{center}\n")
	sb.WriteString("\\hrule\n")
	return sb.String()
}

// contactFields returns the rendered non-name fields in display order.
func contactFields(personal map[string]any) []string {
	keys := make([]string, 0, len(personal))
	seen := make(map[string]bool, len(personal))
	for _, key := range preferredOrder {
		if key == "name" {
			continue
		}
		if _, ok := personal[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var extra []string
	for key := range personal {
		if key == "name" || seen[key] {
			continue
		}
		extra = append(extra, key)
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	var fields []string
	for _, key := range keys {
		value := formatFieldValue(personal[key])
		if value == "" {
			continue
		}
		label := fieldDisplayNames[key]
		if label == "" {
			label = titleCase(key)
		}
		fields = append(fields, fmt.Sprintf("%s: %s", label, EscapeLaTeX(value)))
	}
	return fields
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatFieldValue flattens a personal-data value to a single display
// string.
func formatFieldValue(value any) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(extract.NormalizeString(value))
}
