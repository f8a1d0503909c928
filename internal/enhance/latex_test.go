package enhance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validCV = `\section{Experience}
\textbf{Backend Engineer} at Example Corp
\begin{itemize}
\item Built distributed ingestion pipelines
\end{itemize}`

func TestValidateLaTeX_ValidDocument(t *testing.T) {
	assert.NoError(t, ValidateLaTeX(validCV))
}

func TestValidateLaTeX_Empty(t *testing.T) {
	assert.Error(t, ValidateLaTeX(""))
	assert.Error(t, ValidateLaTeX("   \n  "))
}

func TestValidateLaTeX_UnbalancedBraces(t *testing.T) {
	assert.Error(t, ValidateLaTeX(`\section{Experience`))
	assert.Error(t, ValidateLaTeX(`\section{Experience}}`))
}

func TestValidateLaTeX_NoFormattingCommands(t *testing.T) {
	assert.Error(t, ValidateLaTeX("just a plain paragraph with {balanced} braces"))
}

func TestValidateLaTeX_EachFormattingCommandAccepted(t *testing.T) {
	cases := []string{
		`\section{Skills}`,
		`\subsection{Languages}`,
		`\textbf{Go}`,
		`\textit{fluent}`,
		`\item first achievement`,
	}
	for _, c := range cases {
		assert.NoError(t, ValidateLaTeX(c), "content: %s", c)
	}
}
