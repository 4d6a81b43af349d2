package internal

import (
	"regexp"
	"strings"
)

var (
	// \textbf{bold} -> bold
	latexWrapped  = regexp.MustCompile(`\\(?:textbf|textit|emph|text|mathrm|mathbf)\{([^{}]*)\}`)
	latexCommands = regexp.MustCompile(`\\(?:begin|end)(?:\{[^{}]*\})?|\\(?:textbf|textit|emph|text|left|right)\b|\\[\[\]()]`)
)

// CleanLatex strips LaTeX artifacts models like to emit: math delimiters,
// formatting commands and stray backslashes. Line structure is kept.
func CleanLatex(text string) string {
	text = latexWrapped.ReplaceAllString(text, "$1")
	text = latexCommands.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "$", "")
	return strings.ReplaceAll(text, `\`, "")
}
