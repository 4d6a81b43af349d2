package internal

import "strings"

// FormatMaterial applies the reformatter matching material to raw model output.
// Summaries are prose and only trimmed.
func FormatMaterial(material MaterialType, text string, lang Language) string {
	switch material {
	case MaterialKeyPoints:
		return FormatBullets(text, lang)
	case MaterialQuestions:
		return FormatQA(text, lang)
	default:
		return strings.TrimSpace(text)
	}
}

// MaterialDocument renders formatted material under a markdown heading
func MaterialDocument(material MaterialType, body string, lang Language) string {
	return "## " + material.Title(lang) + "\n\n" + body + "\n"
}
