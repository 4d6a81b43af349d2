package internal

import (
	"regexp"
	"strings"
)

// FormatKind is the dialect a block of model output appears to be written in
type FormatKind int

const (
	FormatUnstructured FormatKind = iota
	FormatSpanishLabeled
	FormatEnglishNumberedQA
	FormatEnglishPlainQA
	FormatBulletList
)

func (k FormatKind) String() string {
	switch k {
	case FormatSpanishLabeled:
		return "spanish-labeled"
	case FormatEnglishNumberedQA:
		return "english-numbered-qa"
	case FormatEnglishPlainQA:
		return "english-plain-qa"
	case FormatBulletList:
		return "bullet-list"
	default:
		return "unstructured"
	}
}

var (
	englishNumberedRe = regexp.MustCompile(`(?im)\bQ\d+\s*:|\bQuestion\s+\d+\s*:|^\s*\d+\.\s`)
	bulletLineRe      = regexp.MustCompile(`(?m)^\s*(?:[•▪◦●]|[*\-–]\s|\d+[.)]\s)`)
)

// Classify guesses which dialect text is written in. The result is advisory:
// the reformatters try every strategy anyway because models mix dialects.
func Classify(text string, lang Language) FormatKind {
	switch {
	case lang == LanguageSpanish && strings.Contains(strings.ToLower(text), "pregunta"):
		return FormatSpanishLabeled
	case lang == LanguageEnglish && englishNumberedRe.MatchString(text):
		return FormatEnglishNumberedQA
	case strings.Contains(text, "Q:") && strings.Contains(text, "A:"):
		return FormatEnglishPlainQA
	case bulletLineRe.MatchString(text):
		return FormatBulletList
	default:
		return FormatUnstructured
	}
}
