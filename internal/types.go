package internal

import (
	"fmt"
	"strings"
)

// MaterialType is the kind of study artifact requested
type MaterialType int

const (
	MaterialUnknown MaterialType = iota
	MaterialSummary
	MaterialKeyPoints
	MaterialQuestions
)

// String returns the key used for templates and cache entries
func (m MaterialType) String() string {
	switch m {
	case MaterialSummary:
		return "summary"
	case MaterialKeyPoints:
		return "key_points"
	case MaterialQuestions:
		return "questions"
	default:
		return "unknown"
	}
}

// Title returns a display name for the material type in lang
func (m MaterialType) Title(lang Language) string {
	spanish := lang == LanguageSpanish
	switch m {
	case MaterialSummary:
		if spanish {
			return "Resumen"
		}
		return "Summary"
	case MaterialKeyPoints:
		if spanish {
			return "Puntos clave"
		}
		return "Key Points"
	case MaterialQuestions:
		if spanish {
			return "Preguntas y respuestas"
		}
		return "Questions & Answers"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the three recognized material types
func (m MaterialType) Valid() bool {
	return m == MaterialSummary || m == MaterialKeyPoints || m == MaterialQuestions
}

// ParseMaterialType maps user input to a MaterialType
func ParseMaterialType(s string) (MaterialType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "summary", "resumen":
		return MaterialSummary, nil
	case "key_points", "keypoints", "key-points", "points":
		return MaterialKeyPoints, nil
	case "questions", "qa", "q&a", "preguntas":
		return MaterialQuestions, nil
	default:
		return MaterialUnknown, fmt.Errorf("%w: %q (supported: summary, key_points, questions)", ErrUnknownMaterial, s)
	}
}

// Language is the output language for instructions and formatting
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

// Valid reports whether the language has instruction templates
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageSpanish
}

// ParseLanguage maps user input to a Language
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english", "inglés", "ingles":
		return LanguageEnglish, nil
	case "es", "spanish", "español", "espanol":
		return LanguageSpanish, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: en, es)", ErrUnknownLanguage, s)
	}
}

// QARecord is one question/answer pair extracted from model output.
// Orphan records come from lines that carried no question at all.
type QARecord struct {
	Question string
	Answer   string
	Orphan   bool
}
