package internal

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang Language
		want FormatKind
	}{
		{
			name: "spanish labeled",
			text: "Pregunta 1: ¿Qué es X? Respuesta: Es Y.",
			lang: LanguageSpanish,
			want: FormatSpanishLabeled,
		},
		{
			name: "spanish label is case insensitive",
			text: "PREGUNTA: ¿Qué?",
			lang: LanguageSpanish,
			want: FormatSpanishLabeled,
		},
		{
			name: "pregunta ignored for english",
			text: "Pregunta 1: hola",
			lang: LanguageEnglish,
			want: FormatUnstructured,
		},
		{
			name: "english question label",
			text: "Question 1: What is X?\nAnswer: Y",
			lang: LanguageEnglish,
			want: FormatEnglishNumberedQA,
		},
		{
			name: "english Q number",
			text: "Q2: Why? A2: Because.",
			lang: LanguageEnglish,
			want: FormatEnglishNumberedQA,
		},
		{
			name: "english leading numbering",
			text: "1. What is X? It is Y.\n2. What is Z? It is W.",
			lang: LanguageEnglish,
			want: FormatEnglishNumberedQA,
		},
		{
			name: "plain Q and A",
			text: "Q: What? A: That.",
			lang: LanguageSpanish,
			want: FormatEnglishPlainQA,
		},
		{
			name: "bullets",
			text: "• First point\n• Second point",
			lang: LanguageEnglish,
			want: FormatBulletList,
		},
		{
			name: "spanish numbered list is a bullet list",
			text: "1. Primer punto\n2. Segundo punto",
			lang: LanguageSpanish,
			want: FormatBulletList,
		},
		{
			name: "plain prose",
			text: "Just a paragraph of text without structure.",
			lang: LanguageEnglish,
			want: FormatUnstructured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text, tt.lang); got != tt.want {
				t.Errorf("Classify(%q, %s) = %s, want %s", tt.text, tt.lang, got, tt.want)
			}
		})
	}
}
