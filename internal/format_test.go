package internal

import "testing"

func TestFormatMaterial(t *testing.T) {
	tests := []struct {
		name     string
		material MaterialType
		text     string
		lang     Language
		want     string
	}{
		{
			name:     "summary trimmed",
			material: MaterialSummary,
			text:     "\n\nFirst paragraph.\n\nSecond paragraph.\n",
			lang:     LanguageEnglish,
			want:     "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:     "key points bulleted",
			material: MaterialKeyPoints,
			text:     "1. Uno\n2. Dos",
			lang:     LanguageSpanish,
			want:     "• Uno\n\n• Dos",
		},
		{
			name:     "questions numbered",
			material: MaterialQuestions,
			text:     "Pregunta 1: ¿Qué? Respuesta: Algo.",
			lang:     LanguageSpanish,
			want:     "**Pregunta 1:** ¿Qué?\n**Respuesta:** Algo.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMaterial(tt.material, tt.text, tt.lang); got != tt.want {
				t.Errorf("FormatMaterial() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaterialDocument(t *testing.T) {
	got := MaterialDocument(MaterialKeyPoints, "• Uno", LanguageSpanish)
	if want := "## Puntos clave\n\n• Uno\n"; got != want {
		t.Errorf("MaterialDocument() = %q, want %q", got, want)
	}
}
