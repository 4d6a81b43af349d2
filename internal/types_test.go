package internal

import (
	"errors"
	"testing"
)

func TestParseMaterialType(t *testing.T) {
	tests := []struct {
		in      string
		want    MaterialType
		wantErr bool
	}{
		{in: "summary", want: MaterialSummary},
		{in: " Resumen ", want: MaterialSummary},
		{in: "key_points", want: MaterialKeyPoints},
		{in: "keypoints", want: MaterialKeyPoints},
		{in: "Q&A", want: MaterialQuestions},
		{in: "preguntas", want: MaterialQuestions},
		{in: "essay", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMaterialType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMaterial) {
					t.Errorf("error = %v, want ErrUnknownMaterial", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseMaterialType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "en", want: LanguageEnglish},
		{in: "English", want: LanguageEnglish},
		{in: "ES", want: LanguageSpanish},
		{in: "español", want: LanguageSpanish},
		{in: "fr", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLanguage) {
					t.Errorf("error = %v, want ErrUnknownLanguage", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestMaterialType_Title(t *testing.T) {
	if got := MaterialQuestions.Title(LanguageSpanish); got != "Preguntas y respuestas" {
		t.Errorf("Title(es) = %q", got)
	}
	if got := MaterialKeyPoints.Title(LanguageEnglish); got != "Key Points" {
		t.Errorf("Title(en) = %q", got)
	}
	if MaterialUnknown.Valid() {
		t.Error("MaterialUnknown should not be valid")
	}
}
