package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPromptManager_Default(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), "")

	got, err := pm.ChunkPrompt(MaterialQuestions, LanguageSpanish, "el texto del video")
	if err != nil {
		t.Fatalf("ChunkPrompt() error = %v", err)
	}

	want := Instruction(MaterialQuestions, LanguageSpanish) + "\n\nTranscript Chunk:\nel texto del video"
	if !strings.HasPrefix(got, want) {
		t.Errorf("ChunkPrompt() =\n%q\nwant prefix\n%q", got, want)
	}
}

func TestPromptManager_ConfigDirTemplate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prompt.txt"), []byte("[{{.Language}}] {{.Transcript}}"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewPromptManager(dir, "").ChunkPrompt(MaterialSummary, LanguageEnglish, "chunk")
	if err != nil {
		t.Fatalf("ChunkPrompt() error = %v", err)
	}
	if got != "[en] chunk" {
		t.Errorf("ChunkPrompt() = %q, want %q", got, "[en] chunk")
	}
}

func TestPromptManager_CustomSettings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.tmpl")
	if err := os.WriteFile(file, []byte("{{.Material}}: {{.Transcript}}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		setting string
		want    string
		wantErr bool
	}{
		{name: "template string", setting: "Focus on dates. {{.Transcript}}", want: "Focus on dates. chunk"},
		{name: "template file", setting: file, want: "key_points: chunk"},
		{name: "broken template", setting: "Oops {{.Transcript", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPromptManager(dir, tt.setting).ChunkPrompt(MaterialKeyPoints, LanguageEnglish, "chunk")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChunkPrompt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ChunkPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsLikelyFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"./prompt.txt", true},
		{"prompt.tmpl", true},
		{"myprompt", true},
		{"Summarize this please", false},
		{strings.Repeat("word ", 50), false},
	}

	for _, tt := range tests {
		if got := IsLikelyFilePath(tt.in); got != tt.want {
			t.Errorf("IsLikelyFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
