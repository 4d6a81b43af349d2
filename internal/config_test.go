package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STUDYAID_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY",
		"STUDYAID_MODEL", "STUDYAID_LANGUAGE", "STUDYAID_CHUNK_SIZE", "STUDYAID_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}
}

func TestConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()

	config, err := configFromViper(newViper(dir), dir, filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("configFromViper() error = %v", err)
	}

	if config.Model != "llama3-70b-8192" || config.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("endpoint defaults = %q %q", config.Model, config.BaseURL)
	}
	if config.Language != LanguageSpanish {
		t.Errorf("Language = %q, want es", config.Language)
	}
	if config.Temperature != 0.7 || config.MaxTokens != 2000 {
		t.Errorf("sampling defaults = %v/%d", config.Temperature, config.MaxTokens)
	}
	if config.ChunkSize != 4000 || config.ChunkThreshold != 4000 || config.Concurrency != 1 {
		t.Errorf("chunking defaults = %d/%d/%d", config.ChunkSize, config.ChunkThreshold, config.Concurrency)
	}
	if config.FetchAttempts != 3 || config.FetchRetryDelay != time.Second {
		t.Errorf("retry defaults = %d/%v", config.FetchAttempts, config.FetchRetryDelay)
	}
	if config.TranscriptCache != 32 || config.GenerationTTL != time.Hour {
		t.Errorf("cache defaults = %d/%v", config.TranscriptCache, config.GenerationTTL)
	}
	if config.TempDir != filepath.Join(dir, "cache", "subs") {
		t.Errorf("TempDir = %q", config.TempDir)
	}
	if config.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", config.APIKey)
	}
}

func TestConfig_Environment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("STUDYAID_LANGUAGE", "english")
	t.Setenv("STUDYAID_CHUNK_SIZE", "2500")
	dir := t.TempDir()

	config, err := configFromViper(newViper(dir), dir, dir)
	if err != nil {
		t.Fatalf("configFromViper() error = %v", err)
	}
	if config.APIKey != "gsk-test" {
		t.Errorf("APIKey = %q, want GROQ_API_KEY value", config.APIKey)
	}
	if config.Language != LanguageEnglish {
		t.Errorf("Language = %q, want en", config.Language)
	}
	if config.ChunkSize != 2500 {
		t.Errorf("ChunkSize = %d, want 2500", config.ChunkSize)
	}
}

func TestConfig_PrefixedKeyWins(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STUDYAID_API_KEY", "primary")
	t.Setenv("OPENAI_API_KEY", "secondary")
	dir := t.TempDir()

	config, err := configFromViper(newViper(dir), dir, dir)
	if err != nil {
		t.Fatalf("configFromViper() error = %v", err)
	}
	if config.APIKey != "primary" {
		t.Errorf("APIKey = %q, want primary", config.APIKey)
	}
}

func TestConfig_File(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	content := "model = \"llama-3.1-8b-instant\"\nlanguage = \"en\"\nconcurrency = 3\ngeneration_cache_ttl = \"10m\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}
	config, err := configFromViper(v, dir, dir)
	if err != nil {
		t.Fatalf("configFromViper() error = %v", err)
	}
	if config.Model != "llama-3.1-8b-instant" || config.Concurrency != 3 || config.GenerationTTL != 10*time.Minute {
		t.Errorf("config = %+v", config)
	}
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "language", key: "STUDYAID_LANGUAGE", value: "klingon"},
		{name: "concurrency", key: "STUDYAID_CONCURRENCY", value: "0"},
		{name: "chunk size", key: "STUDYAID_CHUNK_SIZE", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)
			dir := t.TempDir()

			_, err := configFromViper(newViper(dir), dir, dir)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
		})
	}
}

func TestEnsureDefaultFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "studyaid")

	if err := EnsureDefaultConfig(dir); err != nil {
		t.Fatalf("EnsureDefaultConfig() error = %v", err)
	}
	if err := EnsureDefaultPrompt(dir); err != nil {
		t.Fatalf("EnsureDefaultPrompt() error = %v", err)
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if _, err := configFromViper(v, dir, dir); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}

	custom := []byte("keep me")
	if err := os.WriteFile(filepath.Join(dir, "prompt.txt"), custom, 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDefaultPrompt(dir); err != nil {
		t.Fatalf("EnsureDefaultPrompt() error = %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "prompt.txt"))
	if string(got) != "keep me" {
		t.Error("existing prompt.txt was overwritten")
	}
}
