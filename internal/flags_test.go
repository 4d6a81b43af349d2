package internal

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
)

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	AddGenerationFlags(cmd)
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().BoolP("quiet", "q", false, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	return cmd
}

func TestHandleLanguageFlag(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Language
		wantErr bool
	}{
		{name: "default from config", want: LanguageSpanish},
		{name: "short flag", args: []string{"-l", "en"}, want: LanguageEnglish},
		{name: "long name", args: []string{"--language", "español"}, want: LanguageSpanish},
		{name: "unsupported", args: []string{"--language", "fr"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlagCommand(t, tt.args...)
			got, err := HandleLanguageFlag(cmd, &Config{Language: LanguageSpanish})
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLanguage) {
					t.Errorf("error = %v, want ErrUnknownLanguage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HandleLanguageFlag() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HandleLanguageFlag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleModelAndVerboseFlags(t *testing.T) {
	cmd := newFlagCommand(t, "-m", "llama-3.3-70b-versatile", "-q", "--raw")
	config := &Config{Model: "default"}

	if err := HandleModelFlag(cmd, config); err != nil {
		t.Fatalf("HandleModelFlag() error = %v", err)
	}
	if err := HandleVerboseFlag(cmd, config); err != nil {
		t.Fatalf("HandleVerboseFlag() error = %v", err)
	}
	if config.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Model = %q", config.Model)
	}
	if !config.Quiet || config.Verbose {
		t.Errorf("Quiet = %v, Verbose = %v", config.Quiet, config.Verbose)
	}
	if !RawOutput(cmd) {
		t.Error("RawOutput() = false, want true")
	}
}

func TestValidateGenerationRequirements(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "ok", config: Config{APIKey: "k", Model: "m"}},
		{name: "missing key", config: Config{Model: "m"}, wantErr: ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGenerationRequirements(&tt.config)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("error = %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want ConfigError wrapping %v", err, tt.wantErr)
			}
		})
	}
}
