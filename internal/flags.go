package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddGenerationFlags adds flags shared by every command that talks to the model
func AddGenerationFlags(cmd *cobra.Command) {
	AddLanguageFlag(cmd)
	cmd.Flags().StringP("model", "m", "", "Chat model to use for generation")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt template (string or file path)")
	AddRawFlag(cmd)
}

// AddLanguageFlag adds the output/caption language flag
func AddLanguageFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("language", "l", "", "Language for captions and output: es or en (default from config)")
}

// AddRawFlag adds the flag that disables markdown rendering
func AddRawFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
}

// HandleLanguageFlag resolves --language against the configured default
func HandleLanguageFlag(cmd *cobra.Command, config *Config) (Language, error) {
	value, err := cmd.Flags().GetString("language")
	if err != nil {
		return "", fmt.Errorf("failed to get language flag: %w", err)
	}
	if value == "" {
		return config.Language, nil
	}
	lang, err := ParseLanguage(value)
	if err != nil {
		return "", &ConfigError{Reason: "invalid --language", Err: err}
	}
	return lang, nil
}

// HandleModelFlag overrides the configured model when --model is set
func HandleModelFlag(cmd *cobra.Command, config *Config) error {
	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return fmt.Errorf("failed to get model flag: %w", err)
	}
	if model != "" {
		config.Model = model
	}
	return nil
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}
	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if IsLikelyFilePath(prompt) && FileExists(prompt) {
		app.log.Debug("using custom prompt file", "path", prompt)
	} else {
		app.log.Debug("using custom prompt string")
	}
	return nil
}

// HandleVerboseFlag processes --verbose and --quiet to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	config.Verbose = config.Verbose || verbose
	config.Quiet = config.Quiet || quiet
	return nil
}

// RawOutput reports whether --raw was given
func RawOutput(cmd *cobra.Command) bool {
	raw, _ := cmd.Flags().GetBool("raw")
	return raw
}

// ValidateGenerationRequirements checks what a generation command needs
// before any network call is made
func ValidateGenerationRequirements(config *Config) error {
	if config.APIKey == "" {
		return &ConfigError{
			Reason: "missing API key (set STUDYAID_API_KEY, GROQ_API_KEY or OPENAI_API_KEY)",
			Err:    ErrMissingAPIKey,
		}
	}
	if config.Model == "" {
		return &ConfigError{Reason: "no model configured"}
	}
	return nil
}
