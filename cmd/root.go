package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtzll/studyaid/internal"
)

var (
	config *internal.Config
	logger = internal.NopLogger()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "studyaid [YouTube URL or ID]",
	Short: "Turn YouTube videos into study material",
	Long: `studyaid turns the captions of a YouTube video into study material:
a summary, a list of key points, or numbered questions and answers.

Captions are fetched with yt-dlp in the requested language (English when
that language has none). Long transcripts are split into chunks, each chunk
is sent to an OpenAI-compatible chat model (Groq by default) and the partial
results are merged into one answer.

Without a subcommand a summary is generated.`,
	Example: `  # Summarize a video in the configured language (Spanish by default)
  studyaid "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  studyaid tAP1eZYEuKA

  # Key points in English
  studyaid keypoints tAP1eZYEuKA -l en

  # Use a different model
  studyaid questions "https://youtu.be/tAP1eZYEuKA" --model llama-3.3-70b-versatile

  # Print markdown instead of rendering it
  studyaid tAP1eZYEuKA --raw > summary.md`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkVideoArg(cmd, args[0]); err != nil {
			return err
		}
		return runStudy(cmd, args[0], internal.MaterialSummary)
	},
}

// setup loads configuration and prepares the XDG directories and logger
func setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	var err error
	config, err = internal.InitConfig(configFile)
	if err != nil {
		return err
	}
	if err := internal.HandleVerboseFlag(cmd, config); err != nil {
		return err
	}

	if err := internal.EnsureDirs(config.ConfigDir, config.CacheDir); err != nil {
		return fmt.Errorf("creating XDG directories: %w", err)
	}
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}
	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	logger, err = internal.NewLogger(config.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger.Debug("configuration loaded",
		"model", config.Model,
		"base_url", config.BaseURL,
		"language", string(config.Language),
		"api_key", config.APIKey)
	return nil
}

// checkVideoArg catches mistyped subcommands before they reach yt-dlp
func checkVideoArg(cmd *cobra.Command, arg string) error {
	if !internal.IsLikelyCommand(arg) {
		return nil
	}

	var suggestions []string
	for _, sub := range cmd.Root().Commands() {
		name := sub.Name()
		if strings.Contains(name, arg) || (len(arg) <= len(name) && strings.Contains(arg, name[:len(arg)])) {
			suggestions = append(suggestions, name)
		}
	}

	if len(suggestions) > 0 {
		return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Did you mean: %s?", arg, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Use --help to see available commands", arg)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() { logger.Sync() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal. Cleaning up and shutting down...")

		cancel()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cleanupCancel()

		cleanupDone := make(chan struct{})
		go func() {
			if config != nil {
				if err := internal.CleanupTempDir(config.TempDir); err != nil {
					fmt.Fprintf(os.Stderr, "Error cleaning up temporary files: %v\n", err)
				}
			}
			close(cleanupDone)
		}()

		select {
		case <-cleanupDone:
		case <-cleanupCtx.Done():
			fmt.Fprintln(os.Stderr, "Warning: Cleanup timed out, forcing exit")
		}

		os.Exit(130)
	}()

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddGenerationFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Hide progress bars and spinners")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/studyaid/config.toml)")
}
