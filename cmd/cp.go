package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/studyaid/internal"
)

// cpCmd copies a transcript or generated material to the system clipboard
// instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [URL]",
	Short: "Copy the transcript or study material of a YouTube video to the clipboard",
	Example: `  # Copy the captions
  studyaid cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Copy the questions and answers in English
  studyaid cp tAP1eZYEuKA --type questions -l en`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")

		var content, what string
		if kind == "" || kind == "transcript" {
			lang, err := internal.HandleLanguageFlag(cmd, config)
			if err != nil {
				return err
			}
			app := internal.NewApp(config, internal.WithLogger(logger))
			if content, err = app.GetTranscript(cmd.Context(), args[0], lang); err != nil {
				return err
			}
			what = "Transcript"
		} else {
			material, err := internal.ParseMaterialType(kind)
			if err != nil {
				return &internal.ConfigError{Reason: "invalid --type", Err: err}
			}
			app, lang, err := newGenerationApp(cmd)
			if err != nil {
				return err
			}
			body, err := app.Study(cmd.Context(), args[0], material, lang)
			if err != nil {
				return err
			}
			content = internal.MaterialDocument(material, body, lang)
			what = material.Title(lang)
		}

		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Printf("%s copied to clipboard\n", what)
		}
		return nil
	},
}

func init() {
	internal.AddGenerationFlags(cpCmd)
	cpCmd.Flags().StringP("type", "t", "transcript", "What to copy: transcript, summary, key_points or questions")
	rootCmd.AddCommand(cpCmd)
}
