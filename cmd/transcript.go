package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/studyaid/internal"
)

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:     "transcript [YouTube URL or ID]",
	Aliases: []string{"transcribe"},
	Short:   "Print the captions of a YouTube video as plain text",
	Example: `  # Spanish captions (the default language)
  studyaid transcript "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # English captions saved to a file
  studyaid transcript tAP1eZYEuKA -l en -o transcript.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := internal.HandleLanguageFlag(cmd, config)
		if err != nil {
			return err
		}

		app := internal.NewApp(config, internal.WithLogger(logger))
		transcript, err := app.GetTranscript(cmd.Context(), args[0], lang)
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return writeOutput(outputFile, transcript)
		}

		fmt.Println(transcript)
		return nil
	},
}

func init() {
	internal.AddLanguageFlag(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcriptCmd)
}
