package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/studyaid/internal"
)

var studyCommands = []struct {
	use      string
	aliases  []string
	short    string
	material internal.MaterialType
}{
	{
		use:      "summary",
		aliases:  []string{"summarize", "resumen"},
		short:    "Generate a summary of a YouTube video",
		material: internal.MaterialSummary,
	},
	{
		use:      "keypoints",
		aliases:  []string{"key-points", "points"},
		short:    "Generate the key points of a YouTube video as a bullet list",
		material: internal.MaterialKeyPoints,
	},
	{
		use:      "questions",
		aliases:  []string{"qa", "preguntas"},
		short:    "Generate numbered questions and answers about a YouTube video",
		material: internal.MaterialQuestions,
	},
}

func newStudyCmd(use, short string, aliases []string, material internal.MaterialType) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use + " [YouTube URL or ID]",
		Aliases: aliases,
		Short:   short,
		Example: fmt.Sprintf(`  studyaid %[1]s "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  studyaid %[1]s tAP1eZYEuKA -l en

  # Custom prompt template
  studyaid %[1]s tAP1eZYEuKA --prompt "{{.Instruction}} Be brief.\n\n{{.Transcript}}"`, use),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd, args[0], material)
		},
	}
	internal.AddGenerationFlags(cmd)
	return cmd
}

// newGenerationApp applies the generation flags and builds the App
func newGenerationApp(cmd *cobra.Command) (*internal.App, internal.Language, error) {
	if err := internal.HandleModelFlag(cmd, config); err != nil {
		return nil, "", err
	}
	if err := internal.ValidateGenerationRequirements(config); err != nil {
		return nil, "", err
	}
	lang, err := internal.HandleLanguageFlag(cmd, config)
	if err != nil {
		return nil, "", err
	}

	app := internal.NewApp(config, internal.WithLogger(logger))
	if err := internal.HandlePromptFlag(cmd, app); err != nil {
		return nil, "", err
	}
	return app, lang, nil
}

// runStudy generates one kind of material for a video and prints it
func runStudy(cmd *cobra.Command, arg string, material internal.MaterialType) error {
	app, lang, err := newGenerationApp(cmd)
	if err != nil {
		return err
	}

	body, err := app.Study(cmd.Context(), arg, material, lang)
	if err != nil {
		return err
	}

	out, err := internal.RenderOutput(internal.MaterialDocument(material, body, lang), internal.RawOutput(cmd))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func init() {
	for _, c := range studyCommands {
		rootCmd.AddCommand(newStudyCmd(c.use, c.short, c.aliases, c.material))
	}
}
