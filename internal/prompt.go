package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptData for template injection
type PromptData struct {
	// Instruction is the built-in instruction for Material in Language
	Instruction string
	Material    string
	Language    string
	// Transcript is the chunk being processed, not the whole transcript
	Transcript string
}

// PromptManager builds the user message sent for each transcript chunk
type PromptManager struct {
	promptFile   string
	promptString string
	configDir    string
}

// NewPromptManager creates a new prompt manager. promptSetting may be a
// template string or a path to a template file; empty means the default.
func NewPromptManager(configDir, promptSetting string) *PromptManager {
	pm := &PromptManager{
		configDir: configDir,
	}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// ChunkPrompt renders the prompt for one chunk
func (pm *PromptManager) ChunkPrompt(material MaterialType, lang Language, chunk string) (string, error) {
	tmplContent, err := pm.templateContent()
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("prompt").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	data := PromptData{
		Instruction: Instruction(material, lang),
		Material:    material.String(),
		Language:    string(lang),
		Transcript:  chunk,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}

// templateContent resolves, in order: the custom string, the custom file,
// prompt.txt in the config directory, the embedded default.
func (pm *PromptManager) templateContent() (string, error) {
	if pm.promptString != "" {
		return pm.promptString, nil
	}

	promptFile := pm.promptFile
	if promptFile == "" && pm.configDir != "" {
		if candidate := filepath.Join(pm.configDir, "prompt.txt"); FileExists(candidate) {
			promptFile = candidate
		}
	}
	if promptFile == "" {
		content, err := defaultFS.ReadFile("prompt.txt")
		if err != nil {
			return "", fmt.Errorf("reading embedded prompt template: %w", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(promptFile)
	if err != nil {
		return "", fmt.Errorf("reading prompt template: %w", err)
	}
	return string(content), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.Contains(s, ".txt") || strings.Contains(s, ".md") ||
		strings.Contains(s, ".template") || strings.Contains(s, ".tmpl") {
		return true
	}

	// long strings are prompts
	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
