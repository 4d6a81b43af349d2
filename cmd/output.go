package cmd

import (
	"fmt"
	"os"
)

// writeOutput writes content to path, creating or truncating it
func writeOutput(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Debug("output written", "path", path, "bytes", len(content))
	return nil
}
