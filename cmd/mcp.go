package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/rtzll/studyaid/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing studyaid as tools",
	Long: `Run a Model Context Protocol (MCP) server that exposes studyaid as tools.

Tools:
- get_youtube_metadata: video details and available caption languages
- get_youtube_transcript: existing captions as plain text
- generate_study_material: summary, key points or questions and answers

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: streamable HTTP transport on the given port

With mcp_log = true in config.toml the server logs to the cache directory
(see 'studyaid paths'); stdout stays reserved for the protocol.`,
	Example: `  # Run MCP server with stdio transport (e.g. for Claude Desktop)
  studyaid mcp

  # Run MCP server with HTTP transport on port 8080
  studyaid mcp --transport=http --port=8080

  # Set up Claude Desktop integration
  studyaid mcp setup-claude`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		mcpLogger := internal.NewMCPLogger(config)
		defer mcpLogger.Sync()

		app := internal.NewApp(config, internal.WithLogger(mcpLogger))
		mcpServer := internal.NewMCPServer(app, version)

		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

// setupClaudeCmd represents the setup-claude subcommand
var setupClaudeCmd = &cobra.Command{
	Use:   "setup-claude",
	Short: "Configure Claude Desktop to use the studyaid MCP server",
	Long: `Configure Claude Desktop to use studyaid as an MCP server.

This command will:
- Detect the Claude Desktop config location
- Add the studyaid server to claude_desktop_config.json
- Preserve existing MCP server configurations
- Pass the current XDG base directories to the server

The API key is not written to the file. Put it in config.toml or export
GROQ_API_KEY in the environment Claude Desktop is started from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupClaudeDesktop()
	},
}

// ClaudeDesktopConfig represents the claude_desktop_config.json structure.
// Unknown top level keys are kept as they are.
type ClaudeDesktopConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
	Other      map[string]json.RawMessage `json:"-"`
}

// MCPServerConfig represents an individual MCP server configuration
type MCPServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

func (c *ClaudeDesktopConfig) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &c.Other); err != nil {
		return err
	}
	if raw, ok := c.Other["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &c.MCPServers); err != nil {
			return fmt.Errorf("parsing mcpServers: %w", err)
		}
		delete(c.Other, "mcpServers")
	}
	return nil
}

func (c ClaudeDesktopConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Other)+1)
	for k, v := range c.Other {
		out[k] = v
	}
	out["mcpServers"] = c.MCPServers
	return json.Marshal(out)
}

// setupClaudeDesktop implements the setup-claude subcommand
func setupClaudeDesktop() error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("getting executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	configPath, err := getClaudeDesktopConfigPath()
	if err != nil {
		return fmt.Errorf("getting Claude Desktop config path: %w", err)
	}
	if !internal.FileExists(configPath) {
		return fmt.Errorf("config for Claude Desktop not found at %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading existing config: %w", err)
	}
	desktop, err := addStudyaidServer(data, execPath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, desktop, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Successfully configured Claude Desktop MCP server\n")
	fmt.Printf("Restart Claude Desktop to use the %s MCP server\n", internal.AppName)
	return nil
}

// addStudyaidServer adds or replaces the studyaid entry in a Claude Desktop config
func addStudyaidServer(data []byte, execPath string) ([]byte, error) {
	var desktop ClaudeDesktopConfig
	if err := json.Unmarshal(data, &desktop); err != nil {
		return nil, fmt.Errorf("parsing existing config: %w", err)
	}
	if desktop.MCPServers == nil {
		desktop.MCPServers = make(map[string]MCPServerConfig)
	}

	desktop.MCPServers[internal.AppName] = MCPServerConfig{
		Command: execPath,
		Args:    []string{"mcp"},
		Env: map[string]string{
			"XDG_CONFIG_HOME": xdg.ConfigHome,
			"XDG_CACHE_HOME":  xdg.CacheHome,
		},
	}

	out, err := json.MarshalIndent(desktop, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}

// getClaudeDesktopConfigPath returns the platform-specific config path for Claude Desktop
func getClaudeDesktopConfigPath() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "Claude", "claude_desktop_config.json"), nil
	case "linux":
		return filepath.Join(xdg.ConfigHome, "Claude", "claude_desktop_config.json"), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	mcpCmd.AddCommand(setupClaudeCmd)
	rootCmd.AddCommand(mcpCmd)
}
