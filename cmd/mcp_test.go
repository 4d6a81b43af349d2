package cmd

import (
	"encoding/json"
	"testing"
)

func TestAddStudyaidServer(t *testing.T) {
	existing := `{
  "globalShortcut": "Ctrl+Space",
  "mcpServers": {
    "other": {"command": "/bin/other", "args": ["serve"]}
  }
}`

	out, err := addStudyaidServer([]byte(existing), "/usr/local/bin/studyaid")
	if err != nil {
		t.Fatalf("addStudyaidServer() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["globalShortcut"] != "Ctrl+Space" {
		t.Errorf("unrelated keys should be preserved, got %v", got["globalShortcut"])
	}

	servers, _ := got["mcpServers"].(map[string]any)
	if _, ok := servers["other"]; !ok {
		t.Error("existing servers should be preserved")
	}
	studyaid, _ := servers["studyaid"].(map[string]any)
	if studyaid["command"] != "/usr/local/bin/studyaid" {
		t.Errorf("command = %v", studyaid["command"])
	}
	if args, _ := studyaid["args"].([]any); len(args) != 1 || args[0] != "mcp" {
		t.Errorf("args = %v", studyaid["args"])
	}
}

func TestAddStudyaidServer_EmptyConfig(t *testing.T) {
	out, err := addStudyaidServer([]byte(`{}`), "/bin/studyaid")
	if err != nil {
		t.Fatalf("addStudyaidServer() error = %v", err)
	}
	var desktop ClaudeDesktopConfig
	if err := json.Unmarshal(out, &desktop); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if desktop.MCPServers["studyaid"].Command != "/bin/studyaid" {
		t.Errorf("servers = %v", desktop.MCPServers)
	}
}

func TestAddStudyaidServer_InvalidJSON(t *testing.T) {
	if _, err := addStudyaidServer([]byte(`{`), "/bin/studyaid"); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}
