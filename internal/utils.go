package internal

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseArg normalizes a YouTube video ID or URL into the watch URL and the ID
func ParseArg(arg string) (string, string, error) {
	arg = strings.TrimSpace(arg)
	if IsValidYouTubeID(arg) {
		return VideoURL(arg), arg, nil
	}

	videoID, err := getVideoID(arg)
	if err != nil {
		return "", "", err
	}
	return VideoURL(videoID), videoID, nil
}

// VideoURL returns the canonical watch URL of a video
func VideoURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// VideoIDExtractor extracts video IDs from YouTube URLs
type VideoIDExtractor func(string) (string, error)

// getVideoID handles watch, youtu.be, shorts, embed, v and live URLs
var getVideoID VideoIDExtractor = func(youtubeURL string) (string, error) {
	if !strings.Contains(youtubeURL, "://") {
		youtubeURL = "https://" + youtubeURL
	}
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 {
			switch parts[0] {
			case "shorts", "embed", "v", "live":
				id = parts[1]
			}
		}
	default:
		return "", fmt.Errorf("not a YouTube URL: %s", youtubeURL)
	}

	if !IsValidYouTubeID(id) {
		return "", fmt.Errorf("could not extract video ID from URL: %s", youtubeURL)
	}
	return id, nil
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	return videoIDRe.MatchString(id)
}

// IsLikelyCommand checks if a string looks like it might be a mistyped command
func IsLikelyCommand(arg string) bool {
	return len(arg) <= 10 && !strings.Contains(arg, ".") && !IsValidYouTubeID(arg)
}

// CleanupTempDir purges files from a temporary directory
func CleanupTempDir(tempDir string) error {
	if !FileExists(tempDir) {
		return nil
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return fmt.Errorf("reading temp directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(tempDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", path, err)
		}
	}

	return os.Remove(tempDir)
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// StdoutIsTerminal reports whether stdout is an interactive terminal
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// RenderOutput renders markdown for a terminal and leaves it untouched when
// raw is set or stdout is piped
func RenderOutput(content string, raw bool) (string, error) {
	if raw || !StdoutIsTerminal() {
		return content, nil
	}
	return RenderMarkdown(content)
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
