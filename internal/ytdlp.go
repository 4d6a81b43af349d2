package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"
)

// VideoMetadata contains YouTube video information
type VideoMetadata struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Channel     string         `json:"channel"`
	Uploader    string         `json:"uploader"`
	Duration    float64        `json:"duration"`
	Categories  []string       `json:"categories"`
	Tags        []string       `json:"tags"`
	Chapters    []VideoChapter `json:"chapters"`
	HasCaptions bool           `json:"has_captions"`
	// CaptionLanguages lists manual and automatic caption languages
	CaptionLanguages []string `json:"caption_languages"`
}

// VideoChapter represents a video chapter marker
type VideoChapter struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Title     string  `json:"title"`
}

// YouTube fetches metadata and captions through yt-dlp. It implements
// TranscriptSource.
type YouTube struct {
	tempDir string
	log     *Logger

	installOnce sync.Once
	installErr  error
}

// NewYouTube creates a caption source writing subtitle files under tempDir
func NewYouTube(tempDir string, log *Logger) *YouTube {
	if log == nil {
		log = NopLogger()
	}
	return &YouTube{tempDir: tempDir, log: log}
}

// ensureInstalled downloads yt-dlp on first use if it is not on PATH
func (yt *YouTube) ensureInstalled(ctx context.Context) error {
	yt.installOnce.Do(func() {
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			yt.installErr = fmt.Errorf("installing yt-dlp: %w", err)
		}
	})
	return yt.installErr
}

// Metadata fetches video details using go-ytdlp
func (yt *YouTube) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if err := yt.ensureInstalled(ctx); err != nil {
		return nil, &SourceError{Kind: SourceOther, VideoID: videoID, Err: err}
	}
	yt.log.Debug("extracting video metadata", "video_id", videoID)

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, VideoURL(videoID))
	if err != nil {
		return nil, classifyYtdlpError(videoID, resultStderr(result), err)
	}

	metadata, err := parseMetadata([]byte(result.Stdout))
	if err != nil {
		return nil, &SourceError{Kind: SourceOther, VideoID: videoID, Err: err}
	}

	yt.log.Debug("metadata extracted",
		"video_id", videoID,
		"title", metadata.Title,
		"channel", metadata.Channel,
		"duration", metadata.Duration,
		"caption_languages", metadata.CaptionLanguages)
	return metadata, nil
}

// Fetch implements TranscriptSource. When lang has no captions, English ones
// are used instead.
func (yt *YouTube) Fetch(ctx context.Context, videoID string, lang Language) (string, error) {
	metadata, err := yt.Metadata(ctx, videoID)
	if err != nil {
		return "", err
	}
	if !metadata.HasCaptions {
		return "", &SourceError{Kind: SourceDisabled, VideoID: videoID}
	}

	candidates := captionCandidates(metadata.CaptionLanguages, lang)
	if len(candidates) == 0 {
		return "", &SourceError{
			Kind:    SourceNotFound,
			VideoID: videoID,
			Err:     fmt.Errorf("no %s or %s captions (available: %s)", lang, LanguageEnglish, strings.Join(metadata.CaptionLanguages, ", ")),
		}
	}

	var lastErr error
	for _, candidate := range candidates {
		if candidate != lang {
			yt.log.Info("falling back to other caption language", "video_id", videoID, "requested", string(lang), "using", string(candidate))
		}
		text, err := yt.downloadCaptions(ctx, videoID, candidate)
		if err == nil && text != "" {
			return text, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &SourceError{Kind: SourceNotFound, VideoID: videoID, Err: fmt.Errorf("captions are empty")}
	}
	return "", lastErr
}

// downloadCaptions fetches SRT subtitles for lang into a private temp dir and
// returns them as plain text
func (yt *YouTube) downloadCaptions(ctx context.Context, videoID string, lang Language) (string, error) {
	if err := EnsureDirs(yt.tempDir); err != nil {
		return "", &SourceError{Kind: SourceOther, VideoID: videoID, Err: fmt.Errorf("creating temp directory: %w", err)}
	}
	dir, err := os.MkdirTemp(yt.tempDir, videoID+"-")
	if err != nil {
		return "", &SourceError{Kind: SourceOther, VideoID: videoID, Err: fmt.Errorf("creating temp directory: %w", err)}
	}
	defer os.RemoveAll(dir)

	yt.log.Debug("downloading subtitles", "video_id", videoID, "language", string(lang))

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs(string(lang) + ".*"). // all variants, e.g. es-419 or en-US
		ConvertSubs("srt").
		SkipDownload().
		Output(filepath.Join(dir, "%(id)s"))

	result, err := dl.Run(ctx, VideoURL(videoID))
	if err != nil {
		return "", classifyYtdlpError(videoID, resultStderr(result), err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.srt"))
	if err != nil || len(files) == 0 {
		return "", &SourceError{Kind: SourceNotFound, VideoID: videoID, Err: fmt.Errorf("no %s subtitle file written", lang)}
	}
	sort.Strings(files)

	content, err := os.ReadFile(preferredSubtitle(files, videoID, lang))
	if err != nil {
		return "", &SourceError{Kind: SourceOther, VideoID: videoID, Err: fmt.Errorf("reading SRT file: %w", err)}
	}
	return srtToText(string(content)), nil
}

// preferredSubtitle picks <id>.<lang>.srt when present, otherwise the first file
func preferredSubtitle(files []string, videoID string, lang Language) string {
	exact := videoID + "." + string(lang) + ".srt"
	for _, f := range files {
		if filepath.Base(f) == exact {
			return f
		}
	}
	return files[0]
}

// captionCandidates returns the languages worth trying, requested one first
func captionCandidates(available []string, lang Language) []Language {
	var out []Language
	for _, want := range []Language{lang, LanguageEnglish} {
		if slices.Contains(out, want) {
			continue
		}
		for _, have := range available {
			if have == string(want) || strings.HasPrefix(have, string(want)+"-") {
				out = append(out, want)
				break
			}
		}
	}
	return out
}

func parseMetadata(data []byte) (*VideoMetadata, error) {
	var metadata VideoMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	var captions struct {
		Subtitles         map[string]json.RawMessage `json:"subtitles"`
		AutomaticCaptions map[string]json.RawMessage `json:"automatic_captions"`
	}
	if err := json.Unmarshal(data, &captions); err != nil {
		return nil, fmt.Errorf("parsing caption info: %w", err)
	}

	seen := make(map[string]bool)
	for _, m := range []map[string]json.RawMessage{captions.Subtitles, captions.AutomaticCaptions} {
		for code := range m {
			if code == "live_chat" || seen[code] {
				continue
			}
			seen[code] = true
			metadata.CaptionLanguages = append(metadata.CaptionLanguages, code)
		}
	}
	sort.Strings(metadata.CaptionLanguages)
	metadata.HasCaptions = len(metadata.CaptionLanguages) > 0

	return &metadata, nil
}

// classifyYtdlpError maps yt-dlp's stderr onto a SourceError kind
func classifyYtdlpError(videoID, stderr string, err error) *SourceError {
	msg := strings.ToLower(stderr + " " + err.Error())
	kind := SourceOther
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests"):
		kind = SourceRateLimited
	case strings.Contains(msg, "private video"),
		strings.Contains(msg, "video unavailable"),
		strings.Contains(msg, "this video is unavailable"),
		strings.Contains(msg, "members-only"),
		strings.Contains(msg, "confirm your age"),
		strings.Contains(msg, "has been removed"):
		kind = SourceUnavailable
	case strings.Contains(msg, "incomplete youtube id"),
		strings.Contains(msg, "not a valid url"),
		strings.Contains(msg, "unsupported url"):
		kind = SourceNotFound
	}

	if stderr = strings.TrimSpace(stderr); stderr != "" {
		err = fmt.Errorf("%w: %s", err, lastLine(stderr))
	}
	return &SourceError{Kind: kind, VideoID: videoID, Err: err}
}

func resultStderr(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	return result.Stderr
}

func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// srtToText converts SRT content to plain text lines
func srtToText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.TrimSpace(strings.Join(removeDuplicates(parseSRT(content)), "\n"))
}

// parseSRT extracts text content from SRT format
func parseSRT(content string) []string {
	var lines []string

	for block := range strings.SplitSeq(content, "\n\n") {
		blockLines := strings.Split(strings.TrimSpace(block), "\n")
		if len(blockLines) >= 3 {
			// Skip sequence number and timestamp, get text lines
			for i := 2; i < len(blockLines); i++ {
				if line := strings.TrimSpace(blockLines[i]); line != "" {
					lines = append(lines, line)
				}
			}
		}
	}

	return lines
}

// removeDuplicates eliminates consecutive repeated lines. Auto captions
// repeat the previous line as the next one scrolls in.
func removeDuplicates(lines []string) []string {
	result := make([]string, 0, len(lines))
	prevLine := ""

	for _, line := range lines {
		isDuplicate := prevLine != "" && (strings.Contains(line, prevLine) || strings.Contains(prevLine, line))
		if !isDuplicate {
			result = append(result, line)
		}
		prevLine = line
	}

	return result
}
