package internal

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// VideoSource provides the metadata and captions of a video
type VideoSource interface {
	TranscriptSource
	Metadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// App holds the application state and dependencies
type App struct {
	config    *Config
	video     VideoSource
	source    TranscriptSource
	cached    TranscriptCache
	completer Completer
	prompts   *PromptManager
	generator *Generator
	ui        UIManager
	log       *Logger
}

// AppOption customizes App creation
type AppOption func(*App)

// WithVideoSource replaces the yt-dlp backed video source
func WithVideoSource(video VideoSource) AppOption {
	return func(a *App) {
		a.video = video
	}
}

// WithCompleter replaces the OpenAI compatible completion client
func WithCompleter(completer Completer) AppOption {
	return func(a *App) {
		a.completer = completer
	}
}

func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

func WithLogger(log *Logger) AppOption {
	return func(a *App) {
		a.log = log
	}
}

// NewApp initializes the application. Transcripts are fetched through a
// retrying source behind an LRU cache; generations are memoized with a TTL.
func NewApp(config *Config, options ...AppOption) *App {
	app := &App{
		config:  config,
		prompts: NewPromptManager(config.ConfigDir, config.Prompt),
		ui:      NewUIManager(config.Verbose, config.Quiet),
		log:     NopLogger(),
	}

	for _, option := range options {
		option(app)
	}

	if app.video == nil {
		app.video = NewYouTube(config.TempDir, app.log)
	}
	if app.completer == nil {
		app.completer = NewAIWithKey(config.APIKey, config.BaseURL, config.Model, config.CompletionTimeout, app.log)
	}

	transcripts, err := NewTranscriptCache(config.TranscriptCache)
	if err != nil {
		app.log.Warn("transcript cache disabled", "error", err)
		transcripts = NopTranscriptCache{}
	}
	app.cached = transcripts
	app.source = NewCachedSource(
		NewRetryingSource(app.video, config.FetchAttempts, config.FetchRetryDelay, app.log),
		transcripts,
	)

	app.generator = NewGenerator(app.completer,
		WithChunking(config.ChunkSize, config.ChunkThreshold),
		WithConcurrency(config.Concurrency),
		WithSampling(config.Temperature, config.MaxTokens),
		WithGenerationCache(NewGenerationCache(config.GenerationCache, config.GenerationTTL)),
		WithPromptManager(app.prompts),
		WithGeneratorUI(app.ui),
		WithGeneratorLogger(app.log),
	)

	return app
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.prompts = pm
	app.generator.prompts = pm
}

// Language returns lang, or the configured default when lang is empty
func (app *App) Language(lang Language) Language {
	if lang == "" {
		return app.config.Language
	}
	return lang
}

func (app *App) videoID(arg string) (string, error) {
	_, id, err := ParseArg(arg)
	if err != nil {
		return "", &ConfigError{Reason: "invalid YouTube URL or video ID", Err: err}
	}
	return id, nil
}

// GetTranscript returns the captions of the video named by arg (a URL or ID)
func (app *App) GetTranscript(ctx context.Context, arg string, lang Language) (string, error) {
	id, err := app.videoID(arg)
	if err != nil {
		return "", err
	}
	lang = app.Language(lang)
	if !lang.Valid() {
		return "", &ConfigError{Reason: "invalid language", Err: ErrUnknownLanguage}
	}

	spinner := app.ui.NewSpinner("Fetching YouTube captions...")
	defer spinner.Finish()

	if app.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.FetchTimeout)
		defer cancel()
	}

	log := app.log.With("video_id", id, "language", string(lang))
	log.Debug("fetching transcript")
	transcript, err := app.source.Fetch(ctx, id, lang)
	if err != nil {
		log.Debug("transcript fetch failed", "error", err)
		return "", fmt.Errorf("fetching transcript for %s: %w", id, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return "", &SourceError{Kind: SourceNotFound, VideoID: id, Err: ErrEmptyTranscript}
	}
	log.Debug("transcript ready", "chars", utf8.RuneCountInString(transcript), "cached_transcripts", app.cached.Len())
	return transcript, nil
}

// Metadata returns the details of the video named by arg
func (app *App) Metadata(ctx context.Context, arg string) (*VideoMetadata, error) {
	id, err := app.videoID(arg)
	if err != nil {
		return nil, err
	}

	spinner := app.ui.NewSpinner("Fetching video metadata...")
	defer spinner.Finish()

	if app.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.FetchTimeout)
		defer cancel()
	}

	metadata, err := app.video.Metadata(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", id, err)
	}
	return metadata, nil
}

// GenerateMaterial produces formatted study material from a transcript
func (app *App) GenerateMaterial(ctx context.Context, transcript string, material MaterialType, lang Language) (string, error) {
	lang = app.Language(lang)

	raw, err := app.generator.Generate(ctx, transcript, material, lang)
	if err != nil {
		return "", err
	}
	app.log.Debug("model output received",
		"material", material.String(),
		"language", string(lang),
		"format", Classify(raw, lang).String())

	return FormatMaterial(material, raw, lang), nil
}

// Study runs the whole pipeline for one video: captions, generation, formatting
func (app *App) Study(ctx context.Context, arg string, material MaterialType, lang Language) (string, error) {
	lang = app.Language(lang)

	transcript, err := app.GetTranscript(ctx, arg, lang)
	if err != nil {
		return "", err
	}
	return app.GenerateMaterial(ctx, transcript, material, lang)
}
