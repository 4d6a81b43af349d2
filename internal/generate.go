package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultChunkThreshold is the transcript length, in characters, above which
	// chunking starts
	DefaultChunkThreshold = 4000
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 2000
)

// CompletionRequest is one chat completion call
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completer sends a prompt to a language model. Implementations report
// rejected credentials as *ConfigError.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Generator turns a transcript into study material: it chunks long
// transcripts, asks the model about each chunk and merges the partial results.
type Generator struct {
	completer   Completer
	prompts     *PromptManager
	cache       GenerationCache
	ui          UIManager
	log         *Logger
	chunkSize   int
	threshold   int
	concurrency int
	temperature float64
	maxTokens   int
}

// GeneratorOption customizes Generator creation
type GeneratorOption func(*Generator)

// WithChunking sets the chunk size and the length that triggers chunking
func WithChunking(chunkSize, threshold int) GeneratorOption {
	return func(g *Generator) {
		if chunkSize > 0 {
			g.chunkSize = chunkSize
		}
		if threshold > 0 {
			g.threshold = threshold
		}
	}
}

// WithConcurrency allows up to n chunk calls in flight at once
func WithConcurrency(n int) GeneratorOption {
	return func(g *Generator) {
		g.concurrency = max(n, 1)
	}
}

// WithSampling sets the temperature and token limit of every call
func WithSampling(temperature float64, maxTokens int) GeneratorOption {
	return func(g *Generator) {
		g.temperature = temperature
		g.maxTokens = maxTokens
	}
}

func WithGenerationCache(cache GenerationCache) GeneratorOption {
	return func(g *Generator) {
		g.cache = cache
	}
}

func WithPromptManager(pm *PromptManager) GeneratorOption {
	return func(g *Generator) {
		g.prompts = pm
	}
}

func WithGeneratorUI(ui UIManager) GeneratorOption {
	return func(g *Generator) {
		g.ui = ui
	}
}

func WithGeneratorLogger(log *Logger) GeneratorOption {
	return func(g *Generator) {
		g.log = log
	}
}

// NewGenerator creates a generator with sequential chunk processing and no cache
func NewGenerator(completer Completer, options ...GeneratorOption) *Generator {
	g := &Generator{
		completer:   completer,
		prompts:     NewPromptManager("", ""),
		cache:       NopGenerationCache{},
		ui:          NewUIManager(false, true),
		log:         NopLogger(),
		chunkSize:   DefaultChunkSize,
		threshold:   DefaultChunkThreshold,
		concurrency: 1,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// Generate produces the raw (unformatted) material for a transcript.
// Invalid input and rejected credentials return *ConfigError; a failed
// completion call returns *ServiceError naming the step.
func (g *Generator) Generate(ctx context.Context, transcript string, material MaterialType, lang Language) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", &ConfigError{Reason: "no transcript provided", Err: ErrEmptyTranscript}
	}
	if !material.Valid() {
		return "", &ConfigError{Reason: "invalid material type", Err: ErrUnknownMaterial}
	}
	if !lang.Valid() {
		return "", &ConfigError{Reason: "invalid language", Err: ErrUnknownLanguage}
	}

	key := NewGenerationKey(transcript, material, lang)
	if cached, ok := g.cache.Get(key); ok {
		g.log.Debug("generation cache hit", "material", material.String(), "language", string(lang))
		return cached, nil
	}

	chars := utf8.RuneCountInString(transcript)
	chunks := []string{transcript}
	if chars > g.threshold {
		chunks = Split(transcript, g.chunkSize)
	}
	g.log.Debug("generating", "material", material.String(), "language", string(lang),
		"chars", chars, "chunks", len(chunks))

	var bar ProgressBar
	if len(chunks) > 1 {
		bar = g.ui.NewProgressBar(len(chunks)+1, fmt.Sprintf("Processing part 1 of %d...", len(chunks)))
		defer bar.Finish()
	}

	results, err := g.processChunks(ctx, chunks, material, lang, bar)
	if err != nil {
		return "", err
	}

	var out string
	switch len(results) {
	case 0:
		return "", &ServiceError{Op: "generate", Err: ErrEmptyResponse}
	case 1:
		out = results[0]
	default:
		if bar != nil {
			bar.Describe("Combining results...")
			bar.Set(len(chunks))
		}
		out, err = g.merge(ctx, results, material, lang)
		if err != nil {
			return "", err
		}
	}

	g.cache.Add(key, out)
	return out, nil
}

// processChunks returns the non-empty results in chunk order
func (g *Generator) processChunks(ctx context.Context, chunks []string, material MaterialType, lang Language, bar ProgressBar) ([]string, error) {
	results := make([]string, len(chunks))
	var done atomic.Int64

	process := func(ctx context.Context, i int) error {
		if bar != nil && g.concurrency == 1 {
			bar.Describe(fmt.Sprintf("Processing part %d of %d...", i+1, len(chunks)))
		}
		prompt, err := g.prompts.ChunkPrompt(material, lang, chunks[i])
		if err != nil {
			return fmt.Errorf("building prompt: %w", err)
		}
		op := fmt.Sprintf("chunk %d/%d", i+1, len(chunks))
		text, err := g.complete(ctx, op, CompletionRequest{
			System:      SystemMessage(lang),
			User:        prompt,
			Temperature: g.temperature,
			MaxTokens:   g.maxTokens,
		})
		if err != nil {
			return err
		}
		results[i] = text
		if bar != nil {
			bar.Set(int(done.Add(1)))
		}
		return nil
	}

	if g.concurrency <= 1 || len(chunks) == 1 {
		for i := range chunks {
			if err := process(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(g.concurrency)
		for i := range chunks {
			eg.Go(func() error {
				return process(egCtx, i)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	kept := results[:0]
	for _, r := range results {
		if strings.TrimSpace(r) != "" {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

func (g *Generator) merge(ctx context.Context, results []string, material MaterialType, lang Language) (string, error) {
	prompt := CombineInstruction(material, lang) + "\n\n" + strings.Join(results, "\n\n")
	return g.complete(ctx, "merge", CompletionRequest{
		System:      combineSystemMessage,
		User:        prompt,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
}

// complete runs one call and strips LaTeX from the answer
func (g *Generator) complete(ctx context.Context, op string, req CompletionRequest) (string, error) {
	g.log.Debug("completion request", "op", op, "prompt_chars", utf8.RuneCountInString(req.User))

	text, err := g.completer.Complete(ctx, req)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			return "", err
		}
		return "", &ServiceError{Op: op, Err: err}
	}
	return CleanLatex(text), nil
}
