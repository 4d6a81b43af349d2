package internal

import (
	"context"
	"fmt"
	"time"
)

// TranscriptSource fetches the plain-text transcript of a video. Failures are
// reported as *SourceError.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string, lang Language) (string, error)
}

// RetryingSource retries transient fetch failures a fixed number of times
type RetryingSource struct {
	source   TranscriptSource
	attempts int
	delay    time.Duration
	log      *Logger
}

func NewRetryingSource(source TranscriptSource, attempts int, delay time.Duration, log *Logger) *RetryingSource {
	if attempts < 1 {
		attempts = 1
	}
	if log == nil {
		log = NopLogger()
	}
	return &RetryingSource{source: source, attempts: attempts, delay: delay, log: log}
}

func (r *RetryingSource) Fetch(ctx context.Context, videoID string, lang Language) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		text, err := r.source.Fetch(ctx, videoID, lang)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !sourceKind(err).Retryable() || attempt == r.attempts {
			break
		}
		r.log.Warn("transcript fetch failed, retrying",
			"video_id", videoID, "attempt", attempt, "of", r.attempts, "error", err)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("waiting to retry transcript fetch: %w", ctx.Err())
		case <-time.After(r.delay):
		}
	}
	return "", lastErr
}

// CachedSource memoizes successful fetches
type CachedSource struct {
	source TranscriptSource
	cache  TranscriptCache
}

func NewCachedSource(source TranscriptSource, cache TranscriptCache) *CachedSource {
	if cache == nil {
		cache = NopTranscriptCache{}
	}
	return &CachedSource{source: source, cache: cache}
}

func (c *CachedSource) Fetch(ctx context.Context, videoID string, lang Language) (string, error) {
	if text, ok := c.cache.Get(videoID, lang); ok {
		return text, nil
	}
	text, err := c.source.Fetch(ctx, videoID, lang)
	if err != nil {
		return "", err
	}
	c.cache.Add(videoID, lang, text)
	return text, nil
}
