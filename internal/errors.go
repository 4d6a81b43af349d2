package internal

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrUnknownMaterial = errors.New("unknown material type")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrMissingAPIKey   = errors.New("API key is required - set api_key in config.toml or GROQ_API_KEY/OPENAI_API_KEY")
	ErrEmptyResponse   = errors.New("completion service returned no content")
)

// ConfigError is a terminal error caused by invalid input or credentials.
// It is never retried.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SourceErrorKind classifies transcript fetch failures
type SourceErrorKind int

const (
	SourceOther SourceErrorKind = iota
	SourceNotFound
	SourceDisabled
	SourceUnavailable
	SourceRateLimited
)

func (k SourceErrorKind) String() string {
	switch k {
	case SourceNotFound:
		return "no transcript found"
	case SourceDisabled:
		return "captions are disabled"
	case SourceUnavailable:
		return "video unavailable"
	case SourceRateLimited:
		return "rate limited"
	default:
		return "transcript fetch failed"
	}
}

// Retryable reports whether another attempt may succeed
func (k SourceErrorKind) Retryable() bool {
	return k == SourceOther || k == SourceRateLimited
}

// SourceError is returned by a TranscriptSource
type SourceError struct {
	Kind    SourceErrorKind
	VideoID string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s for %s", e.Kind, e.VideoID)
	}
	return fmt.Sprintf("%s for %s: %v", e.Kind, e.VideoID, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ServiceError wraps a failed completion call. Op names the step that failed.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service error (%s): %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// sourceKind extracts the kind of a wrapped SourceError, or SourceOther
func sourceKind(err error) SourceErrorKind {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Kind
	}
	return SourceOther
}
