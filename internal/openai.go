package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// ChatClient defines the chat completion operation of an OpenAI-compatible API
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, model string, req CompletionRequest) (string, error)
}

// OpenAIClient wraps the official OpenAI Go SDK. Any OpenAI-compatible
// endpoint works; Groq is the default.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a new client for apiKey at baseURL
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client}
}

// CreateChatCompletion sends a system and a user message
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, model string, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// AI sends completion requests with a per-call timeout. It implements Completer.
type AI struct {
	client     ChatClient
	model      string
	timeout    time.Duration
	apiKey     string
	baseURL    string
	log        *Logger
	clientOnce sync.Once
}

// NewAI creates a completer around an existing client
func NewAI(client ChatClient, model string, timeout time.Duration, log *Logger) *AI {
	if log == nil {
		log = NopLogger()
	}
	return &AI{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

// NewAIWithKey creates a completer with lazy client initialization, so
// commands that never call the model work without a key
func NewAIWithKey(apiKey, baseURL, model string, timeout time.Duration, log *Logger) *AI {
	ai := NewAI(nil, model, timeout, log)
	ai.apiKey = apiKey
	ai.baseURL = baseURL
	return ai
}

// ensureClient initializes the OpenAI client if needed
func (ai *AI) ensureClient() error {
	ai.clientOnce.Do(func() {
		if ai.client == nil && ai.apiKey != "" {
			ai.client = NewOpenAIClient(ai.apiKey, ai.baseURL)
		}
	})
	if ai.client == nil {
		return &ConfigError{Reason: "missing API key", Err: ErrMissingAPIKey}
	}
	return nil
}

// Complete implements Completer
func (ai *AI) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := ai.ensureClient(); err != nil {
		return "", err
	}

	if ai.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := ai.client.CreateChatCompletion(ctx, ai.model, req)
	if err != nil {
		if isAuthError(err) {
			return "", &ConfigError{Reason: "API key rejected", Err: err}
		}
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	ai.log.Debug("chat completion", "model", ai.model, "duration", time.Since(start), "response_chars", len(content))
	return content, nil
}

// isAuthError reports whether the API rejected the credentials
func isAuthError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
