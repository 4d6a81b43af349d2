package internal

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the XDG directories and the environment prefix
const AppName = "studyaid"

// Config holds application settings
type Config struct {
	// User configurable settings
	Model             string
	BaseURL           string
	APIKey            string
	Language          Language
	Temperature       float64
	MaxTokens         int
	ChunkSize         int
	ChunkThreshold    int
	Concurrency       int
	CompletionTimeout time.Duration
	FetchTimeout      time.Duration
	FetchAttempts     int
	FetchRetryDelay   time.Duration
	TranscriptCache   int
	GenerationCache   int
	GenerationTTL     time.Duration
	Prompt            string
	Verbose           bool
	Quiet             bool
	MCPLog            bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	CacheDir  string
	TempDir   string
	LogFile   string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// ensureDefaultFile creates configDir/embedFilename from the embedded default
// if it does not exist yet
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)
	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Fprintf(os.Stderr, "Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig writes config.toml to configDir on first run
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt writes prompt.txt to configDir on first run
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// DefaultPaths returns the fixed XDG locations
func DefaultPaths() (configDir, cacheDir string) {
	return filepath.Join(xdg.ConfigHome, AppName), filepath.Join(xdg.CacheHome, AppName)
}

// InitConfig loads .env, the config file and the environment. configFile
// overrides the XDG lookup when set.
func InitConfig(configFile string) (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Error reading .env: %v\n", err)
	}

	configDir, cacheDir := DefaultPaths()
	v := newViper(configDir)

	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return configFromViper(v, configDir, cacheDir)
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("model", "llama3-70b-8192")
	v.SetDefault("base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("language", string(LanguageSpanish))
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("chunk_threshold", DefaultChunkThreshold)
	v.SetDefault("concurrency", 1)
	v.SetDefault("completion_timeout", 2*time.Minute)
	v.SetDefault("fetch_timeout", 2*time.Minute)
	v.SetDefault("fetch_attempts", 3)
	v.SetDefault("fetch_retry_delay", time.Second)
	v.SetDefault("transcript_cache_size", 32)
	v.SetDefault("generation_cache_size", 64)
	v.SetDefault("generation_cache_ttl", time.Hour)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.AutomaticEnv()

	// the key may come from the prefixed variable or the provider's own
	_ = v.BindEnv("api_key", "STUDYAID_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY")

	return v
}

func configFromViper(v *viper.Viper, configDir, cacheDir string) (*Config, error) {
	lang, err := ParseLanguage(v.GetString("language"))
	if err != nil {
		return nil, &ConfigError{Reason: "invalid language setting", Err: err}
	}

	config := &Config{
		Model:             v.GetString("model"),
		BaseURL:           v.GetString("base_url"),
		APIKey:            v.GetString("api_key"),
		Language:          lang,
		Temperature:       v.GetFloat64("temperature"),
		MaxTokens:         v.GetInt("max_tokens"),
		ChunkSize:         v.GetInt("chunk_size"),
		ChunkThreshold:    v.GetInt("chunk_threshold"),
		Concurrency:       v.GetInt("concurrency"),
		CompletionTimeout: v.GetDuration("completion_timeout"),
		FetchTimeout:      v.GetDuration("fetch_timeout"),
		FetchAttempts:     v.GetInt("fetch_attempts"),
		FetchRetryDelay:   v.GetDuration("fetch_retry_delay"),
		TranscriptCache:   v.GetInt("transcript_cache_size"),
		GenerationCache:   v.GetInt("generation_cache_size"),
		GenerationTTL:     v.GetDuration("generation_cache_ttl"),
		Prompt:            v.GetString("prompt"),
		Verbose:           v.GetBool("verbose"),
		Quiet:             v.GetBool("quiet"),
		MCPLog:            v.GetBool("mcp_log"),

		ConfigDir: configDir,
		CacheDir:  cacheDir,
		TempDir:   filepath.Join(cacheDir, "subs"),
		LogFile:   filepath.Join(cacheDir, "mcp.log"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the numeric settings
func (c *Config) Validate() error {
	switch {
	case c.Model == "":
		return &ConfigError{Reason: "model must not be empty"}
	case c.ChunkSize < 1:
		return &ConfigError{Reason: fmt.Sprintf("chunk_size must be positive, got %d", c.ChunkSize)}
	case c.ChunkThreshold < 1:
		return &ConfigError{Reason: fmt.Sprintf("chunk_threshold must be positive, got %d", c.ChunkThreshold)}
	case c.Concurrency < 1:
		return &ConfigError{Reason: fmt.Sprintf("concurrency must be at least 1, got %d", c.Concurrency)}
	case c.Temperature < 0 || c.Temperature > 2:
		return &ConfigError{Reason: fmt.Sprintf("temperature must be between 0 and 2, got %g", c.Temperature)}
	}
	return nil
}
