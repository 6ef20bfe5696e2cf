package common

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Generation  GenerationConfig `toml:"generation"`
	Extraction  ExtractionConfig `toml:"extraction"`
	Search      SearchConfig     `toml:"search"`
	Storage     StorageConfig    `toml:"storage"`
	Uploads     UploadsConfig    `toml:"uploads"`
	Logging     LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=0,lte=65535"`
	Host string `toml:"host"`
}

// GenerationConfig configures the model backends used for document
// understanding and general chat
type GenerationConfig struct {
	Provider       string       `toml:"provider" validate:"oneof=ollama gemini claude"` // Backend for vision extraction
	OllamaURL      string       `toml:"ollama_url"`                                     // Ollama base URL (e.g. http://localhost:11434)
	RouterModel    string       `toml:"router_model"`                                   // Chat/routing model, also the last-resort OCR path
	DocumentModel  string       `toml:"document_model"`                                 // Vision model trained to emit document markup
	AttemptTimeout string       `toml:"attempt_timeout"`                                // Per-attempt timeout for candidate generation
	Gemini         GeminiConfig `toml:"gemini"`
	Claude         ClaudeConfig `toml:"claude"`
}

type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

// ExtractionConfig tunes the markup extraction pipeline
type ExtractionConfig struct {
	ContentFloor    int `toml:"content_floor"`    // Minimum accepted content length in characters
	ExtractionLimit int `toml:"extraction_limit"` // Rendered content cap for extraction intent
	AnalysisLimit   int `toml:"analysis_limit"`   // Rendered content cap for analysis intent
}

// SearchConfig contains web search provider configuration
type SearchConfig struct {
	SearXNGURL     string  `toml:"searxng_url"`      // Primary self-hosted search endpoint
	BraveAPIKey    string  `toml:"brave_api_key"`    // Fallback Brave Search API subscription token
	BraveRateLimit float64 `toml:"brave_rate_limit"` // Requests per second against the Brave API
	Timeout        string  `toml:"timeout"`          // HTTP timeout for search requests
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// UploadsConfig controls where uploaded documents land and how long they live
type UploadsConfig struct {
	Dir             string `toml:"dir"`              // Directory for uploaded files
	Retention       string `toml:"retention"`        // How long uploads are kept (e.g. "24h")
	CleanupSchedule string `toml:"cleanup_schedule"` // Cron schedule for the upload purge
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 9050,
			Host: "0.0.0.0",
		},
		Generation: GenerationConfig{
			Provider:       "ollama",
			OllamaURL:      "http://localhost:11434",
			RouterModel:    "qwen3:0.6b",
			DocumentModel:  "gabegoodhart/granite-docling:258M",
			AttemptTimeout: "120s",
			Gemini: GeminiConfig{
				Model: "gemini-2.5-flash",
			},
			Claude: ClaudeConfig{
				Model:     "claude-sonnet-4-20250514",
				MaxTokens: 8192,
			},
		},
		Extraction: ExtractionConfig{
			ContentFloor:    50,
			ExtractionLimit: 3000,
			AnalysisLimit:   2000,
		},
		Search: SearchConfig{
			SearXNGURL:     "http://localhost:8888",
			BraveRateLimit: 1.0,
			Timeout:        "15s",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/lectio",
			},
		},
		Uploads: UploadsConfig{
			Dir:             "./data/uploads",
			Retention:       "24h",
			CleanupSchedule: "@hourly",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadConfig loads configuration from TOML files (later files override earlier
// ones), applies environment overrides, and validates the result
func LoadConfig(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies LECTIO_-prefixed environment variables over the
// loaded configuration. Secrets are the main use case so config files can be
// committed without keys.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LECTIO_OLLAMA_URL"); v != "" {
		cfg.Generation.OllamaURL = v
	}
	if v := os.Getenv("LECTIO_GEMINI_API_KEY"); v != "" {
		cfg.Generation.Gemini.APIKey = v
	}
	if v := os.Getenv("LECTIO_CLAUDE_API_KEY"); v != "" {
		cfg.Generation.Claude.APIKey = v
	}
	if v := os.Getenv("BRAVE_API_KEY"); v != "" {
		cfg.Search.BraveAPIKey = v
	}
	if v := os.Getenv("LECTIO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// AttemptTimeoutDuration parses the per-attempt generation timeout
func (g *GenerationConfig) AttemptTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(g.AttemptTimeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// RetentionDuration parses the upload retention window
func (u *UploadsConfig) RetentionDuration() time.Duration {
	d, err := time.ParseDuration(u.Retention)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// SearchTimeoutDuration parses the search HTTP timeout
func (s *SearchConfig) SearchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
