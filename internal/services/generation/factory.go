package generation

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
)

// NewProvider creates the configured generation backend. Ollama is the
// default local path; gemini and claude are cloud alternatives.
func NewProvider(ctx context.Context, cfg *common.GenerationConfig, logger arbor.ILogger) (Provider, error) {
	logger.Info().Str("provider", cfg.Provider).Msg("Initializing generation provider")

	switch cfg.Provider {
	case "ollama", "":
		return NewOllamaProvider(cfg.OllamaURL, cfg.AttemptTimeoutDuration(), logger), nil
	case "gemini":
		return NewGeminiProvider(ctx, &cfg.Gemini, logger)
	case "claude":
		return NewClaudeProvider(&cfg.Claude, logger)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}
