// -----------------------------------------------------------------------
// Ollama provider - local generation backend over the /api/generate REST
// endpoint, the primary path for document understanding
// -----------------------------------------------------------------------

package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

// OllamaProvider talks to a local Ollama server
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewOllamaProvider creates an Ollama provider against the given base URL
func NewOllamaProvider(baseURL string, timeout time.Duration, logger arbor.ILogger) *OllamaProvider {
	return &OllamaProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Images  []string      `json:"images,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// GenerateVision sends the image as base64 alongside the prompt. Temperature
// defaults to 0 so repeated extraction attempts stay deterministic.
func (p *OllamaProvider) GenerateVision(ctx context.Context, req *VisionRequest) (string, error) {
	payload := ollamaRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		Images:  []string{base64.StdEncoding.EncodeToString(req.Image)},
		Stream:  false,
		Options: ollamaOptions{Temperature: req.Temperature, TopP: 0.9},
	}
	return p.generate(ctx, &payload)
}

// GenerateText produces a plain completion with chat-friendly sampling
func (p *OllamaProvider) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	payload := ollamaRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Options: ollamaOptions{Temperature: 0.7, TopP: 0.9},
	}
	return p.generate(ctx, &payload)
}

func (p *OllamaProvider) generate(ctx context.Context, payload *ollamaRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode ollama request: %w", err)
	}

	url := p.baseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &GenerationError{
			Provider: p.Name(),
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))),
		}
	}

	var decoded ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &GenerationError{Provider: p.Name(), Err: fmt.Errorf("invalid response body: %w", err)}
	}
	if decoded.Error != "" {
		return "", &GenerationError{Provider: p.Name(), Err: fmt.Errorf("ollama error: %s", decoded.Error)}
	}

	p.logger.Debug().
		Str("model", payload.Model).
		Int("output_length", len(decoded.Response)).
		Dur("duration", time.Since(start)).
		Msg("Ollama generation complete")

	return decoded.Response, nil
}

// Name identifies the backend
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Close releases provider resources
func (p *OllamaProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
