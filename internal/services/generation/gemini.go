package generation

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"google.golang.org/genai"
)

// GeminiProvider generates content via the Google Gemini API. Cloud
// alternative to the local Ollama backend for both vision extraction and
// chat completions.
type GeminiProvider struct {
	config *common.GeminiConfig
	client *genai.Client
	logger arbor.ILogger
}

// NewGeminiProvider creates a Gemini provider. The API key comes from
// configuration or the LECTIO_GEMINI_API_KEY environment override.
func NewGeminiProvider(ctx context.Context, config *common.GeminiConfig, logger arbor.ILogger) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set gemini.api_key or LECTIO_GEMINI_API_KEY)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return &GeminiProvider{config: config, client: client, logger: logger}, nil
}

// GenerateVision sends the image inline with the prompt text
func (p *GeminiProvider) GenerateVision(ctx context.Context, req *VisionRequest) (string, error) {
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	parts := []*genai.Part{genai.NewPartFromBytes(req.Image, mimeType)}
	if req.Prompt != "" {
		parts = append(parts, genai.NewPartFromText(req.Prompt))
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", &GenerationError{Provider: p.Name(), Err: err}
	}

	return extractGeminiText(resp, p.Name())
}

// GenerateText produces a plain completion
func (p *GeminiProvider) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = p.config.Model
	}
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", &GenerationError{Provider: p.Name(), Err: err}
	}

	return extractGeminiText(resp, p.Name())
}

// extractGeminiText walks the candidates until non-empty text is found
func extractGeminiText(resp *genai.GenerateContentResponse, provider string) (string, error) {
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			var text string
			for _, part := range candidate.Content.Parts {
				text += part.Text
			}
			if text != "" {
				return text, nil
			}
		}
	}
	return "", &GenerationError{Provider: provider, Err: fmt.Errorf("empty response from model")}
}

// Name identifies the backend
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Close releases provider resources
func (p *GeminiProvider) Close() error {
	return nil
}
