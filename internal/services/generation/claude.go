package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
)

// ClaudeProvider generates content via the Anthropic Claude API
type ClaudeProvider struct {
	config *common.ClaudeConfig
	client anthropic.Client
	logger arbor.ILogger
}

// NewClaudeProvider creates a Claude provider. The API key comes from
// configuration or the LECTIO_CLAUDE_API_KEY environment override.
func NewClaudeProvider(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set claude.api_key or LECTIO_CLAUDE_API_KEY)")
	}

	client := anthropic.NewClient(option.WithAPIKey(config.APIKey))

	return &ClaudeProvider{config: config, client: client, logger: logger}, nil
}

// GenerateVision sends the image as a base64 content block with the prompt
func (p *ClaudeProvider) GenerateVision(ctx context.Context, req *VisionRequest) (string, error) {
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	blocks := []anthropic.ContentBlockParamUnion{
		anthropic.NewImageBlockBase64(mimeType, base64.StdEncoding.EncodeToString(req.Image)),
	}
	if req.Prompt != "" {
		blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(p.maxTokens()),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		Temperature: anthropic.Float(float64(req.Temperature)),
	}

	return p.send(ctx, params)
}

// GenerateText produces a plain completion
func (p *ClaudeProvider) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = p.config.Model
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(p.maxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	return p.send(ctx, params)
}

func (p *ClaudeProvider) send(ctx context.Context, params anthropic.MessageNewParams) (string, error) {
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", &GenerationError{Provider: p.Name(), Err: err}
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}
	if response.Len() == 0 {
		return "", &GenerationError{Provider: p.Name(), Err: fmt.Errorf("empty response from model")}
	}

	return response.String(), nil
}

func (p *ClaudeProvider) maxTokens() int {
	if p.config.MaxTokens > 0 {
		return p.config.MaxTokens
	}
	return 8192
}

// Name identifies the backend
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// Close releases provider resources
func (p *ClaudeProvider) Close() error {
	return nil
}
