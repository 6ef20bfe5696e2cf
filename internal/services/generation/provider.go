package generation

import (
	"context"
	"errors"
	"fmt"
)

// VisionRequest asks a provider to read an image and produce text. The
// document model emits tag markup with little or no prompting, so Prompt is
// frequently empty.
type VisionRequest struct {
	Model       string
	Prompt      string
	Image       []byte // Raw image bytes; providers encode as required
	MimeType    string // e.g. "image/jpeg"
	Temperature float32
}

// Provider is a text/vision generation backend
type Provider interface {
	// GenerateVision produces text from an image plus optional prompt
	GenerateVision(ctx context.Context, req *VisionRequest) (string, error)
	// GenerateText produces a completion for a plain text prompt
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	// Name identifies the backend ("ollama", "gemini", "claude")
	Name() string
	// Close releases provider resources
	Close() error
}

// GenerationError indicates the backend was unreachable or answered with a
// non-2xx status. A single failed attempt is not fatal to the pipeline;
// other candidates and fallbacks may still succeed.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ErrNoContent reports that every candidate came back below the minimum
// content floor. Triggers the fallback chain; not user-visible on its own.
var ErrNoContent = errors.New("no candidate produced content above the minimum floor")

// IsGenerationError reports whether err wraps a backend failure
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
