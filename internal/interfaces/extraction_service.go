package interfaces

import (
	"context"

	"github.com/ternarybob/lectio/internal/models"
)

// ExtractionService runs the markup extraction and reconstruction pipeline
type ExtractionService interface {
	// ExtractStructured parses raw model markup into a document model. It
	// fails only by returning an empty model - never an error - when the
	// input carries no recognized spans; the caller decides fallback.
	ExtractStructured(rawMarkup string) *models.DocumentModel

	// ProcessDocument runs the full pipeline for an uploaded file: candidate
	// generation, structured parse, fallback chain, rendering. The result is
	// always renderable; Unreadable is a normal result, not an error. An
	// error is returned only when the file itself cannot be read.
	ProcessDocument(ctx context.Context, filePath, userMessage string) (*models.ExtractionResult, error)
}
