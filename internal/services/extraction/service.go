// -----------------------------------------------------------------------
// Extraction pipeline - orchestrates candidate selection, the tag scan,
// and the fallback chain as one explicit state machine
// -----------------------------------------------------------------------

package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/ternarybob/lectio/internal/services/doctags"
	"github.com/ternarybob/lectio/internal/services/generation"
	"github.com/ternarybob/lectio/internal/services/render"
)

// state enumerates the fallback chain. Each transition is explicit; there is
// no silent catch-and-continue around external calls.
type state int

const (
	stateStructuredParse state = iota
	stateStripAndDedupe
	stateSecondaryExtraction
	stateUnreadable
)

// Service implements the ExtractionService interface
type Service struct {
	selector      *generation.Selector
	scanner       *doctags.Scanner
	renderer      *render.Renderer
	documentModel string
	routerModel   string
	floor         int
	logger        arbor.ILogger
}

// NewService creates the extraction pipeline service
func NewService(cfg *common.Config, selector *generation.Selector, logger arbor.ILogger) interfaces.ExtractionService {
	floor := cfg.Extraction.ContentFloor
	if floor <= 0 {
		floor = 50
	}
	return &Service{
		selector:      selector,
		scanner:       doctags.NewScanner(logger),
		renderer:      render.NewRenderer(&cfg.Extraction, logger),
		documentModel: cfg.Generation.DocumentModel,
		routerModel:   cfg.Generation.RouterModel,
		floor:         floor,
		logger:        logger,
	}
}

// ExtractStructured parses raw markup into a document model. Empty model
// means unstructured input; never an error.
func (s *Service) ExtractStructured(rawMarkup string) *models.DocumentModel {
	return s.scanner.Scan(rawMarkup)
}

// ProcessDocument runs the full pipeline over an uploaded file
func (s *Service) ProcessDocument(ctx context.Context, filePath, userMessage string) (*models.ExtractionResult, error) {
	image, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	mimeType := mimeTypeForPath(filePath)
	intent := render.DetectIntent(userMessage)

	s.logger.Info().
		Str("file", filepath.Base(filePath)).
		Int("image_bytes", len(image)).
		Str("intent", string(intent)).
		Msg("Processing document")

	raw, err := s.selector.SelectBest(ctx, s.documentModel, image, mimeType)
	current := stateStructuredParse
	if err != nil {
		// Backend failure or nothing above the floor: skip straight to the
		// secondary extraction path
		if generation.IsGenerationError(err) || errors.Is(err, generation.ErrNoContent) {
			s.logger.Warn().Err(err).Msg("Primary extraction produced no usable candidate")
			current = stateSecondaryExtraction
		} else {
			return nil, err
		}
	}

	method := fmt.Sprintf("DocTags Parsing (%s)", s.documentModel)
	secondaryTried := false

	for {
		switch current {
		case stateStructuredParse:
			if !doctags.ContainsMarkup(raw) {
				method = fmt.Sprintf("Direct Processing (%s)", s.documentModel)
				current = stateStripAndDedupe
				continue
			}
			model := s.scanner.Scan(raw)
			if model.IsEmpty() {
				s.logger.Debug().Msg("No structured spans found, falling back to tag stripping")
				method = fmt.Sprintf("Tag Stripping (%s)", s.documentModel)
				current = stateStripAndDedupe
				continue
			}
			return &models.ExtractionResult{
				Response:  s.renderer.Render(model, intent, method),
				Method:    method,
				RawOutput: raw,
			}, nil

		case stateStripAndDedupe:
			flat := raw
			if doctags.ContainsMarkup(flat) {
				flat = s.scanner.Flatten(flat)
			}
			flat = doctags.DeduplicateLines(flat)
			if utf8.RuneCountInString(strings.TrimSpace(flat)) > s.floor {
				model := &models.DocumentModel{}
				model.Append(models.NewRawTextBlock(flat))
				return &models.ExtractionResult{
					Response:  s.renderer.Render(model, intent, method),
					Method:    method,
					RawOutput: raw,
				}, nil
			}
			if secondaryTried {
				current = stateUnreadable
				continue
			}
			current = stateSecondaryExtraction

		case stateSecondaryExtraction:
			secondaryTried = true
			text, lrErr := s.selector.LastResort(ctx, s.routerModel, image, mimeType, userMessage)
			if lrErr != nil {
				s.logger.Warn().Err(lrErr).Msg("Secondary extraction failed")
				current = stateUnreadable
				continue
			}
			raw = text
			method = fmt.Sprintf("Fallback OCR (%s)", s.routerModel)
			current = stateStripAndDedupe

		case stateUnreadable:
			s.logger.Warn().Str("file", filepath.Base(filePath)).Msg("Fallback chain exhausted, document unreadable")
			return &models.ExtractionResult{
				Response:   s.renderer.RenderUnreadable("none"),
				Method:     "none",
				RawOutput:  raw,
				Unreadable: true,
			}, nil
		}
	}
}

// mimeTypeForPath maps an upload's extension to the mime type sent to
// vision backends
func mimeTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
