// -----------------------------------------------------------------------
// Candidate Selector - fans out generation attempts with different prompts
// and keeps the longest non-trivial output
// -----------------------------------------------------------------------

package generation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
)

// ExtractionPrompts are tried in order. The document model is trained to
// emit tag markup with minimal or no prompting, so the prompts stay terse.
var ExtractionPrompts = []string{"", "Extract", "Document"}

// lastResortPrompt asks a general-purpose model to read the image directly
// when the document model produced nothing usable
const lastResortPrompt = `Look at this image and extract all readable text. This appears to be a document. Extract any text you can see, including headers, body text, tables, or any information.

User message: %USER_MESSAGE%

Please provide all the text content you can extract from this document.`

// attempt records the outcome of one fan-out generation call
type attempt struct {
	text     string
	err      error
	timedOut bool
}

// Selector runs candidate generation attempts and applies the selection
// policy: strictly greatest character length wins, ties favor earlier
// prompts, and everything at or below the content floor is discarded.
type Selector struct {
	provider Provider
	logger   arbor.ILogger
	timeout  time.Duration
	floor    int
}

// NewSelector creates a candidate selector over the given provider
func NewSelector(provider Provider, timeout time.Duration, floor int, logger arbor.ILogger) *Selector {
	if floor <= 0 {
		floor = 50
	}
	return &Selector{
		provider: provider,
		logger:   logger,
		timeout:  timeout,
		floor:    floor,
	}
}

// SelectBest issues every extraction prompt concurrently and returns the
// longest output. Attempts are independent, so they fan out with a
// per-attempt timeout; a timed-out attempt counts as an empty candidate.
// Returns GenerationError only when every attempt timed out, and ErrNoContent
// when no candidate clears the floor.
func (s *Selector) SelectBest(ctx context.Context, model string, image []byte, mimeType string) (string, error) {
	attempts := make([]attempt, len(ExtractionPrompts))

	var wg sync.WaitGroup
	for i, prompt := range ExtractionPrompts {
		wg.Add(1)
		go func(idx int, prompt string) {
			defer wg.Done()

			attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			text, err := s.provider.GenerateVision(attemptCtx, &VisionRequest{
				Model:       model,
				Prompt:      prompt,
				Image:       image,
				MimeType:    mimeType,
				Temperature: 0.0,
			})
			if err != nil {
				attempts[idx] = attempt{
					err:      err,
					timedOut: errors.Is(attemptCtx.Err(), context.DeadlineExceeded),
				}
				s.logger.Warn().Err(err).Int("attempt", idx+1).Msg("Extraction attempt failed")
				return
			}
			attempts[idx] = attempt{text: strings.TrimSpace(text)}
			s.logger.Debug().
				Int("attempt", idx+1).
				Int("output_length", len(text)).
				Msg("Extraction attempt complete")
		}(i, prompt)
	}
	wg.Wait()

	allTimedOut := true
	for _, a := range attempts {
		if !a.timedOut {
			allTimedOut = false
			break
		}
	}
	if allTimedOut && len(attempts) > 0 {
		return "", &GenerationError{
			Provider: s.provider.Name(),
			Err:      context.DeadlineExceeded,
		}
	}

	// Comparison happens in prompt order so equal lengths keep the earlier
	// attempt's output. Lengths and the floor are in characters, not bytes.
	best := ""
	bestChars := 0
	for _, a := range attempts {
		if chars := utf8.RuneCountInString(a.text); chars > bestChars {
			best = a.text
			bestChars = chars
		}
	}

	if bestChars <= s.floor {
		return "", ErrNoContent
	}

	s.logger.Info().
		Int("candidates", len(attempts)).
		Int("best_length", bestChars).
		Msg("Candidate selected")

	return best, nil
}

// LastResort asks a general-purpose model for a plain-text read of the
// image with an explicit instruction. Same floor as the primary path.
func (s *Selector) LastResort(ctx context.Context, model string, image []byte, mimeType, userMessage string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := strings.ReplaceAll(lastResortPrompt, "%USER_MESSAGE%", userMessage)
	text, err := s.provider.GenerateVision(attemptCtx, &VisionRequest{
		Model:       model,
		Prompt:      prompt,
		Image:       image,
		MimeType:    mimeType,
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= s.floor {
		return "", ErrNoContent
	}
	return text, nil
}

// Floor returns the minimum accepted content length in characters
func (s *Selector) Floor() int {
	return s.floor
}
