// -----------------------------------------------------------------------
// Content Renderer - turns a reconstructed document model into the final
// display string under intent-dependent truncation policy
// -----------------------------------------------------------------------

package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/models"
)

// boilerplate substrings stripped from all text content before rendering,
// case-sensitive, wherever they appear. Mostly PDF generator signatures.
var boilerplate = []string{
	"Powered by TCPDF",
	"www.tcpdf.org",
	"TCPDF",
	"Generated by",
	"Document created",
}

// UnreadableMessage is the terminal result when the fallback chain is
// exhausted. A normal return value, never an error.
const UnreadableMessage = "I could only extract technical headers from this document. The document might be:\n" +
	"- An image without readable text\n" +
	"- A corrupted file\n" +
	"- A file format not supported by the model\n\n" +
	"Please try uploading a different document or check if the file contains readable text."

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	blankLineRuns  = regexp.MustCompile(`\n{3,}`)
	sentenceEnds   = regexp.MustCompile(`([.!?]) `)
)

// Renderer produces display strings from document models. Stateless apart
// from configuration; safe for concurrent use.
type Renderer struct {
	logger          arbor.ILogger
	extractionLimit int
	analysisLimit   int
}

// NewRenderer creates a renderer with the configured truncation limits
func NewRenderer(cfg *common.ExtractionConfig, logger arbor.ILogger) *Renderer {
	extractionLimit := cfg.ExtractionLimit
	if extractionLimit <= 0 {
		extractionLimit = 3000
	}
	analysisLimit := cfg.AnalysisLimit
	if analysisLimit <= 0 {
		analysisLimit = 2000
	}
	return &Renderer{
		logger:          logger,
		extractionLimit: extractionLimit,
		analysisLimit:   analysisLimit,
	}
}

// Render produces the final display string for a document model: rendered
// blocks under the intent's truncation policy, followed by a statistics
// footer. Total function - it always succeeds.
func (r *Renderer) Render(model *models.DocumentModel, intent models.Intent, method string) string {
	content := r.renderBlocks(model)
	return r.assemble(content, intent, method)
}

// RenderUnreadable produces the terminal "no readable content" response.
// The statistics footer is still appended so callers see a uniform shape.
func (r *Renderer) RenderUnreadable(method string) string {
	var sb strings.Builder
	sb.WriteString("**Document Analysis Failed**\n\n")
	sb.WriteString(UnreadableMessage)
	sb.WriteString("\n\n")
	writeStatistics(&sb, UnreadableMessage, method)
	return sb.String()
}

// renderBlocks renders each block in model order into one content string
func (r *Renderer) renderBlocks(model *models.DocumentModel) string {
	var parts []string

	for _, block := range model.Blocks {
		switch block.Kind {
		case models.BlockKindHeading:
			level := block.Level
			if level < 1 {
				level = 1
			}
			if level > 6 {
				level = 6
			}
			parts = append(parts, strings.Repeat("#", level)+" "+stripBoilerplate(block.Text))

		case models.BlockKindTable:
			if table := renderTable(block.Rows); table != "" {
				parts = append(parts, table)
			}

		case models.BlockKindList:
			parts = append(parts, renderList(block))

		case models.BlockKindParagraph, models.BlockKindRawText:
			if text := cleanText(block.Text); text != "" {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, "\n\n")
}

// renderTable emits a GitHub-flavored markdown table. Every data row is
// aligned to the header width here as a second pass, independent of the
// reconstructor's padding: short rows are padded, long rows truncated.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	header := rows[0]
	width := len(header)
	if width == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("**Table:**\n")
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", width) + "\n")

	for _, row := range rows[1:] {
		aligned := make([]string, width)
		for i := 0; i < width; i++ {
			if i < len(row) {
				aligned[i] = stripBoilerplate(row[i])
			}
		}
		sb.WriteString("| " + strings.Join(aligned, " | ") + " |\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderList emits bullet lines or 1-based numbered lines
func renderList(block models.Block) string {
	var lines []string
	for i, item := range block.Items {
		item = stripBoilerplate(item)
		if block.Ordered {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
		} else {
			lines = append(lines, "- "+item)
		}
	}
	return strings.Join(lines, "\n")
}

// assemble applies the truncation policy and appends the statistics footer.
// Character and word counts in the footer describe the full content, not the
// truncated view.
func (r *Renderer) assemble(content string, intent models.Intent, method string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Document Analysis Complete (%s)**\n\n", method))

	limit := r.extractionLimit
	tip := "Ask me to 'analyze this document' to get a summary of all content."
	if intent == models.IntentAnalysis {
		limit = r.analysisLimit
		tip = "Ask me to 'summarize this document' to get a complete overview of all content."
	}

	// Limits are in characters, not bytes; multi-byte text must never be
	// cut mid-rune
	if chars := utf8.RuneCountInString(content); chars > limit {
		sb.WriteString(fmt.Sprintf("**Extracted Content (showing first %d characters):**\n\n", limit))
		sb.WriteString(truncateRunes(content, limit))
		sb.WriteString(fmt.Sprintf("\n\n*... and %d more characters*\n\n", chars-limit))
		sb.WriteString("**Tip:** " + tip + "\n\n")
	} else {
		sb.WriteString("**Extracted Content:**\n\n")
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}

	writeStatistics(&sb, content, method)

	if r.logger != nil {
		r.logger.Debug().
			Int("content_length", len(content)).
			Str("intent", string(intent)).
			Str("method", method).
			Msg("Document response rendered")
	}

	return sb.String()
}

// writeStatistics appends the document statistics footer
func writeStatistics(sb *strings.Builder, content string, method string) {
	sb.WriteString("**Document Statistics:**\n")
	sb.WriteString(fmt.Sprintf("- Characters: %d\n", utf8.RuneCountInString(content)))
	sb.WriteString(fmt.Sprintf("- Words: %d\n", len(strings.Fields(content))))
	sb.WriteString(fmt.Sprintf("- Processing Method: %s\n", method))
}

// truncateRunes returns the first limit characters of s, never splitting a
// multi-byte sequence
func truncateRunes(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// cleanText normalizes paragraph and raw text content: boilerplate removed,
// whitespace runs collapsed, a line break inserted after sentence-ending
// punctuation, and runs of blank lines collapsed to a single one.
func cleanText(text string) string {
	text = stripBoilerplate(text)
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = sentenceEnds.ReplaceAllString(text, "$1\n")
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripBoilerplate removes known generator signatures, case-sensitive
func stripBoilerplate(text string) string {
	for _, marker := range boilerplate {
		text = strings.ReplaceAll(text, marker, "")
	}
	return strings.TrimSpace(text)
}
