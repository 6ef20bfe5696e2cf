// -----------------------------------------------------------------------
// Tag Scanner - reconstructs a document model from loosely-structured
// tag markup produced by the document-understanding model
// -----------------------------------------------------------------------

package doctags

import (
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/models"
)

// Scanner extracts recognized markup spans into document blocks. Tags need
// not be well-nested relative to each other; each family is collected
// independently and malformed spans are skipped, never raised.
type Scanner struct {
	logger arbor.ILogger
}

// NewScanner creates a new tag scanner
func NewScanner(logger arbor.ILogger) *Scanner {
	return &Scanner{logger: logger}
}

// headerFamilies pairs each section header kind with its rendered level.
// Title renders at level 1, section headers 1-5 at levels 2-6, and the
// legacy heading tag at level 1.
var headerFamilies = []struct {
	kind  TagKind
	level int
}{
	{TagSectionHeader1, 2},
	{TagSectionHeader2, 3},
	{TagSectionHeader3, 4},
	{TagSectionHeader4, 5},
	{TagSectionHeader5, 6},
}

// Scan walks the closed tag vocabulary over raw markup and returns the
// reconstructed document model. Family scan order defines block order:
// title, section headers by level, tables, plain text, then lists; the
// legacy dialect rides along with its nearest modern family. An empty
// model means no recognized span was found - the caller decides fallback.
func (s *Scanner) Scan(raw string) *models.DocumentModel {
	model := &models.DocumentModel{}

	for _, title := range spans(raw, TagTitle) {
		if t := strings.TrimSpace(title); t != "" {
			model.Append(models.NewHeadingBlock(1, t))
		}
	}

	for _, family := range headerFamilies {
		for _, header := range spans(raw, family.kind) {
			if t := strings.TrimSpace(header); t != "" {
				model.Append(models.NewHeadingBlock(family.level, t))
			}
		}
	}

	// Legacy heading tag maps to the title level
	for _, heading := range spans(raw, TagHeading) {
		if t := strings.TrimSpace(heading); t != "" {
			model.Append(models.NewHeadingBlock(1, t))
		}
	}

	for _, kind := range []TagKind{TagTable, TagOTSL} {
		for _, body := range spans(raw, kind) {
			if rows := ReconstructTable(body); len(rows) > 0 {
				model.Append(models.NewTableBlock(rows))
			}
		}
	}

	for _, text := range spans(raw, TagText) {
		if t := strings.TrimSpace(text); t != "" {
			model.Append(models.NewParagraphBlock(t))
		}
	}

	for _, para := range spans(raw, TagParagraph) {
		if t := strings.TrimSpace(para); t != "" {
			model.Append(models.NewParagraphBlock(t))
		}
	}

	for _, list := range spans(raw, TagUnorderedList) {
		if items := listItems(list); len(items) > 0 {
			model.Append(models.NewListBlock(false, items))
		}
	}

	for _, list := range spans(raw, TagOrderedList) {
		if items := listItems(list); len(items) > 0 {
			model.Append(models.NewListBlock(true, items))
		}
	}

	if s.logger != nil {
		s.logger.Debug().
			Int("blocks", len(model.Blocks)).
			Int("tables", model.CountKind(models.BlockKindTable)).
			Int("headings", model.CountKind(models.BlockKindHeading)).
			Msg("Tag scan complete")
	}

	return model
}

// Flatten is the unstructured fallback: blanket tag removal plus whitespace
// normalization, returned as the content of a single raw text block.
func (s *Scanner) Flatten(raw string) string {
	return StripTags(raw)
}

// listItems extracts trimmed, non-empty list_item spans from a list body
func listItems(body string) []string {
	var items []string
	for _, item := range spans(body, TagListItem) {
		if t := strings.TrimSpace(item); t != "" {
			items = append(items, t)
		}
	}
	return items
}
