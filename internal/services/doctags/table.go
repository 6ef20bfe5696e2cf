// -----------------------------------------------------------------------
// Table Reconstructor - rebuilds a rectangular grid from the row/cell
// grammar of a table/otsl span; the grammar has no guaranteed
// well-formedness
// -----------------------------------------------------------------------

package doctags

import (
	"regexp"
	"strings"
)

// cellBoundary matches every marker that terminates a cell's content
var cellBoundary = regexp.MustCompile(`<(?:ched|fcel|lcel|cell|nl)>`)

// ReconstructTable converts the inner text of one table/otsl span into a
// grid of cells. The first row is the header: explicit ched cells when
// present, otherwise the first data row by convention. Rows shorter than the
// header are right-padded with empty cells. Longer rows are kept as-is - the
// header is NOT extended, a lenient policy that can under-represent extra
// columns in ragged input; rendering aligns on header width.
// Returns nil if the span contributed no content.
func ReconstructTable(body string) [][]string {
	// Older model revisions emit paired <row>/<cell> tags instead of the
	// OTSL marker grammar
	if rowSpans := spans(body, TagRow); len(rowSpans) > 0 {
		return rectangularize(legacyRows(rowSpans))
	}

	var rows [][]string

	// Column headers live before the first row break
	firstSegment := body
	if idx := strings.Index(body, "<nl>"); idx >= 0 {
		firstSegment = body[:idx]
	}
	if header := markerCells(firstSegment, TagColumnHeader); len(header) > 0 {
		rows = append(rows, header)
	}

	for _, segment := range strings.Split(body, "<nl>") {
		if strings.Contains(segment, "<ched>") {
			// Header segment, already consumed
			continue
		}
		if cells := markerCells(segment, TagFirstCell, TagLastCell, TagCell); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	return rectangularize(rows)
}

// markerCells extracts the content following each wanted cell marker in a row
// segment. A cell runs to the next marker of any kind or the end of the
// segment; it is kept only if its trimmed text is non-empty and free of
// residual tag characters, which protects against overlapping partial spans.
func markerCells(segment string, wanted ...TagKind) []string {
	wantedNames := make(map[string]bool, len(wanted))
	for _, kind := range wanted {
		wantedNames[kind.Name()] = true
	}

	locs := cellBoundary.FindAllStringIndex(segment, -1)
	var cells []string
	for i, loc := range locs {
		name := segment[loc[0]+1 : loc[1]-1]
		if !wantedNames[name] {
			continue
		}
		end := len(segment)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(segment[loc[1]:end])
		if content == "" || strings.Contains(content, "<") {
			continue
		}
		cells = append(cells, content)
	}
	return cells
}

// legacyRows parses paired <row>/<cell> spans from the legacy dialect
func legacyRows(rowSpans []string) [][]string {
	var rows [][]string
	for _, row := range rowSpans {
		var cells []string
		for _, cell := range spans(row, TagCell) {
			content := strings.TrimSpace(cell)
			if content == "" || strings.Contains(content, "<") {
				continue
			}
			cells = append(cells, content)
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// rectangularize pads every row with empty cells on the right until it
// matches the header row's width. Cells are never dropped from longer rows.
func rectangularize(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}
