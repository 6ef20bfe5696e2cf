// -----------------------------------------------------------------------
// DocTags vocabulary - closed set of tags recognized in raw model markup
// -----------------------------------------------------------------------

package doctags

import (
	"regexp"
	"strings"
)

// TagKind identifies one tag in the closed markup vocabulary. The scanner
// only ever looks for these; anything else in the raw output is noise.
type TagKind int

const (
	TagTitle TagKind = iota
	TagSectionHeader1
	TagSectionHeader2
	TagSectionHeader3
	TagSectionHeader4
	TagSectionHeader5
	TagTable
	TagOTSL
	TagText
	TagUnorderedList
	TagOrderedList
	TagListItem

	// Legacy dialect emitted by older model revisions
	TagHeading
	TagParagraph
	TagRow

	// Table cell markers (OTSL grammar, unpaired)
	TagColumnHeader // ched
	TagFirstCell    // fcel
	TagLastCell     // lcel
	TagCell         // generic cell; paired in the legacy dialect, marker in OTSL
	TagRowBreak     // nl
)

// tagNames maps each kind to its literal tag name in the markup
var tagNames = map[TagKind]string{
	TagTitle:          "title",
	TagSectionHeader1: "section_header_level_1",
	TagSectionHeader2: "section_header_level_2",
	TagSectionHeader3: "section_header_level_3",
	TagSectionHeader4: "section_header_level_4",
	TagSectionHeader5: "section_header_level_5",
	TagTable:          "table",
	TagOTSL:           "otsl",
	TagText:           "text",
	TagUnorderedList:  "unordered_list",
	TagOrderedList:    "ordered_list",
	TagListItem:       "list_item",
	TagHeading:        "heading",
	TagParagraph:      "paragraph",
	TagRow:            "row",
	TagColumnHeader:   "ched",
	TagFirstCell:      "fcel",
	TagLastCell:       "lcel",
	TagCell:           "cell",
	TagRowBreak:       "nl",
}

// Name returns the literal tag name for the kind
func (k TagKind) Name() string {
	return tagNames[k]
}

// openerAt reports whether an opening tag for the kind starts at raw[pos],
// returning the index just past the closing '>'. Attributes are tolerated on
// legacy tags (e.g. <heading level="1">) and ignored.
func openerAt(raw string, pos int, name string) (int, bool) {
	if !strings.HasPrefix(raw[pos:], "<"+name) {
		return 0, false
	}
	rest := raw[pos+1+len(name):]
	if rest == "" {
		return 0, false
	}
	switch rest[0] {
	case '>':
		return pos + len(name) + 2, true
	case ' ', '\t', '\n':
		// Attribute list; the opener ends at the next '>'
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return 0, false
		}
		return pos + 1 + len(name) + end + 1, true
	default:
		return 0, false
	}
}

// spans extracts the inner text of every <name>...</name> span in raw.
// The first matching closer wins; an opener with no closer is skipped.
// Spans of different kinds may overlap freely - each family is scanned
// independently over the whole input.
func spans(raw string, kind TagKind) []string {
	name := kind.Name()
	closer := "</" + name + ">"
	var out []string

	pos := 0
	for pos < len(raw) {
		idx := strings.Index(raw[pos:], "<"+name)
		if idx < 0 {
			break
		}
		start := pos + idx
		bodyStart, ok := openerAt(raw, start, name)
		if !ok {
			pos = start + 1
			continue
		}
		end := strings.Index(raw[bodyStart:], closer)
		if end < 0 {
			// Unclosed tag: malformed, not an error
			pos = bodyStart
			continue
		}
		out = append(out, raw[bodyStart:bodyStart+end])
		pos = bodyStart + end + len(closer)
	}
	return out
}

var (
	anyTagPattern     = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripTags removes every tag-shaped token from raw and collapses whitespace
// runs to single spaces. Used by the unstructured fallback path.
func StripTags(raw string) string {
	stripped := anyTagPattern.ReplaceAllString(raw, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(stripped, " "))
}

// ContainsMarkup reports whether raw looks like it carries tagged spans at all
func ContainsMarkup(raw string) bool {
	return strings.Contains(raw, "<") && strings.Contains(raw, ">")
}
