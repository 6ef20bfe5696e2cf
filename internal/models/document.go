package models

// BlockKind identifies the structural type of a document block
type BlockKind string

const (
	BlockKindHeading   BlockKind = "heading"
	BlockKindParagraph BlockKind = "paragraph"
	BlockKindTable     BlockKind = "table"
	BlockKindList      BlockKind = "list"
	BlockKindRawText   BlockKind = "raw_text"
)

// Block is one structural unit of a reconstructed document. Exactly one of
// the content fields is populated, selected by Kind.
type Block struct {
	Kind    BlockKind  `json:"kind"`
	Level   int        `json:"level,omitempty"`   // Heading level, 1 = document title
	Text    string     `json:"text,omitempty"`    // Heading, paragraph, and raw text content
	Rows    [][]string `json:"rows,omitempty"`    // Table rows; first row is the header
	Ordered bool       `json:"ordered,omitempty"` // List ordering
	Items   []string   `json:"items,omitempty"`   // List items
}

// NewHeadingBlock creates a heading block. Level 1 is the document title,
// levels 2-6 map to section headers 1-5 of the source markup.
func NewHeadingBlock(level int, text string) Block {
	return Block{Kind: BlockKindHeading, Level: level, Text: text}
}

// NewParagraphBlock creates a plain text paragraph block
func NewParagraphBlock(text string) Block {
	return Block{Kind: BlockKindParagraph, Text: text}
}

// NewTableBlock creates a table block from reconstructed rows
func NewTableBlock(rows [][]string) Block {
	return Block{Kind: BlockKindTable, Rows: rows}
}

// NewListBlock creates an ordered or unordered list block
func NewListBlock(ordered bool, items []string) Block {
	return Block{Kind: BlockKindList, Ordered: ordered, Items: items}
}

// NewRawTextBlock creates a raw text block holding tag-stripped fallback content
func NewRawTextBlock(text string) Block {
	return Block{Kind: BlockKindRawText, Text: text}
}

// DocumentModel is an ordered sequence of blocks reconstructed from raw model
// markup. Order reflects extraction order, not necessarily document order.
// A model is built per request, rendered once, and discarded.
type DocumentModel struct {
	Blocks []Block `json:"blocks"`
}

// IsEmpty reports whether no recognized markup spans were found
func (m *DocumentModel) IsEmpty() bool {
	return m == nil || len(m.Blocks) == 0
}

// Append adds a block to the model
func (m *DocumentModel) Append(b Block) {
	m.Blocks = append(m.Blocks, b)
}

// CountKind returns the number of blocks of the given kind
func (m *DocumentModel) CountKind(kind BlockKind) int {
	n := 0
	for _, b := range m.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// Intent is the caller-declared purpose of a document request. It controls
// the renderer's truncation policy only, never parsing.
type Intent string

const (
	IntentExtraction Intent = "extraction"
	IntentAnalysis   Intent = "analysis"
)
