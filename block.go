package md2docx

// Format is a bit set of inline formatting flags carried by a Span.
type Format uint8

const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatUnderline
	FormatStrike
	FormatCode
	FormatMath
)

// Has reports whether all flags in mask are set.
func (f Format) Has(mask Format) bool { return f&mask == mask }

// Span is a run of text carrying one consistent set of formatting flags.
// Spans within a line never overlap in the source text.
type Span struct {
	Text   string
	Format Format
}

// BlockKind discriminates the Block variants.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindBulletItem
	KindNumberedItem
	KindTaskItem
	KindQuote
	KindCodeBlock
	KindTable
	KindDiagram
	KindRule
)

// String returns the kind name for logs and error messages.
func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindBulletItem:
		return "bullet"
	case KindNumberedItem:
		return "numbered"
	case KindTaskItem:
		return "task"
	case KindQuote:
		return "quote"
	case KindCodeBlock:
		return "code"
	case KindTable:
		return "table"
	case KindDiagram:
		return "diagram"
	case KindRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Block is one structural unit produced by the scanner. Only the
// fields relevant to its Kind are populated.
type Block struct {
	Kind BlockKind

	// Heading
	Level int // 1..4

	// Heading, Paragraph, BulletItem, NumberedItem, TaskItem: the raw
	// line content with the structural prefix stripped. Inline markers
	// are resolved later, at render time.
	Text string

	// TaskItem
	Checked bool

	// Quote: one entry per source line, blank lines preserved.
	// CodeBlock: the raw code lines. Diagram: the raw diagram source.
	Lines []string

	// CodeBlock
	Language string

	// Table: rows of cell texts, header first. Rows may be ragged;
	// Columns is the widest row.
	Rows    [][]string
	Columns int

	// Heading level 2 only: insert a blank spacer paragraph before
	// this heading at render time.
	SpacerBefore bool
}
