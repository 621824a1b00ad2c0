package document

// Heading is one markdown heading with its level and source line.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

// CodeBlock is one fenced code block.
type CodeBlock struct {
	Language string `json:"language"`
	Body     string `json:"body"`
	Line     int    `json:"line"`
}

// Link is one markdown link with its anchor text.
type Link struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	External bool   `json:"external"`
}

// BlockKind classifies one top-level block of markdown source.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockList
	BlockQuote
	BlockTable
	BlockOther
)

// Block is one top-level chunk of the raw body. Code, quote, table and
// other blocks are carried verbatim; paragraphs are reflowed to a single
// line when the document is reassembled.
type Block struct {
	Kind BlockKind
	Text string
	// Level is set for heading blocks only.
	Level int
}
