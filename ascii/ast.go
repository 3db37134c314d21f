package ascii

// BlockKind is the tag of the Block sum type. A single Block
// struct carries every kind's fields rather than a subclass hierarchy, per
// the design notes: most fields are zero for any given kind.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockListing
	BlockLiteral
	BlockVerse
	BlockPass
	BlockComment
	BlockSection
	BlockOpen
	BlockExample
	BlockQuote
	BlockSidebar
	BlockAdmonition
	BlockList
	BlockDList
	BlockTable
	BlockImage
	BlockBreak
	BlockDiagram
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockListing:
		return "listing"
	case BlockLiteral:
		return "literal"
	case BlockVerse:
		return "verse"
	case BlockPass:
		return "pass"
	case BlockComment:
		return "comment"
	case BlockSection:
		return "section"
	case BlockOpen:
		return "open"
	case BlockExample:
		return "example"
	case BlockQuote:
		return "quote"
	case BlockSidebar:
		return "sidebar"
	case BlockAdmonition:
		return "admonition"
	case BlockList:
		return "list"
	case BlockDList:
		return "dlist"
	case BlockTable:
		return "table"
	case BlockImage:
		return "image"
	case BlockBreak:
		return "break"
	case BlockDiagram:
		return "diagram"
	}
	return "unknown"
}

// Admonition variants.
const (
	AdmonitionNote      = "note"
	AdmonitionTip       = "tip"
	AdmonitionWarning   = "warning"
	AdmonitionCaution   = "caution"
	AdmonitionImportant = "important"
)

// List variants.
const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// Break variants.
const (
	BreakPage      = "page"
	BreakThematic  = "thematic"
)

// AttrEntry is one entry of a Metadata.Attributes ordered mapping. Positional
// entries use keys "positional_1".."positional_n".
type AttrEntry struct {
	Key   string
	Value string
}

// Metadata is the flat record shared by every Block kind.
type Metadata struct {
	Roles      []string
	Attributes []AttrEntry
	Options    []string
	ID         string
	Title      []Inline
	Caption    []Inline
}

// Attr looks up a named (or positional_N) attribute.
func (m *Metadata) Attr(key string) (string, bool) {
	for _, e := range m.Attributes {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// SetAttr appends or overwrites a named attribute, preserving insertion order
// for new keys.
func (m *Metadata) SetAttr(key, value string) {
	for i, e := range m.Attributes {
		if e.Key == key {
			m.Attributes[i].Value = value
			return
		}
	}
	m.Attributes = append(m.Attributes, AttrEntry{Key: key, Value: value})
}

// HasOption reports whether opts= (or a %-prefixed shorthand) set token.
func (m *Metadata) HasOption(token string) bool {
	for _, o := range m.Options {
		if o == token {
			return true
		}
	}
	return false
}

// Positional returns the nth (1-based) positional attribute.
func (m *Metadata) Positional(n int) (string, bool) {
	return m.Attr(positionalKey(n))
}

func positionalKey(n int) string {
	const digits = "0123456789"
	if n < 10 {
		return "positional_" + string(digits[n])
	}
	// n is always small in practice (attribute lists are short); a generic
	// itoa would be overkill for this shape.
	hi, lo := n/10, n%10
	return "positional_" + string(digits[hi]) + string(digits[lo])
}

// ListItem is a single entry of a list or dlist. Terms is
// populated only for dlistItem entries; Blocks holds blocks the source
// attached with a continuation and lists nested under the item at a deeper
// marker depth.
type ListItem struct {
	Marker    string
	Terms     []Inline
	Principal []Inline
	Blocks    []*Block
	Line      int
}

// Block is the tagged-variant tree node for every block kind.
type Block struct {
	Kind    BlockKind
	Variant string
	Level   int // sections only: 1-5
	Meta    Metadata
	Line    int

	Inlines []Inline // leaf blocks

	Blocks []*Block // container blocks, tables (flat cells), diagram explanations

	Items []*ListItem // list, dlist

	Cols int // table: column count

	Target    string   // image, diagram: path/source reference
	InnerText string   // listing/literal/pass: raw verbatim content; empty for diagram blocks, whose body is not read

	Parent *Block // nil for top-level blocks; used by post-pass and continuation attachment
}

// InlineKind is the tag of the Inline sum type.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineSpan
	InlineRef
	InlineBreak
)

// Span variants.
const (
	SpanStrong      = "strong"
	SpanEmphasis    = "emphasis"
	SpanMonospace   = "monospace"
	SpanMark        = "mark"
	SpanSuperscript = "superscript"
	SpanSubscript   = "subscript"
	SpanFootnote    = "footnote"
)

// Ref variants.
const (
	RefLink  = "link"
	RefXref  = "xref"
	RefImage = "image"
)

// Inline is the tagged-variant node for inline content.
type Inline struct {
	Kind    InlineKind
	Variant string
	Text    string   // text kind: the literal run
	Target  string   // ref kind: link URL / xref id / image path
	Inlines []Inline // span, ref (display text); for an inline image, its alt text
}

// Header is the optional document title line.
type Header struct {
	Title []Inline
}

// Document is the root entity of a parse. It is mutable only
// during parsing and frozen once post-pass completes.
type Document struct {
	Header *Header
	Attrs  *AttributeStore
	Blocks []*Block

	Diagnostics []*Diagnostic
}
