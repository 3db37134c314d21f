package backend

import (
	"encoding/json"
	"io"

	"github.com/asciidoc-go/adoc/ascii"
)

// JSON serializes the Document tree structurally: kind, variant, metadata,
// and child ordering are all preserved. This is plain struct-tag
// serialization, not a parsing problem, so it is the one backend built on
// the standard library rather than a third-party codec.
type JSON struct{}

func NewJSON() *JSON { return &JSON{} }

func (*JSON) Name() string { return "json" }

func (*JSON) Render(w io.Writer, doc *ascii.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonDocument(doc))
}

// DecodeJSON reconstructs a Document from the output of Render, used to
// exercise the round-trip testable property: parsing this Document's own
// JSON serialization back into a tree structurally equal to the original.
func DecodeJSON(r io.Reader) (*ascii.Document, error) {
	var jd jsonDoc
	if err := json.NewDecoder(r).Decode(&jd); err != nil {
		return nil, err
	}
	doc := &ascii.Document{Blocks: make([]*ascii.Block, len(jd.Blocks))}
	if jd.Header != nil {
		doc.Header = &ascii.Header{Title: fromJSONInlines(jd.Header.Title)}
	}
	for i, b := range jd.Blocks {
		doc.Blocks[i] = fromJSONBlock(b)
	}
	return doc, nil
}

func fromJSONBlock(b *jsonBlock) *ascii.Block {
	out := &ascii.Block{
		Kind:    blockKindOf(b.Kind),
		Variant: b.Variant,
		Level:   b.Level,
		Meta: ascii.Metadata{
			Roles:      b.Meta.Roles,
			Attributes: b.Meta.Attributes,
			Options:    b.Meta.Options,
			ID:         b.Meta.ID,
			Title:      fromJSONInlines(b.Meta.Title),
			Caption:    fromJSONInlines(b.Meta.Caption),
		},
		Inlines:   fromJSONInlines(b.Inlines),
		Cols:      b.Cols,
		Target:    b.Target,
		InnerText: b.InnerText,
	}
	for _, c := range b.Blocks {
		child := fromJSONBlock(c)
		child.Parent = out
		out.Blocks = append(out.Blocks, child)
	}
	for _, it := range b.Items {
		item := &ascii.ListItem{
			Marker:    it.Marker,
			Terms:     fromJSONInlines(it.Terms),
			Principal: fromJSONInlines(it.Principal),
		}
		for _, c := range it.Blocks {
			item.Blocks = append(item.Blocks, fromJSONBlock(c))
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func fromJSONInlines(inlines []jsonInline) []ascii.Inline {
	if len(inlines) == 0 {
		return nil
	}
	out := make([]ascii.Inline, len(inlines))
	for i, in := range inlines {
		out[i] = ascii.Inline{
			Kind:    inlineKindOf(in.Kind),
			Variant: in.Variant,
			Text:    in.Text,
			Target:  in.Target,
			Inlines: fromJSONInlines(in.Inlines),
		}
	}
	return out
}

func inlineKindOf(s string) ascii.InlineKind {
	switch s {
	case "span":
		return ascii.InlineSpan
	case "ref":
		return ascii.InlineRef
	case "linebreak":
		return ascii.InlineBreak
	}
	return ascii.InlineText
}

var blockKindByName = map[string]ascii.BlockKind{
	"paragraph": ascii.BlockParagraph, "listing": ascii.BlockListing, "literal": ascii.BlockLiteral,
	"verse": ascii.BlockVerse, "pass": ascii.BlockPass, "comment": ascii.BlockComment,
	"section": ascii.BlockSection, "open": ascii.BlockOpen, "example": ascii.BlockExample,
	"quote": ascii.BlockQuote, "sidebar": ascii.BlockSidebar, "admonition": ascii.BlockAdmonition,
	"list": ascii.BlockList, "dlist": ascii.BlockDList, "table": ascii.BlockTable,
	"image": ascii.BlockImage, "break": ascii.BlockBreak, "diagram": ascii.BlockDiagram,
}

func blockKindOf(s string) ascii.BlockKind {
	return blockKindByName[s]
}

type jsonDoc struct {
	Header *jsonHeader  `json:"header,omitempty"`
	Blocks []*jsonBlock `json:"blocks"`
}

type jsonHeader struct {
	Title []jsonInline `json:"title"`
}

type jsonMeta struct {
	Roles      []string     `json:"roles,omitempty"`
	Attributes []ascii.AttrEntry `json:"attributes,omitempty"`
	Options    []string     `json:"options,omitempty"`
	ID         string       `json:"id,omitempty"`
	Title      []jsonInline `json:"title,omitempty"`
	Caption    []jsonInline `json:"caption,omitempty"`
}

type jsonItem struct {
	Marker    string       `json:"marker,omitempty"`
	Terms     []jsonInline `json:"terms,omitempty"`
	Principal []jsonInline `json:"principal,omitempty"`
	Blocks    []*jsonBlock `json:"blocks,omitempty"`
}

type jsonBlock struct {
	Kind      string       `json:"kind"`
	Variant   string       `json:"variant,omitempty"`
	Level     int          `json:"level,omitempty"`
	Meta      jsonMeta     `json:"metadata"`
	Inlines   []jsonInline `json:"inlines,omitempty"`
	Blocks    []*jsonBlock `json:"blocks,omitempty"`
	Items     []*jsonItem  `json:"items,omitempty"`
	Cols      int          `json:"cols,omitempty"`
	Target    string       `json:"target,omitempty"`
	InnerText string       `json:"innerText,omitempty"`
}

type jsonInline struct {
	Kind    string       `json:"kind"`
	Variant string       `json:"variant,omitempty"`
	Text    string       `json:"text,omitempty"`
	Target  string       `json:"target,omitempty"`
	Inlines []jsonInline `json:"inlines,omitempty"`
}

func jsonDocument(doc *ascii.Document) jsonDoc {
	out := jsonDoc{Blocks: jsonBlocks(doc.Blocks)}
	if doc.Header != nil {
		out.Header = &jsonHeader{Title: jsonInlines(doc.Header.Title)}
	}
	return out
}

func jsonBlocks(blocks []*ascii.Block) []*jsonBlock {
	out := make([]*jsonBlock, len(blocks))
	for i, b := range blocks {
		out[i] = jsonBlockOf(b)
	}
	return out
}

func jsonBlockOf(b *ascii.Block) *jsonBlock {
	return &jsonBlock{
		Kind:    b.Kind.String(),
		Variant: b.Variant,
		Level:   b.Level,
		Meta: jsonMeta{
			Roles:      b.Meta.Roles,
			Attributes: b.Meta.Attributes,
			Options:    b.Meta.Options,
			ID:         b.Meta.ID,
			Title:      jsonInlines(b.Meta.Title),
			Caption:    jsonInlines(b.Meta.Caption),
		},
		Inlines:   jsonInlines(b.Inlines),
		Blocks:    jsonBlocks(b.Blocks),
		Items:     jsonItems(b.Items),
		Cols:      b.Cols,
		Target:    b.Target,
		InnerText: b.InnerText,
	}
}

func jsonItems(items []*ascii.ListItem) []*jsonItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]*jsonItem, len(items))
	for i, it := range items {
		out[i] = &jsonItem{
			Marker:    it.Marker,
			Terms:     jsonInlines(it.Terms),
			Principal: jsonInlines(it.Principal),
			Blocks:    jsonBlocks(it.Blocks),
		}
	}
	return out
}

func jsonInlines(inlines []ascii.Inline) []jsonInline {
	if len(inlines) == 0 {
		return nil
	}
	out := make([]jsonInline, len(inlines))
	for i, in := range inlines {
		out[i] = jsonInline{
			Kind:    inlineKindName(in.Kind),
			Variant: in.Variant,
			Text:    in.Text,
			Target:  in.Target,
			Inlines: jsonInlines(in.Inlines),
		}
	}
	return out
}

func inlineKindName(k ascii.InlineKind) string {
	switch k {
	case ascii.InlineText:
		return "text"
	case ascii.InlineSpan:
		return "span"
	case ascii.InlineRef:
		return "ref"
	case ascii.InlineBreak:
		return "linebreak"
	}
	return "unknown"
}
