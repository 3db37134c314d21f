package ascii

import (
	"reflect"
	"testing"
)

func TestParseHeaderAndParagraph(t *testing.T) {
	doc := ParseString("= T\n\nhello *world*", "t")
	if doc.Header == nil {
		t.Fatalf("expected header, got nil")
	}
	wantTitle := []Inline{{Kind: InlineText, Text: "T"}}
	if !reflect.DeepEqual(doc.Header.Title, wantTitle) {
		t.Errorf("header title = %#v, want %#v", doc.Header.Title, wantTitle)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockParagraph {
		t.Fatalf("blocks = %#v, want a single paragraph", doc.Blocks)
	}
	want := []Inline{
		{Kind: InlineText, Text: "hello "},
		{Kind: InlineSpan, Variant: SpanStrong, Inlines: []Inline{{Kind: InlineText, Text: "world"}}},
	}
	if !reflect.DeepEqual(doc.Blocks[0].Inlines, want) {
		t.Errorf("paragraph inlines = %#v, want %#v", doc.Blocks[0].Inlines, want)
	}
}

func TestParseListWithContinuationOpenBlock(t *testing.T) {
	src := "* a\n* b\n+\n--\nmore\n--\n"
	doc := ParseString(src, "t")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockList {
		t.Fatalf("blocks = %#v, want a single list", doc.Blocks)
	}
	list := doc.Blocks[0]
	if len(list.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(list.Items))
	}
	second := list.Items[1]
	if len(second.Blocks) != 1 || second.Blocks[0].Kind != BlockOpen {
		t.Fatalf("second item blocks = %#v, want a single open block", second.Blocks)
	}
	open := second.Blocks[0]
	if len(open.Blocks) != 1 || open.Blocks[0].Kind != BlockParagraph {
		t.Fatalf("open block children = %#v, want a single paragraph", open.Blocks)
	}
	wantInner := []Inline{{Kind: InlineText, Text: "more"}}
	if !reflect.DeepEqual(open.Blocks[0].Inlines, wantInner) {
		t.Errorf("nested paragraph inlines = %#v, want %#v", open.Blocks[0].Inlines, wantInner)
	}
}

func TestParseAttributeEntrySubstitution(t *testing.T) {
	doc := ParseString(":x: Y\n\nHello {x}!", "t")
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %#v, want 1", doc.Blocks)
	}
	want := []Inline{{Kind: InlineText, Text: "Hello Y!"}}
	if !reflect.DeepEqual(doc.Blocks[0].Inlines, want) {
		t.Errorf("inlines = %#v, want %#v", doc.Blocks[0].Inlines, want)
	}
}

func TestParseQuoteWithAttribution(t *testing.T) {
	src := "[quote, Alice]\n____\nHi\n____"
	doc := ParseString(src, "t")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockQuote {
		t.Fatalf("blocks = %#v, want a single quote", doc.Blocks)
	}
	q := doc.Blocks[0]
	if attribution, ok := q.Meta.Attr("attribution"); !ok || attribution != "Alice" {
		t.Errorf("attribution = %q, %v, want Alice", attribution, ok)
	}
	if len(q.Blocks) != 1 || q.Blocks[0].Kind != BlockParagraph {
		t.Fatalf("quote children = %#v, want a single paragraph", q.Blocks)
	}
	want := []Inline{{Kind: InlineText, Text: "Hi"}}
	if !reflect.DeepEqual(q.Blocks[0].Inlines, want) {
		t.Errorf("quote paragraph inlines = %#v, want %#v", q.Blocks[0].Inlines, want)
	}
}

func TestParseTable(t *testing.T) {
	src := "[cols=\"1,1\"]\n|===\n|A |B\n|C |D\n|===\n"
	doc := ParseString(src, "t")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockTable {
		t.Fatalf("blocks = %#v, want a single table", doc.Blocks)
	}
	tbl := doc.Blocks[0]
	if tbl.Cols != 2 {
		t.Errorf("cols = %d, want 2", tbl.Cols)
	}
	if len(tbl.Blocks) != 4 {
		t.Fatalf("cells = %d, want 4", len(tbl.Blocks))
	}
	wantTexts := []string{"A", "B", "C", "D"}
	for i, cell := range tbl.Blocks {
		if len(cell.Inlines) != 1 || cell.Inlines[0].Text != wantTexts[i] {
			t.Errorf("cell %d = %#v, want text %q", i, cell.Inlines, wantTexts[i])
		}
	}
}

func TestParseAdmonition(t *testing.T) {
	doc := ParseString("NOTE: be careful", "t")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockAdmonition {
		t.Fatalf("blocks = %#v, want a single admonition", doc.Blocks)
	}
	b := doc.Blocks[0]
	if b.Variant != AdmonitionNote {
		t.Errorf("variant = %q, want %q", b.Variant, AdmonitionNote)
	}
	want := []Inline{{Kind: InlineText, Text: "be careful"}}
	if !reflect.DeepEqual(b.Inlines, want) {
		t.Errorf("inlines = %#v, want %#v", b.Inlines, want)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc := ParseString("\n", "t")
	if doc.Header != nil {
		t.Errorf("header = %#v, want nil", doc.Header)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("blocks = %#v, want empty", doc.Blocks)
	}
}

func TestParseSectionLevelSkipDiagnosesButStillRenders(t *testing.T) {
	doc := ParseString("=== Section\n\ntext", "t")
	if len(doc.Diagnostics) == 0 {
		t.Errorf("expected a diagnostic for the level skip")
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockSection || doc.Blocks[0].Level != 2 {
		t.Fatalf("blocks = %#v, want a single level-2 section", doc.Blocks)
	}
}

func TestParseUnterminatedStrongIsLiteral(t *testing.T) {
	doc := ParseString("*strong", "t")
	want := []Inline{{Kind: InlineText, Text: "*strong"}}
	if !reflect.DeepEqual(doc.Blocks[0].Inlines, want) {
		t.Errorf("inlines = %#v, want %#v", doc.Blocks[0].Inlines, want)
	}
}

func TestParseUnsetAttributeLeavesLiteral(t *testing.T) {
	doc := ParseString("hello {nope}", "t")
	want := []Inline{{Kind: InlineText, Text: "hello {nope}"}}
	if !reflect.DeepEqual(doc.Blocks[0].Inlines, want) {
		t.Errorf("inlines = %#v, want %#v", doc.Blocks[0].Inlines, want)
	}
}
