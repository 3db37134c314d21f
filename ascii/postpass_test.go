package ascii

import (
	"reflect"
	"testing"
)

func TestResolveXrefsLeavesTargetUnchanged(t *testing.T) {
	inlines := []Inline{
		{Kind: InlineText, Text: "see "},
		{Kind: InlineRef, Variant: RefXref, Target: "known", Inlines: []Inline{{Kind: InlineText, Text: "known"}}},
		{Kind: InlineText, Text: " and "},
		{Kind: InlineRef, Variant: RefXref, Target: "missing", Inlines: []Inline{{Kind: InlineText, Text: "missing"}}},
	}
	before := make([]Inline, len(inlines))
	copy(before, inlines)

	resolveXrefs(inlines, map[string]bool{"known": true})

	if !reflect.DeepEqual(inlines, before) {
		t.Errorf("resolveXrefs mutated inlines: got %#v, want %#v", inlines, before)
	}
}

func TestResolveXrefsRecursesIntoSpans(t *testing.T) {
	inlines := []Inline{
		{Kind: InlineSpan, Variant: SpanStrong, Inlines: []Inline{
			{Kind: InlineRef, Variant: RefXref, Target: "deep", Inlines: []Inline{{Kind: InlineText, Text: "deep"}}},
		}},
	}
	// must not panic walking into the nested span's Inlines
	resolveXrefs(inlines, map[string]bool{})
	got := inlines[0].Inlines[0]
	if got.Target != "deep" {
		t.Errorf("nested xref target = %q, want %q", got.Target, "deep")
	}
}

func TestParseXrefInSectionTitleAndParagraph(t *testing.T) {
	src := "[#intro]\n== <<other>> Intro\n\nSee <<other,the other section>> for details.\n"
	doc := ParseString(src, "t")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockSection {
		t.Fatalf("blocks = %#v, want a single section", doc.Blocks)
	}
	section := doc.Blocks[0]
	if section.Meta.ID != "intro" {
		t.Errorf("section id = %q, want %q", section.Meta.ID, "intro")
	}
	if len(section.Meta.Title) == 0 || section.Meta.Title[0].Kind != InlineRef || section.Meta.Title[0].Target != "other" {
		t.Fatalf("section title = %#v, want a leading xref to %q", section.Meta.Title, "other")
	}

	if len(section.Blocks) != 1 || section.Blocks[0].Kind != BlockParagraph {
		t.Fatalf("section blocks = %#v, want a single paragraph", section.Blocks)
	}
	para := section.Blocks[0]
	var foundXref bool
	for _, in := range para.Inlines {
		if in.Kind == InlineRef && in.Variant == RefXref {
			foundXref = true
			if in.Target != "other" {
				t.Errorf("xref target = %q, want %q", in.Target, "other")
			}
			want := []Inline{{Kind: InlineText, Text: "the other section"}}
			if !reflect.DeepEqual(in.Inlines, want) {
				t.Errorf("xref display = %#v, want %#v", in.Inlines, want)
			}
		}
	}
	if !foundXref {
		t.Fatalf("no xref found in paragraph inlines %#v", para.Inlines)
	}
}

func TestParseXrefInListItemAndDListTerm(t *testing.T) {
	src := "term <<missing>>:: definition <<intro>>\n"
	doc := ParseString(src, "t")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockDList {
		t.Fatalf("blocks = %#v, want a single dlist", doc.Blocks)
	}
	dlist := doc.Blocks[0]
	if len(dlist.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(dlist.Items))
	}
	item := dlist.Items[0]

	var termXref, principalXref bool
	for _, in := range item.Terms {
		if in.Kind == InlineRef && in.Variant == RefXref && in.Target == "missing" {
			termXref = true
		}
	}
	for _, in := range item.Principal {
		if in.Kind == InlineRef && in.Variant == RefXref && in.Target == "intro" {
			principalXref = true
		}
	}
	if !termXref {
		t.Errorf("term inlines = %#v, want an xref to %q", item.Terms, "missing")
	}
	if !principalXref {
		t.Errorf("principal inlines = %#v, want an xref to %q", item.Principal, "intro")
	}
}
