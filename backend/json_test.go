package backend

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/asciidoc-go/adoc/ascii"
)

// clearParents strips back-pointers so a decoded tree (which never sets
// Parent the same way the parser does for the document root) can be
// compared against the original with reflect.DeepEqual.
func clearParents(blocks []*ascii.Block) {
	for _, b := range blocks {
		b.Parent = nil
		clearParents(b.Blocks)
		for _, item := range b.Items {
			clearParents(item.Blocks)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	src := "= Title\n\n" +
		"[#s1]\n== Section\n\n" +
		"A paragraph with *strong* and <<s1,a link back>>.\n\n" +
		"* one\n* two\n+\n--\nnested open\n--\n\n" +
		"[cols=\"1,1\",%header]\n" +
		"|===\n|a|b\n|1|2\n|===\n"
	doc := ascii.ParseString(src, "t")

	var buf bytes.Buffer
	if err := NewJSON().Render(&buf, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	clearParents(doc.Blocks)
	clearParents(got.Blocks)

	if !reflect.DeepEqual(doc.Header, got.Header) {
		t.Errorf("header = %#v, want %#v", got.Header, doc.Header)
	}
	if !reflect.DeepEqual(doc.Blocks, got.Blocks) {
		t.Errorf("blocks =\n%#v\nwant\n%#v", got.Blocks, doc.Blocks)
	}
}

func TestJSONRoundTripEmptyDocument(t *testing.T) {
	doc := ascii.ParseString("", "t")

	var buf bytes.Buffer
	if err := NewJSON().Render(&buf, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if got.Header != nil {
		t.Errorf("header = %#v, want nil", got.Header)
	}
	if len(got.Blocks) != 0 {
		t.Errorf("blocks = %#v, want empty", got.Blocks)
	}
}
