package ascii

import (
	"reflect"
	"testing"
)

func newTestParser() *Parser {
	return NewParser(nil, "test")
}

func TestParseInlineBasic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Inline
	}{
		{
			"plain text",
			"hello world",
			[]Inline{{Kind: InlineText, Text: "hello world"}},
		},
		{
			"strong",
			"hello *world*",
			[]Inline{
				{Kind: InlineText, Text: "hello "},
				{Kind: InlineSpan, Variant: SpanStrong, Inlines: []Inline{{Kind: InlineText, Text: "world"}}},
			},
		},
		{
			"emphasis",
			"_em_ text",
			[]Inline{
				{Kind: InlineSpan, Variant: SpanEmphasis, Inlines: []Inline{{Kind: InlineText, Text: "em"}}},
				{Kind: InlineText, Text: " text"},
			},
		},
		{
			"unconstrained strong mid-word",
			"foo**bar**baz",
			[]Inline{
				{Kind: InlineText, Text: "foo"},
				{Kind: InlineSpan, Variant: SpanStrong, Inlines: []Inline{{Kind: InlineText, Text: "bar"}}},
				{Kind: InlineText, Text: "baz"},
			},
		},
		{
			"escape",
			`\*`,
			[]Inline{{Kind: InlineText, Text: "*"}},
		},
		{
			"unterminated strong is literal",
			"*strong",
			[]Inline{{Kind: InlineText, Text: "*strong"}},
		},
		{
			"xref no display",
			"see <<sec1>>",
			[]Inline{
				{Kind: InlineText, Text: "see "},
				{Kind: InlineRef, Variant: RefXref, Target: "sec1", Inlines: []Inline{{Kind: InlineText, Text: "sec1"}}},
			},
		},
		{
			"xref with display",
			"<<sec1,Section One>>",
			[]Inline{
				{Kind: InlineRef, Variant: RefXref, Target: "sec1", Inlines: []Inline{{Kind: InlineText, Text: "Section One"}}},
			},
		},
		{
			"passthrough disables substitution",
			"+++*not strong*+++",
			[]Inline{{Kind: InlineText, Text: "*not strong*"}},
		},
	}

	p := newTestParser()
	for _, tt := range tests {
		got := p.parseInline(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: parseInline(%q) = %#v, want %#v", tt.name, tt.text, got, tt.want)
		}
	}
}

func TestParseInlineSubstitutionPrecedence(t *testing.T) {
	p := newTestParser()
	p.attrs.Set("x", "Y")

	tests := []struct {
		name string
		text string
		want []Inline
	}{
		{
			"plain text substitutes",
			"hello {x}",
			[]Inline{{Kind: InlineText, Text: "hello Y"}},
		},
		{
			"passthrough leaves attribute reference literal",
			"+++{x}+++",
			[]Inline{{Kind: InlineText, Text: "{x}"}},
		},
		{
			"escaped brace is never substituted",
			`\{x}`,
			[]Inline{
				{Kind: InlineText, Text: "{"},
				{Kind: InlineText, Text: "x}"},
			},
		},
	}
	for _, tt := range tests {
		got := p.parseInline(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: parseInline(%q) = %#v, want %#v", tt.name, tt.text, got, tt.want)
		}
	}
}
