package ascii

import (
	"reflect"
	"testing"
)

func TestParseAttributeListNamed(t *testing.T) {
	m := parseAttributeList(`cols="1,1",%header`)
	if got, ok := m.Attr("cols"); !ok || got != "1,1" {
		t.Errorf("cols attr = %q, %v", got, ok)
	}
	if !m.HasOption("header") {
		t.Errorf("expected header option, got %#v", m.Options)
	}
}

func TestParseAttributeListShorthand(t *testing.T) {
	m := parseAttributeList(".warning#note1%incremental")
	if len(m.Roles) != 1 || m.Roles[0] != "warning" {
		t.Errorf("roles = %#v, want [warning]", m.Roles)
	}
	if m.ID != "note1" {
		t.Errorf("id = %q, want note1", m.ID)
	}
	if !m.HasOption("incremental") {
		t.Errorf("options = %#v, want incremental set", m.Options)
	}
}

func TestParseAttributeListPositional(t *testing.T) {
	m := parseAttributeList("quote, Alice")
	style, ok := m.Positional(1)
	if !ok || style != "quote" {
		t.Errorf("positional 1 = %q, %v, want quote", style, ok)
	}
	attribution, ok := m.Positional(2)
	if !ok || attribution != "Alice" {
		t.Errorf("positional 2 = %q, %v, want Alice", attribution, ok)
	}
}

func TestParseAttributeListOptsPlus(t *testing.T) {
	m := parseAttributeList("opts=header+autowidth")
	want := []string{"header", "autowidth"}
	if !reflect.DeepEqual(m.Options, want) {
		t.Errorf("options = %#v, want %#v", m.Options, want)
	}
}

func TestParseAttributeListQuotedCommaValue(t *testing.T) {
	m := parseAttributeList(`caption="Figure, one"`)
	if got, ok := m.Attr("caption"); !ok || got != "Figure, one" {
		t.Errorf("caption = %q, %v, want %q", got, ok, "Figure, one")
	}
}

func TestSplitAttrListRespectsQuotes(t *testing.T) {
	got := splitAttrList(`a="x,y",b=z`)
	want := []string{`a="x,y"`, "b=z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitAttrList = %#v, want %#v", got, want)
	}
}
