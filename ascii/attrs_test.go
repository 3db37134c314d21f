package ascii

import "testing"

func TestAttributeStoreSubstitute(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]string
		text string
		want string
	}{
		{"simple", map[string]string{"x": "Y"}, "Hello {x}!", "Hello Y!"},
		{"case folded", map[string]string{"Name": "World"}, "hi {NAME}", "hi World"},
		{"missing leaves literal", nil, "{nope}", "{nope}"},
		{"no braces", nil, "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAttributeStore()
			for k, v := range tt.set {
				s.Set(k, v)
			}
			got := s.Substitute(tt.text)
			if got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAttributeStoreSubstituteIdempotent(t *testing.T) {
	s := NewAttributeStore()
	s.Set("x", "Y")
	once := s.Substitute("Hello {x}!")
	twice := s.Substitute(once)
	if once != twice {
		t.Errorf("substitution not idempotent: %q then %q", once, twice)
	}
}

func TestAttributeStoreUnset(t *testing.T) {
	s := NewAttributeStore()
	s.Set("x", "Y")
	s.Unset("x")
	if _, ok := s.Lookup("x"); ok {
		t.Errorf("expected x to be unset")
	}
	if got := s.Substitute("{x}"); got != "{x}" {
		t.Errorf("Substitute after unset = %q, want literal", got)
	}
}

func TestAttributeStoreMissingDrop(t *testing.T) {
	s := NewAttributeStore()
	s.Missing = MissingDrop
	if got := s.Substitute("a{nope}b"); got != "ab" {
		t.Errorf("Substitute with MissingDrop = %q, want %q", got, "ab")
	}
}
