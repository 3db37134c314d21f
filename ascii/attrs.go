package ascii

import (
	"regexp"
	"strings"
)

// MissingPolicy controls what an unresolved {name} attribute reference
// becomes during substitution.
type MissingPolicy int

const (
	// MissingLeaveLiteral keeps "{name}" verbatim in the output. Default.
	MissingLeaveLiteral MissingPolicy = iota
	// MissingWarn behaves like MissingLeaveLiteral; Substitute records no
	// warning for it.
	MissingWarn
	// MissingDrop removes the reference entirely, substituting an empty string.
	MissingDrop
)

// AttributeStore is the process-wide mutable mapping of document and section
// attributes consulted during scanning and inline substitution. Keys are
// case-folded per AsciiDoc rules; the store itself never allocates a new map
// per lookup.
type AttributeStore struct {
	values  map[string]string
	unset   map[string]bool
	Missing MissingPolicy
}

// NewAttributeStore returns an empty store with the default missing-attribute
// policy (leave the literal token in place).
func NewAttributeStore() *AttributeStore {
	return &AttributeStore{
		values: make(map[string]string),
		unset:  make(map[string]bool),
	}
}

func foldKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Set assigns value to name, folding the key. An entry in the body overrides
// one set in the header.
func (s *AttributeStore) Set(name, value string) {
	key := foldKey(name)
	delete(s.unset, key)
	s.values[key] = value
}

// Unset marks name as explicitly unset (from a ":!name:" entry), distinct
// from simply never having been set: once unset, Lookup treats it as missing
// even if a later Set of the same attribute store instance was never issued.
func (s *AttributeStore) Unset(name string) {
	key := foldKey(name)
	delete(s.values, key)
	s.unset[key] = true
}

// Lookup returns the current value of name and whether it is defined.
func (s *AttributeStore) Lookup(name string) (string, bool) {
	key := foldKey(name)
	if s.unset[key] {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

var reAttrRef = regexp.MustCompile(`\{([A-Za-z0-9_][A-Za-z0-9_-]*)\}`)

// Substitute replaces every {name} reference in text with the attribute's
// current value. Substitution is single-pass: the replacement text is never
// rescanned for further references, so re-substituting an already-substituted
// string with the same store is idempotent.
func (s *AttributeStore) Substitute(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	return reAttrRef.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := s.Lookup(name)
		if !ok {
			if s.Missing == MissingDrop {
				return ""
			}
			return m
		}
		return v
	})
}
