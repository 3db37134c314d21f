package ascii

import "strings"

// knownStyles are leading positional tokens in an attribute list that
// retype the following block rather than naming a role.
var knownStyles = map[string]bool{
	"quote":  true,
	"verse":  true,
	"source": true,
}

// parseAttributeList parses the interior of a "[...]" attribute list line
// into a Metadata fragment. Entries are
// comma-separated at the top level; quoted values may themselves contain
// commas. Three kinds of entries are recognized, in the order the original
// prototype's metadata parser uses: named (key=value or key="value"),
// shorthand role/id/option (a bare token possibly prefixed with "." "#" "%"),
// and plain positional values.
func parseAttributeList(raw string) Metadata {
	var m Metadata
	fields := splitAttrList(raw)
	pos := 0
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if i == 0 && knownStyles[f] {
			pos++
			m.SetAttr(positionalKey(pos), f)
			continue
		}
		if strings.HasPrefix(f, "opts=") {
			m.Options = append(m.Options, splitOpts(unquote(f[len("opts="):]))...)
			continue
		}
		if key, val, ok := splitNamedAttr(f); ok {
			m.SetAttr(key, val)
			continue
		}
		if consumeShorthand(&m, f) {
			continue
		}
		pos++
		m.SetAttr(positionalKey(pos), unquote(f))
	}
	return m
}

// consumeShorthand recognizes dot-separated role shorthand (".role1.role2"),
// a leading "#id" anchor shorthand, and "%option" toggle shorthand, applying
// each to m and reporting whether f was entirely shorthand syntax.
func consumeShorthand(m *Metadata, f string) bool {
	if !strings.ContainsAny(f, ".#%") {
		return false
	}
	first := f[0]
	if first != '.' && first != '#' && first != '%' {
		return false
	}

	rest := f
	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := indexAny(rest, ".#%")
			token := rest
			if end >= 0 {
				token = rest[:end]
				rest = rest[end:]
			} else {
				rest = ""
			}
			if token != "" {
				m.Roles = append(m.Roles, token)
			}
		case '#':
			rest = rest[1:]
			end := indexAny(rest, ".#%")
			token := rest
			if end >= 0 {
				token = rest[:end]
				rest = rest[end:]
			} else {
				rest = ""
			}
			if token != "" {
				m.ID = token
			}
		case '%':
			rest = rest[1:]
			end := indexAny(rest, ".#%")
			token := rest
			if end >= 0 {
				token = rest[:end]
				rest = rest[end:]
			} else {
				rest = ""
			}
			if token != "" {
				m.Options = append(m.Options, token)
			}
		default:
			return false
		}
	}
	return true
}

func indexAny(s, chars string) int {
	return strings.IndexAny(s, chars)
}

// splitNamedAttr recognizes "opts=a,b", "key=value" and "key=\"value\"". The
// caller has already split on top-level commas, so value here never itself
// contains an unescaped top-level comma.
func splitNamedAttr(f string) (key, value string, ok bool) {
	eq := strings.Index(f, "=")
	if eq <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(f[:eq])
	for _, r := range key {
		if !isAttrKeyRune(r) {
			return "", "", false
		}
	}
	value = unquote(strings.TrimSpace(f[eq+1:]))
	return key, value, true
}

// splitOpts splits an "opts=" value on "+", AsciiDoc's token-joiner for
// multi-valued attributes.
func splitOpts(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, "+") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func isAttrKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// splitAttrList splits raw on top-level commas, respecting double-quoted
// spans so a quoted value may itself contain a comma.
func splitAttrList(raw string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())

	// Special-case opts=/opts="a,b" already captured whole by the comma
	// splitter only when unquoted; handle a bare opts=a+b form (AsciiDoc
	// uses "+" to join option tokens) by expanding after the fact.
	var out []string
	for _, f := range fields {
		trimmed := strings.TrimSpace(f)
		if strings.HasPrefix(trimmed, "opts=") {
			out = append(out, trimmed) // kept whole; parseAttributeList special-cases it below
			continue
		}
		out = append(out, f)
	}
	return out
}
