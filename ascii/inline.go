package ascii

import "strings"

// constrainedDelims maps a single-character constrained marker to its span
// variant.
var constrainedDelims = map[byte]string{
	'*': SpanStrong,
	'_': SpanEmphasis,
	'`': SpanMonospace,
	'#': SpanMark,
	'^': SpanSuperscript,
	'~': SpanSubscript,
}

type inlineScanner struct {
	p    *Parser
	text string
	pos  int
}

// parseInline scans text (raw line content, or a block's raw principal
// text) into an Inline tree, following precedence: escapes > passthrough >
// attribute substitution > macros/refs > constrained/unconstrained markup >
// plain text. Substitution is applied only to the plain-text runs that
// escape and passthrough leave behind, not to the whole input up front, so
// an escaped or passed-through "{name}" is never substituted.
func (p *Parser) parseInline(text string) []Inline {
	if text == "" {
		return nil
	}
	s := &inlineScanner{p: p, text: text}
	return s.scanUntil("")
}

// scanUntil consumes runs of inline content until text is exhausted or, when
// closer is non-empty, until closer is found unescaped at the current
// position (used for recursing into a delimited span's interior). On a
// closer match the scanner consumes it and returns.
func (s *inlineScanner) scanUntil(closer string) []Inline {
	var out []Inline
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Inline{Kind: InlineText, Text: s.p.attrs.Substitute(lit.String())})
			lit.Reset()
		}
	}

	for s.pos < len(s.text) {
		if closer != "" && strings.HasPrefix(s.text[s.pos:], closer) {
			s.pos += len(closer)
			flush()
			return out
		}

		c := s.text[s.pos]

		if c == '\\' && s.pos+1 < len(s.text) {
			flush()
			out = append(out, Inline{Kind: InlineText, Text: string(s.text[s.pos+1])})
			s.pos += 2
			continue
		}

		if strings.HasPrefix(s.text[s.pos:], "+++") {
			if end := strings.Index(s.text[s.pos+3:], "+++"); end >= 0 {
				flush()
				out = append(out, Inline{Kind: InlineText, Text: s.text[s.pos+3 : s.pos+3+end]})
				s.pos += 3 + end + 3
				continue
			}
		}

		if in, ok := s.tryBreak(); ok {
			flush()
			out = append(out, in)
			continue
		}

		if in, ok := s.tryMacroOrRef(); ok {
			flush()
			out = append(out, in)
			continue
		}

		if in, ok := s.tryMarkup(); ok {
			flush()
			out = append(out, in)
			continue
		}

		lit.WriteByte(c)
		s.pos++
	}

	flush()
	return out
}

// tryBreak recognizes a hard line break: a space then '+' at end of line.
func (s *inlineScanner) tryBreak() (Inline, bool) {
	if s.text[s.pos] != ' ' {
		return Inline{}, false
	}
	if s.pos+1 == len(s.text)-1 && s.text[s.pos+1] == '+' {
		s.pos = len(s.text)
		return Inline{Kind: InlineBreak}, true
	}
	if s.pos+2 <= len(s.text) && strings.HasPrefix(s.text[s.pos:], " +\n") {
		s.pos += 3
		return Inline{Kind: InlineBreak}, true
	}
	return Inline{}, false
}

func (s *inlineScanner) tryMacroOrRef() (Inline, bool) {
	rest := s.text[s.pos:]

	if strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://") {
		target, display, n, _ := splitTargetAttrs(rest, false)
		s.pos += n
		disp := display
		if disp == "" {
			disp = target
		}
		return Inline{Kind: InlineRef, Variant: RefLink, Target: target, Inlines: s.p.parseInline(disp)}, true
	}
	if strings.HasPrefix(rest, "link:") {
		target, display, n, _ := splitTargetAttrs(rest[len("link:"):], false)
		s.pos += len("link:") + n
		disp := display
		if disp == "" {
			disp = target
		}
		return Inline{Kind: InlineRef, Variant: RefLink, Target: target, Inlines: s.p.parseInline(disp)}, true
	}
	if strings.HasPrefix(rest, "image:") && !strings.HasPrefix(rest, "image::") {
		target, display, n, _ := splitTargetAttrs(rest[len("image:"):], false)
		s.pos += len("image:") + n
		return Inline{Kind: InlineRef, Variant: RefImage, Target: target, Inlines: s.p.parseInline(display)}, true
	}
	if strings.HasPrefix(rest, "footnote:[") {
		end := strings.IndexByte(rest[len("footnote:["):], ']')
		if end >= 0 {
			inner := rest[len("footnote:[") : len("footnote:[")+end]
			s.pos += len("footnote:[") + end + 1
			return Inline{Kind: InlineSpan, Variant: SpanFootnote, Inlines: s.p.parseInline(inner)}, true
		}
	}
	if strings.HasPrefix(rest, "<<") {
		end := strings.Index(rest, ">>")
		if end >= 0 {
			inner := rest[2:end]
			s.pos += end + 2
			id, display := inner, ""
			if comma := strings.IndexByte(inner, ','); comma >= 0 {
				id = strings.TrimSpace(inner[:comma])
				display = strings.TrimSpace(inner[comma+1:])
			}
			var disp []Inline
			if display != "" {
				disp = s.p.parseInline(display)
			} else {
				disp = []Inline{{Kind: InlineText, Text: id}}
			}
			return Inline{Kind: InlineRef, Variant: RefXref, Target: id, Inlines: disp}, true
		}
	}
	return Inline{}, false
}

// splitTargetAttrs splits a macro token's "target[attrs]" shape into its
// target and the raw interior of the brackets, before either is parsed any
// further, reporting how many bytes of s the split consumed. The target run
// stops at the first "[", space, or newline.
//
// If requireBrackets is false (inline macros: bare URLs, link:, image:), a
// target with no bracketed attribute list, or with an unclosed "[", is
// still a valid split (ok is true, attrsText empty, consumed stops at the
// unconsumed "["). If requireBrackets is true (block macros), a missing or
// unclosed "[" makes the whole split invalid.
func splitTargetAttrs(s string, requireBrackets bool) (target, attrsText string, consumed int, ok bool) {
	i := 0
	for i < len(s) && s[i] != '[' && s[i] != ' ' && s[i] != '\n' {
		i++
	}
	target = s[:i]
	if i < len(s) && s[i] == '[' {
		end := strings.IndexByte(s[i:], ']')
		if end >= 0 {
			return target, s[i+1 : i+end], i + end + 1, true
		}
	} else if !requireBrackets {
		return target, "", i, true
	}
	if requireBrackets {
		return "", "", 0, false
	}
	return target, "", i, true
}

// tryMarkup recognizes constrained and unconstrained single/double-char
// markup delimiters at the current position.
func (s *inlineScanner) tryMarkup() (Inline, bool) {
	c := s.text[s.pos]
	variant, ok := constrainedDelims[c]
	if !ok {
		return Inline{}, false
	}

	// Unconstrained (doubled) delimiter: permitted mid-word.
	if s.pos+1 < len(s.text) && s.text[s.pos+1] == c {
		doubled := s.text[s.pos : s.pos+2]
		closeAt := indexClosingDouble(s.text, s.pos+2, doubled)
		if closeAt >= 0 {
			s.pos += 2
			sub := &inlineScanner{p: s.p, text: s.text}
			sub.pos = s.pos
			inner := sub.scanUntil(doubled)
			s.pos = sub.pos
			return Inline{Kind: InlineSpan, Variant: variant, Inlines: inner}, true
		}
		return Inline{}, false
	}

	// Constrained: opener must be preceded by boundary and followed by
	// non-space; closer must be preceded by non-space and followed by
	// boundary.
	if !isBoundary(s.prevRune()) || s.pos+1 >= len(s.text) || s.text[s.pos+1] == ' ' {
		return Inline{}, false
	}
	closeAt := indexConstrainedClose(s.text, s.pos+1, c)
	if closeAt < 0 {
		return Inline{}, false
	}
	s.pos++
	sub := &inlineScanner{p: s.p, text: s.text}
	sub.pos = s.pos
	inner := sub.scanUntil(string(c))
	s.pos = sub.pos
	return Inline{Kind: InlineSpan, Variant: variant, Inlines: inner}, true
}

func (s *inlineScanner) prevRune() byte {
	if s.pos == 0 {
		return ' '
	}
	return s.text[s.pos-1]
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// indexConstrainedClose finds the next occurrence of c, starting at from,
// such that it is preceded by a non-space character and followed by a
// boundary (or end of text).
func indexConstrainedClose(text string, from int, c byte) int {
	for i := from; i < len(text); i++ {
		if text[i] != c {
			continue
		}
		if i == from {
			continue // closer must not immediately follow opener (non-space before)
		}
		if text[i-1] == ' ' || text[i-1] == '\t' {
			continue
		}
		if i+1 < len(text) && !isBoundary(text[i+1]) {
			continue
		}
		return i
	}
	return -1
}

func indexClosingDouble(text string, from int, doubled string) int {
	idx := strings.Index(text[from:], doubled)
	if idx < 0 {
		return -1
	}
	return from + idx
}
