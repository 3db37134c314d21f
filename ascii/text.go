package ascii

import (
	"strings"

	"github.com/asciidoc-go/adoc/sliceedit"
)

// Line is one logical line of source: one physical line, except that a
// trailing backslash continues an attribute-entry value onto the next
// physical line.
type Line struct {
	Number  int
	Content string
}

// reader normalizes input into logical lines, preserving line numbers for
// diagnostics, and supports one level of lookahead/backtracking.
type reader struct {
	lines    []string
	pos      int // index of the next line to hand out, 0-based
	buffered *Line
}

// newReader normalizes src (BOM stripped, CRLF normalized to LF) and joins
// attribute-entry continuation lines before splitting into logical lines.
func newReader(src []byte) *reader {
	normalized := sliceedit.NormalizeSource(src)
	physical := strings.Split(string(normalized), "\n")

	// Join attribute-entry continuations: a line matching ":name: value\"
	// with a trailing backslash is spliced with the following physical
	// line. Continuation only applies to attribute entry lines.
	var logical []string
	for i := 0; i < len(physical); i++ {
		line := physical[i]
		for isAttributeEntryLine(line) && strings.HasSuffix(line, `\`) {
			line = strings.TrimSuffix(line, `\`)
			i++
			if i >= len(physical) {
				break
			}
			line = line + physical[i]
		}
		logical = append(logical, line)
	}

	return &reader{lines: logical}
}

func isAttributeEntryLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, ":") && strings.Contains(t, ":")
}

// peek returns the next logical line without consuming it, or nil at EOF.
func (r *reader) peek() *Line {
	if r.buffered != nil {
		return r.buffered
	}
	if r.pos >= len(r.lines) {
		return nil
	}
	l := &Line{Number: r.pos + 1, Content: r.lines[r.pos]}
	r.buffered = l
	return l
}

// next consumes and returns the next logical line, or nil at EOF.
func (r *reader) next() *Line {
	if r.buffered != nil {
		l := r.buffered
		r.buffered = nil
		r.pos++
		return l
	}
	if r.pos >= len(r.lines) {
		return nil
	}
	l := &Line{Number: r.pos + 1, Content: r.lines[r.pos]}
	r.pos++
	return l
}

// unread pushes back the single most recently read line. It panics if a line
// is already buffered; only one level of backtracking is supported.
func (r *reader) unread(l *Line) {
	if r.buffered != nil {
		panic("reader: unread called with a line already buffered")
	}
	r.buffered = l
	r.pos--
}

func (r *reader) atEOF() bool {
	return r.buffered == nil && r.pos >= len(r.lines)
}
