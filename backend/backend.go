// Package backend renders a finished ascii.Document to a target output
// format. The parser is unaware of backends; each one walks the read-only
// tree and dispatches on kind however it prefers.
package backend

import (
	"io"

	"github.com/asciidoc-go/adoc/ascii"
)

// Backend renders a finished Document to w.
type Backend interface {
	Name() string
	Render(w io.Writer, doc *ascii.Document) error
}

// ByName resolves one of the CLI's recognized backend identifiers
// (htmlbook, docx, json).
func ByName(name string, opts Options) (Backend, error) {
	switch name {
	case "", "htmlbook":
		return NewHTMLBook(opts), nil
	case "json":
		return NewJSON(), nil
	case "docx":
		return NewDOCX(), nil
	}
	return nil, &UnknownBackendError{Name: name}
}

// UnknownBackendError reports a -b/--backend value the CLI does not
// recognize.
type UnknownBackendError struct{ Name string }

func (e *UnknownBackendError) Error() string {
	return "unknown backend: " + e.Name
}

// Options carries backend configuration sourced from adocconf.Config,
// kept separate from the parser's AttributeStore.
type Options struct {
	CodeStyle      string // chroma style name, default "github"
	DiagramBackend string // "d2" is the only one implemented
	AssetsDir      string // where generated diagram assets are cached
}
