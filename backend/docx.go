package backend

import (
	"errors"
	"io"

	"github.com/asciidoc-go/adoc/ascii"
)

// ErrDOCXUnimplemented is returned by DOCX.Render. There is no vendored DOCX
// writer to build on, so this backend exists only to satisfy the CLI's
// -b/--backend surface and fail clearly rather than silently producing a
// wrong file.
var ErrDOCXUnimplemented = errors.New("docx backend: not implemented")

// DOCX is a placeholder satisfying the Backend interface for the CLI's
// "docx" choice.
type DOCX struct{}

func NewDOCX() *DOCX { return &DOCX{} }

func (*DOCX) Name() string { return "docx" }

func (*DOCX) Render(w io.Writer, doc *ascii.Document) error {
	return ErrDOCXUnimplemented
}
