package backend

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"

	"github.com/asciidoc-go/adoc/ascii"
)

// HTMLBook renders a Document to the htmlbook dialect, the default output
// backend. It is the one backend that exercises the syntax-highlighting and
// diagram toolchain.
type HTMLBook struct {
	opts Options
}

func NewHTMLBook(opts Options) *HTMLBook {
	if opts.CodeStyle == "" {
		opts.CodeStyle = "github"
	}
	if opts.AssetsDir == "" {
		opts.AssetsDir = "builtassets"
	}
	return &HTMLBook{opts: opts}
}

func (*HTMLBook) Name() string { return "htmlbook" }

func (b *HTMLBook) Render(w io.Writer, doc *ascii.Document) error {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\">")
	if doc.Header != nil {
		buf.WriteString("<title>")
		buf.WriteString(html.EscapeString(renderText(doc.Header.Title)))
		buf.WriteString("</title>")
	}
	buf.WriteString("</head>\n<body>\n")
	if doc.Header != nil {
		buf.WriteString("<h1>")
		b.renderInlines(&buf, doc.Header.Title)
		buf.WriteString("</h1>\n")
	}
	for _, blk := range doc.Blocks {
		if err := b.renderBlock(&buf, blk); err != nil {
			return err
		}
	}
	buf.WriteString("</body>\n</html>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func (b *HTMLBook) renderBlock(buf *bytes.Buffer, blk *ascii.Block) error {
	switch blk.Kind {
	case ascii.BlockComment:
		return nil
	case ascii.BlockParagraph:
		b.renderOpenTag(buf, "p", blk)
		b.renderInlines(buf, blk.Inlines)
		buf.WriteString("</p>\n")
	case ascii.BlockSection:
		tag := fmt.Sprintf("h%d", blk.Level+1)
		b.renderOpenTag(buf, "section", blk)
		fmt.Fprintf(buf, "<%s>", tag)
		b.renderInlines(buf, blk.Meta.Title)
		fmt.Fprintf(buf, "</%s>\n", tag)
		for _, c := range blk.Blocks {
			if err := b.renderBlock(buf, c); err != nil {
				return err
			}
		}
		buf.WriteString("</section>\n")
	case ascii.BlockOpen, ascii.BlockExample, ascii.BlockSidebar:
		tagName := map[ascii.BlockKind]string{
			ascii.BlockOpen: "div", ascii.BlockExample: "div", ascii.BlockSidebar: "aside",
		}[blk.Kind]
		b.renderOpenTag(buf, tagName, blk)
		for _, c := range blk.Blocks {
			if err := b.renderBlock(buf, c); err != nil {
				return err
			}
		}
		fmt.Fprintf(buf, "</%s>\n", tagName)
	case ascii.BlockQuote:
		b.renderOpenTag(buf, "blockquote", blk)
		for _, c := range blk.Blocks {
			if err := b.renderBlock(buf, c); err != nil {
				return err
			}
		}
		if attribution, ok := blk.Meta.Attr("attribution"); ok {
			buf.WriteString("<footer>")
			buf.WriteString(html.EscapeString(attribution))
			buf.WriteString("</footer>")
		}
		buf.WriteString("</blockquote>\n")
	case ascii.BlockAdmonition:
		fmt.Fprintf(buf, `<div class="admonition %s">`, blk.Variant)
		b.renderInlines(buf, blk.Inlines)
		buf.WriteString("</div>\n")
	case ascii.BlockListing, ascii.BlockLiteral:
		return b.renderListing(buf, blk)
	case ascii.BlockVerse:
		b.renderOpenTag(buf, "div", blk)
		buf.WriteString(`<pre class="verse">`)
		b.renderInlines(buf, blk.Inlines)
		buf.WriteString("</pre></div>\n")
	case ascii.BlockPass:
		buf.WriteString(blk.InnerText)
	case ascii.BlockList:
		return b.renderList(buf, blk)
	case ascii.BlockDList:
		return b.renderDList(buf, blk)
	case ascii.BlockTable:
		return b.renderTable(buf, blk)
	case ascii.BlockImage:
		b.renderImage(buf, blk)
	case ascii.BlockDiagram:
		return b.renderDiagram(buf, blk)
	case ascii.BlockBreak:
		if blk.Variant == ascii.BreakPage {
			buf.WriteString(`<div style="page-break-after: always;"></div>` + "\n")
		} else {
			buf.WriteString("<hr/>\n")
		}
	}
	return nil
}

func (b *HTMLBook) renderOpenTag(buf *bytes.Buffer, tag string, blk *ascii.Block) {
	fmt.Fprintf(buf, "<%s", tag)
	if blk.Meta.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, html.EscapeString(blk.Meta.ID))
	}
	if len(blk.Meta.Roles) > 0 {
		fmt.Fprintf(buf, ` class="%s"`, html.EscapeString(strings.Join(blk.Meta.Roles, " ")))
	}
	buf.WriteString(">")
	if len(blk.Meta.Title) > 0 {
		buf.WriteString(`<div class="title">`)
		b.renderInlines(buf, blk.Meta.Title)
		buf.WriteString("</div>")
	}
}

func (b *HTMLBook) renderList(buf *bytes.Buffer, blk *ascii.Block) error {
	tag := "ul"
	if blk.Variant == ascii.ListOrdered {
		tag = "ol"
	}
	fmt.Fprintf(buf, "<%s>\n", tag)
	for _, item := range blk.Items {
		buf.WriteString("<li>")
		b.renderInlines(buf, item.Principal)
		for _, c := range item.Blocks {
			if err := b.renderBlock(buf, c); err != nil {
				return err
			}
		}
		buf.WriteString("</li>\n")
	}
	fmt.Fprintf(buf, "</%s>\n", tag)
	return nil
}

func (b *HTMLBook) renderDList(buf *bytes.Buffer, blk *ascii.Block) error {
	buf.WriteString("<dl>\n")
	for _, item := range blk.Items {
		buf.WriteString("<dt>")
		b.renderInlines(buf, item.Terms)
		buf.WriteString("</dt>\n<dd>")
		b.renderInlines(buf, item.Principal)
		for _, c := range item.Blocks {
			if err := b.renderBlock(buf, c); err != nil {
				return err
			}
		}
		buf.WriteString("</dd>\n")
	}
	buf.WriteString("</dl>\n")
	return nil
}

func (b *HTMLBook) renderTable(buf *bytes.Buffer, blk *ascii.Block) error {
	buf.WriteString("<table>\n")
	for i, cell := range blk.Blocks {
		if blk.Cols > 0 && i%blk.Cols == 0 {
			if i > 0 {
				buf.WriteString("</tr>\n")
			}
			buf.WriteString("<tr>")
		}
		tag := "td"
		if cell.Variant == "header" {
			tag = "th"
		}
		fmt.Fprintf(buf, "<%s>", tag)
		b.renderInlines(buf, cell.Inlines)
		fmt.Fprintf(buf, "</%s>", tag)
	}
	if len(blk.Blocks) > 0 {
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("</table>\n")
	return nil
}

func (b *HTMLBook) renderImage(buf *bytes.Buffer, blk *ascii.Block) {
	alt, _ := blk.Meta.Positional(1)
	fmt.Fprintf(buf, `<img src="%s" alt="%s"/>`+"\n", html.EscapeString(blk.Target), html.EscapeString(alt))
}

// renderListing highlights source listings with chroma: resolve a lexer
// from the block's first role (language hint), else its language attribute
// ([source,go] gives "go"), else content sniffing, fall back to plaintext,
// and format with the surrounding <pre> suppressed so the backend controls
// wrapping markup.
func (b *HTMLBook) renderListing(buf *bytes.Buffer, blk *ascii.Block) error {
	content := blk.InnerText
	if content == "" {
		return nil
	}

	var lang string
	if len(blk.Meta.Roles) > 0 {
		lang = blk.Meta.Roles[0]
	} else if l, ok := blk.Meta.Positional(1); ok {
		lang = l
		if l == "source" {
			lang, _ = blk.Meta.Positional(2)
		}
	}

	lex := lexers.Get(lang)
	if lex == nil {
		lex = lexers.Analyse(content)
	}
	if lex == nil {
		lex = lexers.Fallback
	}
	lex = chroma.Coalesce(lex)

	style := styles.Get(b.opts.CodeStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true))

	it, err := lex.Tokenise(nil, content)
	if err != nil {
		return err
	}

	buf.WriteString(`<div class="listingblock">`)
	if len(blk.Meta.Title) > 0 {
		buf.WriteString(`<div class="title">`)
		b.renderInlines(buf, blk.Meta.Title)
		buf.WriteString("</div>")
	}
	buf.WriteString(`<pre class="highlight">`)
	if err := formatter.Format(buf, style, it); err != nil {
		return err
	}
	buf.WriteString("</pre></div>\n")
	return nil
}

// renderDiagram renders the diagram::d2[] block macro, MD5-caching generated
// SVGs into opts.AssetsDir so a rebuild of unchanged source skips the D2
// layout pass.
func (b *HTMLBook) renderDiagram(buf *bytes.Buffer, blk *ascii.Block) error {
	src := blk.InnerText
	hash := md5.Sum([]byte(src))
	name := fmt.Sprintf("d2_%x.svg", hash)
	path := filepath.Join(b.opts.AssetsDir, name)

	if _, err := os.Stat(path); err != nil {
		if err := renderD2(src, path); err != nil {
			return err
		}
	}
	fmt.Fprintf(buf, `<div class="imageblock"><img src="%s" alt="diagram"/></div>`+"\n", path)
	return nil
}

func renderD2(src, outPath string) error {
	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return err
	}
	layout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(context.Background(), src, &d2lib.CompileOptions{
		Layout: layout,
		Ruler:  ruler,
	})
	if err != nil {
		return err
	}
	svg, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, svg, 0o644)
}

func (b *HTMLBook) renderInlines(buf *bytes.Buffer, inlines []ascii.Inline) {
	for _, in := range inlines {
		b.renderInline(buf, in)
	}
}

func (b *HTMLBook) renderInline(buf *bytes.Buffer, in ascii.Inline) {
	switch in.Kind {
	case ascii.InlineText:
		buf.WriteString(html.EscapeString(in.Text))
	case ascii.InlineBreak:
		buf.WriteString("<br/>\n")
	case ascii.InlineSpan:
		tag := spanTag(in.Variant)
		fmt.Fprintf(buf, "<%s>", tag)
		b.renderInlines(buf, in.Inlines)
		fmt.Fprintf(buf, "</%s>", tag)
	case ascii.InlineRef:
		switch in.Variant {
		case ascii.RefLink:
			fmt.Fprintf(buf, `<a href="%s">`, html.EscapeString(in.Target))
			b.renderInlines(buf, in.Inlines)
			buf.WriteString("</a>")
		case ascii.RefXref:
			fmt.Fprintf(buf, `<a href="#%s">`, html.EscapeString(in.Target))
			b.renderInlines(buf, in.Inlines)
			buf.WriteString("</a>")
		case ascii.RefImage:
			fmt.Fprintf(buf, `<img src="%s" alt="%s"/>`, html.EscapeString(in.Target), html.EscapeString(renderText(in.Inlines)))
		}
	}
}

func spanTag(variant string) string {
	switch variant {
	case ascii.SpanStrong:
		return "strong"
	case ascii.SpanEmphasis:
		return "em"
	case ascii.SpanMonospace:
		return "code"
	case ascii.SpanMark:
		return "mark"
	case ascii.SpanSuperscript:
		return "sup"
	case ascii.SpanSubscript:
		return "sub"
	case ascii.SpanFootnote:
		return "aside"
	}
	return "span"
}

func renderText(inlines []ascii.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		if in.Kind == ascii.InlineText {
			b.WriteString(in.Text)
		} else {
			b.WriteString(renderText(in.Inlines))
		}
	}
	return b.String()
}
