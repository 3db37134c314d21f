package ascii

import "strings"

// frameKind tags what a stack frame closes on.
type frameKind int

const (
	frameSection frameKind = iota
	frameDelim             // delimited blocks other than tables, closed by a matching delimiter
	frameTable
	frameComment // //// ... ////, discarded on close
	frameList
)

type frame struct {
	kind frameKind
	block *Block

	sectionLevel int

	delimChar byte
	delimLen  int

	// rawLines accumulates opaque content for verbatim delimited blocks
	// (listing/literal/pass/diagram/verse) and for table row text between
	// delimiters, bypassing paragraph accumulation entirely.
	rawLines []string

	listDepth   int
	listVariant string
	listDList   bool
}

// paraTarget says where a paraBuilder's finished inlines are delivered.
type paraTarget int

const (
	targetBlock paraTarget = iota
	targetListItem
)

type paraBuilder struct {
	target paraTarget
	lines  []string
	line   int
	item   *ListItem
}

// Parser holds all mutable state for a single parse call: the
// line cursor, attribute store, context stack, staged metadata, and
// collected diagnostics. Nothing survives past one parse.
type Parser struct {
	r        *reader
	fileName string
	attrs    *AttributeStore

	diagnostics []*Diagnostic
	ids         map[string]bool

	stagedMeta   *Metadata
	pendingContinuation bool

	root   []*Block
	stack  []*frame
	para   *paraBuilder

	header *Header
	sawContent bool
	lastWasBlank bool
}

// NewParser returns a parser over src, named fileName for diagnostics.
func NewParser(src []byte, fileName string) *Parser {
	return &Parser{
		r:        newReader(src),
		fileName: fileName,
		attrs:    NewAttributeStore(),
		ids:      make(map[string]bool),
	}
}

// Parse runs the scan/parse/post-process pipeline to completion and returns
// the finished Document. Structural problems in the input never abort the
// parse; they become diagnostics on the Document.
func (p *Parser) Parse() *Document {
	for !p.r.atEOF() {
		line := p.r.next()
		verbatim, vc, vl := p.verbatimContext()
		tok := scanLine(line, verbatim, vc, vl)
		p.handleToken(tok)
	}
	p.closeAll()

	doc := &Document{
		Header:      p.header,
		Attrs:       p.attrs,
		Blocks:      p.root,
		Diagnostics: p.diagnostics,
	}
	runPostPass(doc, p.ids)
	return doc
}

// verbatimContext reports whether the innermost frame is a verbatim
// delimited block (listing, literal, pass, diagram, verse, comment) and, if so, the
// delimiter that closes it.
func (p *Parser) verbatimContext() (bool, byte, int) {
	if len(p.stack) == 0 {
		return false, 0, 0
	}
	top := p.stack[len(p.stack)-1]
	switch top.kind {
	case frameDelim:
		switch top.block.Kind {
		case BlockListing, BlockLiteral, BlockPass, BlockDiagram, BlockVerse:
			return true, top.delimChar, top.delimLen
		}
	case frameComment:
		return true, top.delimChar, top.delimLen
	}
	return false, 0, 0
}

func (p *Parser) handleToken(tok Token) {
	if tok.Kind != LineParagraphText && tok.Kind != LineBlank {
		p.closePara()
	}

	isFirstContent := !p.sawContent
	if tok.Kind != LineBlank {
		p.sawContent = true
	}
	wasBlank := p.lastWasBlank
	p.lastWasBlank = tok.Kind == LineBlank

	switch tok.Kind {
	case LineBlank:
		p.handleBlank(wasBlank)
	case LineCommentLine:
		// discarded
	case LineCommentDelimiter:
		p.handleCommentDelimiter(tok)
	case LineDelimiter:
		p.handleDelimiter(tok)
	case LineSectionTitle:
		p.handleSectionTitle(tok, isFirstContent)
	case LineAttributeEntry:
		p.handleAttributeEntry(tok)
	case LineAttributeList:
		p.stageAttrs(parseAttributeList(tok.AttrsText))
	case LineAnchor:
		p.stageAnchor(tok.AttrName)
	case LineListMarker:
		p.handleListMarker(tok)
	case LineContinuation:
		p.pendingContinuation = true
	case LineBlockMacro:
		p.handleBlockMacro(tok)
	case LineParagraphText:
		p.handleOpaqueOrParagraphText(tok)
	}
}

// handleOpaqueOrParagraphText routes a classified-as-plain-text line to raw
// accumulation when the innermost frame is a verbatim delimited block, a
// comment block, or a table's row text, and to ordinary paragraph
// accumulation otherwise.
func (p *Parser) handleOpaqueOrParagraphText(tok Token) {
	if top := p.topFrame(); top != nil {
		switch top.kind {
		case frameComment:
			return // discarded
		case frameTable:
			top.rawLines = append(top.rawLines, tok.Text)
			return
		case frameDelim:
			switch top.block.Kind {
			case BlockListing, BlockLiteral, BlockPass, BlockDiagram, BlockVerse:
				top.rawLines = append(top.rawLines, tok.Text)
				return
			}
		}
	}
	p.handleParagraphText(tok)
}

// handleBlank closes the in-progress paragraph/item text, if any, on the
// first blank; a second consecutive blank closes an open list.
func (p *Parser) handleBlank(wasBlank bool) {
	if p.para != nil {
		p.closePara()
		return
	}
	if wasBlank {
		if top := p.topFrame(); top != nil && top.kind == frameList {
			p.closeFrameRaw()
		}
	}
}

func (p *Parser) closePara() {
	if p.para == nil {
		return
	}
	b := p.para
	p.para = nil

	raw := strings.Join(b.lines, "\n")
	switch b.target {
	case targetListItem:
		b.item.Principal = p.parseInline(raw)
	case targetBlock:
		p.finishParagraphBlock(raw, b.line)
	}
}

// finishParagraphBlock builds the paragraph Block, applying admonition
// detection and staged-style retyping.
func (p *Parser) finishParagraphBlock(raw string, line int) {
	meta := p.consumeStagedMeta()

	if style, _ := meta.Positional(1); style != "" {
		switch style {
		case "quote":
			inner := &Block{Kind: BlockParagraph, Inlines: p.parseInline(raw), Line: line}
			q := &Block{Kind: BlockQuote, Meta: meta, Line: line, Blocks: []*Block{inner}}
			inner.Parent = q
			p.registerID(q)
			p.appendChild(q)
			return
		case "verse":
			v := &Block{Kind: BlockVerse, Meta: meta, Line: line, Inlines: p.parseVerseLines(raw)}
			p.registerID(v)
			p.appendChild(v)
			return
		case "source":
			lst := &Block{Kind: BlockListing, Meta: meta, Line: line, InnerText: raw, Inlines: []Inline{{Kind: InlineText, Text: raw}}}
			p.registerID(lst)
			p.appendChild(lst)
			return
		}
	}

	if variant, rest, ok := admonitionPrefix(raw); ok {
		b := &Block{Kind: BlockAdmonition, Variant: variant, Meta: meta, Line: line, Inlines: p.parseInline(rest)}
		p.registerID(b)
		p.appendChild(b)
		return
	}

	inlines := p.parseInline(raw)
	if len(inlines) == 0 {
		return
	}
	b := &Block{Kind: BlockParagraph, Meta: meta, Line: line, Inlines: inlines}
	p.registerID(b)
	p.appendChild(b)
}

// parseVerseLines inline-parses a verse block's raw text line by line,
// inserting an explicit hard break between lines so line structure survives
// rendering (verse preserves the source's line breaks).
func (p *Parser) parseVerseLines(raw string) []Inline {
	lines := strings.Split(raw, "\n")
	var out []Inline
	for i, l := range lines {
		out = append(out, p.parseInline(l)...)
		if i < len(lines)-1 {
			out = append(out, Inline{Kind: InlineBreak})
		}
	}
	return out
}

func (p *Parser) handleParagraphText(tok Token) {
	if p.para == nil {
		p.para = &paraBuilder{target: targetBlock, line: tok.Line.Number}
	}
	p.para.lines = append(p.para.lines, tok.Text)
}

func (p *Parser) handleAttributeEntry(tok Token) {
	if tok.AttrUnset {
		p.attrs.Unset(tok.AttrName)
		return
	}
	p.attrs.Set(tok.AttrName, p.attrs.Substitute(tok.AttrValue))
}

func (p *Parser) stageAttrs(m Metadata) {
	if p.stagedMeta == nil {
		p.stagedMeta = &Metadata{}
	}
	p.stagedMeta.Roles = append(p.stagedMeta.Roles, m.Roles...)
	p.stagedMeta.Options = append(p.stagedMeta.Options, m.Options...)
	for _, e := range m.Attributes {
		p.stagedMeta.SetAttr(e.Key, e.Value)
	}
	if m.ID != "" {
		p.stagedMeta.ID = m.ID
	}
}

func (p *Parser) stageAnchor(id string) {
	if p.stagedMeta == nil {
		p.stagedMeta = &Metadata{}
	}
	p.stagedMeta.ID = id
}

// consumeStagedMeta returns and clears the metadata staged by preceding
// attribute-list/anchor lines.
func (p *Parser) consumeStagedMeta() Metadata {
	if p.stagedMeta == nil {
		return Metadata{}
	}
	m := *p.stagedMeta
	p.stagedMeta = nil
	return m
}

func (p *Parser) registerID(b *Block) {
	if b.Meta.ID != "" {
		p.ids[b.Meta.ID] = true
	}
}

// --- context stack plumbing ---

func (p *Parser) topFrame() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) closeFrameRaw() *Block {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return top.block
}

func (p *Parser) placeFinished(b *Block) {
	if len(p.stack) == 0 {
		b.Parent = nil
		p.root = append(p.root, b)
		return
	}
	top := p.stack[len(p.stack)-1]
	b.Parent = top.block
	top.block.Blocks = append(top.block.Blocks, b)
}

// appendChild attaches b to whatever container currently owns new content:
// the last list item (if a continuation was just seen), or the innermost
// non-list frame, auto-closing any list frames that a non-continued block
// implicitly ends. A block is attached to its parent exactly once, here, at
// the moment it is created; closing a frame later only pops the stack and
// finalizes raw content, it never re-attaches the block.
func (p *Parser) appendChild(b *Block) {
	for {
		top := p.topFrame()
		if top == nil || top.kind != frameList {
			break
		}
		if p.pendingContinuation && len(top.block.Items) > 0 {
			item := top.block.Items[len(top.block.Items)-1]
			item.Blocks = append(item.Blocks, b)
			b.Parent = top.block
			p.pendingContinuation = false
			return
		}
		p.closeFrameRaw()
	}
	p.placeFinished(b)
}

func (p *Parser) nearestSectionLevel() int {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].kind == frameSection {
			return p.stack[i].sectionLevel
		}
	}
	return 0
}

func (p *Parser) closeSectionsAtLeast(level int) {
	for {
		top := p.topFrame()
		if top == nil {
			return
		}
		if top.kind == frameList {
			p.closeFrameRaw()
			continue
		}
		if top.kind == frameSection && top.sectionLevel >= level {
			p.closeFrameRaw()
			continue
		}
		return
	}
}

func (p *Parser) handleSectionTitle(tok Token, isFirstContent bool) {
	if tok.Level == 1 && isFirstContent && p.header == nil {
		p.header = &Header{Title: p.parseInline(tok.Text)}
		return
	}

	level := tok.Level - 1
	if level < 1 {
		level = 1
	}

	nearest := p.nearestSectionLevel()
	if level > nearest+1 {
		p.structuralError(tok.Line.Number, "section level %d skips from enclosing level %d", level, nearest)
	}

	p.closeSectionsAtLeast(level)

	meta := p.consumeStagedMeta()
	meta.Title = p.parseInline(tok.Text)
	b := &Block{Kind: BlockSection, Level: level, Meta: meta, Line: tok.Line.Number}
	p.registerID(b)
	p.appendChild(b)
	p.stack = append(p.stack, &frame{kind: frameSection, block: b, sectionLevel: level})
}

// closeAll pops whatever frames are still open at EOF. Every block was
// already attached to its parent when it was created, so this only finalizes
// raw content for unterminated delimited blocks; it never re-attaches.
func (p *Parser) closeAll() {
	p.closePara()
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		switch top.kind {
		case frameDelim, frameTable:
			p.structuralError(0, "unterminated %s block (opened with %s)", top.block.Kind, strings.Repeat(string(top.delimChar), top.delimLen))
			p.finalizeDelimFrame(top)
		}
	}
}
