package ascii

import "strings"

// delimKind maps a delimiter character to the Block kind it opens.
func delimKind(c byte, length int) (BlockKind, bool) {
	if c == '-' && length == 2 {
		return BlockOpen, true
	}
	switch c {
	case '=':
		return BlockExample, true
	case '*':
		return BlockSidebar, true
	case '_':
		return BlockQuote, true // retyped to BlockVerse at open time if staged style says verse
	case '-':
		return BlockListing, true
	case '.':
		return BlockLiteral, true
	case '+':
		return BlockPass, true
	case '|':
		return BlockTable, true
	}
	return 0, false
}

func (p *Parser) handleDelimiter(tok Token) {
	if top := p.topFrame(); top != nil && (top.kind == frameDelim || top.kind == frameTable) &&
		top.delimChar == tok.DelimChar && top.delimLen == tok.DelimLen {
		p.closeDelim()
		return
	}

	kind, ok := delimKind(tok.DelimChar, tok.DelimLen)
	if !ok {
		p.structuralError(tok.Line.Number, "unrecognized delimiter %q", strings.Repeat(string(tok.DelimChar), tok.DelimLen))
		return
	}

	meta := p.consumeStagedMeta()

	if kind == BlockTable {
		b := &Block{Kind: BlockTable, Meta: meta, Line: tok.Line.Number}
		if colsStr, ok := meta.Attr("cols"); ok {
			b.Cols = countCols(colsStr)
		}
		p.registerID(b)
		p.appendChild(b)
		p.stack = append(p.stack, &frame{kind: frameTable, block: b, delimChar: tok.DelimChar, delimLen: tok.DelimLen})
		return
	}

	if kind == BlockQuote {
		if style, _ := meta.Positional(1); style == "verse" {
			kind = BlockVerse
		}
	}

	b := &Block{Kind: kind, Meta: meta, Line: tok.Line.Number}
	if kind == BlockQuote {
		if attribution, ok := meta.Positional(2); ok {
			b.Meta.SetAttr("attribution", attribution)
		} else if attribution, ok := meta.Positional(1); ok && attribution != "quote" {
			b.Meta.SetAttr("attribution", attribution)
		}
	}
	p.registerID(b)
	p.appendChild(b)
	p.stack = append(p.stack, &frame{kind: frameDelim, block: b, delimChar: tok.DelimChar, delimLen: tok.DelimLen})
}

// closeDelim pops the innermost delimited frame and finalizes its content:
// verbatim kinds become a single raw-text inline, verse lines are inline
// parsed with explicit breaks, other containers already hold parsed child
// blocks. The block was attached to its parent when it was opened, so this
// does not re-attach it.
func (p *Parser) closeDelim() {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.finalizeDelimFrame(top)
}

// finalizeDelimFrame converts a popped delimited frame's accumulated raw
// content into its block's final shape. Shared by closeDelim (normal close)
// and closeAll (EOF with an unterminated block).
func (p *Parser) finalizeDelimFrame(top *frame) {
	switch top.block.Kind {
	case BlockListing, BlockLiteral, BlockPass, BlockDiagram:
		raw := strings.Join(top.rawLines, "\n")
		top.block.InnerText = raw
		top.block.Inlines = []Inline{{Kind: InlineText, Text: raw}}
	case BlockVerse:
		raw := strings.Join(top.rawLines, "\n")
		top.block.Inlines = p.parseVerseLines(raw)
	case BlockTable:
		p.finalizeTable(top.block, top.rawLines)
	}
}

func (p *Parser) handleCommentDelimiter(tok Token) {
	if top := p.topFrame(); top != nil && top.kind == frameComment {
		p.stack = p.stack[:len(p.stack)-1] // discard
		return
	}
	p.stack = append(p.stack, &frame{kind: frameComment, delimChar: '/', delimLen: 4})
}

// countCols parses a cols="1,1,2" style attribute for its column count only;
// widths are intentionally discarded; only the cell count is used.
func countCols(spec string) int {
	if spec == "" {
		return 0
	}
	n := 1
	for _, c := range spec {
		if c == ',' {
			n++
		}
	}
	return n
}

// finalizeTable splits a table block's accumulated raw row text into cell
// Blocks, applying the header option to the first row when set.
func (p *Parser) finalizeTable(b *Block, rows []string) {
	var cells []string
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		for _, cell := range strings.Split(row, "|") {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			cells = append(cells, cell)
		}
	}
	if b.Cols == 0 && len(cells) > 0 {
		b.Cols = len(cells)
	}
	if b.Cols > 0 && len(cells)%b.Cols != 0 {
		p.structuralError(b.Line, "table cell count %d is not a multiple of cols=%d", len(cells), b.Cols)
	}
	header := b.Meta.HasOption("header")
	for i, cell := range cells {
		variant := ""
		if header && b.Cols > 0 && i < b.Cols {
			variant = "header"
		}
		b.Blocks = append(b.Blocks, &Block{
			Kind:    BlockParagraph,
			Variant: variant,
			Inlines: p.parseInline(cell),
			Parent:  b,
		})
	}
}

// --- list markers ---

func (p *Parser) handleListMarker(tok Token) {
	variant := ListUnordered
	depth := tok.ListDepth
	dlist := tok.DList
	if dlist {
		depth = 1
	} else if strings.HasPrefix(tok.ListMarker, ".") {
		variant = ListOrdered
	}

	for {
		top := p.topFrame()
		if top == nil || top.kind != frameList {
			break
		}
		if top.listDList == dlist && top.listVariant == variant && top.listDepth == depth {
			break
		}
		if top.listDepth < depth {
			break
		}
		p.closeFrameRaw()
	}

	top := p.topFrame()
	var listBlock *Block
	if top != nil && top.kind == frameList && top.listDList == dlist && top.listVariant == variant && top.listDepth == depth {
		listBlock = top.block
	} else {
		kind := BlockList
		if dlist {
			kind = BlockDList
		}
		listBlock = &Block{Kind: kind, Variant: variant, Line: tok.Line.Number, Meta: p.consumeStagedMeta()}
		if top != nil && top.kind == frameList && top.listDepth < depth && len(top.block.Items) > 0 {
			item := top.block.Items[len(top.block.Items)-1]
			item.Blocks = append(item.Blocks, listBlock)
			listBlock.Parent = top.block
		} else {
			p.appendChild(listBlock)
		}
		p.registerID(listBlock)
		p.stack = append(p.stack, &frame{kind: frameList, block: listBlock, listDepth: depth, listVariant: variant, listDList: dlist})
	}

	item := &ListItem{Marker: tok.ListMarker, Line: tok.Line.Number}
	if dlist {
		item.Terms = p.parseInline(tok.DListTerm)
	}
	listBlock.Items = append(listBlock.Items, item)

	p.para = &paraBuilder{target: targetListItem, item: item, line: tok.Line.Number}
	if strings.TrimSpace(tok.Rest) != "" {
		p.para.lines = append(p.para.lines, tok.Rest)
	}
}

// --- block macros ---

func (p *Parser) handleBlockMacro(tok Token) {
	meta := p.consumeStagedMeta()
	attrs := parseAttributeList(tok.AttrsText)
	meta.Roles = append(meta.Roles, attrs.Roles...)
	meta.Options = append(meta.Options, attrs.Options...)
	for _, e := range attrs.Attributes {
		meta.SetAttr(e.Key, e.Value)
	}
	if attrs.ID != "" {
		meta.ID = attrs.ID
	}

	switch tok.MacroName {
	case "image":
		b := &Block{Kind: BlockImage, Meta: meta, Line: tok.Line.Number, Target: tok.Target}
		p.registerID(b)
		p.appendChild(b)
	case "diagram":
		b := &Block{Kind: BlockDiagram, Meta: meta, Line: tok.Line.Number, Target: tok.Target}
		p.registerID(b)
		p.appendChild(b)
	default:
		p.warning(tok.Line.Number, "unsupported block macro %q", tok.MacroName)
	}
}
