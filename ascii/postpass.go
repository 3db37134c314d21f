package ascii

// runPostPass performs the single tree walk after parsing finishes:
// cross-reference resolution against collected ids. List continuations are
// not inspected here; the block parser attaches them as it goes.
//
// Section ids are already attached to their owning block during parsing;
// auto-generated ids are deliberately not produced.
func runPostPass(doc *Document, ids map[string]bool) {
	for _, b := range doc.Blocks {
		walkBlock(b, ids)
	}
}

func walkBlock(b *Block, ids map[string]bool) {
	resolveXrefs(b.Meta.Title, ids)
	resolveXrefs(b.Meta.Caption, ids)
	resolveXrefs(b.Inlines, ids)

	for _, child := range b.Blocks {
		walkBlock(child, ids)
	}
	for _, item := range b.Items {
		resolveXrefs(item.Terms, ids)
		resolveXrefs(item.Principal, ids)
		for _, child := range item.Blocks {
			walkBlock(child, ids)
		}
	}
}

// resolveXrefs walks an inline sequence in place. An xref to an unknown id
// is left exactly as parsed (target = the id text); the renderer is
// responsible for falling back to displaying the id. This function exists
// to make that resolution step explicit and to be the single place a future
// resolution policy (e.g. warning diagnostics) would hook in.
func resolveXrefs(inlines []Inline, ids map[string]bool) {
	for i := range inlines {
		in := &inlines[i]
		if in.Kind == InlineRef && in.Variant == RefXref {
			_ = ids[in.Target] // known-id check is a no-op here by design
		}
		resolveXrefs(in.Inlines, ids)
	}
}
