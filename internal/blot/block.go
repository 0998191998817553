package blot

import "github.com/dshills/blotsync/internal/surface"

// BlockBlot is a block-level container such as a paragraph.
type BlockBlot struct {
	ParentBlot
}

// NewBlockBlot creates a block of kind def over node and builds its
// children.
func NewBlockBlot(scroll Root, node *surface.Node, def *Definition) Blot {
	b := &BlockBlot{}
	b.initParent(b, scroll, node, def)
	b.Build()
	return b
}

// FormatAt applies block-level kinds to the whole block and forwards
// everything else to the children.
func (b *BlockBlot) FormatAt(index, length int, name string, value any) {
	if b.scroll.Query(name, ScopeBlockBlot) != nil {
		b.Format(name, value)
		return
	}
	b.ParentBlot.FormatAt(index, length, name, value)
}

// Format turns the block into kind name, or back into the default block
// when value is falsy and the block is of kind name.
func (b *BlockBlot) Format(name string, value any) {
	if b.scroll.Query(name, ScopeBlockBlot) == nil {
		return
	}
	switch {
	case isFalsy(value) && name == b.Name() && name != defaultBlockName:
		b.pself.ReplaceWith(must(b.scroll.CreateNamed(defaultBlockName, nil)))
	case !isFalsy(value) && name != b.Name():
		b.pself.ReplaceWith(must(b.scroll.CreateNamed(name, value)))
	}
}

// InsertAt inserts text and inline kinds into the block. Block-level kinds
// split the block and go between the halves.
func (b *BlockBlot) InsertAt(index int, value string, def any) {
	if def == nil || b.scroll.Query(value, ScopeInline) != nil {
		b.ParentBlot.InsertAt(index, value, def)
		return
	}
	after := b.pself.Split(index, false)
	inserted := must(b.scroll.CreateNamed(value, def))
	b.parent.InsertBefore(inserted, after)
}
