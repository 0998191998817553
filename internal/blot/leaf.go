package blot

import "github.com/dshills/blotsync/internal/surface"

// LeafBlot is a blot without children.
type LeafBlot struct {
	ShadowBlot
}

// NewLeafBlot creates a leaf of kind def over node.
func NewLeafBlot(scroll Root, node *surface.Node, def *Definition) Blot {
	l := &LeafBlot{}
	l.init(l, scroll, node, def)
	return l
}

// Value returns a map of the kind name to true.
func (l *LeafBlot) Value() any {
	return map[string]any{l.def.Name: true}
}

// Index returns min(offset, 1) for positions inside the leaf, -1 otherwise.
func (l *LeafBlot) Index(node *surface.Node, offset int) int {
	if l.node.Contains(node) {
		return min(offset, 1)
	}
	return -1
}

// Position returns the position in the parent's node before (index 0) or
// after the leaf.
func (l *LeafBlot) Position(index int) (*surface.Node, int) {
	offset := l.node.Index()
	if index > 0 {
		offset++
	}
	return l.node.Parent(), offset
}

// EmbedBlot is a leaf of length 1 whose value comes from the node's
// attributes, such as an image.
type EmbedBlot struct {
	LeafBlot
}

// NewEmbedBlot creates an embed of kind def over node.
func NewEmbedBlot(scroll Root, node *surface.Node, def *Definition) Blot {
	e := &EmbedBlot{}
	e.init(e, scroll, node, def)
	return e
}

// Value returns a map of the kind name to the node's src attribute, or to
// true when it has none.
func (e *EmbedBlot) Value() any {
	if src, ok := e.node.Attribute("src"); ok {
		return map[string]any{e.def.Name: src}
	}
	return map[string]any{e.def.Name: true}
}

// Formats returns the node's attributes other than src.
func (e *EmbedBlot) Formats() map[string]any {
	formats := make(map[string]any)
	for k, v := range e.node.Attributes() {
		if k != "src" {
			formats[k] = v
		}
	}
	return formats
}
