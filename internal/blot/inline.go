package blot

import (
	"maps"

	"github.com/dshills/blotsync/internal/surface"
)

// InlineBlot is an inline container such as bold or italic text.
type InlineBlot struct {
	ParentBlot
}

// NewInlineBlot creates an inline of kind def over node and builds its
// children.
func NewInlineBlot(scroll Root, node *surface.Node, def *Definition) Blot {
	b := &InlineBlot{}
	b.initParent(b, scroll, node, def)
	b.allowed = isInlineLevel
	b.Build()
	return b
}

func isInlineLevel(b Blot) bool {
	return b.Scope().Matches(ScopeInline)
}

// Formats returns the formats the inline applies: its kind, unless it is
// the plain inline kind, plus its node's attributes.
func (b *InlineBlot) Formats() map[string]any {
	formats := make(map[string]any)
	for k, v := range b.node.Attributes() {
		formats[k] = v
	}
	if b.def.Name != inlineName {
		formats[b.def.Name] = true
	}
	return formats
}

// FormatAt removes the inline's own kind from the range when value is
// falsy and forwards other formats to the children.
func (b *InlineBlot) FormatAt(index, length int, name string, value any) {
	if name == b.Name() {
		if isFalsy(value) {
			if p, ok := b.pself.Isolate(index, length).(Parent); ok {
				p.Unwrap()
			}
		}
		return
	}
	b.ParentBlot.FormatAt(index, length, name, value)
}

// Optimize unwraps an inline that applies no format and merges a following
// inline that applies the same formats.
func (b *InlineBlot) Optimize(c *Context) {
	b.ParentBlot.Optimize(c)
	if b.parent == nil {
		return
	}
	formats := b.Formats()
	if len(formats) == 0 {
		b.pself.Unwrap()
		return
	}
	next, ok := b.next.(*InlineBlot)
	if ok && next.prev == b.self && maps.EqualFunc(formats, next.Formats(), func(x, y any) bool {
		return x == y
	}) {
		next.pself.MoveChildren(b.pself, nil)
		next.pself.Remove()
	}
}
