package blot

import "github.com/dshills/blotsync/internal/surface"

// Context is threaded through Update and Optimize calls of one
// synchronization pass. It carries the pass's mark set.
type Context struct {
	marks map[surface.NodeID][]surface.Record
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{}
}

// Marked reports whether b is in the current mark set.
func (c *Context) Marked(b Blot) bool {
	if c.marks == nil || b == nil {
		return false
	}
	_, ok := c.marks[b.Node().ID()]
	return ok
}

func (c *Context) mark(b Blot) {
	id := b.Node().ID()
	if _, ok := c.marks[id]; !ok {
		c.marks[id] = nil
	}
}

func (c *Context) unmark(b Blot) {
	delete(c.marks, b.Node().ID())
}
