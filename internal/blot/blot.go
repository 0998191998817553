package blot

import "github.com/dshills/blotsync/internal/surface"

// Blot is a logical node that owns one surface node.
type Blot interface {
	// Name returns the registered kind name.
	Name() string
	// Scope returns the kind's scope.
	Scope() Scope
	// Definition returns the definition the blot was created from.
	Definition() *Definition
	// Node returns the owned surface node. It never changes.
	Node() *surface.Node

	Parent() Parent
	Prev() Blot
	Next() Blot
	Scroll() Root

	// Length is 1 for embeds, the rune count for text, and the sum of the
	// children for parents.
	Length() int
	// Offset returns the index of the blot relative to root, or to its
	// parent when root is nil.
	Offset(root Blot) int

	Attach()
	Detach()
	Remove()
	Clone() Blot
	ReplaceWith(replacement Blot) Blot

	DeleteAt(index, length int)
	FormatAt(index, length int, name string, value any)
	InsertAt(index int, value string, def any)

	// Split breaks the blot at index and returns the blot that starts
	// there. Without force, splitting at 0 returns the blot itself and
	// splitting at Length returns the next sibling.
	Split(index int, force bool) Blot
	// Isolate splits so that [index, index+length) is a blot of its own.
	Isolate(index, length int) Blot
	// Wrap moves the blot into wrapper, which takes its place.
	Wrap(wrapper Parent) Parent

	// Update reconciles the blot with records that target its surface node.
	Update(records []surface.Record, c *Context)
	// Optimize repairs the blot's invariants after changes. It is
	// idempotent.
	Optimize(c *Context)

	base() *ShadowBlot
}

// Parent is a blot that owns children.
type Parent interface {
	Blot

	Children() *ChildList
	AppendChild(child Blot)
	// InsertBefore moves child before ref, or to the end when ref is nil,
	// and places its surface node accordingly.
	InsertBefore(child, ref Blot)
	RemoveChild(child Blot)
	MoveChildren(target Parent, ref Blot)
	// SplitAfter moves every sibling after child into a clone of the parent
	// placed right after it.
	SplitAfter(child Blot) Parent
	// Unwrap moves the children into the parent's place and removes it.
	Unwrap()
	// Build creates blots for the surface node's existing children.
	Build()

	enforceAllowedChildren()
}

// Leaf is a blot without children.
type Leaf interface {
	Blot

	// Value returns the leaf's content: a string for text, a map of kind
	// name to value for embeds.
	Value() any
	// Index maps a surface position inside the leaf to an offset, or -1.
	Index(node *surface.Node, offset int) int
	// Position maps an offset to a surface position.
	Position(index int) (*surface.Node, int)
}

// Root is the top of a blot tree.
type Root interface {
	Parent

	Registry() *Registry
	Create(node *surface.Node) (Blot, error)
	CreateNamed(name string, value any) (Blot, error)
	Find(node *surface.Node, bubble bool) Blot
	Query(name string, scope Scope) *Definition
}

var (
	_ Leaf   = (*TextBlot)(nil)
	_ Leaf   = (*EmbedBlot)(nil)
	_ Parent = (*BlockBlot)(nil)
	_ Parent = (*InlineBlot)(nil)
	_ Root   = (*Scroll)(nil)
)
