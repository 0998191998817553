package blot

import (
	"fmt"

	"github.com/dshills/blotsync/internal/surface"
)

// ShadowBlot is the behaviour shared by every blot kind. Kinds embed it and
// pass themselves as self so that the shared methods dispatch to their
// overrides.
type ShadowBlot struct {
	self   Blot
	def    *Definition
	scroll Root
	node   *surface.Node

	parent Parent
	prev   Blot
	next   Blot
}

func (s *ShadowBlot) init(self Blot, scroll Root, node *surface.Node, def *Definition) {
	s.self = self
	s.scroll = scroll
	s.node = node
	s.def = def
}

func (s *ShadowBlot) base() *ShadowBlot { return s }

// Name returns the registered kind name.
func (s *ShadowBlot) Name() string { return s.def.Name }

// Scope returns the kind's scope.
func (s *ShadowBlot) Scope() Scope { return s.def.Scope }

// Definition returns the definition the blot was created from.
func (s *ShadowBlot) Definition() *Definition { return s.def }

// Node returns the owned surface node.
func (s *ShadowBlot) Node() *surface.Node { return s.node }

// Parent returns the owning parent, or nil.
func (s *ShadowBlot) Parent() Parent { return s.parent }

// Prev returns the previous sibling, or nil.
func (s *ShadowBlot) Prev() Blot { return s.prev }

// Next returns the next sibling, or nil.
func (s *ShadowBlot) Next() Blot { return s.next }

// Scroll returns the root of the tree.
func (s *ShadowBlot) Scroll() Root { return s.scroll }

// Length returns 1.
func (s *ShadowBlot) Length() int { return 1 }

// Offset returns the index of the blot relative to root.
func (s *ShadowBlot) Offset(root Blot) int {
	if root == nil && s.parent != nil {
		root = s.parent
	}
	if s.parent == nil || s.self == root {
		return 0
	}
	return s.parent.Children().Offset(s.self) + s.parent.Offset(root)
}

// Attach makes the blot discoverable through the registry.
func (s *ShadowBlot) Attach() {
	s.scroll.Registry().index(s.self)
}

// Detach unlinks the blot from its parent and the registry. The surface
// node is left where it is.
func (s *ShadowBlot) Detach() {
	if s.parent != nil {
		s.parent.RemoveChild(s.self)
	}
	s.scroll.Registry().unindex(s.self)
}

// Remove detaches the blot and removes its surface node.
func (s *ShadowBlot) Remove() {
	if err := s.node.Remove(); err != nil {
		panic(err)
	}
	s.self.Detach()
}

// Clone creates a blot of the same kind over a shallow copy of the node.
func (s *ShadowBlot) Clone() Blot {
	return must(s.scroll.Create(s.node.CloneShallow()))
}

// ReplaceWith puts replacement in the blot's place and removes the blot.
func (s *ShadowBlot) ReplaceWith(replacement Blot) Blot {
	if s.parent != nil {
		s.parent.InsertBefore(replacement, s.next)
		s.self.Remove()
	}
	return replacement
}

// DeleteAt removes [index, index+length).
func (s *ShadowBlot) DeleteAt(index, length int) {
	s.self.Isolate(index, length).Remove()
}

// FormatAt wraps [index, index+length) in a blot of kind name.
func (s *ShadowBlot) FormatAt(index, length int, name string, value any) {
	if isFalsy(value) || s.scroll.Query(name, ScopeBlot) == nil {
		return
	}
	target := s.self.Isolate(index, length)
	wrapper := mustParent(must(s.scroll.CreateNamed(name, value)))
	target.Wrap(wrapper)
}

// InsertAt inserts text at index, or a blot of kind value created with def
// when def is not nil.
func (s *ShadowBlot) InsertAt(index int, value string, def any) {
	var b Blot
	if def == nil {
		b = must(s.scroll.CreateNamed(textName, value))
	} else {
		b = must(s.scroll.CreateNamed(value, def))
	}
	ref := s.self.Split(index, false)
	s.parent.InsertBefore(b, ref)
}

// Split returns the blot itself at 0 and the next sibling otherwise.
func (s *ShadowBlot) Split(index int, _ bool) Blot {
	if index == 0 {
		return s.self
	}
	return s.next
}

// Isolate splits so that [index, index+length) is a blot of its own.
func (s *ShadowBlot) Isolate(index, length int) Blot {
	target := s.self.Split(index, false)
	if target == nil {
		panic(fmt.Errorf("%w: %s at %d", ErrIsolate, s.def.Name, index))
	}
	target.Split(length, false)
	return target
}

// Wrap moves the blot into wrapper, which takes its place.
func (s *ShadowBlot) Wrap(wrapper Parent) Parent {
	if s.parent != nil {
		s.parent.InsertBefore(wrapper, s.next)
	}
	wrapper.AppendChild(s.self)
	return wrapper
}

// Update does nothing.
func (s *ShadowBlot) Update([]surface.Record, *Context) {}

// Optimize does nothing.
func (s *ShadowBlot) Optimize(*Context) {}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	}
	return false
}
