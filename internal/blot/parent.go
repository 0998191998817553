package blot

import (
	"sort"

	"github.com/dshills/blotsync/internal/surface"
)

// ParentBlot is the behaviour shared by blots that own children.
type ParentBlot struct {
	ShadowBlot

	pself    Parent
	children ChildList

	// allowed reports whether a child kind may live directly under this
	// parent. nil allows everything.
	allowed func(child Blot) bool
}

func (p *ParentBlot) initParent(self Parent, scroll Root, node *surface.Node, def *Definition) {
	p.init(self, scroll, node, def)
	p.pself = self
}

// Children returns the child list.
func (p *ParentBlot) Children() *ChildList { return &p.children }

// Length returns the sum of the children's lengths.
func (p *ParentBlot) Length() int {
	total := 0
	for cur := p.children.Head(); cur != nil; cur = cur.Next() {
		total += cur.Length()
	}
	return total
}

// Build creates blots for the surface node's existing children. Children no
// definition can represent are skipped.
func (p *ParentBlot) Build() {
	nodes := p.node.Children()
	for i := len(nodes) - 1; i >= 0; i-- {
		child, err := p.attachedBlot(nodes[i])
		if err != nil {
			continue
		}
		p.pself.InsertBefore(child, p.children.Head())
	}
}

// attachedBlot returns the blot for node, creating one if needed. Elements
// without a definition are replaced by an inline wrapper holding their
// children.
func (p *ParentBlot) attachedBlot(node *surface.Node) (Blot, error) {
	root := p.scroll
	if b := root.Find(node, false); b != nil {
		return b, nil
	}
	b, err := root.Create(node)
	if err == nil {
		return b, nil
	}
	if node.IsText() {
		return nil, err
	}

	fallback, ferr := root.Registry().CreateScope(root, ScopeInline, nil)
	if ferr != nil {
		return nil, err
	}
	wrapper, ok := fallback.(Parent)
	if !ok {
		return nil, err
	}
	for _, child := range node.Children() {
		if err := wrapper.Node().AppendChild(child); err != nil {
			return nil, err
		}
	}
	if parent := node.Parent(); parent != nil {
		if err := parent.ReplaceChild(wrapper.Node(), node); err != nil {
			return nil, err
		}
	}
	wrapper.Build()
	wrapper.Attach()
	return wrapper, nil
}

// Attach makes the blot and its descendants discoverable.
func (p *ParentBlot) Attach() {
	p.ShadowBlot.Attach()
	p.children.ForEach(func(b Blot) { b.Attach() })
}

// Detach detaches the descendants, then the blot itself.
func (p *ParentBlot) Detach() {
	p.children.ForEach(func(b Blot) { b.Detach() })
	p.ShadowBlot.Detach()
}

// AppendChild moves child to the end.
func (p *ParentBlot) AppendChild(child Blot) {
	p.pself.InsertBefore(child, nil)
}

// InsertBefore moves child before ref. The surface node is only moved when
// it is not already in place.
func (p *ParentBlot) InsertBefore(child, ref Blot) {
	if cp := child.Parent(); cp != nil {
		cp.Children().Remove(child)
	}
	p.children.InsertBefore(child, ref)
	child.base().parent = p.pself

	var refNode *surface.Node
	if ref != nil {
		refNode = ref.Node()
	}
	node := child.Node()
	if node.Parent() != p.node || node.NextSibling() != refNode {
		if err := p.node.InsertBefore(node, refNode); err != nil {
			panic(err)
		}
	}
	child.Attach()
}

// RemoveChild unlinks child without touching the surface.
func (p *ParentBlot) RemoveChild(child Blot) {
	if !p.children.Contains(child) {
		return
	}
	p.children.Remove(child)
	child.base().parent = nil
}

// MoveChildren moves every child into target before ref.
func (p *ParentBlot) MoveChildren(target Parent, ref Blot) {
	p.children.ForEach(func(b Blot) { target.InsertBefore(b, ref) })
}

// ReplaceWith moves the children into replacement when it can hold them,
// then puts it in the blot's place.
func (p *ParentBlot) ReplaceWith(replacement Blot) Blot {
	if rp, ok := replacement.(Parent); ok {
		p.pself.MoveChildren(rp, nil)
	}
	return p.ShadowBlot.ReplaceWith(replacement)
}

// DeleteAt removes [index, index+length). Deleting the whole range removes
// the blot itself.
func (p *ParentBlot) DeleteAt(index, length int) {
	if index == 0 && length == p.pself.Length() {
		p.pself.Remove()
		return
	}
	p.children.ForEachAt(index, length, func(b Blot, offset, length int) {
		b.DeleteAt(offset, length)
	})
}

// FormatAt forwards the format to the children overlapping the range.
func (p *ParentBlot) FormatAt(index, length int, name string, value any) {
	p.children.ForEachAt(index, length, func(b Blot, offset, length int) {
		b.FormatAt(offset, length, name, value)
	})
}

// InsertAt forwards the insertion to the child at index, or appends a new
// blot past the end.
func (p *ParentBlot) InsertAt(index int, value string, def any) {
	if child, offset := p.children.Find(index, false); child != nil {
		child.InsertAt(offset, value, def)
		return
	}
	var b Blot
	if def == nil {
		b = must(p.scroll.CreateNamed(textName, value))
	} else {
		b = must(p.scroll.CreateNamed(value, def))
	}
	p.pself.AppendChild(b)
}

// Split moves everything from index on into a clone placed after the blot.
func (p *ParentBlot) Split(index int, force bool) Blot {
	if !force {
		if index == 0 {
			return p.self
		}
		if index == p.pself.Length() {
			return p.next
		}
	}
	after := mustParent(p.pself.Clone())
	if p.parent != nil {
		p.parent.InsertBefore(after, p.next)
	}
	p.children.ForEachAt(index, p.pself.Length(), func(b Blot, offset, _ int) {
		if split := b.Split(offset, force); split != nil {
			after.AppendChild(split)
		}
	})
	return after
}

// SplitAfter moves every sibling after child into a clone placed right
// after the blot.
func (p *ParentBlot) SplitAfter(child Blot) Parent {
	after := mustParent(p.pself.Clone())
	for child.Next() != nil {
		after.AppendChild(child.Next())
	}
	if p.parent != nil {
		p.parent.InsertBefore(after, p.next)
	}
	return after
}

// Unwrap moves the children into the blot's place and removes it.
func (p *ParentBlot) Unwrap() {
	if p.parent != nil {
		p.pself.MoveChildren(p.parent, p.next)
	}
	p.pself.Remove()
}

// Optimize enforces the allowed children and removes the blot when it has
// no children left.
func (p *ParentBlot) Optimize(*Context) {
	p.pself.enforceAllowedChildren()
	if p.children.Len() == 0 {
		p.pself.Remove()
	}
}

// Update reconciles the child list with child-list records targeting the
// blot's own node: removed nodes lose their blots, added nodes gain one at
// the matching position.
func (p *ParentBlot) Update(records []surface.Record, _ *Context) {
	var added, removed []*surface.Node
	for _, r := range records {
		if r.Target == p.node && r.Type == surface.ChildList {
			added = append(added, r.Added...)
			removed = append(removed, r.Removed...)
		}
	}

	rootNode := p.scroll.Node()
	for _, node := range removed {
		// Moved elsewhere in the tree: the insertion record handles it.
		if node.Parent() != nil && rootNode.Contains(node) {
			continue
		}
		b := p.scroll.Find(node, false)
		if b == nil {
			continue
		}
		if parent := b.Node().Parent(); parent == nil || parent == p.node {
			b.Detach()
		}
	}

	seen := make(map[surface.NodeID]bool, len(added))
	current := added[:0:0]
	for _, node := range added {
		if node.Parent() != p.node || seen[node.ID()] {
			continue
		}
		seen[node.ID()] = true
		current = append(current, node)
	}
	// Last first, so the blot of each node's next sibling already exists.
	sort.Slice(current, func(i, j int) bool {
		return current[i].Index() > current[j].Index()
	})

	for _, node := range current {
		var ref Blot
		if sibling := node.NextSibling(); sibling != nil {
			ref = p.scroll.Find(sibling, false)
		}
		b, err := p.attachedBlot(node)
		if err != nil {
			continue
		}
		if b.Parent() != p.pself || b.Next() != ref || b.Next() == nil {
			if bp := b.Parent(); bp != nil {
				bp.RemoveChild(b)
			}
			p.pself.InsertBefore(b, ref)
		}
	}
	p.pself.enforceAllowedChildren()
}

// enforceAllowedChildren unwraps or removes children the kind does not
// allow. A block found inside an inline splits the inline around it.
func (p *ParentBlot) enforceAllowedChildren() {
	if p.allowed == nil {
		return
	}
	for _, child := range p.children.Slice() {
		if child.Parent() != p.pself || p.allowed(child) {
			continue
		}
		if child.Scope() == ScopeBlockBlot {
			if child.Next() != nil {
				child.Parent().SplitAfter(child)
			}
			if child.Prev() != nil {
				child.Parent().SplitAfter(child.Prev())
			}
			child.Parent().Unwrap()
			return
		}
		if cp, ok := child.(Parent); ok {
			cp.Unwrap()
		} else {
			child.Remove()
		}
	}
}
