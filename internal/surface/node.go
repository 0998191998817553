package surface

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Kind distinguishes element nodes from text nodes.
type Kind uint8

const (
	// ElementNode is a container node with a tag, attributes and children.
	ElementNode Kind = iota + 1

	// TextNode is a leaf node holding character data.
	TextNode
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// NodeID is the stable identity of a node. It never changes over the
// node's lifetime and is never reused.
type NodeID uuid.UUID

// String returns the canonical uuid form of the id.
func (id NodeID) String() string {
	return uuid.UUID(id).String()
}

// Node is one node of a surface tree.
type Node struct {
	id       NodeID
	kind     Kind
	tag      string
	data     string
	attrs    map[string]string
	doc      *Document
	parent   *Node
	children []*Node
}

// ID returns the node's stable identifier.
func (n *Node) ID() NodeID { return n.id }

// Kind returns whether the node is an element or text.
func (n *Node) Kind() Kind { return n.kind }

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool { return n.kind == TextNode }

// Tag returns the lower-cased element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Document returns the document that created the node.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil if the node is detached or a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Index returns the position of the node among its parent's children,
// or -1 if it has no parent.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() *Node {
	i := n.Index()
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// PreviousSibling returns the preceding sibling or nil.
func (n *Node) PreviousSibling() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Data returns the character data of a text node.
func (n *Node) Data() string { return n.data }

// Len returns the length of a text node's data in runes.
func (n *Node) Len() int { return utf8.RuneCountInString(n.data) }

// TextContent returns the concatenated data of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.kind == TextNode {
		return n.data
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		if c.kind == TextNode {
			sb.WriteString(c.data)
			continue
		}
		c.writeText(sb)
	}
}

// SetData replaces the data of a text node.
func (n *Node) SetData(data string) error {
	if n.kind != TextNode {
		return ErrNotText
	}
	old := n.data
	n.data = data
	n.doc.queue(Record{Type: CharacterData, Target: n, OldValue: old})
	return nil
}

// Attribute returns the value of an attribute.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attributes returns a copy of the node's attributes.
func (n *Node) Attributes() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// SetAttribute sets an attribute on an element.
func (n *Node) SetAttribute(name, value string) error {
	if n.kind != ElementNode {
		return ErrNotElement
	}
	old := n.attrs[name]
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	n.doc.queue(Record{Type: Attributes, Target: n, AttributeName: name, OldValue: old})
	return nil
}

// RemoveAttribute removes an attribute from an element. Removing an absent
// attribute is a no-op and queues nothing.
func (n *Node) RemoveAttribute(name string) error {
	if n.kind != ElementNode {
		return ErrNotElement
	}
	old, ok := n.attrs[name]
	if !ok {
		return nil
	}
	delete(n.attrs, name)
	n.doc.queue(Record{Type: Attributes, Target: n, AttributeName: name, OldValue: old})
	return nil
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref. A nil ref appends. If child is
// already in a tree it is removed from its old parent first, which queues
// a removal record on that parent.
func (n *Node) InsertBefore(child, ref *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if n.kind != ElementNode {
		return ErrNotElement
	}
	if child.doc != n.doc {
		return ErrWrongDocument
	}
	if ref != nil && ref.parent != n {
		return ErrNotChild
	}
	if child.Contains(n) {
		return ErrHierarchy
	}
	if ref == child {
		ref = child.NextSibling()
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}

	idx := len(n.children)
	if ref != nil {
		idx = ref.Index()
	}
	var prev *Node
	if idx > 0 {
		prev = n.children[idx-1]
	}

	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	child.parent = n

	n.doc.queue(Record{
		Type:            ChildList,
		Target:          n,
		Added:           []*Node{child},
		PreviousSibling: prev,
		NextSibling:     ref,
	})
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if child.parent != n {
		return ErrNotChild
	}
	idx := child.Index()
	prev := child.PreviousSibling()
	next := child.NextSibling()

	n.children = append(n.children[:idx], n.children[idx+1:]...)
	child.parent = nil

	n.doc.queue(Record{
		Type:            ChildList,
		Target:          n,
		Removed:         []*Node{child},
		PreviousSibling: prev,
		NextSibling:     next,
	})
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() error {
	if n.parent == nil {
		return nil
	}
	return n.parent.RemoveChild(n)
}

// ReplaceChild puts replacement where old was and detaches old.
func (n *Node) ReplaceChild(replacement, old *Node) error {
	if err := n.InsertBefore(replacement, old); err != nil {
		return err
	}
	return n.RemoveChild(old)
}

// SplitText breaks a text node in two at offset (in runes). The node keeps
// the head; the returned node holds the tail and, if n has a parent, is
// inserted right after n. The insertion is queued before the data change.
func (n *Node) SplitText(offset int) (*Node, error) {
	if n.kind != TextNode {
		return nil, ErrNotText
	}
	if offset < 0 || offset > utf8.RuneCountInString(n.data) {
		return nil, ErrIndexOutOfRange
	}
	at := ByteOffset(n.data, offset)

	tail := n.doc.CreateText(n.data[at:])
	if n.parent != nil {
		if err := n.parent.InsertBefore(tail, n.NextSibling()); err != nil {
			return nil, err
		}
	}
	if err := n.SetData(n.data[:at]); err != nil {
		return nil, err
	}
	return tail, nil
}

// ByteOffset returns the byte offset of the rune at index in s. Invalid
// bytes count as one rune each, matching utf8.RuneCountInString. An index
// past the end yields len(s).
func ByteOffset(s string, index int) int {
	off := 0
	for i := 0; i < index && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

// CloneShallow returns a detached copy of n with a fresh id, the same tag,
// attributes and data, and no children.
func (n *Node) CloneShallow() *Node {
	c := n.doc.newNode(n.kind, n.tag)
	c.data = n.data
	if len(n.attrs) > 0 {
		c.attrs = n.Attributes()
	}
	return c
}
