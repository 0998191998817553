package blot

import (
	"unicode/utf8"

	"github.com/dshills/blotsync/internal/surface"
)

// TextBlot is a leaf that caches the data of a surface text node.
type TextBlot struct {
	LeafBlot

	text string
}

// NewTextBlot creates a text leaf over node.
func NewTextBlot(scroll Root, node *surface.Node, def *Definition) Blot {
	t := &TextBlot{}
	t.initText(t, scroll, node, def)
	return t
}

func (t *TextBlot) initText(self Blot, scroll Root, node *surface.Node, def *Definition) {
	t.init(self, scroll, node, def)
	t.text = node.Data()
}

// Text returns the cached text.
func (t *TextBlot) Text() string { return t.text }

// Value returns the cached text.
func (t *TextBlot) Value() any { return t.text }

// Length returns the number of runes in the cached text.
func (t *TextBlot) Length() int { return utf8.RuneCountInString(t.text) }

// Index returns offset when node is the blot's own node, -1 otherwise.
func (t *TextBlot) Index(node *surface.Node, offset int) int {
	if node == t.node {
		return offset
	}
	return -1
}

// Position returns the blot's own node and index.
func (t *TextBlot) Position(index int) (*surface.Node, int) {
	return t.node, index
}

// DeleteAt removes [index, index+length) from the cache and the node.
func (t *TextBlot) DeleteAt(index, length int) {
	start := surface.ByteOffset(t.text, index)
	end := start + surface.ByteOffset(t.text[start:], length)
	t.text = t.text[:start] + t.text[end:]
	t.writeBack()
}

// InsertAt splices value into the text. With def set, it inserts a blot of
// kind value next to the split point instead.
func (t *TextBlot) InsertAt(index int, value string, def any) {
	if def != nil {
		t.LeafBlot.InsertAt(index, value, def)
		return
	}
	at := surface.ByteOffset(t.text, index)
	t.text = t.text[:at] + value + t.text[at:]
	t.writeBack()
}

// Split breaks the surface node at index and returns the blot for the tail,
// inserted as the next sibling. Without force, index 0 returns the blot and
// index Length returns the next sibling.
func (t *TextBlot) Split(index int, force bool) Blot {
	if !force {
		if index == 0 {
			return t.self
		}
		if index == t.Length() {
			return t.next
		}
	}
	tail, err := t.node.SplitText(index)
	if err != nil {
		panic(err)
	}
	after := must(t.scroll.Create(tail))
	t.parent.InsertBefore(after, t.next)
	t.text = t.node.Data()
	return after
}

// Update refreshes the cache when a character-data record targets the
// blot's node.
func (t *TextBlot) Update(records []surface.Record, _ *Context) {
	for _, r := range records {
		if r.Type == surface.CharacterData && r.Target == t.node {
			t.text = t.node.Data()
			return
		}
	}
}

// Optimize refreshes the cache, removes the blot when it is empty, and
// otherwise absorbs a following text blot.
func (t *TextBlot) Optimize(c *Context) {
	t.LeafBlot.Optimize(c)
	t.text = t.node.Data()
	if t.text == "" {
		t.self.Remove()
		return
	}
	next, ok := t.next.(*TextBlot)
	if ok && next.prev == t.self {
		t.self.InsertAt(t.self.Length(), next.Text(), nil)
		next.self.Remove()
	}
}

func (t *TextBlot) writeBack() {
	if err := t.node.SetData(t.text); err != nil {
		panic(err)
	}
}
