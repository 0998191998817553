package mirror

import (
	"fmt"
	"strings"

	"github.com/dshills/blotsync/internal/logging"
	"github.com/dshills/blotsync/internal/surface"
)

// DefaultBlockTag is the element created for each paragraph.
const DefaultBlockTag = "p"

// Stats counts the paragraphs touched by one Apply.
type Stats struct {
	Kept     int
	Updated  int
	Inserted int
	Removed  int
}

// Changed reports whether Apply modified the surface.
func (s Stats) Changed() bool {
	return s.Updated+s.Inserted+s.Removed > 0
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("kept=%d updated=%d inserted=%d removed=%d", s.Kept, s.Updated, s.Inserted, s.Removed)
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithBlockTag sets the element tag used for new paragraphs.
func WithBlockTag(tag string) Option {
	return func(m *Mirror) {
		if tag != "" {
			m.blockTag = tag
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Mirror) {
		if l != nil {
			m.logger = l.WithComponent("mirror")
		}
	}
}

// Mirror maps paragraphs of text onto the children of a surface node.
type Mirror struct {
	root     *surface.Node
	blockTag string
	logger   *logging.Logger
}

// New creates a mirror writing under root.
func New(root *surface.Node, opts ...Option) (*Mirror, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	m := &Mirror{
		root:     root,
		blockTag: DefaultBlockTag,
		logger:   logging.Null,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Root returns the node the mirror writes under.
func (m *Mirror) Root() *surface.Node {
	return m.root
}

// Paragraphs splits content into paragraphs. Lines inside a paragraph are
// joined with "\n" and stripped of trailing carriage returns and spaces.
func Paragraphs(content string) []string {
	var paras []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, "\n"))
			cur = cur[:0]
		}
	}
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return paras
}

// Current returns the paragraphs presently under the root.
func (m *Mirror) Current() []string {
	children := m.root.Children()
	paras := make([]string, len(children))
	for i, child := range children {
		paras[i] = child.TextContent()
	}
	return paras
}

// Apply edits the surface so that it holds the paragraphs of content.
// A paragraph replaced in place keeps its element and text node and only
// changes the text.
func (m *Mirror) Apply(content string) (Stats, error) {
	var stats Stats

	blocks := m.root.Children()
	want := Paragraphs(content)
	script := Diff(m.Current(), want)

	next := 0 // first old block not yet consumed
	insertBefore := func(text string) error {
		var ref *surface.Node
		if next < len(blocks) {
			ref = blocks[next]
		}
		block := m.newBlock(text)
		return m.root.InsertBefore(block, ref)
	}

	for i := 0; i < len(script); {
		e := script[i]
		if e.Op == OpEqual {
			stats.Kept++
			next++
			i++
			continue
		}

		var dels, ins []Edit
		for ; i < len(script) && script[i].Op == OpDelete; i++ {
			dels = append(dels, script[i])
		}
		for ; i < len(script) && script[i].Op == OpInsert; i++ {
			ins = append(ins, script[i])
		}

		paired := min(len(dels), len(ins))
		for j := range paired {
			if err := setText(m.root.Document(), blocks[dels[j].OldIndex], want[ins[j].NewIndex]); err != nil {
				return stats, fmt.Errorf("updating paragraph %d: %w", ins[j].NewIndex, err)
			}
			stats.Updated++
			next++
		}
		for _, d := range dels[paired:] {
			if err := blocks[d.OldIndex].Remove(); err != nil {
				return stats, fmt.Errorf("removing paragraph %d: %w", d.OldIndex, err)
			}
			stats.Removed++
			next++
		}
		for _, in := range ins[paired:] {
			if err := insertBefore(want[in.NewIndex]); err != nil {
				return stats, fmt.Errorf("inserting paragraph %d: %w", in.NewIndex, err)
			}
			stats.Inserted++
		}
	}

	if stats.Changed() {
		m.logger.Debug("applied %s", stats)
	}
	return stats, nil
}

func (m *Mirror) newBlock(text string) *surface.Node {
	doc := m.root.Document()
	block := doc.CreateElement(m.blockTag)
	_ = block.AppendChild(doc.CreateText(text))
	return block
}

// setText replaces the text of node. A block holding exactly one text node
// keeps that node so the change surfaces as a character-data record.
func setText(doc *surface.Document, node *surface.Node, text string) error {
	if node.IsText() {
		return node.SetData(text)
	}
	children := node.Children()
	if len(children) == 1 && children[0].IsText() {
		return children[0].SetData(text)
	}
	for _, child := range children {
		if err := child.Remove(); err != nil {
			return err
		}
	}
	return node.AppendChild(doc.CreateText(text))
}
