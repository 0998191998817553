package blot

import (
	"context"
	"testing"

	"github.com/dshills/blotsync/internal/surface"
)

func TestTextSplitBoundaries(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "hello", "x")
	s := newScroll(t, root)
	text := leaves(s)[0]
	next := text.Next()

	if got := text.Split(0, false); got != Blot(text) {
		t.Errorf("Split(0) = %v, expected the blot itself", got)
	}
	if got := text.Split(5, false); got != next {
		t.Errorf("Split(5) = %v, expected the next sibling", got)
	}
	if text.Text() != "hello" || text.Next() != next {
		t.Fatal("no-op splits must not change the tree")
	}

	after, ok := text.Split(2, false).(*TextBlot)
	if !ok {
		t.Fatal("Split(2) should return a text blot")
	}
	if text.Length() != 2 || after.Length() != 3 {
		t.Errorf("lengths = %d, %d; expected 2, 3", text.Length(), after.Length())
	}
	if text.Text()+after.Text() != "hello" {
		t.Errorf("split into %q and %q", text.Text(), after.Text())
	}
	if text.Next() != Blot(after) || after.Next() != next {
		t.Error("tail should sit between the blot and its old next sibling")
	}
	if text.Node().NextSibling() != after.Node() {
		t.Error("tail node should follow the original node")
	}
	if s.Find(after.Node(), false) != Blot(after) {
		t.Error("tail should be registered")
	}
}

func TestTextSplitForce(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "abc")
	s := newScroll(t, root)
	text := leaves(s)[0]

	after, ok := text.Split(3, true).(*TextBlot)
	if !ok {
		t.Fatal("forced split should create a blot")
	}
	if after.Text() != "" || text.Text() != "abc" {
		t.Errorf("forced split at end gave %q and %q", text.Text(), after.Text())
	}
}

func TestTextSplitRunes(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "héllo")
	s := newScroll(t, root)
	text := leaves(s)[0]
	if text.Length() != 5 {
		t.Fatalf("Length() = %d, expected 5 runes", text.Length())
	}
	after := text.Split(2, false).(*TextBlot)
	if text.Text() != "hé" || after.Text() != "llo" {
		t.Errorf("split into %q and %q", text.Text(), after.Text())
	}
}

func TestTextMergeAdjacent(t *testing.T) {
	_, root := newRoot()
	p := paragraph(t, root, "ab", "cd")
	s := newScroll(t, root)
	if n := len(leaves(s)); n != 2 {
		t.Fatalf("expected 2 leaves before optimize, got %d", n)
	}

	if err := s.Normalize(context.Background(), nil, nil); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	got := leaves(s)
	if len(got) != 1 {
		t.Fatalf("expected 1 leaf after optimize, got %d", len(got))
	}
	if got[0].Text() != "abcd" || got[0].Length() != 4 {
		t.Errorf("leaf = %q (%d), expected %q (4)", got[0].Text(), got[0].Length(), "abcd")
	}
	if p.ChildCount() != 1 || p.TextContent() != "abcd" {
		t.Errorf("surface paragraph has %d children with %q", p.ChildCount(), p.TextContent())
	}
}

func TestTextMergeAfterExternalSplit(t *testing.T) {
	_, root := newRoot()
	p := paragraph(t, root, "abcd")
	s := newScroll(t, root)

	if _, err := p.FirstChild().SplitText(2); err != nil {
		t.Fatalf("SplitText() error = %v", err)
	}
	syncScroll(t, s)

	got := leaves(s)
	if len(got) != 1 || got[0].Text() != "abcd" {
		t.Fatalf("expected a single leaf %q, got %d leaves", "abcd", len(got))
	}
	if p.ChildCount() != 1 {
		t.Errorf("surface should be merged too, got %d children", p.ChildCount())
	}
}

func TestTextEmptyLeafRemoved(t *testing.T) {
	_, root := newRoot()
	p := paragraph(t, root, "keep")
	img := root.Document().CreateElement("img")
	_ = p.AppendChild(img)
	empty := root.Document().CreateText("gone")
	_ = p.AppendChild(empty)
	s := newScroll(t, root)

	if err := empty.SetData(""); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	syncScroll(t, s)

	if s.Find(empty, false) != nil {
		t.Error("empty leaf should be removed from the registry")
	}
	if empty.Parent() != nil {
		t.Error("empty leaf's node should be removed from the surface")
	}
	if got := Text(s); got != "keep"+string(ObjectReplacement) {
		t.Errorf("Text() = %q", got)
	}
}

func TestTextEmptyLeafRemovesEmptyBlock(t *testing.T) {
	_, root := newRoot()
	p := paragraph(t, root, "only")
	paragraph(t, root, "other")
	s := newScroll(t, root)

	if err := p.FirstChild().SetData(""); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	syncScroll(t, s)

	if s.Children().Len() != 1 || p.Parent() != nil {
		t.Errorf("empty block should be removed, %d blocks left", s.Children().Len())
	}
	if Text(s) != "other" {
		t.Errorf("Text() = %q", Text(s))
	}
}

func TestTextUpdateRefreshesOnOwnCharacterData(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "old")
	s := newScroll(t, root, WithObserveOptions(surface.ObserveOptions{ChildList: true}))
	text := leaves(s)[0]
	_ = text.Node().SetData("new")

	text.Update([]surface.Record{{Type: surface.ChildList, Target: text.Node()}}, NewContext())
	if text.Text() != "old" {
		t.Errorf("unrelated record refreshed the cache to %q", text.Text())
	}

	text.Update([]surface.Record{{Type: surface.CharacterData, Target: root}}, NewContext())
	if text.Text() != "old" {
		t.Errorf("record for another node refreshed the cache to %q", text.Text())
	}

	text.Update([]surface.Record{{Type: surface.CharacterData, Target: text.Node()}}, NewContext())
	if text.Text() != "new" {
		t.Errorf("Text() = %q, expected %q", text.Text(), "new")
	}
}

func TestTextInsertAndDelete(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "hello")
	s := newScroll(t, root)
	text := leaves(s)[0]

	text.InsertAt(5, ", wörld", nil)
	if text.Text() != "hello, wörld" || text.Node().Data() != "hello, wörld" {
		t.Errorf("after insert: cache %q, node %q", text.Text(), text.Node().Data())
	}
	text.DeleteAt(5, 2)
	if text.Text() != "hellowörld" || text.Node().Data() != "hellowörld" {
		t.Errorf("after delete: cache %q, node %q", text.Text(), text.Node().Data())
	}
	text.DeleteAt(5, 5)
	if text.Text() != "hello" {
		t.Errorf("rune-based delete gave %q", text.Text())
	}
}

func TestTextInvalidUTF8Preserved(t *testing.T) {
	leaf := func() *TextBlot {
		_, root := newRoot()
		paragraph(t, root, "a\xffb")
		return leaves(newScroll(t, root))[0]
	}

	text := leaf()
	if text.Length() != 3 {
		t.Fatalf("Length() = %d, expected 3", text.Length())
	}
	text.InsertAt(3, "c", nil)
	if got := text.Node().Data(); got != "a\xffbc" {
		t.Errorf("after insert: node %q, expected %q", got, "a\xffbc")
	}

	text = leaf()
	text.DeleteAt(2, 1)
	if got := text.Node().Data(); got != "a\xff" {
		t.Errorf("after delete: node %q, expected %q", got, "a\xff")
	}
	text = leaf()
	text.DeleteAt(1, 1)
	if got := text.Node().Data(); got != "ab" {
		t.Errorf("after delete of invalid byte: node %q, expected %q", got, "ab")
	}

	text = leaf()
	after := text.Split(2, false).(*TextBlot)
	if text.Text() != "a\xff" || after.Text() != "b" {
		t.Errorf("split into %q and %q, expected %q and %q", text.Text(), after.Text(), "a\xff", "b")
	}
}

func TestTextInsertEmbed(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "hello")
	s := newScroll(t, root)
	text := leaves(s)[0]

	text.InsertAt(2, "image", "a.png")

	block := s.Children().Head().(Parent)
	kids := block.Children().Slice()
	if len(kids) != 3 {
		t.Fatalf("expected 3 children, got %d", len(kids))
	}
	embed, ok := kids[1].(*EmbedBlot)
	if !ok {
		t.Fatalf("expected an embed in the middle, got %T", kids[1])
	}
	value := embed.Value().(map[string]any)
	if value["image"] != "a.png" {
		t.Errorf("Value() = %v", value)
	}
	if block.Length() != 6 {
		t.Errorf("Length() = %d, expected 6", block.Length())
	}
}

func TestTextIndexAndPosition(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "abc")
	s := newScroll(t, root)
	text := leaves(s)[0]

	if got := text.Index(text.Node(), 2); got != 2 {
		t.Errorf("Index(own node) = %d, expected 2", got)
	}
	if got := text.Index(root, 0); got != -1 {
		t.Errorf("Index(other node) = %d, expected -1", got)
	}
	node, offset := text.Position(1)
	if node != text.Node() || offset != 1 {
		t.Errorf("Position(1) = %v, %d", node, offset)
	}
}
