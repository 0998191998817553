package surface

import (
	"errors"
	"testing"
)

var allOptions = ObserveOptions{
	ChildList:             true,
	Attributes:            true,
	CharacterData:         true,
	CharacterDataOldValue: true,
	Subtree:               true,
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{ElementNode, "element"},
		{TextNode, "text"},
		{Kind(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}

func TestNodeIDsAreUnique(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateText("a")
	b := doc.CreateText("a")
	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids for distinct nodes")
	}
	if a.ID().String() == "" {
		t.Error("expected non-empty id string")
	}
}

func TestInsertBeforeAndSiblings(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("DIV")
	a := doc.CreateText("a")
	c := doc.CreateText("c")
	b := doc.CreateText("b")

	if err := root.AppendChild(a); err != nil {
		t.Fatalf("AppendChild() error = %v", err)
	}
	if err := root.AppendChild(c); err != nil {
		t.Fatalf("AppendChild() error = %v", err)
	}
	if err := root.InsertBefore(b, c); err != nil {
		t.Fatalf("InsertBefore() error = %v", err)
	}

	if root.Tag() != "div" {
		t.Errorf("expected lower-cased tag, got %q", root.Tag())
	}
	if got := root.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, expected %q", got, "abc")
	}
	if b.PreviousSibling() != a || b.NextSibling() != c {
		t.Error("unexpected siblings for b")
	}
	if a.PreviousSibling() != nil || c.NextSibling() != nil {
		t.Error("expected nil siblings at the ends")
	}
	if b.Index() != 1 {
		t.Errorf("Index() = %d, expected 1", b.Index())
	}
}

func TestInsertBeforeErrors(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	child := doc.CreateElement("p")
	text := doc.CreateText("x")
	stranger := doc.CreateText("y")
	_ = root.AppendChild(child)

	if err := text.AppendChild(stranger); !errors.Is(err, ErrNotElement) {
		t.Errorf("expected ErrNotElement, got %v", err)
	}
	if err := root.InsertBefore(text, stranger); !errors.Is(err, ErrNotChild) {
		t.Errorf("expected ErrNotChild, got %v", err)
	}
	if err := child.AppendChild(root); !errors.Is(err, ErrHierarchy) {
		t.Errorf("expected ErrHierarchy, got %v", err)
	}
	if err := root.AppendChild(NewDocument().CreateText("z")); !errors.Is(err, ErrWrongDocument) {
		t.Errorf("expected ErrWrongDocument, got %v", err)
	}
	if err := root.AppendChild(nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("expected ErrNilNode, got %v", err)
	}
}

func TestObserverRecordsChildList(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	obs := doc.NewObserver(nil)
	if err := obs.Observe(root, allOptions); err != nil {
		t.Fatalf("Observe() error = %v", err)
	}

	a := doc.CreateText("a")
	b := doc.CreateText("b")
	_ = root.AppendChild(a)
	_ = root.AppendChild(b)
	_ = root.RemoveChild(a)

	records := obs.TakeRecords()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1].PreviousSibling != a || records[1].Added[0] != b {
		t.Error("second record should add b after a")
	}
	if records[2].Removed[0] != a || records[2].NextSibling != b {
		t.Error("third record should remove a before b")
	}
	if len(obs.TakeRecords()) != 0 {
		t.Error("TakeRecords() should clear the queue")
	}
}

func TestObserverCharacterDataOldValue(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	text := doc.CreateText("old")
	_ = root.AppendChild(text)

	withOld := doc.NewObserver(nil)
	_ = withOld.Observe(root, allOptions)
	withoutOld := doc.NewObserver(nil)
	_ = withoutOld.Observe(root, ObserveOptions{CharacterData: true, Subtree: true})

	_ = text.SetData("new")

	got := withOld.TakeRecords()
	if len(got) != 1 || got[0].Type != CharacterData || got[0].OldValue != "old" {
		t.Fatalf("unexpected records with old value: %+v", got)
	}
	got = withoutOld.TakeRecords()
	if len(got) != 1 || got[0].OldValue != "" {
		t.Fatalf("expected stripped old value, got %+v", got)
	}
}

func TestObserverWithoutSubtreeIgnoresDescendants(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	p := doc.CreateElement("p")
	_ = root.AppendChild(p)

	obs := doc.NewObserver(nil)
	_ = obs.Observe(root, ObserveOptions{ChildList: true})
	_ = p.AppendChild(doc.CreateText("x"))

	if n := len(obs.TakeRecords()); n != 0 {
		t.Errorf("expected no records for descendant change, got %d", n)
	}
}

func TestObserveInvalidOptions(t *testing.T) {
	doc := NewDocument()
	obs := doc.NewObserver(nil)
	if err := obs.Observe(doc.CreateElement("div"), ObserveOptions{Subtree: true}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
	if err := obs.Observe(nil, allOptions); !errors.Is(err, ErrNilNode) {
		t.Errorf("expected ErrNilNode, got %v", err)
	}
}

func TestSplitText(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("p")
	text := doc.CreateText("héllo")
	_ = root.AppendChild(text)

	obs := doc.NewObserver(nil)
	_ = obs.Observe(root, allOptions)

	tail, err := text.SplitText(2)
	if err != nil {
		t.Fatalf("SplitText() error = %v", err)
	}
	if text.Data() != "hé" || tail.Data() != "llo" {
		t.Errorf("split into %q/%q", text.Data(), tail.Data())
	}
	if text.NextSibling() != tail {
		t.Error("tail should follow the original node")
	}

	records := obs.TakeRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Type != ChildList || records[1].Type != CharacterData {
		t.Errorf("expected childList then characterData, got %v then %v", records[0].Type, records[1].Type)
	}

	if _, err := text.SplitText(10); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := root.SplitText(0); !errors.Is(err, ErrNotText) {
		t.Errorf("expected ErrNotText, got %v", err)
	}
}

func TestSplitTextInvalidUTF8(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("p")
	text := doc.CreateText("a\xffb")
	_ = root.AppendChild(text)

	tail, err := text.SplitText(2)
	if err != nil {
		t.Fatalf("SplitText() error = %v", err)
	}
	if text.Data() != "a\xff" || tail.Data() != "b" {
		t.Errorf("split into %q/%q, expected %q/%q", text.Data(), tail.Data(), "a\xff", "b")
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		index int
		want  int
	}{
		{"start", "héllo", 0, 0},
		{"after multibyte", "héllo", 2, 3},
		{"end", "héllo", 5, 6},
		{"past end", "héllo", 9, 6},
		{"invalid byte", "a\xffb", 2, 2},
		{"empty", "", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ByteOffset(tt.s, tt.index); got != tt.want {
				t.Errorf("ByteOffset(%q, %d) = %d, expected %d", tt.s, tt.index, got, tt.want)
			}
		})
	}
}

func TestDeliverAndDisconnect(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")

	var batches [][]Record
	obs := doc.NewObserver(func(records []Record) {
		batches = append(batches, records)
	})
	_ = obs.Observe(root, allOptions)

	_ = root.AppendChild(doc.CreateText("a"))
	_ = root.AppendChild(doc.CreateText("b"))
	if doc.Pending() != 2 {
		t.Fatalf("Pending() = %d, expected 2", doc.Pending())
	}

	if n := doc.Deliver(); n != 2 {
		t.Errorf("Deliver() = %d, expected 2", n)
	}
	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("expected one batch of two records, got %v", batches)
	}

	obs.Disconnect()
	_ = root.AppendChild(doc.CreateText("c"))
	if doc.Pending() != 0 {
		t.Error("disconnected observer should not queue records")
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	img := doc.CreateElement("img")
	obs := doc.NewObserver(nil)
	_ = obs.Observe(img, ObserveOptions{AttributeOldValue: true})

	_ = img.SetAttribute("src", "a.png")
	_ = img.SetAttribute("src", "b.png")
	_ = img.RemoveAttribute("alt")

	records := obs.TakeRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].AttributeName != "src" || records[1].OldValue != "a.png" {
		t.Errorf("unexpected record %+v", records[1])
	}
	if v, _ := img.Attribute("src"); v != "b.png" {
		t.Errorf("Attribute(src) = %q", v)
	}
	if err := doc.CreateText("x").SetAttribute("a", "b"); !errors.Is(err, ErrNotElement) {
		t.Errorf("expected ErrNotElement, got %v", err)
	}
}

func TestCloneShallow(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateElement("p")
	_ = p.SetAttribute("class", "x")
	_ = p.AppendChild(doc.CreateText("child"))

	clone := p.CloneShallow()
	if clone.ID() == p.ID() {
		t.Error("clone must have a fresh id")
	}
	if clone.ChildCount() != 0 || clone.Parent() != nil {
		t.Error("clone must be detached and empty")
	}
	if v, _ := clone.Attribute("class"); v != "x" {
		t.Errorf("clone lost attributes, got %q", v)
	}
}
