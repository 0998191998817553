package blot

import "testing"

func TestChildListFindAndOffset(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "ab", "cde", "f")
	s := newScroll(t, root)
	block := s.Children().Head().(Parent)
	list := block.Children()
	kids := list.Slice()
	if len(kids) != 3 {
		t.Fatalf("expected 3 children, got %d", len(kids))
	}

	tests := []struct {
		index     int
		inclusive bool
		want      Blot
		offset    int
	}{
		{0, false, kids[0], 0},
		{2, false, kids[1], 0},
		{2, true, kids[0], 2},
		{5, false, kids[2], 0},
		{6, false, nil, 0},
		{6, true, kids[2], 1},
	}
	for _, tt := range tests {
		got, offset := list.Find(tt.index, tt.inclusive)
		if got != tt.want || offset != tt.offset {
			t.Errorf("Find(%d, %v) = %v, %d; expected %v, %d", tt.index, tt.inclusive, got, offset, tt.want, tt.offset)
		}
	}

	if got := list.Offset(kids[2]); got != 5 {
		t.Errorf("Offset() = %d, expected 5", got)
	}
	if got := kids[2].Offset(s); got != 5 {
		t.Errorf("Offset(scroll) = %d, expected 5", got)
	}
}

func TestChildListForEachAt(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "ab", "cde", "f")
	s := newScroll(t, root)
	list := s.Children().Head().(Parent).Children()

	type call struct {
		text           string
		offset, length int
	}
	var calls []call
	list.ForEachAt(1, 4, func(b Blot, offset, length int) {
		calls = append(calls, call{b.(*TextBlot).Text(), offset, length})
	})

	expected := []call{{"ab", 1, 1}, {"cde", 0, 3}}
	if len(calls) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, calls)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Errorf("call %d = %v, expected %v", i, calls[i], expected[i])
		}
	}

	calls = nil
	list.ForEachAt(0, 0, func(b Blot, offset, length int) {
		calls = append(calls, call{})
	})
	if len(calls) != 0 {
		t.Error("empty range should not visit children")
	}
}

func TestChildListRemoveClearsLinks(t *testing.T) {
	_, root := newRoot()
	paragraph(t, root, "a", "b", "c")
	s := newScroll(t, root)
	block := s.Children().Head().(Parent)
	kids := block.Children().Slice()

	block.RemoveChild(kids[1])
	if kids[1].Prev() != nil || kids[1].Next() != nil || kids[1].Parent() != nil {
		t.Error("removed child should have no links")
	}
	if kids[0].Next() != kids[2] || kids[2].Prev() != kids[0] {
		t.Error("neighbours should be linked to each other")
	}
	if block.Children().Len() != 2 {
		t.Errorf("Len() = %d, expected 2", block.Children().Len())
	}

	block.RemoveChild(kids[0])
	block.RemoveChild(kids[2])
	if block.Children().Head() != nil || block.Children().Tail() != nil {
		t.Error("expected an empty list")
	}
}
