package blot

// ChildList is the ordered, doubly linked list of a parent's children. The
// links live in the children themselves; removing a blot clears them.
type ChildList struct {
	head   Blot
	tail   Blot
	length int
}

// Head returns the first child or nil.
func (l *ChildList) Head() Blot { return l.head }

// Tail returns the last child or nil.
func (l *ChildList) Tail() Blot { return l.tail }

// Len returns the number of children.
func (l *ChildList) Len() int { return l.length }

// Contains reports whether b is in the list.
func (l *ChildList) Contains(b Blot) bool {
	for cur := l.head; cur != nil; cur = cur.Next() {
		if cur == b {
			return true
		}
	}
	return false
}

// Append adds b at the end.
func (l *ChildList) Append(b Blot) {
	l.InsertBefore(b, nil)
}

// InsertBefore links b before ref, or at the end when ref is nil.
func (l *ChildList) InsertBefore(b, ref Blot) {
	if b == nil {
		return
	}
	nb := b.base()
	nb.next = ref
	if ref != nil {
		rb := ref.base()
		nb.prev = rb.prev
		if rb.prev != nil {
			rb.prev.base().next = b
		}
		rb.prev = b
		if ref == l.head {
			l.head = b
		}
	} else {
		nb.prev = l.tail
		if l.tail != nil {
			l.tail.base().next = b
		} else {
			l.head = b
		}
		l.tail = b
	}
	l.length++
}

// Remove unlinks b. Blots not in the list are ignored.
func (l *ChildList) Remove(b Blot) {
	if !l.Contains(b) {
		return
	}
	nb := b.base()
	if nb.prev != nil {
		nb.prev.base().next = nb.next
	}
	if nb.next != nil {
		nb.next.base().prev = nb.prev
	}
	if b == l.head {
		l.head = nb.next
	}
	if b == l.tail {
		l.tail = nb.prev
	}
	nb.prev = nil
	nb.next = nil
	l.length--
}

// Offset returns the index of target within the list, or -1.
func (l *ChildList) Offset(target Blot) int {
	index := 0
	for cur := l.head; cur != nil; cur = cur.Next() {
		if cur == target {
			return index
		}
		index += cur.Length()
	}
	return -1
}

// Find returns the child containing index and the offset inside it. With
// inclusive, an index at the very end of a child selects that child unless
// an empty child follows.
func (l *ChildList) Find(index int, inclusive bool) (Blot, int) {
	next := l.iterator(l.head)
	for cur := next(); cur != nil; cur = next() {
		length := cur.Length()
		if index < length || (inclusive && index == length && (cur.Next() == nil || cur.Next().Length() != 0)) {
			return cur, index
		}
		index -= length
	}
	return nil, 0
}

// ForEach calls fn for every child. fn may remove the child it is given.
func (l *ChildList) ForEach(fn func(b Blot)) {
	next := l.iterator(l.head)
	for cur := next(); cur != nil; cur = next() {
		fn(cur)
	}
}

// ForEachAt calls fn for every child overlapping [index, index+length),
// with the overlap expressed relative to the child.
func (l *ChildList) ForEachAt(index, length int, fn func(b Blot, offset, length int)) {
	if length <= 0 {
		return
	}
	start, offset := l.Find(index, false)
	curIndex := index - offset
	next := l.iterator(start)
	for cur := next(); cur != nil && curIndex < index+length; cur = next() {
		curLength := cur.Length()
		if index > curIndex {
			fn(cur, index-curIndex, min(length, curIndex+curLength-index))
		} else {
			fn(cur, 0, min(curLength, index+length-curIndex))
		}
		curIndex += curLength
	}
}

// Slice returns the children in order.
func (l *ChildList) Slice() []Blot {
	out := make([]Blot, 0, l.length)
	for cur := l.head; cur != nil; cur = cur.Next() {
		out = append(out, cur)
	}
	return out
}

// iterator returns a cursor that reads the next link before handing out
// the current blot.
func (l *ChildList) iterator(start Blot) func() Blot {
	next := start
	return func() Blot {
		cur := next
		if cur != nil {
			next = cur.Next()
		}
		return cur
	}
}
