package mirror

// Op is the kind of one edit step.
type Op uint8

const (
	// OpEqual keeps an old paragraph.
	OpEqual Op = iota

	// OpInsert adds a new paragraph.
	OpInsert

	// OpDelete drops an old paragraph.
	OpDelete
)

// String returns a human-readable representation of the op.
func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit is one step of an edit script. OldIndex is valid for OpEqual and
// OpDelete, NewIndex for OpEqual and OpInsert.
type Edit struct {
	Op       Op
	OldIndex int
	NewIndex int
}

// Diff returns the shortest edit script turning from into to, computed
// with the Myers algorithm. Within a changed run deletes precede inserts.
func Diff(from, to []string) []Edit {
	n := len(from)
	m := len(to)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]Edit, m)
		for i := range m {
			ops[i] = Edit{Op: OpInsert, NewIndex: i}
		}
		return ops
	}
	if m == 0 {
		ops := make([]Edit, n)
		for i := range n {
			ops[i] = Edit{Op: OpDelete, OldIndex: i}
		}
		return ops
	}

	maxD := n + m
	offset := maxD // v[-max..max] maps to v[0..2*max]
	v := make([]int, 2*maxD+1)

	var trace [][]int

outer:
	for d := 0; d <= maxD; d++ {
		// Snapshot before this d; backtracking needs the previous state.
		snap := make([]int, len(v))
		copy(snap, v)
		trace = append(trace, snap)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k

			for x < n && y < m && from[x] == to[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				final := make([]int, len(v))
				copy(final, v)
				trace = append(trace, final)
				break outer
			}
		}
	}

	return orderRuns(backtrack(trace, n, m, offset))
}

// backtrack reconstructs the edit script from the saved V vectors.
func backtrack(trace [][]int, n, m, offset int) []Edit {
	x, y := n, m
	var ops []Edit

	for d := len(trace) - 2; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, Edit{Op: OpEqual, OldIndex: x, NewIndex: y})
		}

		if d > 0 {
			if x > prevX {
				x--
				ops = append(ops, Edit{Op: OpDelete, OldIndex: x, NewIndex: y})
			} else if y > prevY {
				y--
				ops = append(ops, Edit{Op: OpInsert, OldIndex: x, NewIndex: y})
			}
		}
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// orderRuns moves the deletes of every run of changes ahead of its inserts,
// keeping relative order within each kind.
func orderRuns(ops []Edit) []Edit {
	for start := 0; start < len(ops); {
		if ops[start].Op == OpEqual {
			start++
			continue
		}
		end := start
		for end < len(ops) && ops[end].Op != OpEqual {
			end++
		}
		run := make([]Edit, 0, end-start)
		for _, e := range ops[start:end] {
			if e.Op == OpDelete {
				run = append(run, e)
			}
		}
		for _, e := range ops[start:end] {
			if e.Op == OpInsert {
				run = append(run, e)
			}
		}
		copy(ops[start:end], run)
		start = end
	}
	return ops
}
