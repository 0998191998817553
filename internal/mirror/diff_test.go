package mirror

import (
	"strings"
	"testing"
)

// applyScript rebuilds the new sequence from old and the script.
func applyScript(from, to []string, script []Edit) []string {
	var out []string
	for _, e := range script {
		switch e.Op {
		case OpEqual:
			out = append(out, from[e.OldIndex])
		case OpInsert:
			out = append(out, to[e.NewIndex])
		}
	}
	return out
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		edits int
	}{
		{"both empty", "", "", 0},
		{"all inserted", "", "a b c", 3},
		{"all deleted", "a b", "", 2},
		{"identical", "a b c", "a b c", 0},
		{"middle replaced", "a b c", "a x c", 2},
		{"appended", "a b", "a b c", 1},
		{"prepended", "b c", "a b c", 1},
		{"interleaved", "a b c d e", "a c e f", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := strings.Fields(tt.from)
			to := strings.Fields(tt.to)
			script := Diff(from, to)

			got := applyScript(from, to, script)
			if strings.Join(got, " ") != strings.Join(to, " ") {
				t.Errorf("script rebuilds %v, expected %v", got, to)
			}

			edits := 0
			for _, e := range script {
				if e.Op != OpEqual {
					edits++
				}
			}
			if edits != tt.edits {
				t.Errorf("expected %d edits, got %d (%v)", tt.edits, edits, script)
			}
		})
	}
}

func TestDiffDeletesPrecedeInserts(t *testing.T) {
	script := Diff([]string{"a", "b", "c"}, []string{"a", "x", "y", "c"})

	var ops []string
	for _, e := range script {
		ops = append(ops, e.Op.String())
	}
	expected := "equal delete insert insert equal"
	if got := strings.Join(ops, " "); got != expected {
		t.Errorf("ops = %q, expected %q", got, expected)
	}
}
