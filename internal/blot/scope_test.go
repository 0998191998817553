package blot

import "testing"

func TestScopeMatches(t *testing.T) {
	tests := []struct {
		scope Scope
		mask  Scope
		want  bool
	}{
		{ScopeBlockBlot, ScopeBlockBlot, true},
		{ScopeBlockBlot, ScopeBlock, true},
		{ScopeBlockBlot, ScopeInline, false},
		{ScopeBlockBlot, ScopeBlot, true},
		{ScopeBlockBlot, ScopeAttribute, false},
		{ScopeInlineBlot, ScopeInline, true},
		{ScopeInlineBlot, ScopeBlockBlot, false},
		{ScopeInlineAttribute, ScopeAttribute, true},
		{ScopeInlineAttribute, ScopeBlot, false},
		{ScopeInlineBlot, ScopeAny, true},
	}

	for _, tt := range tests {
		if got := tt.scope.Matches(tt.mask); got != tt.want {
			t.Errorf("%s.Matches(%s) = %v, expected %v", tt.scope, tt.mask, got, tt.want)
		}
	}
}

func TestScopeValues(t *testing.T) {
	tests := []struct {
		scope Scope
		want  Scope
	}{
		{ScopeType, 3},
		{ScopeLevel, 12},
		{ScopeAttribute, 13},
		{ScopeBlot, 14},
		{ScopeInline, 7},
		{ScopeBlock, 11},
		{ScopeBlockBlot, 10},
		{ScopeInlineBlot, 6},
		{ScopeBlockAttribute, 9},
		{ScopeInlineAttribute, 5},
		{ScopeAny, 15},
	}
	for _, tt := range tests {
		if tt.scope != tt.want {
			t.Errorf("scope %s = %d, expected %d", tt.scope, tt.scope, tt.want)
		}
	}
}
