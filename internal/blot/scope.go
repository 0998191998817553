package blot

// Scope classifies blot kinds by level (block or inline) and type (blot or
// attribute). Scopes are bit sets; a kind matches a query when they share
// both a level bit and a type bit.
type Scope uint8

const (
	ScopeType  Scope = (1 << 2) - 1
	ScopeLevel Scope = ((1 << 2) - 1) << 2

	ScopeAttribute Scope = (1 << 0) | ScopeLevel
	ScopeBlot      Scope = (1 << 1) | ScopeLevel
	ScopeInline    Scope = (1 << 2) | ScopeType
	ScopeBlock     Scope = (1 << 3) | ScopeType

	ScopeBlockBlot       Scope = ScopeBlock & ScopeBlot
	ScopeInlineBlot      Scope = ScopeInline & ScopeBlot
	ScopeBlockAttribute  Scope = ScopeBlock & ScopeAttribute
	ScopeInlineAttribute Scope = ScopeInline & ScopeAttribute

	ScopeAny Scope = ScopeType | ScopeLevel
)

// Matches reports whether s satisfies the query mask.
func (s Scope) Matches(mask Scope) bool {
	return s&ScopeLevel&mask != 0 && s&ScopeType&mask != 0
}

// String returns a human-readable representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeBlockBlot:
		return "block-blot"
	case ScopeInlineBlot:
		return "inline-blot"
	case ScopeBlockAttribute:
		return "block-attribute"
	case ScopeInlineAttribute:
		return "inline-attribute"
	case ScopeBlock:
		return "block"
	case ScopeInline:
		return "inline"
	case ScopeBlot:
		return "blot"
	case ScopeAttribute:
		return "attribute"
	case ScopeAny:
		return "any"
	default:
		return "unknown"
	}
}
