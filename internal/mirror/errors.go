package mirror

import "errors"

// Errors returned by the mirror.
var (
	// ErrNilRoot indicates a mirror was created without a root node.
	ErrNilRoot = errors.New("mirror root is nil")
)
