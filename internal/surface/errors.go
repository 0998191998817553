package surface

import "errors"

// Errors returned by surface tree operations.
var (
	// ErrNilNode indicates a nil node was passed where a node is required.
	ErrNilNode = errors.New("node is nil")

	// ErrNotText indicates a text operation on a non-text node.
	ErrNotText = errors.New("node is not a text node")

	// ErrNotElement indicates an element operation on a non-element node.
	ErrNotElement = errors.New("node is not an element")

	// ErrNotChild indicates the reference node is not a child of the parent.
	ErrNotChild = errors.New("node is not a child of this node")

	// ErrHierarchy indicates an insertion would make a node its own ancestor.
	ErrHierarchy = errors.New("insertion would create a cycle")

	// ErrWrongDocument indicates nodes from different documents were combined.
	ErrWrongDocument = errors.New("node belongs to a different document")

	// ErrIndexOutOfRange indicates an offset outside the node's text.
	ErrIndexOutOfRange = errors.New("offset out of range")

	// ErrInvalidOptions indicates observe options that select no record type.
	ErrInvalidOptions = errors.New("observe options select no record type")
)
