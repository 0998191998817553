package blot

import (
	"errors"
	"fmt"
)

// Errors returned by blot operations.
var (
	// ErrMaxOptimizeIterations indicates normalization did not settle within
	// the iteration bound. It signals a bug in a blot kind, not a retryable
	// condition.
	ErrMaxOptimizeIterations = errors.New("maximum optimize iterations reached")

	// ErrUnknownKind indicates no registered definition matches a node or name.
	ErrUnknownKind = errors.New("no blot definition matches")

	// ErrInvalidDefinition indicates a definition cannot be registered.
	ErrInvalidDefinition = errors.New("invalid blot definition")

	// ErrIsolate indicates a range could not be isolated into its own blot.
	ErrIsolate = errors.New("cannot isolate range")

	// ErrNotParent indicates a blot kind used as a wrapper cannot hold children.
	ErrNotParent = errors.New("blot cannot hold children")
)

// OptimizeError reports a normalization pass that did not converge.
type OptimizeError struct {
	// Iterations is the number of passes that ran.
	Iterations int

	// Pending is the number of records still unconsumed when the pass gave up.
	Pending int
}

// Error implements error.
func (e *OptimizeError) Error() string {
	return fmt.Sprintf("%s after %d iterations (%d records pending)",
		ErrMaxOptimizeIterations, e.Iterations, e.Pending)
}

// Unwrap returns ErrMaxOptimizeIterations.
func (e *OptimizeError) Unwrap() error {
	return ErrMaxOptimizeIterations
}

// must turns a construction error inside a structural operation into a
// panic. Those operations treat unknown kinds as caller bugs.
func must(b Blot, err error) Blot {
	if err != nil {
		panic(err)
	}
	return b
}

func mustParent(b Blot) Parent {
	p, ok := b.(Parent)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrNotParent, b.Name()))
	}
	return p
}
