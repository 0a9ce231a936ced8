package bindings

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPath is returned by evaluators when a scope does not answer
	// the leading identifier of a key path. The key-path resolver treats it
	// as "keep searching the chain"; any other evaluation error is final.
	ErrUnknownPath = errors.New("bindings: scope does not answer key path")
	// ErrPathNotFound indicates no scope in the chain answered the key path.
	ErrPathNotFound = errors.New("bindings: key path not found in any scope")
	// ErrFormatterNotFound indicates a formatter name matched nothing.
	ErrFormatterNotFound = errors.New("bindings: formatter not found")
	// ErrUnsupportedValue indicates the resolved value kind is not accepted
	// by the element.
	ErrUnsupportedValue = errors.New("bindings: unsupported value kind")
	// ErrBoundaryUnreachable indicates chain construction ran past the depth
	// bound without reaching a boundary or the tree root.
	ErrBoundaryUnreachable = errors.New("bindings: scope boundary unreachable")
	// ErrTreeCorrupted indicates the node tree violates its invariants, e.g.
	// contains a parent cycle. Traversals abort immediately.
	ErrTreeCorrupted = errors.New("bindings: node tree is corrupted")
)

// FailureKind labels the resolution and application failure taxonomy.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailurePathNotFound
	FailureFormatterNotFound
	FailureUnsupportedValue
	FailureBoundaryUnreachable
	FailureEvaluation
)

func (k FailureKind) String() string {
	switch k {
	case FailurePathNotFound:
		return "path_not_found"
	case FailureFormatterNotFound:
		return "formatter_not_found"
	case FailureUnsupportedValue:
		return "unsupported_value"
	case FailureBoundaryUnreachable:
		return "boundary_unreachable"
	case FailureEvaluation:
		return "evaluation_failed"
	default:
		return "unknown"
	}
}

// BindingError captures node metadata alongside the originating failure.
type BindingError struct {
	Kind    FailureKind
	Node    string
	KeyPath string
	Err     error
}

func (e *BindingError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("bindings: node %q keypath=%q [%s]: %v", e.Node, e.KeyPath, e.Kind, e.Err)
}

func (e *BindingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newBindingError(kind FailureKind, node *Node, err error) *BindingError {
	var bindErr *BindingError
	if errors.As(err, &bindErr) {
		return bindErr
	}
	berr := &BindingError{Kind: kind, Err: err}
	if node != nil {
		berr.Node = node.label()
		berr.KeyPath = node.KeyPath()
	}
	return berr
}

func failureKindOf(err error) FailureKind {
	switch {
	case errors.Is(err, ErrPathNotFound):
		return FailurePathNotFound
	case errors.Is(err, ErrFormatterNotFound):
		return FailureFormatterNotFound
	case errors.Is(err, ErrUnsupportedValue):
		return FailureUnsupportedValue
	case errors.Is(err, ErrBoundaryUnreachable):
		return FailureBoundaryUnreachable
	default:
		return FailureEvaluation
	}
}
