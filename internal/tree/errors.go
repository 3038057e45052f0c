package tree

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural operations.
var (
	// ErrCycle is returned when a move would make a node its own descendant.
	ErrCycle = errors.New("node cannot become its own descendant")

	// ErrSelfAttach is returned when a node is attached to itself.
	ErrSelfAttach = errors.New("node cannot be attached to itself")

	// ErrDestroyed is returned when an operation involves a removed node.
	ErrDestroyed = errors.New("node has been removed")

	// ErrForeignNode is returned when nodes from different registries are mixed.
	ErrForeignNode = errors.New("node belongs to another registry")

	// ErrPinned is returned when a pinned root is attached under a node.
	ErrPinned = errors.New("pinned root cannot be attached")

	// ErrNoParent is returned when a sibling insert targets a root.
	ErrNoParent = errors.New("node has no parent")

	// ErrUnsupportedFormat is returned by Parse for an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported tree format")
)

// StructuralError describes a rejected tree mutation. The trees involved
// are left unchanged.
type StructuralError struct {
	// Op is the operation that failed, e.g. "append".
	Op string

	// NodeID is the node being attached or created.
	NodeID NodeID

	// TargetID is the intended parent.
	TargetID NodeID

	// Err is the underlying sentinel.
	Err error
}

// Error implements error.
func (e *StructuralError) Error() string {
	switch {
	case e.NodeID != "" && e.TargetID != "":
		return fmt.Sprintf("tree %s %s under %s: %v", e.Op, e.NodeID, e.TargetID, e.Err)
	case e.TargetID != "":
		return fmt.Sprintf("tree %s under %s: %v", e.Op, e.TargetID, e.Err)
	case e.NodeID != "":
		return fmt.Sprintf("tree %s %s: %v", e.Op, e.NodeID, e.Err)
	default:
		return fmt.Sprintf("tree %s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

func structural(op string, node, target NodeID, err error) error {
	return &StructuralError{Op: op, NodeID: node, TargetID: target, Err: err}
}
