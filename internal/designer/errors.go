package designer

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a closed designer.
var ErrClosed = errors.New("designer is closed")

// OperationError describes a failed facade operation.
type OperationError struct {
	Op     string // Operation name, e.g. "create-node", "effect"
	Target string // Target of the operation, e.g. a node id
	Err    error  // Underlying error
}

func newOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the wrapper itself or anything it wraps.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
