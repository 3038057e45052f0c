package lua

import "errors"

// Errors for Lua effects.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoCurrentWorkspace is raised by script calls that need a current
	// workspace when there is none.
	ErrNoCurrentWorkspace = errors.New("no current workspace")
)
