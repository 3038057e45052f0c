package workspace

import (
	"github.com/dshills/designable/internal/operation"
)

// Props describes a workspace.
type Props struct {
	// ID identifies the workspace. A random id is assigned when empty.
	ID string

	// Title is a display name.
	Title string

	// Description is free text.
	Description string
}

// Viewport is the rendering context attached to a workspace. The core only
// asks it to redraw.
type Viewport interface {
	Invalidate()
}

// Workspace is one editing surface.
type Workspace struct {
	id        string
	props     Props
	operation *operation.Operation
	viewport  Viewport
}

// ID returns the workspace id.
func (w *Workspace) ID() string {
	return w.id
}

// Props returns the workspace props.
func (w *Workspace) Props() Props {
	return w.props
}

// Title returns the display title, falling back to the id.
func (w *Workspace) Title() string {
	if w.props.Title != "" {
		return w.props.Title
	}
	return w.id
}

// Operation returns the workspace's editing state.
func (w *Workspace) Operation() *operation.Operation {
	return w.operation
}

// Viewport returns the attached rendering context, or nil.
func (w *Workspace) Viewport() Viewport {
	return w.viewport
}

// SetViewport attaches a rendering context.
func (w *Workspace) SetViewport(v Viewport) {
	w.viewport = v
}

// Invalidate asks the viewport, if any, to redraw.
func (w *Workspace) Invalidate() {
	if w.viewport != nil {
		w.viewport.Invalidate()
	}
}
