// Package cursor coordinates drag gestures across workspaces.
//
// A gesture moves through Idle, Dragging and then Dropped or Cancelled
// before returning to Idle. Only one gesture may be active per designer;
// starting a second one fails with ErrConcurrentDrag.
//
// The cursor follows pointer events from the bus. A press on a node
// followed by movement starts a drag; the release drops on whatever node
// the HitTester reports under the pointer, or cancels. A press and release
// without movement is a click that selects, with Shift, Ctrl or Meta
// toggling the node within the selection. Escape cancels an active drag.
package cursor
