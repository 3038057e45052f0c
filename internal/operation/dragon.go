package operation

import (
	"slices"

	"github.com/dshills/designable/internal/tree"
)

// Dragon is the drag state of an operation: the nodes currently being
// dragged from or within its tree.
type Dragon struct {
	nodes []*tree.Node
}

// DragNodes returns the dragged nodes in order. Nodes removed since the
// drag started are skipped.
func (d *Dragon) DragNodes() []*tree.Node {
	out := make([]*tree.Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		if !n.IsDestroyed() {
			out = append(out, n)
		}
	}
	return out
}

// SetDragNodes replaces the dragged nodes. Nil and duplicate nodes are
// dropped.
func (d *Dragon) SetDragNodes(nodes ...*tree.Node) {
	var next []*tree.Node
	for _, n := range nodes {
		if n == nil || slices.Contains(next, n) {
			continue
		}
		next = append(next, n)
	}
	d.nodes = next
}

// IsDragging reports whether any live node is being dragged.
func (d *Dragon) IsDragging() bool {
	return len(d.DragNodes()) > 0
}

// Clear empties the drag state.
func (d *Dragon) Clear() {
	d.nodes = nil
}
