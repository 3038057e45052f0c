package operation

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
	"github.com/dshills/designable/internal/tree"
)

// DefaultRootComponentName is used when Config leaves it empty.
const DefaultRootComponentName = "Root"

// ErrNoRegistry is returned by New without a registry.
var ErrNoRegistry = errors.New("operation requires a tree registry")

// Config configures an Operation.
type Config struct {
	// WorkspaceID identifies the owning workspace in events.
	WorkspaceID string

	// Registry is the arena the tree is created in.
	Registry *tree.Registry

	// Bus receives selection events. Optional.
	Bus *event.Bus

	// RootComponentName names the root node's component.
	RootComponentName string

	// Logger is optional.
	Logger *zap.Logger
}

// Operation is the per-workspace editing state.
type Operation struct {
	workspaceID string
	registry    *tree.Registry
	bus         *event.Bus
	logger      *zap.Logger

	root     *tree.Node
	selected []tree.NodeID
	dragon   *Dragon
	disposed bool
}

// New creates an operation with a fresh root node.
func New(cfg Config) (*Operation, error) {
	if cfg.Registry == nil {
		return nil, ErrNoRegistry
	}
	if cfg.RootComponentName == "" {
		cfg.RootComponentName = DefaultRootComponentName
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	root, err := cfg.Registry.CreateNode(tree.Data{ComponentName: cfg.RootComponentName}, nil)
	if err != nil {
		return nil, err
	}
	root.Pin()

	op := &Operation{
		workspaceID: cfg.WorkspaceID,
		registry:    cfg.Registry,
		bus:         cfg.Bus,
		logger:      cfg.Logger.With(zap.String("workspace", cfg.WorkspaceID)),
		root:        root,
		dragon:      &Dragon{},
	}
	return op, nil
}

// WorkspaceID returns the owning workspace id.
func (o *Operation) WorkspaceID() string {
	return o.workspaceID
}

// Tree returns the root node.
func (o *Operation) Tree() *tree.Node {
	return o.root
}

// Registry returns the arena of the tree.
func (o *Operation) Registry() *tree.Registry {
	return o.registry
}

// Dragon returns the drag state.
func (o *Operation) Dragon() *Dragon {
	return o.dragon
}

// Owns reports whether node is live and part of this operation's tree.
func (o *Operation) Owns(node *tree.Node) bool {
	if node == nil || node.IsDestroyed() || o.root.IsDestroyed() {
		return false
	}
	return node == o.root || o.root.IsAncestorOf(node)
}

// Resolve returns the live node with id if it belongs to this tree.
func (o *Operation) Resolve(id tree.NodeID) *tree.Node {
	n := o.registry.FindByID(id)
	if !o.Owns(n) {
		return nil
	}
	return n
}

// GetSelectedNodes returns the selected nodes in selection order. Ids whose
// nodes were removed or moved out of this tree are skipped.
func (o *Operation) GetSelectedNodes() []*tree.Node {
	nodes := make([]*tree.Node, 0, len(o.selected))
	for _, id := range o.selected {
		if n := o.Resolve(id); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// SelectedIDs returns the ids of the live selection.
func (o *Operation) SelectedIDs() []tree.NodeID {
	o.prune()
	return slices.Clone(o.selected)
}

// Has reports whether id is selected.
func (o *Operation) Has(id tree.NodeID) bool {
	return slices.Contains(o.selected, id) && o.Resolve(id) != nil
}

// Select replaces the selection with ids. Unknown ids are ignored.
func (o *Operation) Select(ids ...tree.NodeID) {
	o.update(o.filter(nil, ids))
}

// Add extends the selection with ids.
func (o *Operation) Add(ids ...tree.NodeID) {
	o.update(o.filter(o.live(), ids))
}

// Deselect removes ids from the selection. Ids of nodes that have left the
// tree can still be deselected, which publishes their removal.
func (o *Operation) Deselect(ids ...tree.NodeID) {
	next := slices.DeleteFunc(slices.Clone(o.selected), func(id tree.NodeID) bool {
		return slices.Contains(ids, id)
	})
	o.update(next)
}

// Toggle selects id when unselected and deselects it otherwise.
func (o *Operation) Toggle(id tree.NodeID) {
	if o.Has(id) {
		o.Deselect(id)
		return
	}
	o.Add(id)
}

// Clear empties the selection.
func (o *Operation) Clear() {
	o.update(nil)
}

// SelectWithModifiers applies a click on id: a multi-select modifier
// toggles id within the selection, otherwise id becomes the only selection.
func (o *Operation) SelectWithModifiers(id tree.NodeID, mods key.Modifier) {
	if mods.IsMultiSelect() {
		o.Toggle(id)
		return
	}
	o.Select(id)
}

// Dispose clears the selection and drag state and removes the whole tree
// from the registry.
func (o *Operation) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.dragon.Clear()
	o.selected = nil
	o.root.Remove()
	o.logger.Debug("operation disposed")
}

// live returns the selection without stale ids.
func (o *Operation) live() []tree.NodeID {
	out := make([]tree.NodeID, 0, len(o.selected))
	for _, id := range o.selected {
		if o.Resolve(id) != nil {
			out = append(out, id)
		}
	}
	return out
}

func (o *Operation) prune() {
	o.selected = o.live()
}

// filter appends the resolvable ids not already present to base.
func (o *Operation) filter(base, ids []tree.NodeID) []tree.NodeID {
	for _, id := range ids {
		if o.Resolve(id) == nil || slices.Contains(base, id) {
			continue
		}
		base = append(base, id)
	}
	return base
}

// update stores next and publishes the difference when there is one.
func (o *Operation) update(next []tree.NodeID) {
	prev := o.selected
	o.selected = next
	if slices.Equal(prev, next) {
		return
	}

	var added, removed []tree.NodeID
	for _, id := range next {
		if !slices.Contains(prev, id) {
			added = append(added, id)
		}
	}
	for _, id := range prev {
		if !slices.Contains(next, id) {
			removed = append(removed, id)
		}
	}

	if o.bus == nil {
		return
	}
	err := event.Publish(context.Background(), o.bus, events.SelectionChanged, events.SelectionChangedPayload{
		WorkspaceID: o.workspaceID,
		Selected:    tree.IDs(next),
		Added:       tree.IDs(added),
		Removed:     tree.IDs(removed),
	}, "operation")
	if err != nil {
		o.logger.Debug("selection event not delivered", zap.Error(err))
	}
}
