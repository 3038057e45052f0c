package tree

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event/events"
)

// Emitter publishes tree events. *event.Bus satisfies it.
type Emitter interface {
	Emit(ctx context.Context, event any) error
}

// Option configures a Registry.
type Option func(*Registry)

// WithEmitter sets the bus tree events are published on.
func WithEmitter(e Emitter) Option {
	return func(r *Registry) {
		r.emitter = e
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Registry is the arena that owns every node reachable by id.
type Registry struct {
	mu      sync.RWMutex
	nodes   map[NodeID]*Node
	emitter Emitter
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		nodes:  make(map[NodeID]*Node),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetEmitter replaces the event emitter. A nil emitter disables events.
func (r *Registry) SetEmitter(e Emitter) {
	r.mu.Lock()
	r.emitter = e
	r.mu.Unlock()
}

// CreateNode allocates a node with a fresh id and registers it. When parent
// is non-nil the node is appended as its last child.
func (r *Registry) CreateNode(data Data, parent *Node) (*Node, error) {
	if parent != nil {
		if parent.registry != r {
			return nil, structural("create", "", parent.id, ErrForeignNode)
		}
		if parent.destroyed {
			return nil, structural("create", "", parent.id, ErrDestroyed)
		}
	}

	n := r.newNode(NewNodeID(), data.Clone())
	index := -1
	if parent != nil {
		index = len(parent.children)
		parent.children = append(parent.children, n)
		n.parentID = parent.id
	}

	r.logger.Debug("node created",
		zap.String("node", n.id.String()),
		zap.String("component", n.data.ComponentName),
		zap.String("parent", n.parentID.String()),
	)
	r.emit(events.NodeCreated.New(events.NodeCreatedPayload{
		NodeID:        n.id.String(),
		ParentID:      n.parentID.String(),
		ComponentName: n.data.ComponentName,
		Index:         index,
	}, "tree"))
	return n, nil
}

// FindByID returns the live node with the given id, or nil.
func (r *Registry) FindByID(id NodeID) *Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodes[id]
}

// Has reports whether id belongs to a live node.
func (r *Registry) Has(id NodeID) bool {
	return r.FindByID(id) != nil
}

// Len returns the number of live nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

func (r *Registry) newNode(id NodeID, data Data) *Node {
	n := &Node{id: id, data: data, registry: r}
	r.mu.Lock()
	r.nodes[id] = n
	r.mu.Unlock()
	return n
}

// deregister removes n and its subtree from the arena and returns the
// number of nodes removed.
func (r *Registry) deregister(n *Node) int {
	count := 0
	r.mu.Lock()
	defer r.mu.Unlock()

	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.children {
			walk(c)
		}
		if r.nodes[cur.id] == cur {
			delete(r.nodes, cur.id)
		}
		cur.destroyed = true
		cur.parentID = ""
		cur.children = nil
		count++
	}
	walk(n)
	return count
}

func (r *Registry) emit(evt any) {
	r.mu.RLock()
	em := r.emitter
	r.mu.RUnlock()
	if em == nil {
		return
	}
	if err := em.Emit(context.Background(), evt); err != nil {
		r.logger.Debug("tree event not delivered", zap.Error(err))
	}
}
