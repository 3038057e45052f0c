package tree

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event/events"
)

// Node is one element of a document tree. A node exclusively owns its
// children; its parent is referenced by id and resolved through the
// registry.
type Node struct {
	id        NodeID
	data      Data
	parentID  NodeID
	children  []*Node
	registry  *Registry
	pinned    bool
	destroyed bool
}

// ID returns the node's immutable id.
func (n *Node) ID() NodeID {
	return n.id
}

// Data returns a copy of the node's payload.
func (n *Node) Data() Data {
	return n.data.Clone()
}

// ComponentName returns the component the node represents.
func (n *Node) ComponentName() string {
	return n.data.ComponentName
}

// Props returns a copy of the node's props.
func (n *Node) Props() map[string]any {
	return maps.Clone(n.data.Props)
}

// SetProps replaces the node's props.
func (n *Node) SetProps(props map[string]any) {
	if n.destroyed {
		return
	}
	n.data.Props = maps.Clone(props)
	n.registry.emit(events.NodeUpdated.New(events.NodeUpdatedPayload{
		NodeID:        n.id.String(),
		ComponentName: n.data.ComponentName,
	}, "tree"))
}

// Registry returns the arena the node belongs to.
func (n *Node) Registry() *Registry {
	return n.registry
}

// IsDestroyed reports whether the node has been removed from its registry.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// Parent returns the containing node, or nil for a root.
func (n *Node) Parent() *Node {
	if n.parentID == "" {
		return nil
	}
	return n.registry.FindByID(n.parentID)
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parentID == ""
}

// Pin fixes a root node in place: it can no longer be attached under
// another node. Operations pin their tree roots.
func (n *Node) Pin() {
	n.pinned = true
}

// IsPinned reports whether n was pinned.
func (n *Node) IsPinned() bool {
	return n.pinned
}

// Root returns the topmost ancestor, or n itself.
func (n *Node) Root() *Node {
	cur := n
	for p := cur.Parent(); p != nil; p = cur.Parent() {
		cur = p
	}
	return cur
}

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Children returns a copy of the ordered children.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Index returns the node's position among its siblings, or -1 for a root.
func (n *Node) Index() int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	return slices.Index(p.children, n)
}

// Previous returns the preceding sibling, or nil.
func (n *Node) Previous() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.Parent().children[i-1]
}

// Next returns the following sibling, or nil.
func (n *Node) Next() *Node {
	i := n.Index()
	if i < 0 {
		return nil
	}
	siblings := n.Parent().children
	if i+1 >= len(siblings) {
		return nil
	}
	return siblings[i+1]
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil {
		return false
	}
	for p := other.Parent(); p != nil; p = p.Parent() {
		if p == n {
			return true
		}
	}
	return false
}

// Contains reports whether every id resolves to n or one of its
// descendants.
func (n *Node) Contains(ids ...NodeID) bool {
	for _, id := range ids {
		other := n.registry.FindByID(id)
		if other == nil || (other != n && !n.IsAncestorOf(other)) {
			return false
		}
	}
	return true
}

// Each visits n and its descendants in pre-order. Returning false from fn
// stops the walk; Each then returns false.
func (n *Node) Each(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range slices.Clone(n.children) {
		if !c.Each(fn) {
			return false
		}
	}
	return true
}

// FindByComponent returns every node in the subtree whose component name
// matches, in pre-order.
func (n *Node) FindByComponent(name string) []*Node {
	var out []*Node
	n.Each(func(c *Node) bool {
		if c.data.ComponentName == name {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Count returns the size of the subtree including n.
func (n *Node) Count() int {
	count := 0
	n.Each(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Serialize returns the payload description of the subtree.
func (n *Node) Serialize() Serialized {
	s := Serialized{
		ID:            n.id.String(),
		ComponentName: n.data.ComponentName,
		Props:         maps.Clone(n.data.Props),
	}
	for _, c := range n.children {
		s.Children = append(s.Children, c.Serialize())
	}
	return s
}

// From replaces the subtree rooted at n with one built from s. Previous
// descendants are deregistered before the new children are created. The
// root keeps its id; descendant ids from s are reused when no live node
// holds them.
func (n *Node) From(s Serialized) error {
	if n.destroyed {
		return structural("from", n.id, "", ErrDestroyed)
	}

	for _, c := range n.children {
		n.registry.deregister(c)
	}
	n.children = nil

	if s.ComponentName != "" {
		n.data.ComponentName = s.ComponentName
	}
	n.data.Props = maps.Clone(s.Props)
	for _, cs := range s.Children {
		n.build(cs)
	}

	count := n.Count()
	n.registry.logger.Debug("tree replaced",
		zap.String("root", n.id.String()),
		zap.Int("nodes", count),
	)
	n.registry.emit(events.TreeReplaced.New(events.TreeReplacedPayload{
		RootID:    n.id.String(),
		NodeCount: count,
	}, "tree"))
	return nil
}

func (n *Node) build(s Serialized) {
	id := NodeID(s.ID)
	if id == "" || n.registry.Has(id) {
		id = NewNodeID()
	}
	child := n.registry.newNode(id, Data{ComponentName: s.ComponentName, Props: maps.Clone(s.Props)})
	child.parentID = n.id
	n.children = append(n.children, child)
	for _, cs := range s.Children {
		child.build(cs)
	}
}

// Remove detaches n from its parent and deregisters n and its whole
// subtree. Removing a removed node does nothing.
func (n *Node) Remove() {
	if n.destroyed {
		return
	}

	parent := n.Parent()
	if parent != nil {
		parent.removeChild(n)
	}
	id := n.id
	count := n.registry.deregister(n)

	var parentID string
	if parent != nil {
		parentID = parent.id.String()
	}
	n.registry.logger.Debug("node removed",
		zap.String("node", id.String()),
		zap.Int("count", count),
	)
	n.registry.emit(events.NodeRemoved.New(events.NodeRemovedPayload{
		NodeID:   id.String(),
		ParentID: parentID,
		Count:    count,
	}, "tree"))
}

// Append attaches nodes as the last children of n, moving any that are
// attached elsewhere.
func (n *Node) Append(nodes ...*Node) error {
	return n.attach("append", len(n.children), nodes)
}

// Prepend attaches nodes as the first children of n.
func (n *Node) Prepend(nodes ...*Node) error {
	return n.attach("prepend", 0, nodes)
}

// InsertAt attaches nodes starting at index. The index is clamped to the
// current child range.
func (n *Node) InsertAt(index int, nodes ...*Node) error {
	return n.attach("insert", index, nodes)
}

// InsertBefore attaches nodes as siblings immediately before n.
func (n *Node) InsertBefore(nodes ...*Node) error {
	parent := n.Parent()
	if parent == nil {
		return structural("insert-before", "", n.id, ErrNoParent)
	}
	return parent.attach("insert-before", n.Index(), nodes)
}

// InsertAfter attaches nodes as siblings immediately after n.
func (n *Node) InsertAfter(nodes ...*Node) error {
	parent := n.Parent()
	if parent == nil {
		return structural("insert-after", "", n.id, ErrNoParent)
	}
	return parent.attach("insert-after", n.Index()+1, nodes)
}

// attach validates every node first and only then mutates, so a rejected
// call leaves all trees unchanged.
func (n *Node) attach(op string, index int, nodes []*Node) error {
	if n.destroyed {
		return structural(op, "", n.id, ErrDestroyed)
	}

	var batch []*Node
	for _, c := range nodes {
		if c == nil || slices.Contains(batch, c) {
			continue
		}
		switch {
		case c.destroyed:
			return structural(op, c.id, n.id, ErrDestroyed)
		case c.registry != n.registry:
			return structural(op, c.id, n.id, ErrForeignNode)
		case c == n:
			return structural(op, c.id, n.id, ErrSelfAttach)
		case c.pinned:
			return structural(op, c.id, n.id, ErrPinned)
		case c.IsAncestorOf(n):
			return structural(op, c.id, n.id, ErrCycle)
		}
		batch = append(batch, c)
	}

	index = max(0, min(index, len(n.children)))
	moves := make([]events.NodeMovedPayload, 0, len(batch))
	for _, c := range batch {
		from := c.Parent()
		if from != nil {
			if from == n && slices.Index(n.children, c) < index {
				index--
			}
			from.removeChild(c)
		}
		n.children = slices.Insert(n.children, index, c)
		c.parentID = n.id

		var fromID string
		if from != nil {
			fromID = from.id.String()
		}
		moves = append(moves, events.NodeMovedPayload{
			NodeID:       c.id.String(),
			FromParentID: fromID,
			ToParentID:   n.id.String(),
			Index:        index,
		})
		index++
	}

	for _, m := range moves {
		n.registry.emit(events.NodeMoved.New(m, "tree"))
	}
	return nil
}

func (n *Node) removeChild(c *Node) {
	if i := slices.Index(n.children, c); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	c.parentID = ""
}
