package events

import (
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/topic"
)

// Tree event topics.
const (
	// TopicTreeNodeCreated is published when the registry creates a node.
	TopicTreeNodeCreated topic.Topic = "tree.node.created"

	// TopicTreeNodeRemoved is published when a subtree is removed.
	TopicTreeNodeRemoved topic.Topic = "tree.node.removed"

	// TopicTreeNodeMoved is published when a node is attached under a parent.
	TopicTreeNodeMoved topic.Topic = "tree.node.moved"

	// TopicTreeNodeUpdated is published when a node's props are replaced.
	TopicTreeNodeUpdated topic.Topic = "tree.node.updated"

	// TopicTreeReplaced is published when a subtree is rebuilt from a payload.
	TopicTreeReplaced topic.Topic = "tree.replaced"
)

// NodeCreatedPayload describes a newly created node.
type NodeCreatedPayload struct {
	// NodeID is the new node.
	NodeID string

	// ParentID is the parent the node was appended to, if any.
	ParentID string

	// ComponentName is the node's component.
	ComponentName string

	// Index is the node's position among its siblings, or -1 for roots.
	Index int
}

// NodeRemovedPayload describes a removed subtree.
type NodeRemovedPayload struct {
	// NodeID is the root of the removed subtree.
	NodeID string

	// ParentID is the former parent, if any.
	ParentID string

	// Count is the number of nodes deregistered.
	Count int
}

// NodeMovedPayload describes an attach or move.
type NodeMovedPayload struct {
	NodeID       string
	FromParentID string
	ToParentID   string
	Index        int
}

// NodeUpdatedPayload describes a props replacement.
type NodeUpdatedPayload struct {
	NodeID        string
	ComponentName string
}

// TreeReplacedPayload describes a rebuilt subtree.
type TreeReplacedPayload struct {
	// RootID is the node whose subtree was replaced.
	RootID string

	// NodeCount is the size of the new subtree including the root.
	NodeCount int
}

// Tree event kinds.
var (
	NodeCreated  = event.NewKind[NodeCreatedPayload](TopicTreeNodeCreated)
	NodeRemoved  = event.NewKind[NodeRemovedPayload](TopicTreeNodeRemoved)
	NodeMoved    = event.NewKind[NodeMovedPayload](TopicTreeNodeMoved)
	NodeUpdated  = event.NewKind[NodeUpdatedPayload](TopicTreeNodeUpdated)
	TreeReplaced = event.NewKind[TreeReplacedPayload](TopicTreeReplaced)
)
