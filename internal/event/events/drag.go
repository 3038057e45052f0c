package events

import (
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/topic"
)

// Drag event topics.
const (
	TopicDragStarted   topic.Topic = "drag.started"
	TopicDragDropped   topic.Topic = "drag.dropped"
	TopicDragCancelled topic.Topic = "drag.cancelled"
)

// DragStartedPayload describes a new drag gesture.
type DragStartedPayload struct {
	// OriginWorkspaceID is the workspace the gesture started in.
	OriginWorkspaceID string

	// NodeIDs are the dragged nodes in order.
	NodeIDs []string
}

// DragDroppedPayload describes a completed drop.
type DragDroppedPayload struct {
	OriginWorkspaceID string
	TargetWorkspaceID string
	TargetNodeID      string
	NodeIDs           []string
}

// DragCancelledPayload describes an aborted gesture.
type DragCancelledPayload struct {
	OriginWorkspaceID string
	NodeIDs           []string

	// Reason is a short machine-readable cause, e.g. "escape" or "invalid-target".
	Reason string
}

// Drag event kinds.
var (
	DragStarted   = event.NewKind[DragStartedPayload](TopicDragStarted)
	DragDropped   = event.NewKind[DragDroppedPayload](TopicDragDropped)
	DragCancelled = event.NewKind[DragCancelledPayload](TopicDragCancelled)
)
