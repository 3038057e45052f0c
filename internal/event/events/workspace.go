package events

import (
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/topic"
)

// Workspace event topics.
const (
	TopicWorkspaceAdded   topic.Topic = "workspace.added"
	TopicWorkspaceRemoved topic.Topic = "workspace.removed"
	TopicWorkspaceFocused topic.Topic = "workspace.focused"
)

// WorkspacePayload identifies a workspace.
type WorkspacePayload struct {
	WorkspaceID string
	Title       string
}

// WorkspaceFocusedPayload describes a change of the current workspace.
type WorkspaceFocusedPayload struct {
	// WorkspaceID is the new current workspace, empty when none remain.
	WorkspaceID string

	// PreviousID is the former current workspace, if any.
	PreviousID string
}

// Workspace event kinds.
var (
	WorkspaceAdded   = event.NewKind[WorkspacePayload](TopicWorkspaceAdded)
	WorkspaceRemoved = event.NewKind[WorkspacePayload](TopicWorkspaceRemoved)
	WorkspaceFocused = event.NewKind[WorkspaceFocusedPayload](TopicWorkspaceFocused)
)
