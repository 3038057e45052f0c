package events

import (
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/topic"
)

// TopicSelectionChanged is published when an operation's selection changes.
const TopicSelectionChanged topic.Topic = "selection.changed"

// SelectionChangedPayload describes a selection change within one workspace.
type SelectionChangedPayload struct {
	// WorkspaceID identifies the operation's workspace.
	WorkspaceID string

	// Selected is the full selection after the change, in order.
	Selected []string

	// Added are ids that became selected.
	Added []string

	// Removed are ids that are no longer selected.
	Removed []string
}

// SelectionChanged is the selection change kind.
var SelectionChanged = event.NewKind[SelectionChangedPayload](TopicSelectionChanged)
