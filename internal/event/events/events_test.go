package events

import (
	"testing"

	"github.com/dshills/designable/internal/event/topic"
)

func TestTopicsAreDistinctAndConcrete(t *testing.T) {
	all := []topic.Topic{
		NodeCreated.Topic, NodeRemoved.Topic, NodeMoved.Topic, NodeUpdated.Topic, TreeReplaced.Topic,
		SelectionChanged.Topic,
		DragStarted.Topic, DragDropped.Topic, DragCancelled.Topic,
		WorkspaceAdded.Topic, WorkspaceRemoved.Topic, WorkspaceFocused.Topic,
		PointerDown.Topic, PointerMove.Topic, PointerUp.Topic, KeyDown.Topic, ScreenResized.Topic,
		ScreenChanged.Topic, ShortcutTriggered.Topic, DocumentReloaded.Topic,
	}

	seen := make(map[topic.Topic]bool, len(all))
	for _, tp := range all {
		if !tp.IsValid() {
			t.Errorf("topic %q is not valid", tp)
		}
		if tp.IsWildcard() {
			t.Errorf("topic %q must not be a wildcard", tp)
		}
		if seen[tp] {
			t.Errorf("topic %q declared twice", tp)
		}
		seen[tp] = true
	}
}

func TestTreeTopicsShareNamespace(t *testing.T) {
	for _, tp := range []topic.Topic{TopicTreeNodeCreated, TopicTreeNodeMoved, TopicTreeReplaced} {
		if !tp.Matches("tree.**") {
			t.Errorf("%q should match tree.**", tp)
		}
	}
	if TopicSelectionChanged.Matches("tree.**") {
		t.Error("selection.changed should not match tree.**")
	}
}
