package events

import (
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/topic"
)

// Designer collaborator topics.
const (
	// TopicScreenChanged is published when the screen type or size changes.
	TopicScreenChanged topic.Topic = "screen.changed"

	// TopicShortcutTriggered is published when a configured shortcut matches.
	TopicShortcutTriggered topic.Topic = "keyboard.shortcut"

	// TopicDocumentReloaded is published after a watched document is reloaded.
	TopicDocumentReloaded topic.Topic = "document.reloaded"
)

// ScreenChangedPayload describes the screen state after a change.
type ScreenChangedPayload struct {
	Type          string
	PreviousType  string
	Width, Height int
}

// ShortcutTriggeredPayload names the matched shortcut.
type ShortcutTriggeredPayload struct {
	// Name is the shortcut's configured name, e.g. "delete".
	Name string

	// Keys is the chord that triggered it.
	Keys string
}

// DocumentReloadedPayload describes a reloaded document.
type DocumentReloadedPayload struct {
	Path      string
	NodeCount int
}

// Collaborator event kinds.
var (
	ScreenChanged     = event.NewKind[ScreenChangedPayload](TopicScreenChanged)
	ShortcutTriggered = event.NewKind[ShortcutTriggeredPayload](TopicShortcutTriggered)
	DocumentReloaded  = event.NewKind[DocumentReloadedPayload](TopicDocumentReloaded)
)
