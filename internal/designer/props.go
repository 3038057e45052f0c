package designer

import (
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/keyboard"
	"github.com/dshills/designable/internal/screen"
)

// Effect is a setup function run against a new designer, in order.
type Effect func(d *Designer) error

// Props configures a Designer. Zero-valued fields take the defaults of
// DefaultProps. Shortcuts default to none; DefaultShortcuts is the
// built-in table a host can opt into.
type Props struct {
	Shortcuts []keyboard.Shortcut `validate:"dive"`
	Effects   []Effect
	Drivers   []event.Driver

	RootComponentName string `validate:"required"`

	SourceIDAttrName              string `validate:"required"`
	NodeIDAttrName                string `validate:"required"`
	ContentEditableAttrName       string `validate:"required"`
	ContentEditableNodeIDAttrName string `validate:"required"`
	ClickStopPropagationAttrName  string `validate:"required"`
	NodeSelectionIDAttrName       string `validate:"required"`
	NodeDragHandlerAttrName       string `validate:"required"`
	NodeResizeHandlerAttrName     string `validate:"required"`
	OutlineNodeIDAttrName         string `validate:"required"`

	DefaultScreenType screen.Type `validate:"required,oneof=PC Mobile Responsive Sketch"`

	// DragThreshold is the pointer travel in cells that turns a press
	// into a drag.
	DragThreshold int `validate:"gte=0"`
}

// DefaultProps returns the default designer configuration.
func DefaultProps() Props {
	return Props{
		RootComponentName:             "Root",
		SourceIDAttrName:              "data-designer-source-id",
		NodeIDAttrName:                "data-designer-node-id",
		ContentEditableAttrName:       "data-content-editable",
		ContentEditableNodeIDAttrName: "data-content-editable-node-id",
		ClickStopPropagationAttrName:  "data-click-stop-propagation",
		NodeSelectionIDAttrName:       "data-designer-node-helpers-id",
		NodeDragHandlerAttrName:       "data-designer-node-handler",
		NodeResizeHandlerAttrName:     "data-designer-node-resize-handler",
		OutlineNodeIDAttrName:         "data-designer-outline-node-id",
		DefaultScreenType:             screen.PC,
		DragThreshold:                 1,
	}
}

// merged overlays p onto the defaults.
func (p Props) merged() Props {
	out := DefaultProps()
	out.Shortcuts = p.Shortcuts
	out.Effects = p.Effects
	out.Drivers = p.Drivers

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&out.RootComponentName, p.RootComponentName)
	set(&out.SourceIDAttrName, p.SourceIDAttrName)
	set(&out.NodeIDAttrName, p.NodeIDAttrName)
	set(&out.ContentEditableAttrName, p.ContentEditableAttrName)
	set(&out.ContentEditableNodeIDAttrName, p.ContentEditableNodeIDAttrName)
	set(&out.ClickStopPropagationAttrName, p.ClickStopPropagationAttrName)
	set(&out.NodeSelectionIDAttrName, p.NodeSelectionIDAttrName)
	set(&out.NodeDragHandlerAttrName, p.NodeDragHandlerAttrName)
	set(&out.NodeResizeHandlerAttrName, p.NodeResizeHandlerAttrName)
	set(&out.OutlineNodeIDAttrName, p.OutlineNodeIDAttrName)

	if p.DefaultScreenType != "" {
		out.DefaultScreenType = p.DefaultScreenType
	}
	if p.DragThreshold != 0 {
		out.DragThreshold = p.DragThreshold
	}
	return out
}
