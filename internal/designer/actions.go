package designer

import (
	"context"

	"github.com/dshills/designable/internal/cursor"
	"github.com/dshills/designable/internal/keyboard"
	"github.com/dshills/designable/internal/tree"
)

// Built-in actions. A shortcut with one of these names and no Handler is
// bound to the action.
const (
	ActionDelete         = "delete"
	ActionSelectAll      = "select-all"
	ActionClearSelection = "clear-selection"
	ActionCancelDrag     = "cancel-drag"
	ActionNextWorkspace  = "next-workspace"
)

// DefaultShortcuts binds the built-in actions to their usual keys.
func DefaultShortcuts() []keyboard.Shortcut {
	return []keyboard.Shortcut{
		{Name: ActionDelete, Keys: []string{"Delete"}},
		{Name: ActionSelectAll, Keys: []string{"Ctrl+A"}},
		{Name: ActionClearSelection, Keys: []string{"Ctrl+Shift+A"}},
		{Name: ActionNextWorkspace, Keys: []string{"Ctrl+Tab"}},
	}
}

func (d *Designer) bindActions(shortcuts []keyboard.Shortcut) []keyboard.Shortcut {
	actions := map[string]func(context.Context) error{
		ActionDelete:         d.deleteSelection,
		ActionSelectAll:      d.selectAll,
		ActionClearSelection: d.clearSelection,
		ActionCancelDrag: func(context.Context) error {
			d.cursor.Cancel(cursor.ReasonCancelled)
			return nil
		},
		ActionNextWorkspace: d.nextWorkspace,
	}

	out := make([]keyboard.Shortcut, len(shortcuts))
	for i, sc := range shortcuts {
		if sc.Handler == nil {
			sc.Handler = actions[sc.Name]
		}
		out[i] = sc
	}
	return out
}

// deleteSelection removes the selected nodes of the current workspace. The
// root is never removed.
func (d *Designer) deleteSelection(context.Context) error {
	ws := d.workbench.CurrentWorkspace()
	if ws == nil {
		return nil
	}
	for _, n := range ws.Operation().GetSelectedNodes() {
		if !n.IsRoot() {
			n.Remove()
		}
	}
	ws.Operation().Clear()
	return nil
}

func (d *Designer) selectAll(context.Context) error {
	ws := d.workbench.CurrentWorkspace()
	if ws == nil {
		return nil
	}
	root := ws.Operation().Tree()
	var ids []tree.NodeID
	root.Each(func(n *tree.Node) bool {
		if n != root {
			ids = append(ids, n.ID())
		}
		return true
	})
	ws.Operation().Select(ids...)
	return nil
}

func (d *Designer) clearSelection(context.Context) error {
	if ws := d.workbench.CurrentWorkspace(); ws != nil {
		ws.Operation().Clear()
	}
	return nil
}

func (d *Designer) nextWorkspace(context.Context) error {
	all := d.workbench.Workspaces()
	if len(all) < 2 {
		return nil
	}
	next := all[0]
	if cur := d.workbench.CurrentWorkspace(); cur != nil {
		for i, ws := range all {
			if ws == cur {
				next = all[(i+1)%len(all)]
				break
			}
		}
	}
	return d.workbench.SetCurrent(next.ID())
}
