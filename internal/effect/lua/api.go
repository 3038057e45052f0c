package lua

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/topic"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/workspace"
)

// ModuleName is the global table scripts use to reach the designer.
const ModuleName = "designable"

// api binds one designer to one Lua state.
type api struct {
	d         *designer.Designer
	state     *State
	bridge    *Bridge
	logger    *zap.Logger
	name      string
	disposers []event.Disposer
}

func newAPI(d *designer.Designer, state *State, name string) *api {
	return &api{
		d:      d,
		state:  state,
		bridge: NewBridge(state.L),
		logger: d.Logger().With(zap.String("effect", name)),
		name:   name,
	}
}

func (a *api) install() {
	a.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"on":           a.on,
		"find_node":    a.findNode,
		"selected":     a.selected,
		"select":       a.selectNodes,
		"create_node":  a.createNode,
		"remove_node":  a.removeNode,
		"current_tree": a.currentTree,
		"workspaces":   a.workspaces,
		"log":          a.log,
	})
}

// release disposes every subscription made by the script.
func (a *api) release() {
	for _, dispose := range a.disposers {
		dispose()
	}
	a.disposers = nil
}

// on(pattern, fn) subscribes fn and returns a function that unsubscribes.
func (a *api) on(L *lua.LState) int {
	pattern := L.CheckString(1)
	fn := L.CheckFunction(2)

	dispose, err := a.d.Bus().On(topic.Topic(pattern), func(ctx context.Context, evt any) error {
		tp, ok := evt.(event.TopicProvider)
		if !ok {
			return nil
		}
		payload := a.payload(evt)
		if err := a.state.Call(fn, lua.LString(tp.EventTopic().String()), payload); err != nil {
			return fmt.Errorf("lua effect %s: %w", a.name, err)
		}
		return nil
	})
	if err != nil {
		L.RaiseError("on %q: %s", pattern, err.Error())
		return 0
	}
	a.disposers = append(a.disposers, dispose)

	L.Push(L.NewFunction(func(*lua.LState) int {
		dispose()
		return 0
	}))
	return 1
}

// payload converts the Payload field of a typed event.
func (a *api) payload(evt any) lua.LValue {
	table, ok := a.bridge.ToLuaValue(evt).(*lua.LTable)
	if !ok {
		return lua.LNil
	}
	return table.RawGetString("Payload")
}

func (a *api) findNode(L *lua.LState) int {
	n := a.d.FindNodeByID(tree.NodeID(L.CheckString(1)))
	if n == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(a.nodeTable(n))
	return 1
}

func (a *api) nodeTable(n *tree.Node) *lua.LTable {
	t := a.state.L.NewTable()
	t.RawSetString("id", lua.LString(n.ID().String()))
	t.RawSetString("component", lua.LString(n.ComponentName()))
	t.RawSetString("props", a.bridge.ToLuaValue(n.Props()))
	if p := n.Parent(); p != nil {
		t.RawSetString("parent", lua.LString(p.ID().String()))
	}
	children := a.state.L.NewTable()
	for i, c := range n.Children() {
		children.RawSetInt(i+1, lua.LString(c.ID().String()))
	}
	t.RawSetString("children", children)
	return t
}

func (a *api) selected(L *lua.LState) int {
	t := L.NewTable()
	for i, n := range a.d.GetAllSelectedNodes() {
		t.RawSetInt(i+1, lua.LString(n.ID().String()))
	}
	L.Push(t)
	return 1
}

// select(id, ...) or select({ids}) replaces the current selection.
func (a *api) selectNodes(L *lua.LState) int {
	ws := a.d.Workbench().CurrentWorkspace()
	if ws == nil {
		L.RaiseError("%s", ErrNoCurrentWorkspace.Error())
		return 0
	}
	args := a.bridge.StringArgs(L, 1)
	ids := make([]tree.NodeID, len(args))
	for i, id := range args {
		ids[i] = tree.NodeID(id)
	}
	ws.Operation().Select(ids...)
	return 0
}

// create_node(component, parent_id, props) returns the new node id. Without
// parent_id the node is appended to the current tree's root.
func (a *api) createNode(L *lua.LState) int {
	data := tree.Data{ComponentName: L.CheckString(1)}
	if props, ok := a.bridge.ToGoValue(L.Get(3)).(map[string]any); ok {
		data.Props = props
	}

	var parent *tree.Node
	if id := L.OptString(2, ""); id != "" {
		parent = a.d.FindNodeByID(tree.NodeID(id))
		if parent == nil {
			L.RaiseError("parent %s not found", id)
			return 0
		}
	} else if parent = a.d.GetCurrentTree(); parent == nil {
		L.RaiseError("%s", ErrNoCurrentWorkspace.Error())
		return 0
	}

	n, err := a.d.CreateNode(data, parent)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(n.ID().String()))
	return 1
}

// remove_node(id) returns false when the node does not exist or is a root.
func (a *api) removeNode(L *lua.LState) int {
	n := a.d.FindNodeByID(tree.NodeID(L.CheckString(1)))
	if n == nil || n.IsRoot() {
		L.Push(lua.LFalse)
		return 1
	}
	n.Remove()
	L.Push(lua.LTrue)
	return 1
}

func (a *api) currentTree(L *lua.LState) int {
	root := a.d.GetCurrentTree()
	if root == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(root.ID().String()))
	return 1
}

func (a *api) workspaces(L *lua.LState) int {
	t := L.NewTable()
	i := 0
	a.d.Workbench().EachWorkspace(func(ws *workspace.Workspace) bool {
		i++
		t.RawSetInt(i, lua.LString(ws.ID()))
		return true
	})
	L.Push(t)
	return 1
}

func (a *api) log(L *lua.LState) int {
	a.logger.Info(L.CheckString(1))
	return 0
}
