package designer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
	"github.com/dshills/designable/internal/keyboard"
	"github.com/dshills/designable/internal/screen"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/validation"
	"github.com/dshills/designable/internal/workspace"
)

type fakeSource struct {
	next      int
	listeners map[int]func(any)
}

func newFakeSource() *fakeSource {
	return &fakeSource{listeners: make(map[int]func(any))}
}

func (s *fakeSource) Listen(fn func(raw any)) func() {
	id := s.next
	s.next++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *fakeSource) send(raw any) {
	for _, fn := range s.listeners {
		fn(raw)
	}
}

func newDesigner(t *testing.T, props Props) *Designer {
	t.Helper()
	d, err := New(props)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

func addWorkspace(t *testing.T, d *Designer, id string) *workspace.Workspace {
	t.Helper()
	ws, err := d.Workbench().AddWorkspace(workspace.Props{ID: id})
	require.NoError(t, err)
	return ws
}

func child(t *testing.T, d *Designer, parent *tree.Node, name string) *tree.Node {
	t.Helper()
	n, err := d.CreateNode(tree.Data{ComponentName: name}, parent)
	require.NoError(t, err)
	return n
}

func TestNewAppliesDefaults(t *testing.T) {
	d := newDesigner(t, Props{})

	assert.NotEmpty(t, d.ID())
	props := d.Props()
	assert.Equal(t, "Root", props.RootComponentName)
	assert.Equal(t, "data-designer-node-id", props.NodeIDAttrName)
	assert.Equal(t, "data-designer-outline-node-id", props.OutlineNodeIDAttrName)
	assert.Equal(t, "data-click-stop-propagation", props.ClickStopPropagationAttrName)
	assert.Equal(t, screen.PC, props.DefaultScreenType)
	assert.Equal(t, screen.PC, d.Screen().Type())
	assert.Empty(t, props.Shortcuts)
	assert.Empty(t, d.Keyboard().Shortcuts())
	assert.Nil(t, d.GetCurrentTree())
}

func TestNewOverridesDefaults(t *testing.T) {
	d := newDesigner(t, Props{
		RootComponentName: "Page",
		NodeIDAttrName:    "data-id",
		DefaultScreenType: screen.Mobile,
		Shortcuts:         []keyboard.Shortcut{},
	})

	assert.Equal(t, "data-id", d.Props().NodeIDAttrName)
	assert.Equal(t, "data-designer-source-id", d.Props().SourceIDAttrName)
	assert.Equal(t, screen.Mobile, d.Screen().Type())
	assert.Empty(t, d.Keyboard().Shortcuts())

	ws := addWorkspace(t, d, "w1")
	assert.Equal(t, "Page", ws.Operation().Tree().ComponentName())
}

func TestNewRejectsInvalidProps(t *testing.T) {
	_, err := New(Props{DefaultScreenType: "Watch"})
	require.Error(t, err)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "new", opErr.Op)
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestNewRejectsBadShortcut(t *testing.T) {
	_, err := New(Props{Shortcuts: []keyboard.Shortcut{{Name: "x", Keys: []string{"Hyper+x"}}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, key.ErrInvalidSpec)
}

func TestEffectsRunInOrder(t *testing.T) {
	var order []int
	d := newDesigner(t, Props{Effects: []Effect{
		func(*Designer) error { order = append(order, 1); return nil },
		nil,
		func(d *Designer) error {
			order = append(order, 2)
			_, err := d.Workbench().AddWorkspace(workspace.Props{ID: "from-effect"})
			return err
		},
	}})

	assert.Equal(t, []int{1, 2}, order)
	require.NotNil(t, d.Workbench().FindWorkspace("from-effect"))
}

func TestFailingEffectClosesDesigner(t *testing.T) {
	boom := errors.New("boom")
	closed := false
	_, err := New(Props{Effects: []Effect{
		func(d *Designer) error { d.OnClose(func() { closed = true }); return nil },
		func(*Designer) error { return boom },
	}})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "effect #1")
	assert.True(t, closed)
}

func TestGetAllSelectedNodesAggregatesInOrder(t *testing.T) {
	d := newDesigner(t, Props{})

	var want []*tree.Node
	for _, id := range []string{"w1", "w2", "w3"} {
		ws := addWorkspace(t, d, id)
		root := ws.Operation().Tree()
		a := child(t, d, root, "A")
		b := child(t, d, root, "B")
		ws.Operation().Select(b.ID(), a.ID())
		want = append(want, b, a)
	}

	got := d.GetAllSelectedNodes()
	require.Len(t, got, 6)
	assert.Equal(t, want, got)
}

func TestCrossWorkspaceDrop(t *testing.T) {
	d := newDesigner(t, Props{})
	w1 := addWorkspace(t, d, "w1")
	w2 := addWorkspace(t, d, "w2")
	n := child(t, d, w1.Operation().Tree(), "Card")
	w1.Operation().Select(n.ID())

	require.NoError(t, d.Cursor().StartDrag(w1, n.ID()))
	assert.Equal(t, []*tree.Node{n}, d.FindDraggingNodes())

	require.NoError(t, d.Cursor().Drop(w2, w2.Operation().Tree().ID()))

	assert.Empty(t, d.FindDraggingNodes())
	assert.Same(t, w2.Operation().Tree(), n.Parent())
	assert.Empty(t, w1.Operation().GetSelectedNodes())
	assert.Equal(t, []*tree.Node{n}, w2.Operation().GetSelectedNodes())
	assert.Same(t, w2, d.Workbench().CurrentWorkspace())
}

func TestFindDraggingNodesDeduplicates(t *testing.T) {
	d := newDesigner(t, Props{})
	w1 := addWorkspace(t, d, "w1")
	w2 := addWorkspace(t, d, "w2")
	n := child(t, d, w1.Operation().Tree(), "Card")

	w1.Operation().Dragon().SetDragNodes(n)
	w2.Operation().Dragon().SetDragNodes(n)

	assert.Equal(t, []*tree.Node{n}, d.FindDraggingNodes())
}

func TestMountUnmount(t *testing.T) {
	d := newDesigner(t, Props{})
	src := newFakeSource()

	d.Unmount()
	assert.False(t, d.Mounted())

	require.NoError(t, d.Mount(src))
	assert.True(t, d.Mounted())
	assert.Len(t, src.listeners, 1)

	d.Unmount()
	d.Unmount()
	assert.False(t, d.Mounted())
	assert.Zero(t, d.Bus().AttachedCount())
	assert.Empty(t, src.listeners)
}

func TestMountRejectsNilAndClosed(t *testing.T) {
	d, err := New(Props{})
	require.NoError(t, err)

	assert.Error(t, d.Mount(nil))

	d.Close()
	assert.ErrorIs(t, d.Mount(newFakeSource()), ErrClosed)
}

func TestMountedSurfaceDrivesShortcuts(t *testing.T) {
	d := newDesigner(t, Props{Shortcuts: DefaultShortcuts()})
	ws := addWorkspace(t, d, "w1")
	root := ws.Operation().Tree()
	a := child(t, d, root, "A")
	b := child(t, d, root, "B")
	ws.Operation().Select(a.ID())

	src := newFakeSource()
	require.NoError(t, d.Mount(src))

	src.send(events.KeyDown.New(events.KeyDownPayload{Event: key.NewSpecialEvent(key.KeyDelete, key.ModNone)}, "test"))

	assert.True(t, a.IsDestroyed())
	assert.Nil(t, d.FindNodeByID(a.ID()))
	assert.Equal(t, []*tree.Node{b}, root.Children())
	assert.Empty(t, ws.Operation().SelectedIDs())

	d.Unmount()
	src.send(events.KeyDown.New(events.KeyDownPayload{Event: key.NewRuneEvent('a', key.ModCtrl)}, "test"))
	assert.Empty(t, ws.Operation().SelectedIDs())
}

func TestBuiltinActions(t *testing.T) {
	ctx := context.Background()
	d := newDesigner(t, Props{Shortcuts: []keyboard.Shortcut{
		{Name: ActionSelectAll, Keys: []string{"Ctrl+A"}},
		{Name: ActionClearSelection, Keys: []string{"Escape"}},
		{Name: ActionNextWorkspace, Keys: []string{"Tab"}},
	}})
	w1 := addWorkspace(t, d, "w1")
	w2 := addWorkspace(t, d, "w2")
	root := w1.Operation().Tree()
	a := child(t, d, root, "A")
	b := child(t, d, a, "B")

	_, ok, err := d.Keyboard().Press(ctx, key.NewRuneEvent('a', key.ModCtrl))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []tree.NodeID{a.ID(), b.ID()}, w1.Operation().SelectedIDs())

	_, ok, err = d.Keyboard().Press(ctx, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, w1.Operation().SelectedIDs())

	_, _, err = d.Keyboard().Press(ctx, key.NewSpecialEvent(key.KeyTab, key.ModNone))
	require.NoError(t, err)
	assert.Same(t, w2, d.Workbench().CurrentWorkspace())

	_, _, err = d.Keyboard().Press(ctx, key.NewSpecialEvent(key.KeyTab, key.ModNone))
	require.NoError(t, err)
	assert.Same(t, w1, d.Workbench().CurrentWorkspace())
}

func TestCustomHandlerWins(t *testing.T) {
	called := false
	d := newDesigner(t, Props{Shortcuts: []keyboard.Shortcut{{
		Name: ActionDelete,
		Keys: []string{"Delete"},
		Handler: func(context.Context) error {
			called = true
			return nil
		},
	}}})
	ws := addWorkspace(t, d, "w1")
	a := child(t, d, ws.Operation().Tree(), "A")
	ws.Operation().Select(a.ID())

	_, ok, err := d.Keyboard().Press(context.Background(), key.NewSpecialEvent(key.KeyDelete, key.ModNone))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, called)
	assert.False(t, a.IsDestroyed())
}

func TestSetCurrentTree(t *testing.T) {
	d := newDesigner(t, Props{})
	payload := tree.Serialized{
		ComponentName: "Form",
		Children: []tree.Serialized{
			{ComponentName: "Input"},
			{ComponentName: "Button"},
		},
	}

	require.NoError(t, d.SetCurrentTree(payload))
	assert.Nil(t, d.GetCurrentTree())
	assert.Zero(t, d.Registry().Len())

	ws := addWorkspace(t, d, "w1")
	rootID := ws.Operation().Tree().ID()
	require.NoError(t, d.SetCurrentTree(payload))

	root := d.GetCurrentTree()
	require.NotNil(t, root)
	assert.Equal(t, rootID, root.ID())
	assert.Equal(t, "Form", root.ComponentName())
	assert.Equal(t, 3, root.Count())
	assert.Equal(t, 3, d.Registry().Len())
}

func TestCreateNodeWrapsStructuralErrors(t *testing.T) {
	d := newDesigner(t, Props{})
	ws := addWorkspace(t, d, "w1")
	parent := child(t, d, ws.Operation().Tree(), "Box")
	parent.Remove()

	_, err := d.CreateNode(tree.Data{ComponentName: "Text"}, parent)
	require.Error(t, err)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "create-node", opErr.Op)
	assert.Equal(t, parent.ID().String(), opErr.Target)
	assert.ErrorIs(t, err, tree.ErrDestroyed)
}

func TestCloseIsIdempotent(t *testing.T) {
	d, err := New(Props{})
	require.NoError(t, err)
	addWorkspace(t, d, "w1")
	addWorkspace(t, d, "w2")

	var order []string
	d.OnClose(func() { order = append(order, "first") })
	d.OnClose(func() { order = append(order, "second") })
	require.NoError(t, d.Mount(newFakeSource()))

	d.Close()
	d.Close()

	assert.Equal(t, []string{"second", "first"}, order)
	assert.False(t, d.Mounted())
	assert.Zero(t, d.Workbench().Len())
	assert.Zero(t, d.Registry().Len())
}

func TestOperationErrorFormatting(t *testing.T) {
	inner := errors.New("inner")
	err := newOperationError("mount", "surface", inner)

	assert.Equal(t, "mount surface: inner", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.ErrorIs(t, err, err)
	assert.Equal(t, "mount", newOperationError("mount", "", nil).Error())
}
