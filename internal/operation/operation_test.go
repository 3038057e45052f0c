package operation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
	"github.com/dshills/designable/internal/tree"
)

type fixture struct {
	bus     *event.Bus
	reg     *tree.Registry
	op      *Operation
	changes []events.SelectionChangedPayload
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{bus: event.NewBus()}
	f.reg = tree.NewRegistry(tree.WithEmitter(f.bus))

	op, err := New(Config{WorkspaceID: "ws1", Registry: f.reg, Bus: f.bus})
	require.NoError(t, err)
	f.op = op

	_, err = event.Listen(f.bus, events.SelectionChanged, func(ctx context.Context, e event.Event[events.SelectionChangedPayload]) error {
		f.changes = append(f.changes, e.Payload)
		return nil
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) child(t *testing.T, name string) *tree.Node {
	t.Helper()
	n, err := f.reg.CreateNode(tree.Data{ComponentName: name}, f.op.Tree())
	require.NoError(t, err)
	return n
}

func TestNewCreatesRoot(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, DefaultRootComponentName, f.op.Tree().ComponentName())
	assert.Same(t, f.op.Tree(), f.reg.FindByID(f.op.Tree().ID()))
	assert.Equal(t, "ws1", f.op.WorkspaceID())

	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoRegistry)
}

func TestSelectReplacesAndIgnoresUnknown(t *testing.T) {
	f := newFixture(t)
	a, b := f.child(t, "A"), f.child(t, "B")

	f.op.Select(a.ID(), "missing", b.ID(), a.ID())
	assert.Equal(t, []tree.NodeID{a.ID(), b.ID()}, f.op.SelectedIDs())
	assert.Equal(t, []*tree.Node{a, b}, f.op.GetSelectedNodes())

	f.op.Select(b.ID())
	assert.Equal(t, []tree.NodeID{b.ID()}, f.op.SelectedIDs())

	require.Len(t, f.changes, 2)
	assert.Equal(t, []string{a.ID().String()}, f.changes[1].Removed)
	assert.Empty(t, f.changes[1].Added)
	assert.Equal(t, "ws1", f.changes[1].WorkspaceID)
}

func TestSelectUnknownIsSilentNoOp(t *testing.T) {
	f := newFixture(t)
	f.op.Select("missing")
	assert.Empty(t, f.op.SelectedIDs())
	assert.Empty(t, f.changes, "no event when nothing changed")
}

func TestSelectRejectsNodesOfOtherTrees(t *testing.T) {
	f := newFixture(t)
	other, err := New(Config{WorkspaceID: "ws2", Registry: f.reg})
	require.NoError(t, err)
	foreign, err := f.reg.CreateNode(tree.Data{ComponentName: "X"}, other.Tree())
	require.NoError(t, err)

	f.op.Select(foreign.ID())
	assert.Empty(t, f.op.SelectedIDs())
}

func TestAddDeselectToggleClear(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.child(t, "A"), f.child(t, "B"), f.child(t, "C")

	f.op.Select(a.ID())
	f.op.Add(b.ID(), c.ID(), a.ID())
	assert.Equal(t, []tree.NodeID{a.ID(), b.ID(), c.ID()}, f.op.SelectedIDs())

	f.op.Deselect(b.ID(), "missing")
	assert.Equal(t, []tree.NodeID{a.ID(), c.ID()}, f.op.SelectedIDs())

	f.op.Toggle(a.ID())
	assert.False(t, f.op.Has(a.ID()))
	f.op.Toggle(a.ID())
	assert.True(t, f.op.Has(a.ID()))

	f.op.Clear()
	assert.Empty(t, f.op.SelectedIDs())

	before := len(f.changes)
	f.op.Clear()
	assert.Len(t, f.changes, before, "clearing an empty selection publishes nothing")
}

func TestSelectWithModifiers(t *testing.T) {
	f := newFixture(t)
	a, b := f.child(t, "A"), f.child(t, "B")

	f.op.SelectWithModifiers(a.ID(), key.ModNone)
	f.op.SelectWithModifiers(b.ID(), key.ModShift)
	assert.Equal(t, []tree.NodeID{a.ID(), b.ID()}, f.op.SelectedIDs())

	f.op.SelectWithModifiers(a.ID(), key.ModCtrl)
	assert.Equal(t, []tree.NodeID{b.ID()}, f.op.SelectedIDs())

	f.op.SelectWithModifiers(a.ID(), key.ModAlt)
	assert.Equal(t, []tree.NodeID{a.ID()}, f.op.SelectedIDs())
}

func TestStaleSelectionDropped(t *testing.T) {
	f := newFixture(t)
	a, b := f.child(t, "A"), f.child(t, "B")
	f.op.Select(a.ID(), b.ID())

	a.Remove()

	assert.Equal(t, []*tree.Node{b}, f.op.GetSelectedNodes())
	assert.Equal(t, []tree.NodeID{b.ID()}, f.op.SelectedIDs())
	assert.False(t, f.op.Has(a.ID()))
}

func TestDragon(t *testing.T) {
	f := newFixture(t)
	a, b := f.child(t, "A"), f.child(t, "B")
	d := f.op.Dragon()

	assert.False(t, d.IsDragging())
	d.SetDragNodes(a, nil, b, a)
	assert.Equal(t, []*tree.Node{a, b}, d.DragNodes())

	b.Remove()
	assert.Equal(t, []*tree.Node{a}, d.DragNodes())

	d.Clear()
	assert.Empty(t, d.DragNodes())
	assert.False(t, d.IsDragging())
}

func TestDragonIsPerOperation(t *testing.T) {
	f := newFixture(t)
	other, err := New(Config{WorkspaceID: "ws2", Registry: f.reg})
	require.NoError(t, err)
	a := f.child(t, "A")

	f.op.Dragon().SetDragNodes(a)
	assert.Same(t, f.op.Dragon(), f.op.Dragon())
	assert.NotSame(t, f.op.Dragon(), other.Dragon())
	assert.False(t, other.Dragon().IsDragging())
}

func TestRootIsPinned(t *testing.T) {
	f := newFixture(t)
	other, err := New(Config{WorkspaceID: "ws2", Registry: f.reg})
	require.NoError(t, err)
	a := f.child(t, "A")

	assert.True(t, f.op.Tree().IsPinned())
	assert.ErrorIs(t, a.Append(other.Tree()), tree.ErrPinned)
	assert.False(t, f.op.Owns(other.Tree()))
}

func TestDisposeRemovesTree(t *testing.T) {
	f := newFixture(t)
	a := f.child(t, "A")
	f.op.Select(a.ID())
	f.op.Dragon().SetDragNodes(a)

	f.op.Dispose()
	f.op.Dispose()

	assert.Equal(t, 0, f.reg.Len())
	assert.Nil(t, f.reg.FindByID(a.ID()))
	assert.Empty(t, f.op.GetSelectedNodes())
	assert.Empty(t, f.op.Dragon().DragNodes())
}
