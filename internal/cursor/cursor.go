package cursor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/workspace"
)

// Errors returned by drag operations.
var (
	ErrConcurrentDrag    = errors.New("a drag gesture is already active")
	ErrNothingToDrag     = errors.New("no draggable nodes")
	ErrNotDragging       = errors.New("no drag gesture is active")
	ErrInvalidDropTarget = errors.New("invalid drop target")
	ErrNoWorkbench       = errors.New("cursor requires a workbench")
)

// Cancel reasons reported in drag.cancelled events.
const (
	ReasonCancelled = "cancelled"
	ReasonEscape    = "escape"
	ReasonReleased  = "released-outside"
	ReasonRejected  = "invalid-target"
	ReasonStale     = "stale"
)

// Config configures a Cursor.
type Config struct {
	// Workbench provides the workspaces gestures run in.
	Workbench *workspace.Workbench

	// Bus delivers pointer and key events and receives drag events.
	Bus *event.Bus

	// DragThreshold is the distance in cells a pressed pointer must travel
	// before a drag starts. Defaults to 1.
	DragThreshold int

	// Logger is optional.
	Logger *zap.Logger
}

// Cursor is the drag and selection gesture coordinator of a designer. It is
// driven from the designer's event loop and is not safe for concurrent use.
type Cursor struct {
	workbench *workspace.Workbench
	bus       *event.Bus
	logger    *zap.Logger
	threshold int

	state   State
	last    State
	origin  *workspace.Workspace
	dragIDs []tree.NodeID

	position  Position
	press     tracker
	hitTester HitTester
	subs      []event.Subscription
}

// New creates a cursor and subscribes it to pointer, key and workspace
// removal events.
func New(cfg Config) (*Cursor, error) {
	if cfg.Workbench == nil {
		return nil, ErrNoWorkbench
	}
	if cfg.DragThreshold <= 0 {
		cfg.DragThreshold = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	c := &Cursor{
		workbench: cfg.Workbench,
		bus:       cfg.Bus,
		logger:    cfg.Logger,
		threshold: cfg.DragThreshold,
	}
	if c.bus == nil {
		return c, nil
	}

	opts := []event.SubscriptionOption{event.WithPriority(event.PriorityCritical)}
	listeners := []func() (event.Subscription, error){
		func() (event.Subscription, error) { return event.Listen(c.bus, events.PointerDown, c.onPointerDown, opts...) },
		func() (event.Subscription, error) { return event.Listen(c.bus, events.PointerMove, c.onPointerMove, opts...) },
		func() (event.Subscription, error) { return event.Listen(c.bus, events.PointerUp, c.onPointerUp, opts...) },
		func() (event.Subscription, error) { return event.Listen(c.bus, events.KeyDown, c.onKeyDown, opts...) },
		func() (event.Subscription, error) {
			return event.Listen(c.bus, events.WorkspaceRemoved, c.onWorkspaceRemoved, opts...)
		},
	}
	for _, listen := range listeners {
		sub, err := listen()
		if err != nil {
			c.Close()
			return nil, err
		}
		c.subs = append(c.subs, sub)
	}
	return c, nil
}

// SetHitTester installs the resolver used for pointer gestures.
func (c *Cursor) SetHitTester(h HitTester) {
	c.hitTester = h
}

// State returns the current state.
func (c *Cursor) State() State {
	return c.state
}

// LastOutcome returns how the last finished gesture ended, or StateIdle if
// none has finished.
func (c *Cursor) LastOutcome() State {
	return c.last
}

// Origin returns the workspace the active drag started in, or nil.
func (c *Cursor) Origin() *workspace.Workspace {
	return c.origin
}

// Position returns the last known pointer position.
func (c *Cursor) Position() Position {
	return c.position
}

// DragState returns a snapshot of the cursor.
func (c *Cursor) DragState() DragState {
	ds := DragState{
		State:       c.state,
		NodeIDs:     slices.Clone(c.dragIDs),
		Button:      c.press.button,
		Modifiers:   c.press.modifiers,
		StartPos:    c.press.startPos,
		CurrentPos:  c.position,
		LastOutcome: c.last,
	}
	if c.origin != nil {
		ds.OriginID = c.origin.ID()
	}
	return ds
}

// StartDrag begins dragging ids from origin. Roots, unknown ids and ids
// outside origin's tree are skipped, as are nodes whose ancestor is also
// dragged so that subtrees move intact.
func (c *Cursor) StartDrag(origin *workspace.Workspace, ids ...tree.NodeID) error {
	if c.state == StateDragging {
		if c.workbench.FindWorkspace(c.origin.ID()) == c.origin {
			return ErrConcurrentDrag
		}
		c.Cancel(ReasonStale)
	}
	if origin == nil {
		return ErrNothingToDrag
	}

	op := origin.Operation()
	var nodes []*tree.Node
	for _, id := range ids {
		n := op.Resolve(id)
		if n == nil || n.IsRoot() || slices.Contains(nodes, n) {
			continue
		}
		nodes = append(nodes, n)
	}
	candidates := slices.Clone(nodes)
	nodes = slices.DeleteFunc(nodes, func(n *tree.Node) bool {
		return slices.ContainsFunc(candidates, func(other *tree.Node) bool { return other.IsAncestorOf(n) })
	})
	if len(nodes) == 0 {
		return ErrNothingToDrag
	}

	op.Dragon().SetDragNodes(nodes...)
	c.state = StateDragging
	c.origin = origin
	c.dragIDs = make([]tree.NodeID, len(nodes))
	for i, n := range nodes {
		c.dragIDs[i] = n.ID()
	}

	c.logger.Debug("drag started",
		zap.String("workspace", origin.ID()),
		zap.Int("nodes", len(nodes)),
	)
	publish(c, events.DragStarted, events.DragStartedPayload{
		OriginWorkspaceID: origin.ID(),
		NodeIDs:           tree.IDs(c.dragIDs),
	})
	return nil
}

// Drop re-parents the dragged nodes under targetID in target. The move is
// all-or-nothing. On an invalid target the gesture is cancelled and the
// returned error wraps ErrInvalidDropTarget and, where it applies, the
// tree's structural error.
func (c *Cursor) Drop(target *workspace.Workspace, targetID tree.NodeID) error {
	if c.state != StateDragging {
		return ErrNotDragging
	}

	origin := c.origin
	nodes := origin.Operation().Dragon().DragNodes()
	if len(nodes) == 0 {
		c.Cancel(ReasonStale)
		return ErrNothingToDrag
	}

	if target == nil {
		c.Cancel(ReasonRejected)
		return ErrInvalidDropTarget
	}
	targetNode := target.Operation().Resolve(targetID)
	if targetNode == nil {
		c.Cancel(ReasonRejected)
		return fmt.Errorf("%w: node %s not in workspace %s", ErrInvalidDropTarget, targetID, target.ID())
	}

	ids := make([]tree.NodeID, len(nodes))
	var wasSelected []tree.NodeID
	for i, n := range nodes {
		ids[i] = n.ID()
		if origin.Operation().Has(n.ID()) {
			wasSelected = append(wasSelected, n.ID())
		}
	}

	if err := targetNode.Append(nodes...); err != nil {
		c.Cancel(ReasonRejected)
		return fmt.Errorf("%w: %w", ErrInvalidDropTarget, err)
	}

	origin.Operation().Dragon().Clear()
	if target != origin {
		origin.Operation().Deselect(wasSelected...)
	}
	target.Operation().Select(ids...)
	if err := c.workbench.SetCurrent(target.ID()); err != nil {
		c.logger.Debug("drop target not focusable", zap.Error(err))
	}

	c.state = StateDropped
	c.logger.Debug("drag dropped",
		zap.String("origin", origin.ID()),
		zap.String("target", target.ID()),
		zap.String("node", targetID.String()),
	)
	publish(c, events.DragDropped, events.DragDroppedPayload{
		OriginWorkspaceID: origin.ID(),
		TargetWorkspaceID: target.ID(),
		TargetNodeID:      targetID.String(),
		NodeIDs:           tree.IDs(ids),
	})
	c.finish(StateDropped)
	return nil
}

// Cancel aborts the active gesture without touching any tree. It does
// nothing when idle.
func (c *Cursor) Cancel(reason string) {
	if c.state != StateDragging {
		return
	}
	if reason == "" {
		reason = ReasonCancelled
	}

	origin, ids := c.origin, c.dragIDs
	origin.Operation().Dragon().Clear()
	c.state = StateCancelled

	c.logger.Debug("drag cancelled", zap.String("reason", reason))
	publish(c, events.DragCancelled, events.DragCancelledPayload{
		OriginWorkspaceID: origin.ID(),
		NodeIDs:           tree.IDs(ids),
		Reason:            reason,
	})
	c.finish(StateCancelled)
}

// Close unsubscribes the cursor from the bus, cancelling any active drag.
func (c *Cursor) Close() {
	c.Cancel(ReasonCancelled)
	for _, sub := range c.subs {
		sub.Dispose()
	}
	c.subs = nil
}

func (c *Cursor) finish(outcome State) {
	c.last = outcome
	c.state = StateIdle
	c.origin = nil
	c.dragIDs = nil
}

func (c *Cursor) hitTest(pos Position) (Hit, bool) {
	if c.hitTester == nil {
		return Hit{}, false
	}
	hit, ok := c.hitTester.HitTest(pos.X, pos.Y)
	if !ok || hit.Workspace == nil {
		return Hit{}, false
	}
	return hit, true
}

func (c *Cursor) onPointerDown(ctx context.Context, e event.Event[events.PointerPayload]) error {
	p := e.Payload
	c.position = Position{X: p.X, Y: p.Y}
	if p.Button != events.ButtonPrimary {
		return nil
	}

	hit, ok := c.hitTest(c.position)
	c.press.start(c.position, p.Button, p.Modifiers, hit, ok)
	if ok {
		if err := c.workbench.SetCurrent(hit.Workspace.ID()); err != nil {
			c.logger.Debug("focus failed", zap.Error(err))
		}
	}
	return nil
}

func (c *Cursor) onPointerMove(ctx context.Context, e event.Event[events.PointerPayload]) error {
	c.position = Position{X: e.Payload.X, Y: e.Payload.Y}
	if !c.press.active || c.press.moved || c.press.distance(c.position) < c.threshold {
		return nil
	}
	c.press.moved = true

	if !c.press.hasHit || c.press.hit.NodeID == "" || c.state != StateIdle {
		return nil
	}
	ws, id := c.press.hit.Workspace, c.press.hit.NodeID
	ids := []tree.NodeID{id}
	if ws.Operation().Has(id) {
		ids = ws.Operation().SelectedIDs()
	}
	if err := c.StartDrag(ws, ids...); err != nil {
		c.logger.Debug("drag not started", zap.Error(err))
	}
	return nil
}

func (c *Cursor) onPointerUp(ctx context.Context, e event.Event[events.PointerPayload]) error {
	c.position = Position{X: e.Payload.X, Y: e.Payload.Y}
	press := c.press
	c.press.end()

	if c.state == StateDragging {
		hit, ok := c.hitTest(c.position)
		if !ok || hit.NodeID == "" {
			c.Cancel(ReasonReleased)
			return nil
		}
		if err := c.Drop(hit.Workspace, hit.NodeID); err != nil {
			c.logger.Debug("drop rejected", zap.Error(err))
		}
		return nil
	}

	if !press.active || press.moved || !press.hasHit {
		return nil
	}
	op := press.hit.Workspace.Operation()
	if press.hit.NodeID == "" {
		op.Clear()
		return nil
	}
	op.SelectWithModifiers(press.hit.NodeID, press.modifiers)
	return nil
}

func (c *Cursor) onKeyDown(ctx context.Context, e event.Event[events.KeyDownPayload]) error {
	if e.Payload.Event.Key == key.KeyEscape {
		c.Cancel(ReasonEscape)
	}
	return nil
}

// A drag whose origin workspace is gone can never drop.
func (c *Cursor) onWorkspaceRemoved(ctx context.Context, e event.Event[events.WorkspacePayload]) error {
	if c.state == StateDragging && c.origin.ID() == e.Payload.WorkspaceID {
		c.Cancel(ReasonStale)
	}
	return nil
}

func publish[T any](c *Cursor, k event.Kind[T], payload T) {
	if c.bus == nil {
		return
	}
	if err := event.Publish(context.Background(), c.bus, k, payload, "cursor"); err != nil {
		c.logger.Debug("cursor event not delivered", zap.Error(err))
	}
}
