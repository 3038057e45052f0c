// Package event provides the event bus shared by every designer component.
//
// The bus is the designer's dispatch substrate: the tree registry announces
// node creation and moves on it, operations announce selection changes, the
// cursor announces drag transitions and the input drivers re-emit terminal
// input on it. Components hold a *Bus; none of them embed one.
//
// # Delivery
//
// Emit is synchronous. Every handler whose pattern matches the event topic
// runs in the caller's goroutine, ordered by priority and then by
// registration order. The handler list is snapshotted when Emit starts, so a
// handler may subscribe, unsubscribe or emit again without disturbing the
// pass in progress.
//
// A handler that returns an error or panics is isolated: the failure is
// counted, reported through the bus logger as a *HandlerError or *PanicError,
// and the remaining handlers still run. WithFailFast makes Emit also return
// the first failure to the emitter.
//
// # Typed events
//
// Each component declares its topics as Kind values pairing a topic with a
// payload type (see package events). Publish and Listen only accept a payload
// or handler of the kind's type, so a mismatched emit/subscribe pair fails to
// compile:
//
//	sub, err := event.Listen(bus, events.SelectionChangedKind,
//	    func(ctx context.Context, e event.Event[events.SelectionChanged]) error {
//	        redraw(e.Payload.WorkspaceID)
//	        return nil
//	    })
//	defer sub.Dispose()
//
//	_ = event.Publish(ctx, bus, events.SelectionChangedKind, payload, "operation")
//
// Untyped wildcard subscriptions ("tree.**", "**") use Subscribe with a
// HandlerFunc.
//
// # External sources
//
// AttachEvents wires the bus to an external input surface. Each Driver
// listens to the surface's raw events and re-emits them as typed events.
// DetachEvents releases every listener and is safe to call at any time.
package event
