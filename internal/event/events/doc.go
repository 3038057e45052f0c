// Package events declares the closed set of events exchanged on a
// designer's bus.
//
// Each component owns a group of topics. Every topic is paired with exactly
// one payload type through an event.Kind, so publishers and subscribers agree
// on the payload at compile time:
//
//	event.Listen(bus, events.NodeMoved, func(ctx context.Context, e event.Event[events.NodeMovedPayload]) error {
//		...
//	})
//
// Ids are carried as plain strings so that this package stays a leaf.
package events
