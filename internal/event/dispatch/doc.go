// Package dispatch runs event handlers for the bus.
//
// Delivery is always synchronous: the designer engine is single-threaded and
// every tree, selection or drag mutation happens inside one handler call.
// The Executor isolates each invocation so that a handler which returns an
// error or panics cannot stop the handlers registered after it.
//
// # Usage
//
//	exec := dispatch.NewExecutor(
//	    dispatch.WithPanicHandler(func(event any, v any, stack []byte) {
//	        logger.Error("handler panic", zap.Any("value", v))
//	    }),
//	)
//	result := exec.Execute(ctx, evt, handler)
//	if !result.IsSuccess() {
//	    // report result.Error or result.PanicValue
//	}
package dispatch
