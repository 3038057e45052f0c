// Package designer is the entry point of the visual designer engine.
//
// A Designer owns one event bus, one node registry and the collaborators
// that react to input: a Workbench of workspaces, a Cursor for drag and
// selection gestures, a Keyboard for shortcuts and a Screen for the
// preview surface. Every query that spans workspaces goes through the
// Designer.
//
// # Lifecycle
//
//	d, err := designer.New(designer.Props{}, designer.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
//
//	if err := d.Mount(terminal); err != nil {
//	    return err
//	}
//
// Mount attaches the bus to an input surface through the configured
// drivers. Unmount releases it and may be called any number of times.
package designer
