// Package workspace manages the open editing surfaces of a designer.
//
// A Workspace wraps one operation.Operation together with an optional
// rendering context. The Workbench owns the ordered workspaces and tracks
// the current one. Removing a workspace disposes its operation, which
// deregisters its whole tree.
package workspace
