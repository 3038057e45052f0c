// Package tree implements the designer's document tree: nodes with
// arena-wide unique identity, exclusive ownership of ordered children and a
// non-owning parent reference.
//
// Every node lives in a Registry, an explicit arena that maps ids to nodes
// across all workspaces. Tests and designers each build their own Registry;
// there is no process-wide instance.
//
// Structural operations validate every argument before touching any tree,
// so a failing Append, Prepend or InsertAt leaves all trees unchanged.
package tree
