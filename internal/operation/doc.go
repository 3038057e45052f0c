// Package operation holds the editing state of one workspace: its tree
// root, the ordered selection and the drag state.
package operation
