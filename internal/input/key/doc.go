// Package key models keyboard input for the designer: modifier sets, key
// identities, key events and the shortcut specifications used by the
// Designer's shortcut table.
//
// Shortcut specifications accept two notations:
//
//	Ctrl+Z, Ctrl+Shift+Z, Alt+F4, Delete, Escape, a
//	<C-z>, <C-S-z>, <Esc>, <Del>
package key
