// Package topic provides hierarchical topic names and wildcard matching for
// the designer event bus.
//
// # Topic Format
//
// Topics use dot-notation, with the owning component first:
//
//	tree.node.created
//	selection.changed
//	drag.dropped
//	input.pointer.down
//
// # Wildcards
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	tree.*            matches tree.replaced (not tree.node.created)
//	tree.**           matches tree.replaced, tree.node.created
//	drag.*            matches drag.started, drag.dropped, drag.cancelled
//	**                matches everything
//
// The Matcher type indexes subscription patterns in a trie so that an emitted
// topic is resolved against every registered pattern in one walk.
package topic
