// Package document loads designer tree documents from disk and keeps the
// current workspace in sync with a watched file.
//
// A document is a single serialized tree in JSON (.json) or YAML (.yaml,
// .yml). Reload replaces the current workspace's tree and publishes
// document.reloaded on the designer's bus.
package document
