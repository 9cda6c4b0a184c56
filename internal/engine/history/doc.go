// Package history provides bounded snapshot-based undo and redo.
//
// Each snapshot captures the full buffer contents and cursor before an
// edit. The simulator pushes one snapshot per logical command, so a
// whole insert session or a 3dd undoes as a single unit. The stack is
// bounded; pushing past capacity silently evicts the oldest entry, and
// any new edit discards the redo stack.
package history
