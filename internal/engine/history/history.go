package history

import (
	"github.com/mglenn/vimulator/internal/engine/buffer"
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 100

// Snapshot captures buffer contents plus cursor at one point in time.
// Lines are copied on capture so later edits cannot alias into history.
type Snapshot struct {
	Lines  []string
	Cursor buffer.Position
}

// Capture takes a snapshot of the buffer's current state.
func Capture(buf *buffer.Buffer) Snapshot {
	lines := buf.Lines()
	copied := make([]string, len(lines))
	copy(copied, lines)
	return Snapshot{Lines: copied, Cursor: buf.Cursor()}
}

// Restore writes the snapshot back into the buffer.
func (s Snapshot) Restore(buf *buffer.Buffer) {
	lines := make([]string, len(s.Lines))
	copy(lines, s.Lines)
	buf.SetLines(lines)
	buf.SetCursor(s.Cursor)
}

// History manages bounded undo and redo snapshot stacks.
// Empty-stack undo/redo are silent no-ops; callers check the return value.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot

	maxEntries int
}

// New creates a history with the given capacity. Non-positive values
// fall back to DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records the buffer's pre-edit state. The oldest entry is evicted
// once the stack is full, and any redo state is discarded.
func (h *History) Push(buf *buffer.Buffer) {
	h.PushSnapshot(Capture(buf))
}

// PushSnapshot records an already-captured snapshot.
func (h *History) PushSnapshot(snap Snapshot) {
	if len(h.undoStack) >= h.maxEntries {
		n := copy(h.undoStack, h.undoStack[1:])
		h.undoStack = h.undoStack[:n]
	}
	h.undoStack = append(h.undoStack, snap)
	h.redoStack = h.redoStack[:0]
}

// Undo restores the most recent snapshot, saving the current state for
// redo. Returns false when there is nothing to undo.
func (h *History) Undo(buf *buffer.Buffer) bool {
	if len(h.undoStack) == 0 {
		return false
	}
	snap := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, Capture(buf))
	snap.Restore(buf)
	return true
}

// Redo reverses the most recent undo. Returns false when there is
// nothing to redo.
func (h *History) Redo(buf *buffer.Buffer) bool {
	if len(h.redoStack) == 0 {
		return false
	}
	snap := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, Capture(buf))
	snap.Restore(buf)
	return true
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoDepth returns the number of stored undo snapshots.
func (h *History) UndoDepth() int { return len(h.undoStack) }

// RedoDepth returns the number of stored redo snapshots.
func (h *History) RedoDepth() int { return len(h.redoStack) }

// Clear discards all undo and redo state.
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}
