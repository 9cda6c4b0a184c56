package history

import (
	"fmt"
	"testing"

	"github.com/mglenn/vimulator/internal/engine/buffer"
)

func TestUndoRestoresSnapshot(t *testing.T) {
	buf := buffer.FromString("original")
	h := New(10)

	h.Push(buf)
	buf.SetText("edited")

	if !h.Undo(buf) {
		t.Fatalf("Undo returned false")
	}
	if buf.Text() != "original" {
		t.Errorf("Text() = %q, want original", buf.Text())
	}
}

func TestRedoReversesUndo(t *testing.T) {
	buf := buffer.FromString("v1")
	h := New(10)

	h.Push(buf)
	buf.SetText("v2")

	h.Undo(buf)
	if !h.Redo(buf) {
		t.Fatalf("Redo returned false")
	}
	if buf.Text() != "v2" {
		t.Errorf("Text() = %q, want v2", buf.Text())
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	buf := buffer.FromString("stable")
	h := New(10)

	if h.Undo(buf) {
		t.Errorf("Undo on empty stack returned true")
	}
	if h.Redo(buf) {
		t.Errorf("Redo on empty stack returned true")
	}
	if buf.Text() != "stable" {
		t.Errorf("empty-stack undo mutated buffer: %q", buf.Text())
	}
}

func TestPushClearsRedo(t *testing.T) {
	buf := buffer.FromString("a")
	h := New(10)

	h.Push(buf)
	buf.SetText("b")
	h.Undo(buf)

	if !h.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}

	h.Push(buf)
	buf.SetText("c")

	if h.CanRedo() {
		t.Errorf("redo stack survived a new push")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	buf := buffer.New()
	h := New(100)

	// 101 pushes leave exactly 100 undoable states.
	for i := 0; i <= 100; i++ {
		buf.SetText(fmt.Sprintf("rev %d", i))
		h.Push(buf)
	}
	buf.SetText("final")

	undone := 0
	for h.Undo(buf) {
		undone++
	}
	if undone != 100 {
		t.Errorf("undid %d times, want 100", undone)
	}
	// The oldest surviving snapshot is rev 1; rev 0 was evicted.
	if buf.Text() != "rev 1" {
		t.Errorf("deepest state = %q, want %q", buf.Text(), "rev 1")
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	buf := buffer.FromString("line0\nline1")
	h := New(10)

	h.Push(buf)
	if err := buf.ReplaceLine(0, "mutated"); err != nil {
		t.Fatalf("ReplaceLine: %v", err)
	}

	h.Undo(buf)
	if buf.Line(0) != "line0" {
		t.Errorf("snapshot aliased buffer storage: %q", buf.Line(0))
	}
}

func TestUndoRestoresCursor(t *testing.T) {
	buf := buffer.FromString("hello world")
	buf.SetCursor(buffer.Position{Line: 0, Col: 6})
	h := New(10)

	h.Push(buf)
	buf.SetText("short")

	h.Undo(buf)
	if got := buf.Cursor(); got != (buffer.Position{Line: 0, Col: 6}) {
		t.Errorf("cursor = %+v, want {0 6}", got)
	}
}

func TestClear(t *testing.T) {
	buf := buffer.FromString("x")
	h := New(10)
	h.Push(buf)
	buf.SetText("y")
	h.Undo(buf)

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Errorf("Clear left state: undo=%d redo=%d", h.UndoDepth(), h.RedoDepth())
	}
}
