package undo

import (
	"testing"

	"github.com/dshills/quill/internal/line"
)

// TestUndoIsLeftInverse checks spec.md §8 invariant 2: applying cmd then
// undo yields a state equal to the pre-image.
func TestUndoIsLeftInverse(t *testing.T) {
	log := New()
	pre := line.New("hello", 5)
	log.Push(pre)
	post := line.InsertChar(pre, '!')

	_ = post // the command's result; undo should restore pre regardless
	got, ok := log.Undo()
	if !ok {
		t.Fatal("Undo() returned ok=false")
	}
	if !got.Equal(pre) {
		t.Errorf("Undo() = %q/%d, want %q/%d", got.Line(), got.Cursor(), pre.Line(), pre.Cursor())
	}
}

func TestUndoEmptyLog(t *testing.T) {
	log := New()
	if _, ok := log.Undo(); ok {
		t.Fatal("Undo() on empty log should fail")
	}
}

func TestPushDedupesIdenticalTop(t *testing.T) {
	log := New()
	m := line.New("abc", 1)
	log.Push(m)
	log.Push(m) // identical pre-image: should not add a second entry
	if log.Len() != 1 {
		t.Errorf("Len() = %d, want 1", log.Len())
	}
}

func TestResetClearsCrossReadlineBoundary(t *testing.T) {
	log := New()
	log.Push(line.New("x", 0))
	log.Reset()
	if log.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", log.Len())
	}
}
