package line

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func checkInvariant(t *testing.T, m InsertMode) {
	t.Helper()
	if m.Cursor() < 0 || m.Cursor() > m.Len() {
		t.Fatalf("cursor %d out of range [0,%d]", m.Cursor(), m.Len())
	}
}

func TestNewAndLine(t *testing.T) {
	m := New("hello", 2)
	checkInvariant(t, m)
	if m.Line() != "hello" {
		t.Errorf("Line() = %q", m.Line())
	}
	if m.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", m.Cursor())
	}
}

func TestMotionsNoOpAtBoundaries(t *testing.T) {
	m := New("hello", 0)
	if got := WordLeft(m); got.Cursor() != 0 {
		t.Errorf("WordLeft at start moved cursor to %d", got.Cursor())
	}
	m2 := New("hello", 5)
	if got := WordRight(m2); got.Cursor() != 5 {
		t.Errorf("WordRight at end moved cursor to %d", got.Cursor())
	}
}

func TestGoLeftRight(t *testing.T) {
	m := New("abc", 1)
	if GoLeft(m).Cursor() != 0 {
		t.Error("GoLeft should move to 0")
	}
	if GoRight(m).Cursor() != 2 {
		t.Error("GoRight should move to 2")
	}
	checkInvariant(t, GoLeft(m))
}

func TestInsertAndDelete(t *testing.T) {
	m := New("ac", 1)
	m = InsertChar(m, 'b')
	if m.Line() != "abc" || m.Cursor() != 2 {
		t.Fatalf("got line=%q cursor=%d", m.Line(), m.Cursor())
	}
	m = DeletePrev(m)
	if m.Line() != "ac" || m.Cursor() != 1 {
		t.Fatalf("got line=%q cursor=%d", m.Line(), m.Cursor())
	}
}

func TestTransposeChars(t *testing.T) {
	m := New("ab", 1) // cursor between a and b
	got := TransposeChars(m)
	if got.Line() != "ba" {
		t.Errorf("TransposeChars mid = %q", got.Line())
	}
	m2 := New("abc", 3) // at end
	got2 := TransposeChars(m2)
	if got2.Line() != "acb" {
		t.Errorf("TransposeChars at end = %q", got2.Line())
	}
}

func TestDeleteFromMoveAndYankRoundTrip(t *testing.T) {
	// Invariant 3: deleteFromMove(m) followed by yank restores the
	// original line iff no other kill happened in between.
	m := New("foo bar baz", 4) // cursor right after "foo "
	result, killed, backward := DeleteFromMove(m, WordRight)
	if backward {
		t.Fatal("expected forward kill")
	}
	if killed != "bar" {
		t.Errorf("killed = %q, want %q", killed, "bar")
	}
	restored := Yank(result, killed)
	if restored.Line() != m.Line() {
		t.Errorf("restored = %q, want %q", restored.Line(), m.Line())
	}
}

func TestDeleteFromMoveBackward(t *testing.T) {
	m := New("foo bar", 7) // cursor at end
	result, killed, backward := DeleteFromMove(m, WordLeft)
	if !backward {
		t.Fatal("expected backward kill")
	}
	if killed != "bar" {
		t.Errorf("killed = %q", killed)
	}
	if result.Line() != "foo " {
		t.Errorf("result = %q", result.Line())
	}
}

func TestEqualAndSplitRoundTrip(t *testing.T) {
	left, right := "abc", "def"
	m := NewFromSplit(left, right)
	if m.Line() != "abcdef" || m.Cursor() != 3 {
		t.Fatalf("NewFromSplit got line=%q cursor=%d", m.Line(), m.Cursor())
	}
	if string(m.Left()) != left || string(m.Right()) != right {
		t.Errorf("Left/Right mismatch: %q/%q", m.Left(), m.Right())
	}
}

func TestCaseTransformWords(t *testing.T) {
	m := New("hello world", 0)
	got := CapitalizeWord(m)
	if got.Line() != "Hello world" || got.Cursor() != 5 {
		t.Fatalf("CapitalizeWord: line=%q cursor=%d", got.Line(), got.Cursor())
	}
	got = UpcaseWord(got)
	if got.Line() != "Hello WORLD" {
		t.Fatalf("UpcaseWord: line=%q", got.Line())
	}
	got = New(got.Line(), 6)
	got = DowncaseWord(got)
	if got.Line() != "Hello world" {
		t.Fatalf("DowncaseWord: line=%q", got.Line())
	}
}

func TestCaseTransformSkipsLeadingSpaces(t *testing.T) {
	m := New("  hello", 0)
	got := CapitalizeWord(m)
	if got.Line() != "  Hello" || got.Cursor() != 7 {
		t.Fatalf("CapitalizeWord with leading spaces: line=%q cursor=%d", got.Line(), got.Cursor())
	}
}

// TestWithSplitRoundTripStructural checks that WithSplit rebuilds the exact
// split it was given (not merely an equal Line()/Cursor() pair) at the
// struct level rather than through Equal, so a future change to
// Equal's definition can't silently mask a real divergence in prefixRev or
// suffix.
func TestWithSplitRoundTripStructural(t *testing.T) {
	want := New("hello world", 5)
	got := WithSplit(want.LeftReversed(), want.Right())
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(InsertMode{})); diff != "" {
		t.Errorf("WithSplit round trip mismatch (-want +got):\n%s", diff)
	}
}
