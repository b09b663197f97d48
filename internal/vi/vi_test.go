package vi

import (
	"testing"

	"github.com/dshills/quill/internal/editstate"
	"github.com/dshills/quill/internal/key"
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/line"
)

func newState(text string, cursor int) *editstate.State {
	st := editstate.New(editstate.Hooks{})
	st.Line = line.New(text, cursor)
	return st
}

func feed(t *testing.T, m *Machine, st *editstate.State, e key.Event) *editstate.State {
	t.Helper()
	out := m.Feed(e, st)
	switch out.Kind {
	case keymap.Change:
		return out.State.(*editstate.State)
	case keymap.Effect:
		s, err := out.Effect()
		if err != nil {
			t.Fatal(err)
		}
		return s.(*editstate.State)
	case keymap.Finish:
		t.Fatalf("unexpected Finish with result %v", out.Result)
	}
	return st
}

func TestEscapeEntersCommandModeAndMovesCursorLeft(t *testing.T) {
	m := New()
	st := newState("hi", 2)
	st = feed(t, m, st, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
	if m.Mode() != Command {
		t.Fatalf("Mode = %v, want Command", m.Mode())
	}
	if st.Line.Cursor() != 1 {
		t.Fatalf("Cursor = %d, want 1", st.Line.Cursor())
	}
}

func TestInsertSelfInsertsChars(t *testing.T) {
	m := New()
	st := newState("", 0)
	st = feed(t, m, st, key.NewRuneEvent('h', key.ModNone))
	st = feed(t, m, st, key.NewRuneEvent('i', key.ModNone))
	if st.Line.Line() != "hi" {
		t.Fatalf("Line = %q, want hi", st.Line.Line())
	}
}

func toCommandMode(t *testing.T, m *Machine, st *editstate.State) *editstate.State {
	return feed(t, m, st, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
}

func TestCommandModeMotionH(t *testing.T) {
	m := New()
	st := newState("abc", 3)
	st = toCommandMode(t, m, st) // cursor now 2
	st = feed(t, m, st, key.NewRuneEvent('h', key.ModNone))
	if st.Line.Cursor() != 1 {
		t.Fatalf("Cursor = %d, want 1", st.Line.Cursor())
	}
}

func TestCommandModeCountedMotion(t *testing.T) {
	m := New()
	st := newState("abcdef", 0)
	st.Line = line.New("abcdef", 5) // cursor at 'f'
	st = toCommandMode(t, m, st)    // -> cursor 4
	st = feed(t, m, st, key.NewRuneEvent('2', key.ModNone))
	st = feed(t, m, st, key.NewRuneEvent('h', key.ModNone))
	if st.Line.Cursor() != 2 {
		t.Fatalf("Cursor = %d, want 2", st.Line.Cursor())
	}
}

func TestDeleteWordOperatorDW(t *testing.T) {
	m := New()
	st := newState("hello world", 0)
	st = toCommandMode(t, m, st)
	st = feed(t, m, st, key.NewRuneEvent('d', key.ModNone))
	if m.Mode() != PendingOperator {
		t.Fatalf("Mode = %v, want PendingOperator", m.Mode())
	}
	st = feed(t, m, st, key.NewRuneEvent('w', key.ModNone))
	if st.Line.Line() != " world" {
		t.Fatalf("Line = %q, want %q", st.Line.Line(), " world")
	}
	if m.Mode() != Command {
		t.Fatalf("Mode after dw = %v, want Command", m.Mode())
	}
}

func TestChangeWordEntersInsertMode(t *testing.T) {
	m := New()
	st := newState("hello world", 0)
	st = toCommandMode(t, m, st)
	st = feed(t, m, st, key.NewRuneEvent('c', key.ModNone))
	st = feed(t, m, st, key.NewRuneEvent('w', key.ModNone))
	if m.Mode() != Insert {
		t.Fatalf("Mode after cw = %v, want Insert", m.Mode())
	}
	if st.Line.Line() != " world" {
		t.Fatalf("Line = %q, want %q", st.Line.Line(), " world")
	}
}

func TestDDKillsWholeLine(t *testing.T) {
	m := New()
	st := newState("hello world", 4)
	st = toCommandMode(t, m, st)
	st = feed(t, m, st, key.NewRuneEvent('d', key.ModNone))
	st = feed(t, m, st, key.NewRuneEvent('d', key.ModNone))
	if st.Line.Line() != "" {
		t.Fatalf("Line = %q, want empty after dd", st.Line.Line())
	}
}

func TestXDeletesCharUnderCursor(t *testing.T) {
	m := New()
	st := newState("abc", 0)
	st = toCommandMode(t, m, st)
	st.Line = line.New("abc", 0) // escape-left was a no-op at col 0
	st = feed(t, m, st, key.NewRuneEvent('x', key.ModNone))
	if st.Line.Line() != "bc" {
		t.Fatalf("Line = %q, want bc", st.Line.Line())
	}
}

func TestReplaceChar(t *testing.T) {
	m := New()
	st := newState("abc", 0)
	st = toCommandMode(t, m, st)
	st = feed(t, m, st, key.NewRuneEvent('r', key.ModNone))
	if m.Mode() != PendingReplace {
		t.Fatalf("Mode = %v, want PendingReplace", m.Mode())
	}
	st = feed(t, m, st, key.NewRuneEvent('z', key.ModNone))
	if st.Line.Line() != "zbc" {
		t.Fatalf("Line = %q, want zbc", st.Line.Line())
	}
	if m.Mode() != Command {
		t.Fatalf("Mode after replace = %v, want Command", m.Mode())
	}
}

func TestPastePutsKillRingHeadAfterCursor(t *testing.T) {
	m := New()
	st := newState("hello world", 0)
	st = toCommandMode(t, m, st)
	st = feed(t, m, st, key.NewRuneEvent('d', key.ModNone))
	st = feed(t, m, st, key.NewRuneEvent('w', key.ModNone)) // deletes "hello", line = " world"
	st = feed(t, m, st, key.NewRuneEvent('p', key.ModNone))
	if st.Line.Line() != " helloworld" {
		t.Fatalf("Line = %q, want %q", st.Line.Line(), " helloworld")
	}
}
