package emacs

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

func feed(t *testing.T, d *keymap.Dispatcher, st *editstate.State, e key.Event) *editstate.State {
	t.Helper()
	res := d.Feed(e, st)
	switch res.Status {
	case keymap.Matched:
		switch res.Outcome.Kind {
		case keymap.Change:
			return res.Outcome.State.(*editstate.State)
		case keymap.Effect:
			s, err := res.Outcome.Effect()
			if err != nil {
				t.Fatal(err)
			}
			return s.(*editstate.State)
		default:
			t.Fatalf("unexpected outcome kind %v", res.Outcome.Kind)
		}
	case keymap.NoMatch:
		t.Fatalf("no match for %v", e)
	}
	return st
}

func TestSelfInsertAppendsChar(t *testing.T) {
	d := NewDispatcher()
	st := newState("hi", 2)
	st = feed(t, d, st, key.NewRuneEvent('!', key.ModNone))
	if st.Line.Line() != "hi!" {
		t.Fatalf("Line = %q, want hi!", st.Line.Line())
	}
}

func TestKillToEndThenYank(t *testing.T) {
	d := NewDispatcher()
	st := newState("hello world", 5)
	st = feed(t, d, st, key.Ctrl('k'))
	if st.Line.Line() != "hello" {
		t.Fatalf("Line after Ctrl-K = %q, want hello", st.Line.Line())
	}
	st = feed(t, d, st, key.Ctrl('y'))
	if st.Line.Line() != "hello world" {
		t.Fatalf("Line after yank = %q, want hello world", st.Line.Line())
	}
}

func TestKillChainCoalescesAdjacentSameDirectionKills(t *testing.T) {
	d := NewDispatcher()
	st := newState("one two three", 0)
	st = feed(t, d, st, key.Alt('d')) // kill "one"
	st = feed(t, d, st, key.Alt('d')) // kill " two" (word-right skips leading space)
	if st.Kill.Head() == "" {
		t.Fatal("expected a chained kill entry")
	}
	st = feed(t, d, st, key.Ctrl('y'))
	if st.Line.Line() != "one two three" {
		t.Fatalf("Line after yanking the coalesced kill = %q, want the original text back", st.Line.Line())
	}
}

func TestUndoRestoresPriorLine(t *testing.T) {
	d := NewDispatcher()
	st := newState("hi", 2)
	st = feed(t, d, st, key.NewRuneEvent('!', key.ModNone))
	if st.Line.Line() != "hi!" {
		t.Fatalf("Line = %q", st.Line.Line())
	}
	st = feed(t, d, st, key.Ctrl('_'))
	if st.Line.Line() != "hi" {
		t.Fatalf("Line after undo = %q, want hi", st.Line.Line())
	}
}

func TestCtrlDOnEmptyLineFails(t *testing.T) {
	d := NewDispatcher()
	st := newState("", 0)
	res := d.Feed(key.Ctrl('d'), st)
	if res.Status != keymap.Matched || res.Outcome.Kind != keymap.Fail {
		t.Fatalf("Status/Kind = %v/%v, want Matched/Fail", res.Status, res.Outcome.Kind)
	}
}

func TestCapitalizeUpcaseDowncaseWord(t *testing.T) {
	d := NewDispatcher()
	st := newState("hello world", 0)
	st = feed(t, d, st, key.Alt('c'))
	if st.Line.Line() != "Hello world" || st.Line.Cursor() != 5 {
		t.Fatalf("after Meta-c: line=%q cursor=%d", st.Line.Line(), st.Line.Cursor())
	}
	st = feed(t, d, st, key.Alt('u'))
	if st.Line.Line() != "Hello WORLD" {
		t.Fatalf("after Meta-u: line=%q", st.Line.Line())
	}
	st.Line = line.New(st.Line.Line(), 6)
	st = feed(t, d, st, key.Alt('l'))
	if st.Line.Line() != "Hello world" {
		t.Fatalf("after Meta-l: line=%q", st.Line.Line())
	}
}

func TestInsertLastWordPullsFromLastHistoryEntry(t *testing.T) {
	d := NewDispatcher()
	st := editstate.New(editstate.Hooks{
		LastHistoryEntry: func() (string, bool) { return "cp foo.txt bar.txt", true },
	})
	st.Line = line.New("rm ", 3)
	st = feed(t, d, st, key.Alt('.'))
	if st.Line.Line() != "rm bar.txt" {
		t.Fatalf("Line = %q, want %q", st.Line.Line(), "rm bar.txt")
	}
}

func TestHistorySearchBackwardUsesLineAsPrefix(t *testing.T) {
	d := NewDispatcher()
	var gotPrefix string
	st := editstate.New(editstate.Hooks{
		HistoryPrefixBack: func(current, prefix string) (string, bool) {
			gotPrefix = prefix
			return "git commit", true
		},
	})
	st.Line = line.New("git", 3)
	st = feed(t, d, st, key.Alt('p'))
	if gotPrefix != "git" {
		t.Fatalf("prefix passed to hook = %q, want git", gotPrefix)
	}
	if st.Line.Line() != "git commit" {
		t.Fatalf("Line = %q, want %q", st.Line.Line(), "git commit")
	}
}

func TestCtrlXCtrlUUndoesLikeCtrlUnderscore(t *testing.T) {
	d := NewDispatcher()
	st := newState("hi", 2)
	st = feed(t, d, st, key.NewRuneEvent('!', key.ModNone))
	res := d.Feed(key.Ctrl('x'), st)
	if res.Status != keymap.Pending {
		t.Fatalf("Ctrl-X alone: status = %v, want Pending", res.Status)
	}
	st = feed(t, d, st, key.Ctrl('u'))
	if st.Line.Line() != "hi" {
		t.Fatalf("Line after Ctrl-X Ctrl-U = %q, want hi", st.Line.Line())
	}
}

func TestEnterFinishesWithLineText(t *testing.T) {
	d := NewDispatcher()
	st := newState("done", 4)
	res := d.Feed(key.NewSpecialEvent(key.KeyEnter, key.ModNone), st)
	if res.Status != keymap.Matched || res.Outcome.Kind != keymap.Finish || res.Outcome.Result != "done" {
		t.Fatalf("unexpected outcome: %+v", res.Outcome)
	}
}
