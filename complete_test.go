package quill

import (
	"testing"

	"github.com/dshills/quill/internal/completion"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/key"
)

// fixedCompleter always offers cands, consuming the whole of leftRev (as if
// it were a single word starting at the beginning of the line).
func fixedCompleter(cands ...completion.Completion) completion.Func {
	return func(leftRev, right []rune) ([]rune, []completion.Completion) {
		return nil, cands
	}
}

func TestCompleteSingleCandidateReplacesInline(t *testing.T) {
	backend := newFakeBackend(
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
	)
	sess, err := newSession(Settings{
		Backend:  backend,
		Complete: fixedCompleter(completion.Completion{Replacement: "foobar", IsFinished: true}),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	got, err := sess.ReadLine("> ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "foobar " {
		t.Fatalf("ReadLine = %q, want %q", got, "foobar ")
	}
}

func TestCompleteNoCandidatesBells(t *testing.T) {
	backend := newFakeBackend(
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
	)
	sess, err := newSession(Settings{Backend: backend, Complete: fixedCompleter()})
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	got, err := sess.ReadLine("> ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("ReadLine = %q, want empty", got)
	}
}

func TestCompleteListModeAppliesLongestCommonPrefix(t *testing.T) {
	backend := newFakeBackend(
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
	)
	sess, err := newSession(Settings{
		Backend: backend,
		Complete: fixedCompleter(
			completion.Completion{Replacement: "foobar"},
			completion.Completion{Replacement: "foobaz"},
		),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	got, err := sess.ReadLine("> ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "fooba" {
		t.Fatalf("ReadLine after one Tab = %q, want the longest common prefix %q", got, "fooba")
	}
}

func TestCompleteListModeNoProgressListsAndBeeps(t *testing.T) {
	backend := newFakeBackend(
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
	)
	sess, err := newSession(Settings{
		Backend: backend,
		Complete: fixedCompleter(
			completion.Completion{Replacement: "foobar"},
			completion.Completion{Replacement: "foobaz"},
		),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	got, err := sess.ReadLine("> ")
	if err != nil {
		t.Fatal(err)
	}
	// The first Tab lands on the common prefix "fooba"; the second makes
	// no further progress, so it bells and lists rather than changing the
	// buffer.
	if got != "fooba" {
		t.Fatalf("ReadLine = %q, want %q", got, "fooba")
	}
}

func TestCompleteMenuModeCyclesAndNonTabCommits(t *testing.T) {
	backend := newFakeBackend(
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewRuneEvent('!', key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
	)
	prefs := config.Defaults()
	prefs.CompletionType = config.CompletionMenu
	sess, err := newSession(Settings{
		Backend: backend,
		Prefs:   prefs,
		Complete: fixedCompleter(
			completion.Completion{Replacement: "foobar"},
			completion.Completion{Replacement: "foobaz"},
		),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	got, err := sess.ReadLine("> ")
	if err != nil {
		t.Fatal(err)
	}
	// Tab -> "foobar", Tab -> "foobaz" (cycled), '!' commits and inserts.
	if got != "foobaz!" {
		t.Fatalf("ReadLine = %q, want %q", got, "foobaz!")
	}
	if sess.menuCompletion != nil {
		t.Fatal("menuCompletion should be cleared once a non-Tab key commits")
	}
}

func TestLongestCommonPrefixOfSingleCandidate(t *testing.T) {
	got := longestCommonPrefix([]completion.Completion{{Replacement: "hello"}})
	if got != "hello" {
		t.Fatalf("longestCommonPrefix = %q, want %q", got, "hello")
	}
}

func TestLongestCommonPrefixNoOverlap(t *testing.T) {
	got := longestCommonPrefix([]completion.Completion{{Replacement: "abc"}, {Replacement: "xyz"}})
	if got != "" {
		t.Fatalf("longestCommonPrefix = %q, want empty", got)
	}
}
