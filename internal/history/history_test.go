package history

import (
	"bytes"
	"testing"
)

func TestDedupConsecutiveRejectsAdjacentRepeat(t *testing.T) {
	s := New(10, DedupConsecutive, false)
	s.Add("a")
	s.Add("a")
	s.Add("b")
	s.Add("b")
	got := s.Entries()
	want := []string{"a", "b"}
	if !equalSlices(got, want) {
		t.Fatalf("Entries = %v, want %v", got, want)
	}
	for i := 0; i+1 < len(got); i++ {
		if got[i] == got[i+1] {
			t.Fatalf("adjacent duplicate at %d: %v", i, got)
		}
	}
}

func TestDedupAllRejectsAnyEarlierOccurrence(t *testing.T) {
	s := New(10, DedupAll, false)
	s.Add("a")
	s.Add("b")
	s.Add("a")
	want := []string{"a", "b"}
	if got := s.Entries(); !equalSlices(got, want) {
		t.Fatalf("Entries = %v, want %v", got, want)
	}
}

func TestDedupNoneKeepsRepeats(t *testing.T) {
	s := New(10, DedupNone, false)
	s.Add("a")
	s.Add("a")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestSkipSpaceLeadingLinesAreNotSaved(t *testing.T) {
	s := New(10, DedupNone, true)
	s.Add(" secret")
	s.Add("visible")
	if got := s.Entries(); !equalSlices(got, []string{"visible"}) {
		t.Fatalf("Entries = %v", got)
	}
}

func TestMaxSizeDropsOldest(t *testing.T) {
	s := New(2, DedupNone, false)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	want := []string{"b", "c"}
	if got := s.Entries(); !equalSlices(got, want) {
		t.Fatalf("Entries = %v, want %v", got, want)
	}
}

func TestNavigationStashesAndRestoresScratch(t *testing.T) {
	s := New(10, DedupNone, false)
	s.Add("one")
	s.Add("two")

	entry, ok := s.Back("in progress")
	if !ok || entry != "two" {
		t.Fatalf("Back = %q,%v, want two,true", entry, ok)
	}
	entry, ok = s.Back("")
	if !ok || entry != "one" {
		t.Fatalf("Back = %q,%v, want one,true", entry, ok)
	}
	if _, ok := s.Back(""); ok {
		t.Fatal("Back past the oldest entry should fail")
	}

	entry, ok = s.Forward()
	if !ok || entry != "two" {
		t.Fatalf("Forward = %q,%v, want two,true", entry, ok)
	}
	entry, ok = s.Forward()
	if !ok || entry != "in progress" {
		t.Fatalf("Forward past newest should restore scratch, got %q,%v", entry, ok)
	}
	if !s.AtEnd() {
		t.Fatal("expected cursor back past-the-end")
	}
}

func TestPrefixBackSkipsNonMatchingEntries(t *testing.T) {
	s := New(10, DedupNone, false)
	s.Add("git status")
	s.Add("ls -la")
	s.Add("git commit")
	s.Add("git push")

	entry, ok := s.PrefixBack("git ", "git")
	if !ok || entry != "git push" {
		t.Fatalf("PrefixBack = %q,%v, want git push,true", entry, ok)
	}
	entry, ok = s.PrefixBack("git ", "git")
	if !ok || entry != "git commit" {
		t.Fatalf("PrefixBack = %q,%v, want git commit,true", entry, ok)
	}
	entry, ok = s.PrefixBack("git ", "git")
	if !ok || entry != "git status" {
		t.Fatalf("PrefixBack = %q,%v, want git status,true", entry, ok)
	}
	if _, ok := s.PrefixBack("git ", "git"); ok {
		t.Fatal("PrefixBack past the oldest matching entry should fail")
	}
}

func TestPrefixForwardRestoresScratchAtEnd(t *testing.T) {
	s := New(10, DedupNone, false)
	s.Add("git status")
	s.Add("git commit")

	if _, ok := s.PrefixBack("git ", "git"); !ok {
		t.Fatal("expected first PrefixBack to succeed")
	}
	entry, ok := s.PrefixForward("git")
	if !ok || entry != "git " {
		t.Fatalf("PrefixForward = %q,%v, want %q,true", entry, ok, "git ")
	}
	if !s.AtEnd() {
		t.Fatal("expected cursor back past-the-end")
	}
}

func TestAddResetsNavigationCursor(t *testing.T) {
	s := New(10, DedupNone, false)
	s.Add("one")
	s.Back("")
	s.Add("two")
	if !s.AtEnd() {
		t.Fatal("Add should reset the cursor to past-the-end")
	}
}

func TestRoundTripSaveLoad(t *testing.T) {
	s := New(10, DedupNone, false)
	for _, e := range []string{"one", "two", "three"} {
		s.Add(e)
	}
	var buf bytes.Buffer
	if _, err := s.Save(&buf); err != nil {
		t.Fatal(err)
	}

	s2 := New(10, DedupNone, false)
	if _, err := s2.Load(&buf); err != nil {
		t.Fatal(err)
	}
	if got := s2.Entries(); !equalSlices(got, []string{"one", "two", "three"}) {
		t.Fatalf("round trip = %v", got)
	}
}

func TestSearchFindsNewestMatchFirstThenAdvancesOlder(t *testing.T) {
	s := New(10, DedupNone, false)
	for _, e := range []string{"cd /tmp", "ls -la", "cd /home", "echo hi"} {
		s.Add(e)
	}
	sr := NewSearch(s, "")
	sr.AppendRune('c')
	sr.AppendRune('d')
	m, ok := sr.Match()
	if !ok || m != "cd /home" {
		t.Fatalf("first match = %q,%v, want %q,true", m, ok, "cd /home")
	}
	sr.Next()
	m, ok = sr.Match()
	if !ok || m != "cd /tmp" {
		t.Fatalf("second match = %q,%v, want %q,true", m, ok, "cd /tmp")
	}
}

func TestSearchAbortRestoresPriorBuffer(t *testing.T) {
	s := New(10, DedupNone, false)
	s.Add("cd /tmp")
	sr := NewSearch(s, "unsaved draft")
	sr.AppendRune('c')
	if got := sr.Abort(); got != "unsaved draft" {
		t.Fatalf("Abort = %q, want %q", got, "unsaved draft")
	}
}

func TestSearchCommitFallsBackToPriorWhenNoMatch(t *testing.T) {
	s := New(10, DedupNone, false)
	s.Add("cd /tmp")
	sr := NewSearch(s, "unsaved draft")
	sr.AppendRune('z')
	sr.AppendRune('z')
	if got := sr.Commit(); got != "unsaved draft" {
		t.Fatalf("Commit = %q, want %q", got, "unsaved draft")
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
