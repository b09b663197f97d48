package killring

import "testing"

func TestPushAndHead(t *testing.T) {
	r := New()
	r.Push("abc", false)
	if r.Head() != "abc" {
		t.Errorf("Head() = %q", r.Head())
	}
}

func TestChainingSameDirection(t *testing.T) {
	r := New()
	r.Push("foo", false)
	r.Push("bar", false) // adjacent forward kill: appends
	if r.Head() != "foobar" {
		t.Errorf("Head() = %q, want foobar", r.Head())
	}
}

func TestChainingBackwardPrepends(t *testing.T) {
	r := New()
	r.Push("bar", true)
	r.Push("foo", true)
	if r.Head() != "foobar" {
		t.Errorf("Head() = %q, want foobar", r.Head())
	}
}

func TestBreakChainStartsNewEntry(t *testing.T) {
	r := New()
	r.Push("foo", false)
	r.BreakChain()
	r.Push("bar", false)
	entries := r.Entries()
	if len(entries) != 2 || entries[0] != "bar" || entries[1] != "foo" {
		t.Errorf("Entries() = %v", entries)
	}
}

func TestYankPopRequiresPriorYank(t *testing.T) {
	r := New()
	r.Push("a", false)
	if r.CanYankPop() {
		t.Fatal("YankPop should not be valid before a Yank")
	}
	if _, _, ok := r.YankPop(); ok {
		t.Fatal("YankPop should fail before a Yank")
	}
}

func TestYankThenYankPopRotates(t *testing.T) {
	r := New()
	r.Push("c", false)
	r.BreakChain()
	r.Push("b", false)
	r.BreakChain()
	r.Push("a", false)

	text, ok := r.Yank()
	if !ok || text != "a" {
		t.Fatalf("Yank() = %q, %v", text, ok)
	}
	_, text, ok = r.YankPop()
	if !ok || text != "b" {
		t.Fatalf("YankPop() = %q, %v", text, ok)
	}
	_, text, ok = r.YankPop()
	if !ok || text != "c" {
		t.Fatalf("YankPop() = %q, %v", text, ok)
	}
	// wraps around
	_, text, ok = r.YankPop()
	if !ok || text != "a" {
		t.Fatalf("YankPop() wraparound = %q, %v", text, ok)
	}
}

func TestCapacityBound(t *testing.T) {
	r := NewWithCapacity(2)
	r.Push("1", false)
	r.BreakChain()
	r.Push("2", false)
	r.BreakChain()
	r.Push("3", false)
	entries := r.Entries()
	if len(entries) != 2 || entries[0] != "3" || entries[1] != "2" {
		t.Errorf("Entries() = %v", entries)
	}
}
