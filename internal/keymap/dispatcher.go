package keymap

import "github.com/dshills/quill/internal/key"

// Status reports what Feed did with an incoming event.
type Status int

const (
	// NoMatch means the event didn't continue (or start) any bound
	// sequence from the dispatcher's current position.
	NoMatch Status = iota
	// Pending means the pointer advanced into the trie and the node
	// reached could still be extended by a further event; the caller
	// should wait up to the inter-key timeout (spec.md §4.1 point 2,
	// ~50ms) before calling Resolve.
	Pending
	// Matched means a leaf with no further continuation was reached and
	// ran immediately; Outcome is populated.
	Matched
)

// FeedResult is the result of one Feed call.
type FeedResult struct {
	Status  Status
	Outcome Outcome
}

// SelfInsertFunc is invoked when a plain printable rune arrives at the
// trie root with no explicit binding — spec.md §4.4's "for self-insertable
// characters, inserts them".
type SelfInsertFunc func(state any, r rune) Outcome

// Dispatcher holds the live trie-node pointer for one session's key
// dispatch (spec.md §4.4).
type Dispatcher struct {
	km         *KeyMap
	cur        *node
	SelfInsert SelfInsertFunc
	Bell       func(state any) Outcome
}

// NewDispatcher creates a Dispatcher over km, reset to the root.
func NewDispatcher(km *KeyMap) *Dispatcher {
	return &Dispatcher{km: km, cur: km.root}
}

// AtRoot reports whether no prefix is currently pending.
func (d *Dispatcher) AtRoot() bool { return d.cur == d.km.root }

// Reset drops any pending prefix, returning to the root.
func (d *Dispatcher) Reset() { d.cur = d.km.root }

// Feed advances the dispatcher by one event and reports what happened.
// state is passed through to whichever Command ultimately runs.
func (d *Dispatcher) Feed(e key.Event, state any) FeedResult {
	wasRoot := d.AtRoot()
	pending := d.cur
	next := pending.child(e)
	if next == nil {
		d.Reset()
		if pending.leaf != nil {
			// pending was itself bound (e.g. a bare prefix key that also
			// extends further) and e doesn't continue it: commit pending's
			// own binding instead of dropping it (spec.md §4.4 "command
			// executes ... pointer resets"). e itself matched nothing and is
			// discarded.
			return FeedResult{Status: Matched, Outcome: pending.leaf.Run(state)}
		}
		if wasRoot && e.IsChar() && d.SelfInsert != nil {
			return FeedResult{Status: Matched, Outcome: d.SelfInsert(state, e.Rune)}
		}
		return FeedResult{Status: NoMatch}
	}

	d.cur = next
	if next.leaf != nil && len(next.children) == 0 {
		// No possible continuation: run immediately.
		out := next.leaf.Run(state)
		d.Reset()
		return FeedResult{Status: Matched, Outcome: out}
	}
	return FeedResult{Status: Pending}
}

// Resolve is called by the session driver when the inter-key timeout
// elapses while Pending: it commits to the current node's binding (if any)
// or rings the bell, then resets to the root.
func (d *Dispatcher) Resolve(state any) FeedResult {
	cur := d.cur
	d.Reset()
	if cur.leaf != nil {
		return FeedResult{Status: Matched, Outcome: cur.leaf.Run(state)}
	}
	if d.Bell != nil {
		return FeedResult{Status: Matched, Outcome: d.Bell(state)}
	}
	return FeedResult{Status: NoMatch}
}
