package history

import "strings"

// Search is the live state of an incremental reverse search (spec.md §4.7,
// Ctrl-R): a growing query string and a cursor over the matches it finds,
// newest-first.
type Search struct {
	store   *Store
	query   []rune
	pos     int  // index into store.entries of the current match
	started bool // whether a match has been found yet
	prior   string
}

// NewSearch begins a search against store, remembering prior (the buffer
// in effect before Ctrl-R was pressed) so Abort can restore it.
func NewSearch(store *Store, prior string) *Search {
	return &Search{store: store, pos: len(store.entries), prior: prior}
}

// Query is the text typed into the search so far.
func (s *Search) Query() string { return string(s.query) }

// AppendRune adds a rune to the query and re-searches from the newest
// entry.
func (s *Search) AppendRune(r rune) {
	s.query = append(s.query, r)
	s.pos = len(s.store.entries)
	s.started = false
	s.findFrom(s.pos)
}

// Backspace removes the last rune from the query, if any, and re-searches.
func (s *Search) Backspace() {
	if len(s.query) == 0 {
		return
	}
	s.query = s.query[:len(s.query)-1]
	s.pos = len(s.store.entries)
	s.started = false
	s.findFrom(s.pos)
}

// Next advances to the next older match for the same query (a repeated
// Ctrl-R press).
func (s *Search) Next() {
	s.findFrom(s.pos)
}

// findFrom scans entries[0:from) from newest (from-1) to oldest for a
// substring match, recency-first (spec.md §4.7: "ties broken by recency").
func (s *Search) findFrom(from int) {
	if len(s.query) == 0 {
		s.pos = len(s.store.entries)
		s.started = false
		return
	}
	q := string(s.query)
	for i := from - 1; i >= 0; i-- {
		if strings.Contains(s.store.entries[i], q) {
			s.pos = i
			s.started = true
			return
		}
	}
	// no match: leave pos where it was, un-started if nothing was ever found
}

// Match reports the current matched entry and whether a match exists.
func (s *Search) Match() (string, bool) {
	if !s.started || s.pos < 0 || s.pos >= len(s.store.entries) {
		return "", false
	}
	return s.store.entries[s.pos], true
}

// MatchIndex reports the byte offset of the query within the current
// match, used to render the highlighted span; ok is false with no match.
func (s *Search) MatchIndex() (idx int, ok bool) {
	m, matched := s.Match()
	if !matched {
		return 0, false
	}
	return strings.Index(m, string(s.query)), true
}

// Commit returns the matched line to install as the live buffer, or the
// prior buffer if nothing ever matched.
func (s *Search) Commit() string {
	if m, ok := s.Match(); ok {
		return m
	}
	return s.prior
}

// Abort returns the buffer to restore, undoing the search entirely
// (spec.md §4.7: "Ctrl-G / Escape aborts restoring the prior buffer").
func (s *Search) Abort() string {
	return s.prior
}
