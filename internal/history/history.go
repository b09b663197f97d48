// Package history implements the in-memory history deque and persistent
// file store from spec.md §4.7: dedup policy, size cap, navigation cursor
// with scratch-buffer preservation, and incremental reverse search.
package history

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DedupPolicy controls which add-line calls are rejected as duplicates.
type DedupPolicy int

const (
	// DedupNone never rejects an add as a duplicate.
	DedupNone DedupPolicy = iota
	// DedupConsecutive rejects an add equal to the newest existing entry.
	DedupConsecutive
	// DedupAll rejects an add equal to any existing entry, moving nothing:
	// the earlier occurrence is simply not duplicated.
	DedupAll
)

// DefaultMaxSize matches the teacher corpus's readline default ring cap.
const DefaultMaxSize = 1000

// Store is the in-memory history ring plus its navigation cursor.
//
// Not safe for concurrent use from multiple goroutines; a Store is owned by
// one session (spec.md §4.1 ownership note), though the persisted file
// behind it may be shared across sessions at open/close boundaries.
type Store struct {
	entries   []string
	maxSize   int
	dedup     DedupPolicy
	skipSpace bool // don't save lines that start with a space

	// cursor is an index into entries while navigating; cursor == len(entries)
	// means "past the end", i.e. back at the in-progress scratch line.
	cursor  int
	scratch string
}

// New creates a Store. maxSize <= 0 means DefaultMaxSize.
func New(maxSize int, dedup DedupPolicy, skipSpace bool) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{maxSize: maxSize, dedup: dedup, skipSpace: skipSpace, cursor: 0}
}

// Len reports the number of stored entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns the stored entries, oldest first. The slice is a copy;
// callers may not mutate the Store through it.
func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Add appends line to the history subject to the dedup and skip-space
// policies, dropping the oldest entry if the ring is at capacity. It
// resets the navigation cursor to past-the-end.
func (s *Store) Add(line string) {
	defer s.ResetCursor()

	if s.skipSpace && len(line) > 0 && line[0] == ' ' {
		return
	}
	switch s.dedup {
	case DedupConsecutive:
		if len(s.entries) > 0 && s.entries[len(s.entries)-1] == line {
			return
		}
	case DedupAll:
		for _, e := range s.entries {
			if e == line {
				return
			}
		}
	}

	s.entries = append(s.entries, line)
	if len(s.entries) > s.maxSize {
		s.entries = s.entries[len(s.entries)-s.maxSize:]
	}
}

// ResetCursor returns the navigation cursor to past-the-end, discarding any
// stashed scratch buffer.
func (s *Store) ResetCursor() {
	s.cursor = len(s.entries)
	s.scratch = ""
}

// AtEnd reports whether the cursor is past-the-end (not navigating).
func (s *Store) AtEnd() bool { return s.cursor >= len(s.entries) }

// Back moves the cursor one entry older, stashing current (the in-progress
// line) the first time it leaves past-the-end. It returns the entry now
// under the cursor and ok=false if already at the oldest entry.
func (s *Store) Back(current string) (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	if s.cursor == 0 {
		return "", false
	}
	if s.AtEnd() {
		s.scratch = current
	}
	s.cursor--
	return s.entries[s.cursor], true
}

// Forward moves the cursor one entry newer. Moving forward from the newest
// entry returns to past-the-end and restores the stashed scratch buffer.
func (s *Store) Forward() (string, bool) {
	if s.AtEnd() {
		return "", false
	}
	s.cursor++
	if s.AtEnd() {
		return s.scratch, true
	}
	return s.entries[s.cursor], true
}

// PrefixBack is Back filtered to entries sharing prefix with current,
// the non-incremental history-search-backward supplement (Meta-p):
// repeated calls walk older matching entries, leaving current's prefix as
// the match criterion rather than an evolving search query.
func (s *Store) PrefixBack(current, prefix string) (string, bool) {
	if s.AtEnd() {
		s.scratch = current
	}
	for i := s.cursor - 1; i >= 0; i-- {
		if strings.HasPrefix(s.entries[i], prefix) {
			s.cursor = i
			return s.entries[i], true
		}
	}
	return "", false
}

// PrefixForward is Forward filtered to entries sharing prefix, the
// history-search-forward half of the Meta-p/Meta-n pair.
func (s *Store) PrefixForward(prefix string) (string, bool) {
	for i := s.cursor + 1; i < len(s.entries); i++ {
		if strings.HasPrefix(s.entries[i], prefix) {
			s.cursor = i
			return s.entries[i], true
		}
	}
	if !s.AtEnd() {
		s.cursor = len(s.entries)
		return s.scratch, true
	}
	return "", false
}

// Load reads persisted history from r, one entry per line, oldest first,
// appending via the ordinary Add policy (so dedup and cap still apply). It
// returns the count of lines read and the first read error other than EOF.
func (s *Store) Load(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		line := sc.Text()
		if !utf8.ValidString(line) {
			return n, fmt.Errorf("history: invalid UTF-8 at entry %d", n+1)
		}
		s.Add(line)
		n++
	}
	s.ResetCursor()
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, nil
}

// Save writes the full entry list to w, one per line, truncating to
// maxSize oldest-dropped first (spec.md §4.7: "write back capped at
// maxHistorySize").
func (s *Store) Save(w io.Writer) (int, error) {
	start := 0
	if len(s.entries) > s.maxSize {
		start = len(s.entries) - s.maxSize
	}
	n := 0
	for _, e := range s.entries[start:] {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
