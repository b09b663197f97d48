package key

import "strings"

// Sequence is an ordered chord of events, e.g. "g g" or "C-x C-s". It is the
// leaf-addressing unit of internal/keymap's prefix trie (spec.md §4.4).
type Sequence struct {
	Events []Event
}

func NewSequence(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

func (s *Sequence) Len() int      { return len(s.Events) }
func (s *Sequence) IsEmpty() bool { return len(s.Events) == 0 }

func (s *Sequence) Add(e Event) { s.Events = append(s.Events, e) }

func (s *Sequence) At(i int) *Event {
	if i < 0 || i >= len(s.Events) {
		return nil
	}
	return &s.Events[i]
}

// Equals reports whether two sequences are identical, event for event.
func (s *Sequence) Equals(o *Sequence) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.Events) != len(o.Events) {
		return false
	}
	for i, e := range s.Events {
		if !e.Equals(o.Events[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p is a prefix of s.
func (s *Sequence) HasPrefix(p *Sequence) bool {
	if p == nil || len(p.Events) > len(s.Events) {
		return false
	}
	for i, e := range p.Events {
		if !e.Equals(s.Events[i]) {
			return false
		}
	}
	return true
}

func (s *Sequence) String() string {
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
