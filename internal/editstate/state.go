// Package editstate holds the mutable state one readLine call threads
// through the key dispatcher (spec.md §3, §4.4): the line buffer, kill
// ring, and undo log, plus the hooks the Emacs and Vi command tables call
// out through for anything the pure line-editing model can't do itself
// (history navigation, incremental search, completion).
package editstate

import (
	"github.com/dshills/quill/internal/killring"
	"github.com/dshills/quill/internal/line"
	"github.com/dshills/quill/internal/undo"
)

// Hooks are the session driver's callbacks into facilities that live
// outside the pure editing model. Any of them may be nil, in which case
// the corresponding command is a no-op.
type Hooks struct {
	// HistoryBack/HistoryForward navigate the history cursor (spec.md
	// §4.7); current is the in-progress line to stash the first time
	// navigation starts.
	HistoryBack    func(current string) (string, bool)
	HistoryForward func() (string, bool)

	// HistoryPrefixBack/HistoryPrefixForward are the non-incremental
	// history-search-backward/-forward supplement (Meta-p/Meta-n): like
	// HistoryBack/HistoryForward but filtered to entries sharing the given
	// prefix.
	HistoryPrefixBack    func(current, prefix string) (string, bool)
	HistoryPrefixForward func(prefix string) (string, bool)

	// LastHistoryEntry returns the most recently added history entry, for
	// insertLastWord (Meta-.).
	LastHistoryEntry func() (string, bool)

	// BeginSearch starts incremental reverse search (Ctrl-R); the session
	// driver takes over subsequent key events until the search ends.
	BeginSearch func(prior string)

	// Complete runs the completion engine against the current split and
	// returns the state to continue with (spec.md §4.6); with no candidate
	// it rings the bell, with one it replaces inline, and with more it also
	// presents a menu/list via the renderer as a side effect.
	Complete func(s *State) State

	// Bell signals an unmatched key or a completion/search with no match
	// (spec.md §4.8 bellStyle).
	Bell func()
}

// State is the opaque value threaded through keymap.Dispatcher.Feed as
// `state any`; Emacs and Vi commands type-assert it back from any.
type State struct {
	Line  line.InsertMode
	Kill  *killring.Ring
	Undo  *undo.Log
	Mark  int // emacs mark position in runes, -1 if unset
	Hooks Hooks
}

// New creates a State with an empty line and fresh kill ring/undo log.
func New(hooks Hooks) *State {
	return &State{Line: line.Empty(), Kill: killring.New(), Undo: undo.New(), Mark: -1, Hooks: hooks}
}

// WithLine returns a shallow copy of s with a different Line — commands
// are pure functions over *State's value semantics at the Line level, but
// Kill/Undo/Mark are carried by reference since they persist across the
// whole readLine call, not just one command.
func (s *State) WithLine(m line.InsertMode) *State {
	next := *s
	next.Line = m
	return &next
}

// Snapshot pushes the current line as the pre-image for an about-to-run
// mutating command (spec.md §3's undo log).
func (s *State) Snapshot() {
	s.Undo.Push(s.Line)
}

// BreakKillChain ends kill-ring chaining; every bound command that isn't
// itself a kill must call this (spec.md §3: "any other command breaks the
// chain").
func (s *State) BreakKillChain() {
	s.Kill.BreakChain()
}
