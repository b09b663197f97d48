package quill

import (
	"github.com/dshills/quill/internal/editstate"
	"github.com/dshills/quill/internal/history"
	"github.com/dshills/quill/internal/key"
	"github.com/dshills/quill/internal/line"
	"github.com/dshills/quill/internal/render"
)

// feedSearch advances an in-progress incremental reverse search (Ctrl-R,
// spec.md §4.7) by one key event. committed is true once the search ends
// (by Enter, Escape/Ctrl-G, or any key search doesn't itself consume), at
// which point the matched (or aborted-to-prior) text has already been
// installed as st's line.
func (s *Session) feedSearch(search *history.Search, st *editstate.State, e key.Event) (*editstate.State, *history.Search, bool) {
	switch {
	case e.Key == key.KeyEnter:
		return s.installSearchResult(st, search.Commit()), nil, true
	case e.Key == key.KeyEscape:
		return s.installSearchResult(st, search.Abort()), nil, true
	case e.Modifiers.HasCtrl() && e.IsRune() && e.Rune == 'g':
		return s.installSearchResult(st, search.Abort()), nil, true
	case e.Modifiers.HasCtrl() && e.IsRune() && e.Rune == 'r':
		search.Next()
		return st, search, false
	case e.Key == key.KeyBackspace:
		search.Backspace()
		return st, search, false
	case e.IsChar():
		search.AppendRune(e.Rune)
		return st, search, false
	default:
		// Any other key ends the search and is otherwise dropped, matching
		// the common readline convention of "any non-search key commits".
		return s.installSearchResult(st, search.Commit()), nil, true
	}
}

func (s *Session) installSearchResult(st *editstate.State, text string) *editstate.State {
	return st.WithLine(line.New(text, len([]rune(text))))
}

// drawSearch renders the live "(reverse-i-search)`query': match" prompt,
// with the cursor left at the start of the matched substring.
func (s *Session) drawSearch(prompt string, search *history.Search) {
	rsPrompt := "(reverse-i-search)`" + search.Query() + "': "
	match, _ := search.Match()
	idx, ok := search.MatchIndex()
	left, right := match, ""
	if ok {
		left, right = match[:idx], match[idx:]
	}
	d := s.renderer.Render(render.Frame{Prompt: rsPrompt, Left: left, Right: right})
	writeDelta(s.backend, d)
}
