package quill

import (
	"context"
	"strings"
	"time"

	"github.com/dshills/quill/internal/editstate"
	"github.com/dshills/quill/internal/history"
	"github.com/dshills/quill/internal/key"
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/line"
	"github.com/dshills/quill/internal/render"
	"github.com/dshills/quill/internal/term"
	"github.com/dshills/quill/internal/vi"
)

// ReadLine prompts and reads one line using the active editing discipline
// and preferences (spec.md §6 "readLine").
func (s *Session) ReadLine(prompt string) (string, error) {
	return s.readLineCore(prompt, "", "", 0)
}

// ReadLineWithInitial is ReadLine with the buffer pre-populated and the
// cursor placed between left and right (spec.md §6
// "readLineWithInitial").
func (s *Session) ReadLineWithInitial(prompt, left, right string) (string, error) {
	return s.readLineCore(prompt, left, right, 0)
}

// ReadPassword is ReadLine with every rune rendered as mask (or '*' if
// mask is 0), and the line is never added to history (spec.md §6
// "readPassword").
func (s *Session) ReadPassword(prompt string, mask rune) (string, error) {
	if mask == 0 {
		mask = '*'
	}
	return s.readLineCore(prompt, "", "", mask)
}

// ReadChar reads a single key event and returns its rune; ok is false for
// a non-character key (spec.md §6 "readChar").
func (s *Session) ReadChar(prompt string) (r rune, ok bool, err error) {
	release, err := s.backend.EnterRawMode()
	if err != nil {
		return 0, false, ErrTerminalUnavailable
	}
	defer release()

	if prompt != "" {
		s.backend.Write([]byte(prompt))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := s.backend.Events(ctx)

	for e := range events {
		switch {
		case e.Key == key.KeyInterrupt:
			if s.fireInterrupt() {
				continue
			}
			return 0, false, ErrInterrupted
		case e.IsChar():
			return e.Rune, true, nil
		case e.Key == key.KeyEnter:
			return '\n', true, nil
		case e.Key == key.KeyResize:
			continue
		default:
			return 0, false, nil
		}
	}
	return 0, false, ErrEndOfInput
}

// readLineCore is the shared engine behind ReadLine/ReadLineWithInitial/
// ReadPassword: it enters raw mode, wires the active discipline's
// dispatcher against a fresh editstate.State, and loops feeding decoded
// key events until a Finish or Fail outcome (or EOF/interrupt) ends it.
func (s *Session) readLineCore(prompt, left, right string, mask rune) (string, error) {
	release, err := s.backend.EnterRawMode()
	if err != nil {
		return "", ErrTerminalUnavailable
	}
	defer release()

	s.renderer.Reset()
	if cols, _, err := s.backend.Size(); err == nil && cols > 0 {
		s.renderer.SetWidth(cols)
	}

	st := editstate.New(s.hooksFor())
	st.Line = line.NewFromSplit(left, right)

	var search *history.Search
	s.draw(prompt, st.Line, mask, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := s.backend.Events(ctx)

	emacsMode := s.prefs.EditMode != "vi"
	var viMachine *vi.Machine
	if emacsMode {
		s.emacsDispatch.Reset()
	} else {
		viMachine = vi.New()
	}

	// chordTimeout arms a one-shot timer while the emacs dispatcher sits on
	// a pending multi-key chord (e.g. Ctrl-X Ctrl-U), so Resolve fires the
	// incomplete binding or bells instead of waiting forever for a second
	// key that never arrives (spec.md §4.1 point 2).
	chordTimeout := s.prefs.KeySequenceTimeout
	if chordTimeout <= 0 {
		chordTimeout = 50 * time.Millisecond
	}
	var timer *time.Timer
	var timerC <-chan time.Time
	armTimer := func() {
		if timer == nil {
			timer = time.NewTimer(chordTimeout)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(chordTimeout)
		}
		timerC = timer.C
	}
	disarmTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timerC = nil
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	// handleOutcome applies one dispatcher/state-machine Outcome to st,
	// reporting whether readLineCore should return now (done) and, if not,
	// whether the caller already redrew (skipDraw, e.g. an Effect that
	// switched into incremental search).
	handleOutcome := func(outcome keymap.Outcome) (text string, err error, done, skipDraw bool) {
		switch outcome.Kind {
		case keymap.Change:
			st = outcome.State.(*editstate.State)
		case keymap.Finish:
			text = outcome.Result.(string)
			s.backend.Write([]byte("\r\n"))
			s.maybeAddHistory(text, mask)
			return text, nil, true, false
		case keymap.Fail:
			s.backend.Write([]byte("\r\n"))
			return "", ErrEndOfInput, true, false
		case keymap.Effect:
			res, effErr := outcome.Effect()
			if effErr != nil {
				s.log.Warnf("quill: effect error: %v", effErr)
				return "", nil, false, true
			}
			if ns, ok := res.(*editstate.State); ok {
				st = ns
			}
			if s.searchRequested != nil {
				search = s.searchRequested
				s.searchRequested = nil
				s.drawSearch(prompt, search)
				return "", nil, false, true
			}
		}
		return "", nil, false, false
	}

	for {
		select {
		case e, ok := <-events:
			if !ok {
				return "", ErrEndOfInput
			}
			if e.Key == key.KeyResize {
				if cols, _, err := s.backend.Size(); err == nil && cols > 0 {
					s.renderer.SetWidth(cols)
				}
				s.renderer.Reset()
				s.draw(prompt, st.Line, mask, search)
				continue
			}
			if e.Key == key.KeyInterrupt {
				if s.fireInterrupt() {
					continue
				}
				return "", ErrInterrupted
			}

			// Tab is the only key bound to complete(); anything else commits
			// whatever a live menu-completion cycle is showing (spec.md §4.6
			// "any non-Tab commits").
			if e.Key != key.KeyTab && e.Key != key.KeyResize {
				s.menuCompletion = nil
			}

			if search != nil {
				var committed bool
				st, search, committed = s.feedSearch(search, st, e)
				if committed {
					s.draw(prompt, st.Line, mask, nil)
				} else {
					s.drawSearch(prompt, search)
				}
				continue
			}

			var outcome keymap.Outcome
			var matched bool
			if emacsMode {
				res := s.emacsDispatch.Feed(e, st)
				switch res.Status {
				case keymap.Matched:
					disarmTimer()
					outcome, matched = res.Outcome, true
				case keymap.Pending:
					armTimer()
					continue
				case keymap.NoMatch:
					disarmTimer()
					s.bell()
					continue
				}
			} else {
				outcome, matched = viMachine.Feed(e, st), true
			}
			if !matched {
				continue
			}

			text, ferr, done, skipDraw := handleOutcome(outcome)
			if done {
				return text, ferr
			}
			if skipDraw {
				continue
			}
			s.draw(prompt, st.Line, mask, search)

		case <-timerC:
			disarmTimer()
			res := s.emacsDispatch.Resolve(st)
			if res.Status == keymap.NoMatch {
				continue
			}
			text, ferr, done, skipDraw := handleOutcome(res.Outcome)
			if done {
				return text, ferr
			}
			if skipDraw {
				continue
			}
			s.draw(prompt, st.Line, mask, search)
		}
	}
}

// hooksFor wires editstate.Hooks to this Session's history store and
// completion engine.
func (s *Session) hooksFor() editstate.Hooks {
	return editstate.Hooks{
		HistoryBack: func(current string) (string, bool) {
			return s.history.Back(current)
		},
		HistoryForward: func() (string, bool) {
			return s.history.Forward()
		},
		HistoryPrefixBack: func(current, prefix string) (string, bool) {
			return s.history.PrefixBack(current, prefix)
		},
		HistoryPrefixForward: func(prefix string) (string, bool) {
			return s.history.PrefixForward(prefix)
		},
		LastHistoryEntry: func() (string, bool) {
			entries := s.history.Entries()
			if len(entries) == 0 {
				return "", false
			}
			return entries[len(entries)-1], true
		},
		// BeginSearch can't return a value through the Hooks signature, so
		// it stashes the new *history.Search on the Session; readLineCore
		// picks it up right after running the Effect that called this.
		BeginSearch: func(prior string) {
			s.searchRequested = history.NewSearch(s.history, prior)
		},
		Complete: func(st *editstate.State) editstate.State {
			return s.runComplete(st)
		},
		Bell: func() { s.bell() },
	}
}

func (s *Session) bell() {
	switch s.prefs.BellStyle {
	case "visual":
		s.flashVisualBell()
	case "none":
	default:
		s.backend.Write([]byte("\a"))
	}
}

// flashVisualBell toggles reverse video briefly instead of sounding the
// audible BEL (spec.md §3 bellStyle=visual), the DECSCNM screen-reverse
// sequence xterm-compatible terminals use for a visible bell.
func (s *Session) flashVisualBell() {
	s.backend.Write([]byte("\033[?5h"))
	time.Sleep(50 * time.Millisecond)
	s.backend.Write([]byte("\033[?5l"))
}

func (s *Session) maybeAddHistory(text string, mask rune) {
	if mask != 0 {
		return // passwords are never recorded
	}
	if s.prefs.AutoAddHistory != nil && !*s.prefs.AutoAddHistory {
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	s.history.Add(text)
}

// draw renders the current line via the shared Renderer and writes the
// resulting delta to the backend. Masked runes (ReadPassword) are
// substituted before measuring/rendering so the mask character, not the
// secret, ever reaches the terminal.
func (s *Session) draw(prompt string, m line.InsertMode, mask rune, search *history.Search) {
	if search != nil {
		s.drawSearch(prompt, search)
		return
	}
	left, right := string(m.Left()), string(m.Right())
	if mask != 0 {
		left = strings.Repeat(string(mask), len([]rune(left)))
		right = strings.Repeat(string(mask), len([]rune(right)))
	}
	d := s.renderer.Render(render.Frame{Prompt: prompt, Left: left, Right: right})
	writeDelta(s.backend, d)
}

// writeDelta applies d through the backend's own cursor/erase capabilities
// (terminfo sequences, the dumb backend's plain bytes, or the Windows
// console API) instead of hardcoding ANSI, so every Backend variant
// actually drives its own rendering primitives (spec.md §4.1 "uniform
// rendering-primitive interface hiding terminfo vs. dumb vs. console").
func writeDelta(b term.Backend, d render.Delta) {
	if d.Reset {
		if d.PriorRows > 0 {
			b.MoveUp(d.PriorRows)
		}
		b.CarriageReturn()
		for i, line := range d.Lines {
			if i > 0 {
				b.Write([]byte("\r\n"))
			}
			b.ClearToEOL()
			b.Write([]byte(line))
		}
		if d.CursorUpAfter > 0 {
			b.MoveUp(d.CursorUpAfter)
		}
		b.CarriageReturn()
		if d.CursorColAfter > 0 {
			b.MoveRight(d.CursorColAfter)
		}
		return
	}
	if d.BackspaceCount > 0 {
		b.MoveLeft(d.BackspaceCount)
	}
	b.Write([]byte(d.Text))
	if d.ClearTail {
		b.ClearToEOL()
	}
	if d.MoveLeftAfter > 0 {
		b.MoveLeft(d.MoveLeftAfter)
	}
}
