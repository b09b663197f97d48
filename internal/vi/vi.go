// Package vi implements the Vi editing discipline's modal sub-state
// machine from spec.md §4.5: Insert/Command/PendingOperator/PendingReplace,
// motions, counts, and the d/c/y operators. Unlike internal/emacs (a
// static prefix trie), Vi's count+operator+motion grammar is driven by an
// explicit little interpreter — the grammar isn't prefix-free, so a trie
// would need the same count/operator bookkeeping bolted on anyway.
package vi

import (
	"unicode"

	"github.com/dshills/quill/internal/editstate"
	"github.com/dshills/quill/internal/key"
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/line"
)

// Mode is one of the four sub-states from spec.md §4.5's transition table.
type Mode int

const (
	Insert Mode = iota
	Command
	PendingOperator
	PendingReplace
)

// Machine holds the Vi sub-state machine's mode and in-progress count/
// operator, threaded alongside an *editstate.State across a readLine
// call.
type Machine struct {
	mode    Mode
	count   int  // accumulated digits; 0 means "no count given"
	op      rune // pending operator: 'd', 'c', or 'y'
	opCount int  // count captured before the operator, for "2d3w"-style compounding
}

// New creates a Machine starting in Insert sub-state (spec.md §4.5:
// "initial state Insert").
func New() *Machine { return &Machine{mode: Insert} }

func (m *Machine) Mode() Mode { return m.mode }

// Feed processes one key event against st, returning the outcome and
// leaving m in whatever sub-state results.
func (m *Machine) Feed(e key.Event, st *editstate.State) keymap.Outcome {
	switch m.mode {
	case Insert:
		return m.feedInsert(e, st)
	case Command:
		return m.feedCommand(e, st)
	case PendingOperator:
		return m.feedPendingOperator(e, st)
	case PendingReplace:
		return m.feedPendingReplace(e, st)
	default:
		return keymap.ChangeTo(st)
	}
}

func (m *Machine) feedInsert(e key.Event, st *editstate.State) keymap.Outcome {
	switch {
	case e.Key == key.KeyEscape:
		m.mode = Command
		return keymap.ChangeTo(st.WithLine(line.GoLeft(st.Line)))
	case e.Key == key.KeyEnter:
		return keymap.FinishWith(st.Line.Line())
	case e.Key == key.KeyBackspace:
		st.Snapshot()
		return keymap.ChangeTo(st.WithLine(line.DeletePrev(st.Line)))
	case e.IsChar():
		st.Snapshot()
		return keymap.ChangeTo(st.WithLine(line.InsertChar(st.Line, e.Rune)))
	default:
		return keymap.ChangeTo(st)
	}
}

func (m *Machine) feedCommand(e key.Event, st *editstate.State) keymap.Outcome {
	if e.IsRune() && unicode.IsDigit(e.Rune) && !(e.Rune == '0' && m.count == 0) {
		m.count = m.count*10 + int(e.Rune-'0')
		return keymap.ChangeTo(st)
	}

	n := m.takeCount()
	st.BreakKillChain()

	if e.IsRune() {
		switch e.Rune {
		case 'd', 'c', 'y':
			m.op = e.Rune
			m.opCount = n
			m.mode = PendingOperator
			return keymap.ChangeTo(st)
		case 'x':
			st.Snapshot()
			ln := st.Line
			for i := 0; i < n; i++ {
				ln = line.DeleteNext(ln)
			}
			return keymap.ChangeTo(st.WithLine(ln))
		case 'p':
			return m.paste(st, true)
		case 'P':
			return m.paste(st, false)
		case 'u':
			prev, ok := st.Undo.Undo()
			if !ok {
				return keymap.ChangeTo(st)
			}
			return keymap.ChangeTo(st.WithLine(prev))
		case 'i':
			m.mode = Insert
			return keymap.ChangeTo(st)
		case 'a':
			m.mode = Insert
			return keymap.ChangeTo(st.WithLine(line.GoRight(st.Line)))
		case 'I':
			m.mode = Insert
			return keymap.ChangeTo(st.WithLine(line.MoveToStart(st.Line)))
		case 'A':
			m.mode = Insert
			return keymap.ChangeTo(st.WithLine(line.MoveToEnd(st.Line)))
		case 'o':
			// No multi-line buffer to open a line below; spec.md scopes
			// editing to one logical line, so 'o' behaves like 'A'.
			m.mode = Insert
			return keymap.ChangeTo(st.WithLine(line.MoveToEnd(st.Line)))
		case 'r':
			m.mode = PendingReplace
			return keymap.ChangeTo(st)
		case 'j':
			if st.Hooks.HistoryForward == nil {
				return keymap.ChangeTo(st)
			}
			return keymap.WithEffect(func() (any, error) {
				text, ok := st.Hooks.HistoryForward()
				if !ok {
					return st, nil
				}
				return st.WithLine(line.New(text, 0)), nil
			})
		case 'k':
			if st.Hooks.HistoryBack == nil {
				return keymap.ChangeTo(st)
			}
			return keymap.WithEffect(func() (any, error) {
				text, ok := st.Hooks.HistoryBack(st.Line.Line())
				if !ok {
					return st, nil
				}
				return st.WithLine(line.New(text, 0)), nil
			})
		case '/', '?':
			if st.Hooks.BeginSearch == nil {
				return keymap.ChangeTo(st)
			}
			return keymap.WithEffect(func() (any, error) {
				st.Hooks.BeginSearch(st.Line.Line())
				return st, nil
			})
		}
	}
	if e.Key == key.KeyEnter {
		return keymap.FinishWith(st.Line.Line())
	}

	if mo, ok := motionFor(e); ok {
		ln := st.Line
		for i := 0; i < n; i++ {
			ln = mo(ln)
		}
		return keymap.ChangeTo(st.WithLine(ln))
	}
	return keymap.ChangeTo(st)
}

func (m *Machine) paste(st *editstate.State, after bool) keymap.Outcome {
	text := st.Kill.Head()
	if text == "" {
		return keymap.ChangeTo(st)
	}
	st.Snapshot()
	ln := st.Line
	if after {
		ln = line.GoRight(ln)
	}
	ln = line.Yank(ln, text)
	return keymap.ChangeTo(st.WithLine(ln))
}

func (m *Machine) feedPendingOperator(e key.Event, st *editstate.State) keymap.Outcome {
	op := m.op
	total := m.opCount
	if total == 0 {
		total = 1
	}

	// "dd"/"cc"/"yy": operator doubled acts on the whole line.
	if e.IsRune() && e.Rune == op {
		m.mode = Command
		if op == 'c' {
			m.mode = Insert
		}
		st.Snapshot()
		ln := line.MoveToStart(st.Line)
		result, killed, backward := line.DeleteFromMove(ln, line.MoveToEnd)
		st.Kill.Push(killed, backward)
		if op == 'y' {
			return keymap.ChangeTo(st) // whole-line yank leaves the line untouched
		}
		return keymap.ChangeTo(st.WithLine(result))
	}

	if e.IsRune() && unicode.IsDigit(e.Rune) && !(e.Rune == '0' && m.count == 0) {
		m.count = m.count*10 + int(e.Rune-'0')
		return keymap.ChangeTo(st)
	}
	countMult := m.takeCount()
	if countMult == 0 {
		countMult = 1
	}

	mo, ok := motionFor(e)
	if !ok {
		m.mode = Command
		m.op = 0
		return keymap.ChangeTo(st)
	}
	m.mode = Command
	m.op = 0
	if op == 'c' {
		m.mode = Insert
	}

	repeated := func(s line.InsertMode) line.InsertMode {
		for i := 0; i < total*countMult; i++ {
			s = mo(s)
		}
		return s
	}

	if op == 'y' {
		_, killed, backward := line.DeleteFromMove(st.Line, repeated)
		st.Kill.Push(killed, backward)
		return keymap.ChangeTo(st)
	}

	st.Snapshot()
	result, killed, backward := line.DeleteFromMove(st.Line, repeated)
	st.Kill.Push(killed, backward)
	return keymap.ChangeTo(st.WithLine(result))
}

func (m *Machine) feedPendingReplace(e key.Event, st *editstate.State) keymap.Outcome {
	m.mode = Command
	if !e.IsChar() {
		return keymap.ChangeTo(st)
	}
	if _, ok := st.Line.AtCursor(); !ok {
		return keymap.ChangeTo(st)
	}
	st.Snapshot()
	ln := line.DeleteNext(st.Line)
	ln = line.InsertChar(ln, e.Rune)
	ln = line.GoLeft(ln)
	return keymap.ChangeTo(st.WithLine(ln))
}

func (m *Machine) takeCount() int {
	n := m.count
	m.count = 0
	if n == 0 {
		return 1
	}
	return n
}

// motionFor maps a Vi command-mode key to a line.Motion; ok is false for
// keys that aren't motions.
func motionFor(e key.Event) (line.Motion, bool) {
	if !e.IsRune() {
		return nil, false
	}
	switch e.Rune {
	case 'h':
		return line.GoLeft, true
	case 'l':
		return line.GoRight, true
	case 'w':
		return line.WordRight, true
	case 'b':
		return line.WordLeft, true
	case 'e':
		return wordEnd, true
	case '0':
		return line.MoveToStart, true
	case '$':
		return line.MoveToEnd, true
	case '^':
		return firstNonBlank, true
	default:
		return nil, false
	}
}

// wordEnd lands the cursor on the last rune of the current/next word,
// approximating "e" as one WordRight followed by a step back — Vi's exact
// "e" skips differently at word boundaries, but for single-line command
// editing this is close enough and documented as a known simplification.
func wordEnd(s line.InsertMode) line.InsertMode {
	next := line.WordRight(s)
	if next.Cursor() > s.Cursor()+1 {
		next = line.GoLeft(next)
	}
	return next
}

// firstNonBlank moves to the first non-whitespace rune on the line.
func firstNonBlank(s line.InsertMode) line.InsertMode {
	s = line.MoveToStart(s)
	for {
		r, ok := s.AtCursor()
		if !ok || !isSpace(r) {
			return s
		}
		s = line.GoRight(s)
	}
}

func isSpace(r rune) bool { return unicode.IsSpace(r) }
