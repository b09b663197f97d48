// Package emacs builds the Emacs editing discipline's key map from
// spec.md §4.5: Ctrl/Meta bindings over internal/line's pure operations,
// composed with the kill ring, undo log, and the session driver's
// history/search/completion hooks via internal/editstate.
package emacs

import (
	"strings"

	"github.com/dshills/quill/internal/editstate"
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/line"
)

// New builds the default Emacs KeyMap (spec.md §4.5's table).
func New() *keymap.KeyMap {
	km := keymap.New()

	bindMotion(km, "<C-a>", "move-to-start", line.MoveToStart)
	bindMotion(km, "<Home>", "move-to-start", line.MoveToStart)
	bindMotion(km, "<C-e>", "move-to-end", line.MoveToEnd)
	bindMotion(km, "<End>", "move-to-end", line.MoveToEnd)
	bindMotion(km, "<C-b>", "go-left", line.GoLeft)
	bindMotion(km, "<Left>", "go-left", line.GoLeft)
	bindMotion(km, "<C-f>", "go-right", line.GoRight)
	bindMotion(km, "<Right>", "go-right", line.GoRight)
	bindMotion(km, "<A-f>", "word-right", line.WordRight)
	bindMotion(km, "<A-b>", "word-left", line.WordLeft)

	km.BindSpec("<CR>", "finish", finish)
	km.BindSpec("<C-j>", "finish", finish)

	km.BindSpec("<C-d>", "delete-next-or-eof", deleteNextOrEOF)
	bindMutate(km, "<Backspace>", "delete-prev", line.DeletePrev)
	bindMutate(km, "<C-h>", "delete-prev", line.DeletePrev)
	bindMutate(km, "<C-t>", "transpose-chars", line.TransposeChars)

	km.BindSpec("<C-k>", "kill-to-end", killTo(line.MoveToEnd))
	km.BindSpec("<C-u>", "kill-to-start", killTo(line.MoveToStart))
	km.BindSpec("<C-w>", "kill-prev-word", killTo(line.WordLeft))
	km.BindSpec("<A-d>", "kill-next-word", killTo(line.WordRight))

	km.BindSpec("<C-y>", "yank", yank)
	km.BindSpec("<A-y>", "yank-pop", yankPop)

	km.BindSpec("<C-_>", "undo", doUndo)
	// Ctrl-/ decodes to the same control code as Ctrl-_ on most terminals
	// (0x1f); both specs are bound so either decoding path resolves.
	km.BindSpec("<C-/>", "undo", doUndo)
	// Historical readline alternate undo binding.
	km.BindSpec("<C-x> <C-u>", "undo", doUndo)

	km.BindSpec("<C-l>", "redraw", redraw)

	km.BindSpec("<Up>", "history-back", historyBack)
	km.BindSpec("<C-p>", "history-back", historyBack)
	km.BindSpec("<Down>", "history-forward", historyForward)
	km.BindSpec("<C-n>", "history-forward", historyForward)

	km.BindSpec("<A-p>", "history-search-backward", historySearchBack)
	km.BindSpec("<A-n>", "history-search-forward", historySearchForward)

	km.BindSpec("<C-r>", "search-back", searchBack)
	km.BindSpec("<Tab>", "complete", complete)

	bindMutate(km, "<A-c>", "capitalize-word", line.CapitalizeWord)
	bindMutate(km, "<A-u>", "upcase-word", line.UpcaseWord)
	bindMutate(km, "<A-l>", "downcase-word", line.DowncaseWord)

	km.BindSpec("<A-.>", "insert-last-word", insertLastWord)

	return km
}

// NewDispatcher wires New()'s KeyMap into a Dispatcher with self-insert
// and bell wired to the shared editstate conventions.
func NewDispatcher() *keymap.Dispatcher {
	d := keymap.NewDispatcher(New())
	d.SelfInsert = func(s any, r rune) keymap.Outcome {
		st := s.(*editstate.State)
		st.Snapshot()
		st.BreakKillChain()
		return keymap.ChangeTo(st.WithLine(line.InsertChar(st.Line, r)))
	}
	d.Bell = func(s any) keymap.Outcome {
		st := s.(*editstate.State)
		if st.Hooks.Bell != nil {
			st.Hooks.Bell()
		}
		return keymap.ChangeTo(st)
	}
	return d
}

func bindMotion(km *keymap.KeyMap, spec, name string, m line.Motion) {
	km.BindSpec(spec, name, func(s any) keymap.Outcome {
		st := s.(*editstate.State)
		st.BreakKillChain()
		return keymap.ChangeTo(st.WithLine(m(st.Line)))
	})
}

func bindMutate(km *keymap.KeyMap, spec, name string, f func(line.InsertMode) line.InsertMode) {
	km.BindSpec(spec, name, func(s any) keymap.Outcome {
		st := s.(*editstate.State)
		st.Snapshot()
		st.BreakKillChain()
		return keymap.ChangeTo(st.WithLine(f(st.Line)))
	})
}

func finish(s any) keymap.Outcome {
	st := s.(*editstate.State)
	return keymap.FinishWith(st.Line.Line())
}

func deleteNextOrEOF(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Line.Len() == 0 {
		return keymap.Failed()
	}
	st.Snapshot()
	return keymap.ChangeTo(st.WithLine(line.DeleteNext(st.Line)))
}

// killTo returns a Command that kills the span between the cursor and
// where motion m would move to, pushing it (chained, if the prior command
// was also a same-direction kill) onto the kill ring.
func killTo(m line.Motion) keymap.Command {
	return func(s any) keymap.Outcome {
		st := s.(*editstate.State)
		st.Snapshot()
		result, killed, backward := line.DeleteFromMove(st.Line, m)
		st.Kill.Push(killed, backward)
		return keymap.ChangeTo(st.WithLine(result))
	}
}

func yank(s any) keymap.Outcome {
	st := s.(*editstate.State)
	text, ok := st.Kill.Yank()
	if !ok {
		if st.Hooks.Bell != nil {
			st.Hooks.Bell()
		}
		return keymap.ChangeTo(st)
	}
	st.Snapshot()
	return keymap.ChangeTo(st.WithLine(line.Yank(st.Line, text)))
}

func yankPop(s any) keymap.Outcome {
	st := s.(*editstate.State)
	if !st.Kill.CanYankPop() {
		if st.Hooks.Bell != nil {
			st.Hooks.Bell()
		}
		return keymap.ChangeTo(st)
	}
	removeLen, text, ok := st.Kill.YankPop()
	if !ok {
		return keymap.ChangeTo(st)
	}
	// Undo the previous yank's insertion (it sits immediately left of the
	// cursor, since Yank/YankPop always leave the cursor right after the
	// inserted text), then insert the newly rotated entry.
	m := st.Line
	for i := 0; i < removeLen; i++ {
		m = line.DeletePrev(m)
	}
	m = line.Yank(m, text)
	return keymap.ChangeTo(st.WithLine(m))
}

func doUndo(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	prev, ok := st.Undo.Undo()
	if !ok {
		if st.Hooks.Bell != nil {
			st.Hooks.Bell()
		}
		return keymap.ChangeTo(st)
	}
	return keymap.ChangeTo(st.WithLine(prev))
}

func redraw(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	return keymap.WithEffect(func() (any, error) { return st, nil })
}

func historyBack(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Hooks.HistoryBack == nil {
		return keymap.ChangeTo(st)
	}
	return keymap.WithEffect(func() (any, error) {
		text, ok := st.Hooks.HistoryBack(st.Line.Line())
		if !ok {
			if st.Hooks.Bell != nil {
				st.Hooks.Bell()
			}
			return st, nil
		}
		return st.WithLine(line.New(text, len([]rune(text)))), nil
	})
}

func historyForward(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Hooks.HistoryForward == nil {
		return keymap.ChangeTo(st)
	}
	return keymap.WithEffect(func() (any, error) {
		text, ok := st.Hooks.HistoryForward()
		if !ok {
			if st.Hooks.Bell != nil {
				st.Hooks.Bell()
			}
			return st, nil
		}
		return st.WithLine(line.New(text, len([]rune(text)))), nil
	})
}

// historySearchBack/historySearchForward are the non-incremental
// history-search-backward/-forward supplement (Meta-p/Meta-n): the current
// line up to the cursor is taken as a fixed prefix to match against, unlike
// Ctrl-R's incrementally-typed query.
func historySearchBack(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Hooks.HistoryPrefixBack == nil {
		return keymap.ChangeTo(st)
	}
	prefix := string(st.Line.Left())
	return keymap.WithEffect(func() (any, error) {
		text, ok := st.Hooks.HistoryPrefixBack(st.Line.Line(), prefix)
		if !ok {
			if st.Hooks.Bell != nil {
				st.Hooks.Bell()
			}
			return st, nil
		}
		return st.WithLine(line.New(text, len([]rune(text)))), nil
	})
}

func historySearchForward(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Hooks.HistoryPrefixForward == nil {
		return keymap.ChangeTo(st)
	}
	prefix := string(st.Line.Left())
	return keymap.WithEffect(func() (any, error) {
		text, ok := st.Hooks.HistoryPrefixForward(prefix)
		if !ok {
			if st.Hooks.Bell != nil {
				st.Hooks.Bell()
			}
			return st, nil
		}
		return st.WithLine(line.New(text, len([]rune(text)))), nil
	})
}

// insertLastWord inserts the last whitespace-delimited token of the most
// recent history entry at the cursor (Meta-.).
func insertLastWord(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Hooks.LastHistoryEntry == nil {
		return keymap.ChangeTo(st)
	}
	return keymap.WithEffect(func() (any, error) {
		entry, ok := st.Hooks.LastHistoryEntry()
		if !ok {
			if st.Hooks.Bell != nil {
				st.Hooks.Bell()
			}
			return st, nil
		}
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			if st.Hooks.Bell != nil {
				st.Hooks.Bell()
			}
			return st, nil
		}
		st.Snapshot()
		return st.WithLine(line.InsertString(st.Line, fields[len(fields)-1])), nil
	})
}

func searchBack(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Hooks.BeginSearch == nil {
		return keymap.ChangeTo(st)
	}
	return keymap.WithEffect(func() (any, error) {
		st.Hooks.BeginSearch(st.Line.Line())
		return st, nil
	})
}

func complete(s any) keymap.Outcome {
	st := s.(*editstate.State)
	st.BreakKillChain()
	if st.Hooks.Complete == nil {
		return keymap.ChangeTo(st)
	}
	return keymap.WithEffect(func() (any, error) {
		next := st.Hooks.Complete(st)
		return &next, nil
	})
}
