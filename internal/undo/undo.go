// Package undo implements the undo log from spec.md §3/§4.2: a stack of
// InsertMode snapshots, one pre-image pushed per mutating command, scoped
// to a single readLine call. Redo is explicitly not required by spec.md.
package undo

import "github.com/dshills/quill/internal/line"

// Log is a stack of InsertMode snapshots. The zero value is ready to use.
type Log struct {
	stack []line.InsertMode
}

// New creates an empty undo log.
func New() *Log { return &Log{} }

// Push records pre as the pre-image of an about-to-run command, unless it
// is identical to the top of the stack (so a run of no-op commands, e.g.
// GoLeft at column 0, doesn't pollute the log).
func (l *Log) Push(pre line.InsertMode) {
	if len(l.stack) > 0 && l.stack[len(l.stack)-1].Equal(pre) {
		return
	}
	l.stack = append(l.stack, pre)
}

// Undo pops and returns the most recent pre-image. ok is false if the log
// is empty.
func (l *Log) Undo() (state line.InsertMode, ok bool) {
	if len(l.stack) == 0 {
		return line.InsertMode{}, false
	}
	top := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]
	return top, true
}

// Len reports how many undo steps are available.
func (l *Log) Len() int { return len(l.stack) }

// Reset clears the log. Called at each readLine boundary (spec.md §3:
// "undo never crosses a readLine boundary").
func (l *Log) Reset() { l.stack = l.stack[:0] }
