// Package term defines the terminal back-end abstraction from spec.md
// §4.1 (component C1): raw-mode acquisition, a decoded key-event stream,
// rendering primitives, and resize/interrupt coordination. Concrete
// variants live in the terminfo, dumb, and console subpackages.
package term

import (
	"context"

	"github.com/dshills/quill/internal/key"
)

// Backend is the capability set a session needs from the terminal device.
// Exactly one Backend is exclusive-owned for the duration of a readLine
// call (spec.md §5 "Shared resources").
type Backend interface {
	// EnterRawMode puts the device into raw mode and returns a release func
	// that must be called exactly once, on every exit path, to restore the
	// prior mode (spec.md §5 "Scoped resource discipline").
	EnterRawMode() (release func(), err error)

	// Events returns a channel of decoded key events. The channel is closed
	// when ctx is done or the backend is closed. Synthetic events
	// (KeyInterrupt, KeyResize, KeySuspend, KeyContinue) are interleaved
	// with real keystrokes on this same channel (spec.md §4.9).
	Events(ctx context.Context) <-chan key.Event

	// Write sends rendered bytes to the device.
	Write(p []byte) (int, error)

	// MoveLeft repositions the cursor left by n columns.
	MoveLeft(n int) error
	// MoveRight repositions the cursor right by n columns.
	MoveRight(n int) error
	// MoveUp repositions the cursor up by n rows, used when a wrapped line
	// spans more than one physical row.
	MoveUp(n int) error
	// CarriageReturn moves the cursor to column 0 of the current line.
	CarriageReturn() error
	// ClearToEOL erases from the cursor to the end of the current line.
	ClearToEOL() error

	// Size reports the current terminal size in columns and rows.
	Size() (cols, rows int, err error)

	// Close releases any resources (file descriptors, signal handlers)
	// associated with the backend.
	Close() error
}

// Dumb-terminal detection mirrors readline's historical behavior: a TERM
// of "dumb" or the absence of a terminfo entry selects the single-line
// scrolling fallback rather than the full-screen Terminfo backend.
func IsDumbTermName(term string) bool {
	return term == "" || term == "dumb"
}
