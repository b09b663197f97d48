package quill

import "errors"

// Sentinel errors for the taxonomy in spec.md §7. Transient kinds are
// never returned from ReadLine: history-file and preferences failures
// (HistoryIoError, InvalidPrefs) are logged via the session's applog.Sink
// and the session continues, invalid UTF-8 input is decoded leniently
// rather than reported, and a completion function has no error result. Only
// ErrTerminalUnavailable propagates out of a read when raw mode truly
// cannot be entered and no override was given.
var (
	// ErrEndOfInput is returned by ReadLine/ReadChar/ReadPassword when
	// stdin is closed or Ctrl-D is pressed on an empty line.
	ErrEndOfInput = errors.New("quill: end of input")

	// ErrInterrupted is returned by ReadLine/ReadChar/ReadPassword when an
	// interrupt arrives during a read and no handler installed with
	// WithInterrupt/HandleInterrupt consumes it; the in-progress line is
	// discarded.
	ErrInterrupted = errors.New("quill: interrupted")

	// ErrTerminalUnavailable means stdin/stdout isn't a tty and no
	// fallback reader override was configured.
	ErrTerminalUnavailable = errors.New("quill: terminal unavailable")
)
