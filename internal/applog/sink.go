// Package applog is the diagnostic-logging sink from spec.md §7's
// propagation policy: recoverable errors (encoding glitches, a completer
// panic, history-IO failures, malformed prefs) are logged here and
// editing continues, rather than aborting readLine.
package applog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a logged event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Sink is the logging capability a Session is given; callers may supply
// their own (e.g. to route into an application's existing logger) or use
// Std for a plain stderr writer.
type Sink interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Std is the default Sink: a leveled, timestamp-prefixed writer over an
// io.Writer (stderr unless overridden), safe for concurrent use since a
// background completion goroutine may log while the editing goroutine is
// also active (spec.md §5).
type Std struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	prefix string
}

// NewStd creates a Std sink. level is the minimum level that is written;
// lower-severity calls are no-ops. output defaults to os.Stderr.
func NewStd(level Level, output io.Writer, prefix string) *Std {
	if output == nil {
		output = os.Stderr
	}
	return &Std{level: level, output: output, prefix: prefix}
}

func (s *Std) Debugf(format string, args ...any) { s.log(LevelDebug, format, args...) }
func (s *Std) Infof(format string, args ...any)  { s.log(LevelInfo, format, args...) }
func (s *Std) Warnf(format string, args ...any)  { s.log(LevelWarn, format, args...) }
func (s *Std) Errorf(format string, args ...any) { s.log(LevelError, format, args...) }

func (s *Std) log(level Level, format string, args ...any) {
	if level < s.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefix != "" {
		fmt.Fprintf(s.output, "%s [%s] %s: %s\n", time.Now().Format(time.RFC3339), level, s.prefix, msg)
		return
	}
	fmt.Fprintf(s.output, "%s [%s] %s\n", time.Now().Format(time.RFC3339), level, msg)
}

// Discard is a Sink that drops every call, used as the default when the
// embedder doesn't supply one.
type Discard struct{}

func (Discard) Debugf(string, ...any) {}
func (Discard) Infof(string, ...any)  {}
func (Discard) Warnf(string, ...any)  {}
func (Discard) Errorf(string, ...any) {}

var _ Sink = (*Std)(nil)
var _ Sink = Discard{}
