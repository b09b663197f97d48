// Package terminfo implements the POSIX terminal backend: raw mode via
// golang.org/x/term, capability lookups via github.com/xo/terminfo, and
// SIGWINCH/SIGINT/SIGTSTP/SIGCONT coordination via golang.org/x/sys/unix.
package terminfo

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/xo/terminfo"
	xterm "golang.org/x/term"
	"golang.org/x/sys/unix"

	"github.com/dshills/quill/internal/key"
	"github.com/dshills/quill/internal/term"
)

// Backend is the term.Backend implementation for a real POSIX tty.
type Backend struct {
	in  *os.File
	out *os.File
	ti  *terminfo.Terminfo

	dec *term.Decoder
}

// New opens a Backend over in/out, loading the terminfo entry named by the
// TERM environment variable. Use term.IsDumbTermName to decide whether the
// dumb backend should be used instead.
func New(in, out *os.File) (*Backend, error) {
	ti, err := terminfo.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return &Backend{
		in:  in,
		out: out,
		ti:  ti,
		dec: term.NewDecoder(bufio.NewReader(in)),
	}, nil
}

func (b *Backend) EnterRawMode() (func(), error) {
	fd := int(b.in.Fd())
	prev, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = xterm.Restore(fd, prev) }, nil
}

func (b *Backend) Write(p []byte) (int, error) { return b.out.Write(p) }

func (b *Backend) Size() (cols, rows int, err error) {
	return xterm.GetSize(int(b.out.Fd()))
}

func (b *Backend) Close() error { return nil }

// Events decodes key bytes and interleaves synthetic SIGWINCH/SIGINT/
// SIGTSTP/SIGCONT notifications (spec.md §4.1, §4.9). The returned channel
// closes when ctx is canceled.
func (b *Backend) Events(ctx context.Context) <-chan key.Event {
	out := make(chan key.Event)
	sig := make(chan os.Signal, 8)
	signal.Notify(sig, unix.SIGWINCH, unix.SIGINT, unix.SIGTSTP, unix.SIGCONT)

	keys := make(chan key.Event)
	errs := make(chan error, 1)
	go func() {
		for {
			ev, err := b.dec.Next()
			if err != nil {
				errs <- err
				return
			}
			keys <- ev
		}
	}()

	go func() {
		defer close(out)
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-sig:
				ev, ok := synthetic(s)
				if !ok {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case ev := <-keys:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case <-errs:
				return
			}
		}
	}()
	return out
}

func synthetic(s os.Signal) (key.Event, bool) {
	switch s {
	case unix.SIGWINCH:
		return key.NewSpecialEvent(key.KeyResize, key.ModNone), true
	case unix.SIGINT:
		return key.NewSpecialEvent(key.KeyInterrupt, key.ModNone), true
	case unix.SIGTSTP:
		return key.NewSpecialEvent(key.KeySuspend, key.ModNone), true
	case unix.SIGCONT:
		return key.NewSpecialEvent(key.KeyContinue, key.ModNone), true
	default:
		return key.Event{}, false
	}
}

// emit writes capability cap (optionally parameterized) to the backend,
// discarding the byte count xo/terminfo's Fprintf reports.
func (b *Backend) emit(cap int, p ...interface{}) error {
	b.ti.Fprintf(b.out, cap, p...)
	return nil
}

// MoveLeft emits the capability sequence to move the cursor left n columns,
// falling back to repeated CursorLeft if the terminal lacks the
// parameterized form.
func (b *Backend) MoveLeft(n int) error {
	if n <= 0 {
		return nil
	}
	if b.ti.Has(terminfo.ParmLeftCursor) {
		return b.emit(terminfo.ParmLeftCursor, n)
	}
	for i := 0; i < n; i++ {
		if err := b.emit(terminfo.CursorLeft); err != nil {
			return err
		}
	}
	return nil
}

// MoveRight emits the capability sequence to move the cursor right n
// columns.
func (b *Backend) MoveRight(n int) error {
	if n <= 0 {
		return nil
	}
	if b.ti.Has(terminfo.ParmRightCursor) {
		return b.emit(terminfo.ParmRightCursor, n)
	}
	for i := 0; i < n; i++ {
		if err := b.emit(terminfo.CursorRight); err != nil {
			return err
		}
	}
	return nil
}

// MoveUp emits the capability sequence to move the cursor up n rows,
// falling back to repeated CursorUp if the terminal lacks the parameterized
// form.
func (b *Backend) MoveUp(n int) error {
	if n <= 0 {
		return nil
	}
	if b.ti.Has(terminfo.ParmUpCursor) {
		return b.emit(terminfo.ParmUpCursor, n)
	}
	for i := 0; i < n; i++ {
		if err := b.emit(terminfo.CursorUp); err != nil {
			return err
		}
	}
	return nil
}

// CarriageReturn moves the cursor to column 0 of the current line.
func (b *Backend) CarriageReturn() error {
	return b.emit(terminfo.CarriageReturn)
}

// ClearToEOL erases from the cursor to the end of the current line.
func (b *Backend) ClearToEOL() error {
	return b.emit(terminfo.ClrEol)
}

var _ io.Writer = (*Backend)(nil)
var _ term.Backend = (*Backend)(nil)
