// Package dumb implements the single-line scrolling fallback backend used
// when TERM is "dumb" or unset, or no terminfo entry can be loaded
// (spec.md §4.1, §4.3: "dumb-terminal horizontal scroll window").
package dumb

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	xterm "golang.org/x/term"

	"github.com/dshills/quill/internal/key"
	"github.com/dshills/quill/internal/term"
)

// Backend renders onto a terminal that cannot reposition its cursor: the
// renderer (internal/render) keeps a single physical line in view and
// relies on plain carriage returns plus rewritten content, never cursor-up
// escapes.
type Backend struct {
	in  *os.File
	out *os.File
	dec *term.Decoder
}

func New(in, out *os.File) *Backend {
	return &Backend{in: in, out: out, dec: term.NewDecoder(bufio.NewReader(in))}
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

// MoveLeft is plain backspaces: a dumb terminal has no parameterized cursor
// capability, but '\b' is universally understood.
func (b *Backend) MoveLeft(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := b.out.Write([]byte(strings.Repeat("\b", n)))
	return err
}

// MoveRight is a no-op: the dumb backend's renderer always rewrites the
// visible window from a carriage return rather than seeking forward over
// content it can't be sure is still there.
func (b *Backend) MoveRight(int) error { return nil }

// MoveUp is never exercised: the dumb backend always runs in the
// render.Renderer's horizontal-scroll mode, which stays on one row.
func (b *Backend) MoveUp(int) error { return nil }

// CarriageReturn returns the cursor to column 0, which is how the dumb
// backend starts every redraw (spec.md §4.3 "dumb-terminal horizontal
// scroll window").
func (b *Backend) CarriageReturn() error {
	_, err := b.out.Write([]byte("\r"))
	return err
}

// ClearToEOL is a no-op: lacking an erase capability, the dumb backend
// relies on render.Renderer padding its rewritten line with trailing spaces
// instead.
func (b *Backend) ClearToEOL() error { return nil }

// Size returns a fixed, conservative width: a dumb terminal's geometry is
// assumed unknown, so the renderer treats it as a single row of 80 columns
// per spec.md §4.3's dumb-terminal fallback.
func (b *Backend) Size() (cols, rows int, err error) { return 80, 1, nil }

func (b *Backend) Close() error { return nil }

// Events decodes key bytes and interleaves SIGINT as a synthetic
// KeyInterrupt event; a dumb terminal has no SIGWINCH-worthy geometry to
// report, so resize is never synthesized here.
func (b *Backend) Events(ctx context.Context) <-chan key.Event {
	out := make(chan key.Event)
	sig := make(chan os.Signal, 4)
	signal.Notify(sig, syscall.SIGINT)

	keys := make(chan key.Event)
	go func() {
		for {
			ev, err := b.dec.Next()
			if err != nil {
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
			case <-sig:
				select {
				case out <- key.NewSpecialEvent(key.KeyInterrupt, key.ModNone):
				case <-ctx.Done():
					return
				}
			case ev := <-keys:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

var _ term.Backend = (*Backend)(nil)
