//go:build windows

// Package console implements the Windows console backend (spec.md §4.1's
// third Backend variant), reading console input records directly instead
// of decoding ANSI escape sequences, via golang.org/x/sys/windows.
package console

import (
	"context"
	"os"

	"golang.org/x/sys/windows"

	"github.com/dshills/quill/internal/key"
	"github.com/dshills/quill/internal/term"
)

// Backend drives a Windows console handle in raw (non-cooked) input mode.
type Backend struct {
	in  windows.Handle
	out *os.File
}

func New(out *os.File) (*Backend, error) {
	h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, err
	}
	return &Backend{in: h, out: out}, nil
}

func (b *Backend) EnterRawMode() (func(), error) {
	var prev uint32
	if err := windows.GetConsoleMode(b.in, &prev); err != nil {
		return nil, err
	}
	raw := prev &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	raw |= windows.ENABLE_WINDOW_INPUT
	if err := windows.SetConsoleMode(b.in, raw); err != nil {
		return nil, err
	}
	return func() { _ = windows.SetConsoleMode(b.in, prev) }, nil
}

func (b *Backend) Write(p []byte) (int, error) { return b.out.Write(p) }

func (b *Backend) Size() (cols, rows int, err error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(b.out.Fd()), &info); err != nil {
		return 0, 0, err
	}
	cols = int(info.Window.Right-info.Window.Left) + 1
	rows = int(info.Window.Bottom-info.Window.Top) + 1
	return cols, rows, nil
}

func (b *Backend) Close() error { return nil }

func (b *Backend) screenInfo() (windows.ConsoleScreenBufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	err := windows.GetConsoleScreenBufferInfo(windows.Handle(b.out.Fd()), &info)
	return info, err
}

// MoveLeft repositions the cursor left by n columns via the console API
// directly (spec.md §4.1's console backend "direct console API" rendering,
// rather than writing ANSI escapes a Windows console may not interpret).
func (b *Backend) MoveLeft(n int) error {
	if n <= 0 {
		return nil
	}
	info, err := b.screenInfo()
	if err != nil {
		return err
	}
	pos := info.CursorPosition
	pos.X -= int16(n)
	if pos.X < 0 {
		pos.X = 0
	}
	return windows.SetConsoleCursorPosition(windows.Handle(b.out.Fd()), pos)
}

// MoveRight repositions the cursor right by n columns.
func (b *Backend) MoveRight(n int) error {
	if n <= 0 {
		return nil
	}
	info, err := b.screenInfo()
	if err != nil {
		return err
	}
	pos := info.CursorPosition
	pos.X += int16(n)
	return windows.SetConsoleCursorPosition(windows.Handle(b.out.Fd()), pos)
}

// MoveUp repositions the cursor up by n rows.
func (b *Backend) MoveUp(n int) error {
	if n <= 0 {
		return nil
	}
	info, err := b.screenInfo()
	if err != nil {
		return err
	}
	pos := info.CursorPosition
	pos.Y -= int16(n)
	if pos.Y < 0 {
		pos.Y = 0
	}
	return windows.SetConsoleCursorPosition(windows.Handle(b.out.Fd()), pos)
}

// CarriageReturn moves the cursor to column 0 of the current row.
func (b *Backend) CarriageReturn() error {
	info, err := b.screenInfo()
	if err != nil {
		return err
	}
	pos := info.CursorPosition
	pos.X = 0
	return windows.SetConsoleCursorPosition(windows.Handle(b.out.Fd()), pos)
}

// ClearToEOL erases from the cursor to the end of its row by filling with
// spaces, since the console has no escape-code erase capability to emit.
func (b *Backend) ClearToEOL() error {
	info, err := b.screenInfo()
	if err != nil {
		return err
	}
	width := int(info.Size.X) - int(info.CursorPosition.X)
	if width <= 0 {
		return nil
	}
	var written uint32
	return windows.FillConsoleOutputCharacter(windows.Handle(b.out.Fd()), ' ', uint32(width), info.CursorPosition, &written)
}

// Events reads INPUT_RECORD values and decodes key-down records plus
// window-buffer-size-event records into key.Event, synthesizing
// KeyResize the way the other backends synthesize it from SIGWINCH.
func (b *Backend) Events(ctx context.Context) <-chan key.Event {
	out := make(chan key.Event)
	go func() {
		defer close(out)
		var rec inputRecord
		var n uint32
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if err := readConsoleInput(b.in, &rec, &n); err != nil {
				return
			}
			ev, ok := decodeRecord(rec)
			if !ok {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

var _ term.Backend = (*Backend)(nil)
