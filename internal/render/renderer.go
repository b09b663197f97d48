package render

import (
	"strings"
)

// Frame is what gets drawn on one redraw: a prompt, the edited line split
// at the cursor, and any highlighted span (used by incremental search to
// show the matched substring).
type Frame struct {
	Prompt       string
	Left         string // text left of the cursor
	Right        string // text at/right of the cursor
	HighlightLen int    // runes of Right to highlight, from its start; 0 disables
}

// Renderer tracks the previously drawn Frame and a terminal width, and
// emits only the bytes needed to move from the old frame to the new one
// (spec.md §4.3 "minimal-delta redraw") when everything still fits on one
// physical row. Content that spans more than one row, or a horizontal-scroll
// backend, falls back to a full rewrite of the visible block each time.
type Renderer struct {
	cols int
	// scroll, when set, renders a single-line horizontal-scroll window with
	// '<'/'>' overflow markers instead of wrapping across rows (spec.md
	// §4.3 "dumb-terminal horizontal scroll window") — used by the dumb
	// backend, which has no way to address a cursor on a prior row.
	scroll bool

	prev Frame
	// prevCursorCol is the column the cursor ended at on the last render,
	// measured from the start of Prompt+Left+Right. Only meaningful for the
	// single-row delta path.
	prevCursorCol int
	// prevRows/prevCursorRow are the row count and cursor row of the last
	// render, used to reposition before a full rewrite.
	prevRows, prevCursorRow int
}

func New(cols int) *Renderer {
	return &Renderer{cols: cols}
}

func (r *Renderer) SetWidth(cols int) { r.cols = cols }

// SetHorizontalScroll switches between multi-row wrapping (the default, for
// backends that can address a cursor across rows) and the dumb backend's
// single-line scroll window.
func (r *Renderer) SetHorizontalScroll(on bool) { r.scroll = on }

// Delta is what writeDelta needs to transform the previously drawn screen
// content into the new Frame. Most redraws take the single-row path
// (BackspaceCount/Text/ClearTail/MoveLeftAfter); content that spans more
// than one physical row, or a scroll-window render, sets Reset and uses
// Lines/CursorUpAfter/CursorColAfter instead.
type Delta struct {
	// Reset, true for a multi-row or scroll-window redraw, means: move up
	// PriorRows rows from the cursor's last position, return to column 0,
	// then (re)write every element of Lines, each preceded by a carriage
	// return/newline except the first.
	Reset     bool
	PriorRows int
	Lines     []string
	// CursorUpAfter/CursorColAfter place the cursor once Lines has been
	// written: move up CursorUpAfter rows, return to column 0, then right
	// CursorColAfter columns.
	CursorUpAfter  int
	CursorColAfter int

	// BackspaceCount is how many columns the cursor must retreat before
	// writing Text (spec.md §4.3: redraw only the changed suffix).
	BackspaceCount int
	// Text is what to write after backspacing.
	Text string
	// ClearTail, if true, means the old content ran longer than the new
	// content and trailing columns must be erased.
	ClearTail bool
	// MoveLeftAfter repositions the cursor left by this many columns once
	// Text has been written, landing it at the edit point.
	MoveLeftAfter int
}

// Render computes the delta to transform the previously drawn frame into f.
func (r *Renderer) Render(f Frame) Delta {
	oldFull := r.prev.Prompt + r.prev.Left + r.prev.Right
	newFull := f.Prompt + f.Left + f.Right
	cursorCol := StringWidth(f.Prompt + f.Left)

	if r.scroll {
		d := r.renderScrollWindow(newFull, cursorCol)
		r.prev = f
		r.prevCursorCol = cursorCol
		r.prevRows, r.prevCursorRow = 1, 0
		return d
	}

	newRows := r.rowsFor(newFull)
	if newRows > 1 || r.prevRows > 1 {
		d := r.renderWrapped(newFull, cursorCol, newRows)
		r.prev = f
		r.prevCursorCol = cursorCol
		r.prevRows = newRows
		r.prevCursorRow = newRows - 1 - d.CursorUpAfter
		return d
	}

	commonPrefix := commonPrefixLen(oldFull, newFull)
	// Never reuse inside the prompt: a prompt change invalidates everything.
	if r.prev.Prompt != f.Prompt {
		commonPrefix = 0
	}

	backspace := StringWidth(oldFull[commonPrefix:])
	tailWidth := StringWidth(newFull[commonPrefix:])
	moveLeft := tailWidth - (cursorCol - StringWidth(newFull[:commonPrefix]))

	d := Delta{
		BackspaceCount: backspace,
		Text:           newFull[commonPrefix:],
		ClearTail:      StringWidth(oldFull) > StringWidth(newFull),
		MoveLeftAfter:  moveLeft,
	}
	r.prev = f
	r.prevCursorCol = cursorCol
	r.prevRows, r.prevCursorRow = 1, 0
	return d
}

// rowsFor reports how many physical rows s spans at the current width; an
// unset or non-positive width means "never wrap" (one row).
func (r *Renderer) rowsFor(s string) int {
	if r.cols <= 0 {
		return 1
	}
	return len(WrapLines(s, r.cols))
}

// renderWrapped produces a full rewrite of every physical row spanned by
// full, used whenever the content does (or did) cross a row boundary: the
// single-row backspace math can't express moving the cursor up a row, so
// there's nothing to reuse from the previous render.
func (r *Renderer) renderWrapped(full string, cursorCol, rows int) Delta {
	lines := WrapLines(full, r.cols)

	cursorRow := cursorCol / r.cols
	col := cursorCol % r.cols
	// Dangling rightmost column: a cursor exactly at a multiple of cols
	// belongs at the start of the next row, not one past the end of the
	// current one (spec.md §4.3). When the content ends exactly there,
	// WrapLines produces no next row, so the cursor stays one past the
	// last column of the final row; no space or newline is emitted.
	if col == 0 && cursorRow > 0 && cursorRow >= len(lines) {
		cursorRow--
		col = r.cols
	}

	return Delta{
		Reset:          true,
		PriorRows:      r.prevCursorRow,
		Lines:          lines,
		CursorUpAfter:  len(lines) - 1 - cursorRow,
		CursorColAfter: col,
	}
}

// renderScrollWindow builds the dumb backend's single-line view: a window
// of at most r.cols columns around the cursor, prefixed with '<' when
// earlier content is scrolled out of view and suffixed with '>' when later
// content is (spec.md §4.3 "dumb-terminal horizontal scroll window"). The
// dumb backend can't erase-to-end-of-line, so the window is padded with
// spaces out to the full width to paint over whatever was there before.
func (r *Renderer) renderScrollWindow(full string, cursorCol int) Delta {
	cols := r.cols
	if cols <= 0 {
		cols = 80
	}
	runes := []rune(full)
	total := len(runes)

	start := 0
	if total > cols {
		start = cursorCol - cols/2
		if start < 0 {
			start = 0
		}
		if start > total-cols {
			start = total - cols
		}
	}
	end := start + cols
	if end > total {
		end = total
	}

	more := start > 0
	overflow := end < total
	if more {
		start++
	}
	if overflow {
		end--
	}
	if start > end {
		end = start
	}

	window := string(runes[start:end])
	if more {
		window = "<" + window
	}
	if overflow {
		window += ">"
	}
	cursorInWindow := cursorCol - start
	if more {
		cursorInWindow++
	}
	if pad := cols - len([]rune(window)); pad > 0 {
		window += strings.Repeat(" ", pad)
	}

	return Delta{
		Reset:          true,
		Lines:          []string{window},
		CursorColAfter: cursorInWindow,
	}
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	// Don't split a multi-byte rune: back off to the last full rune
	// boundary.
	for i > 0 && !isRuneStart(a, i) {
		i--
	}
	return i
}

func isRuneStart(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	return s[i]&0xc0 != 0x80
}

// Reset forgets the previously drawn frame, forcing the next Render to
// redraw from scratch (used after a resize or external write to the
// terminal).
func (r *Renderer) Reset() {
	r.prev = Frame{}
	r.prevCursorCol = 0
	r.prevRows, r.prevCursorRow = 0, 0
}

// WrapLines splits s into physical lines no wider than cols columns,
// accounting for wide runes (spec.md §4.3: "multi-line wrap accounting for
// wide chars").
func WrapLines(s string, cols int) []string {
	if cols <= 0 {
		return []string{s}
	}
	var lines []string
	var cur strings.Builder
	col := 0
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		col = 0
	}
	for _, r := range s {
		w := RuneWidth(r)
		if col+w > cols {
			flush()
		}
		cur.WriteRune(r)
		col += w
	}
	lines = append(lines, cur.String())
	return lines
}
