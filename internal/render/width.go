// Package render implements the display layer from spec.md §4.3: cell
// width accounting for wide/combining Unicode, minimal-delta redraw, and
// the dumb-terminal horizontal scroll fallback.
package render

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

// RuneWidth reports the terminal column width of r: 0 for combining marks
// and most control characters, 1 for ordinary characters, 2 for East Asian
// Wide/Fullwidth characters (spec.md §8 invariant 7).
func RuneWidth(r rune) int {
	if r == 0 {
		return 0
	}
	props := width.LookupRune(r)
	switch props.Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	// uniseg.GraphemeClusterWidth doesn't operate rune-at-a-time, so
	// zero-width categories are classified by general properties instead:
	// marks and default-ignorables contribute no column width.
	if isZeroWidth(r) {
		return 0
	}
	return 1
}

// StringWidth sums the display width of s's grapheme clusters, treating
// each cluster's width as that of its widest rune (matches how a terminal
// renders a base character plus its combining marks as one cell-width
// unit).
func StringWidth(s string) int {
	total := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := 0
		for _, r := range g.Runes() {
			if rw := RuneWidth(r); rw > w {
				w = rw
			}
		}
		total += w
	}
	return total
}

func isZeroWidth(r rune) bool {
	switch {
	case r >= 0x0300 && r <= 0x036f: // combining diacritical marks
		return true
	case r == 0x200b || r == 0x200c || r == 0x200d: // ZWSP, ZWNJ, ZWJ
		return true
	case r == 0xfeff: // BOM / zero-width no-break space
		return true
	case unicode.In(r, unicode.Mn, unicode.Me): // other combining marks
		return true
	case unicode.IsControl(r):
		return true
	default:
		return false
	}
}
