package line

import "unicode"

// Motion is a cursor-only transform: InsertMode -> InsertMode where the
// resulting Line() is unchanged. DeleteFromMove (composite.go) applies one
// to compute the span a kill command should remove.
type Motion func(InsertMode) InsertMode

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}

// shift moves n runes from suffix to prefixRev (n>0, rightward) or from
// prefixRev to suffix (n<0, leftward); it never reads past either end.
func shift(m InsertMode, n int) InsertMode {
	pre := append([]rune(nil), m.prefixRev...)
	suf := append([]rune(nil), m.suffix...)
	for n > 0 && len(suf) > 0 {
		pre = append(pre, suf[0])
		suf = suf[1:]
		n--
	}
	for n < 0 && len(pre) > 0 {
		suf = append([]rune{pre[0]}, suf...)
		pre = pre[1:]
		n++
	}
	return InsertMode{prefixRev: pre, suffix: suf}
}

// GoLeft moves the cursor one rune left; a no-op at the start of the line.
func GoLeft(m InsertMode) InsertMode { return shift(m, -1) }

// GoRight moves the cursor one rune right; a no-op at the end of the line.
func GoRight(m InsertMode) InsertMode { return shift(m, 1) }

// MoveToStart moves the cursor to offset 0.
func MoveToStart(m InsertMode) InsertMode { return shift(m, -len(m.prefixRev)) }

// MoveToEnd moves the cursor to the end of the line.
func MoveToEnd(m InsertMode) InsertMode { return shift(m, len(m.suffix)) }

// WordLeft skips any non-word runes immediately left of the cursor, then
// the run of word runes beyond them — a no-op at position 0 (spec.md §8
// invariant 4).
func WordLeft(m InsertMode) InsertMode {
	pre := m.prefixRev
	i := 0
	for i < len(pre) && !isWordRune(pre[i]) {
		i++
	}
	for i < len(pre) && isWordRune(pre[i]) {
		i++
	}
	return shift(m, -i)
}

// WordRight skips any non-word runes at/right of the cursor, then the word
// runes beyond them — a no-op at end of line.
func WordRight(m InsertMode) InsertMode {
	suf := m.suffix
	i := 0
	for i < len(suf) && !isWordRune(suf[i]) {
		i++
	}
	for i < len(suf) && isWordRune(suf[i]) {
		i++
	}
	return shift(m, i)
}

// BigWordLeft is WordLeft but word boundaries are whitespace only
// ("WORD" in Vi terminology).
func BigWordLeft(m InsertMode) InsertMode {
	pre := m.prefixRev
	i := 0
	for i < len(pre) && isSpaceRune(pre[i]) {
		i++
	}
	for i < len(pre) && !isSpaceRune(pre[i]) {
		i++
	}
	return shift(m, -i)
}

// BigWordRight is WordRight but word boundaries are whitespace only.
func BigWordRight(m InsertMode) InsertMode {
	suf := m.suffix
	i := 0
	for i < len(suf) && isSpaceRune(suf[i]) {
		i++
	}
	for i < len(suf) && !isSpaceRune(suf[i]) {
		i++
	}
	return shift(m, i)
}
