package line

import "unicode"

// InsertChar inserts r at the cursor and leaves the cursor immediately
// after it.
func InsertChar(m InsertMode, r rune) InsertMode {
	pre := make([]rune, 0, len(m.prefixRev)+1)
	pre = append(pre, r)
	pre = append(pre, m.prefixRev...)
	return WithSplit(pre, m.suffix)
}

// InsertString inserts s at the cursor, leaving the cursor after it.
func InsertString(m InsertMode, s string) InsertMode {
	for _, r := range s {
		m = InsertChar(m, r)
	}
	return m
}

// DeletePrev deletes the rune left of the cursor (Backspace); a no-op at
// the start of the line.
func DeletePrev(m InsertMode) InsertMode {
	if len(m.prefixRev) == 0 {
		return m
	}
	return WithSplit(m.prefixRev[1:], m.suffix)
}

// DeleteNext deletes the rune under the cursor (Delete/Ctrl-D); a no-op at
// the end of the line.
func DeleteNext(m InsertMode) InsertMode {
	if len(m.suffix) == 0 {
		return m
	}
	return WithSplit(m.prefixRev, m.suffix[1:])
}

// TransposeChars swaps the two runes surrounding the cursor. At the end of
// the line it swaps the last two runes instead, per spec.md §4.2.
func TransposeChars(m InsertMode) InsertMode {
	switch {
	case len(m.suffix) == 0 && len(m.prefixRev) >= 2:
		// End of line: swap last two runes, cursor stays at end.
		pre := append([]rune(nil), m.prefixRev...)
		pre[0], pre[1] = pre[1], pre[0]
		return WithSplit(pre, m.suffix)
	case len(m.prefixRev) >= 1 && len(m.suffix) >= 1:
		pre := append([]rune(nil), m.prefixRev...)
		suf := append([]rune(nil), m.suffix...)
		pre[0], suf[0] = suf[0], pre[0]
		return WithSplit(pre, suf)
	default:
		return m
	}
}

// transformWord walks from the cursor, skipping non-word runes unchanged,
// then rewrites the following run of word runes via f(indexInWord, rune);
// the cursor ends immediately after the transformed word, matching GNU
// readline's capitalize-word/upcase-word/downcase-word convention of also
// advancing past it.
func transformWord(m InsertMode, f func(i int, r rune) rune) InsertMode {
	pre := append([]rune(nil), m.prefixRev...)
	suf := append([]rune(nil), m.suffix...)

	i := 0
	for i < len(suf) && !isWordRune(suf[i]) {
		pre = append([]rune{suf[i]}, pre...)
		i++
	}
	wordIdx := 0
	for i < len(suf) && isWordRune(suf[i]) {
		pre = append([]rune{f(wordIdx, suf[i])}, pre...)
		i++
		wordIdx++
	}
	return WithSplit(pre, suf[i:])
}

// CapitalizeWord uppercases the first rune of the next word and lowercases
// the rest, advancing the cursor past it (Meta-c).
func CapitalizeWord(m InsertMode) InsertMode {
	return transformWord(m, func(i int, r rune) rune {
		if i == 0 {
			return unicode.ToUpper(r)
		}
		return unicode.ToLower(r)
	})
}

// UpcaseWord uppercases the next word, advancing the cursor past it
// (Meta-u).
func UpcaseWord(m InsertMode) InsertMode {
	return transformWord(m, func(_ int, r rune) rune { return unicode.ToUpper(r) })
}

// DowncaseWord lowercases the next word, advancing the cursor past it
// (Meta-l).
func DowncaseWord(m InsertMode) InsertMode {
	return transformWord(m, func(_ int, r rune) rune { return unicode.ToLower(r) })
}
