package completion

// WordPredicate reports whether r is a word-breaking character (usually
// whitespace; filename completion uses filenameIsSpace: space, tab and
// newline).
type WordPredicate func(r rune) bool

// ProduceFunc computes candidates for a scanned word given the remainder of
// the line to its right; it may be "potentially slow" per spec.md §5 (the
// session driver buffers keystrokes that arrive while it runs).
type ProduceFunc func(word, rest string) []Completion

// WordCompleter builds a Func per spec.md §4.6's "Word completer": escape
// is the escape rune (hasEscape false disables escaping entirely), wpred
// decides where a word ends, and produce supplies candidates.
func WordCompleter(hasEscape bool, escape rune, wpred WordPredicate, produce ProduceFunc) Func {
	return func(leftRev, right []rune) ([]rune, []Completion) {
		word, consumed := scanWord(leftRev, hasEscape, escape, wpred)
		unused := leftRev[consumed:]
		cands := produce(string(word), string(right))
		out := make([]Completion, len(cands))
		for i, c := range cands {
			replacement := c.Replacement
			if hasEscape {
				replacement = escapeByPredicate(replacement, escape, wpred)
			}
			out[i] = Completion{Replacement: replacement, Display: c.Display, IsFinished: c.IsFinished}
		}
		return unused, out
	}
}

// scanWord walks leftRev (reversed, nearest-cursor-first) collecting runes
// into word (returned in natural left-to-right order) until it meets an
// unescaped word-breaking rune. A rune is escaped iff the *next* rune in
// scan order is the escape rune — since scan order is right-to-left, that
// next rune sits immediately to its left in the real line, i.e. the
// ordinary "backslash precedes the character it protects" convention.
func scanWord(leftRev []rune, hasEscape bool, escape rune, wpred WordPredicate) (word []rune, consumed int) {
	var buf []rune // accumulated in scan order; reversed before return
	i := 0
	for i < len(leftRev) {
		c := leftRev[i]
		escaped := hasEscape && i+1 < len(leftRev) && leftRev[i+1] == escape
		if wpred(c) && !escaped {
			break
		}
		buf = append(buf, c)
		if escaped {
			i += 2
		} else {
			i++
		}
	}
	return reverseRunes(buf), i
}
