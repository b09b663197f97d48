package completion

// QuotedWordCompleter implements spec.md §4.6's quoted-word completer: if
// the cursor sits inside an open quote (an odd count of unescaped quote
// chars to its left), the quoted content is the word and replacements are
// re-wrapped in the same quote char; otherwise it defers to fallback (the
// plain word completer).
func QuotedWordCompleter(quoteChars []rune, hasEscape bool, escape rune, produce ProduceFunc, fallback Func) Func {
	return func(leftRev, right []rune) ([]rune, []Completion) {
		left := reverseRunes(leftRev) // natural order; left[len-1] is nearest the cursor

		count := 0
		openQuote := rune(0)
		openPos := -1
		for i := 0; i < len(left); i++ {
			c := left[i]
			escaped := hasEscape && i > 0 && left[i-1] == escape
			if escaped || !containsRune(quoteChars, c) {
				continue
			}
			count++
			if count%2 == 1 {
				openQuote = c
				openPos = i
			} else {
				openPos = -1
			}
		}

		if count%2 == 0 || openPos < 0 {
			return fallback(leftRev, right)
		}

		word := left[openPos+1:]
		consumed := len(left) - openPos // cursor back through, and including, the opening quote
		unused := leftRev[consumed:]

		cands := produce(string(word), string(right))
		out := make([]Completion, len(cands))
		for i, c := range cands {
			special := []rune{openQuote}
			replacement := c.Replacement
			if hasEscape {
				replacement = escapeRunes(replacement, escape, special)
			}
			replacement = string(openQuote) + replacement
			if c.IsFinished {
				replacement += string(openQuote)
			}
			out[i] = Completion{Replacement: replacement, Display: c.Display, IsFinished: c.IsFinished}
		}
		return unused, out
	}
}
