// Package completion implements the completion engine from spec.md §4.6:
// word/quoted/filename completers composed with escape handling, plus the
// menu-or-list presentation policy driven by the Tab key.
package completion

// Completion is one candidate. IsFinished marks a candidate whose insertion
// should be followed by a terminator (space or closing quote).
type Completion struct {
	Replacement string
	Display     string
	IsFinished  bool
}

// Func is a CompletionFunc: given the line split at the cursor — leftRev is
// the text left of the cursor in reverse (nearest-cursor-first) order,
// right is the text at/right of the cursor in normal order — it returns
// the unconsumed portion of leftRev (still reversed) plus the candidates
// that replace the consumed portion (spec.md §4.6, §8 invariant 5).
type Func func(leftRev, right []rune) (unusedLeftRev []rune, candidates []Completion)

// Fallback runs a first; if it returns no candidates, it runs b instead.
func Fallback(a, b Func) Func {
	return func(leftRev, right []rune) ([]rune, []Completion) {
		unused, cands := a(leftRev, right)
		if len(cands) > 0 {
			return unused, cands
		}
		return b(leftRev, right)
	}
}

func reverseRunes(r []rune) []rune {
	out := make([]rune, len(r))
	for i, c := range r {
		out[len(r)-1-i] = c
	}
	return out
}

func containsRune(set []rune, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}

// escapeRunes prepends escape before every rune in s that appears in
// special, used to re-escape a completion candidate's replacement text
// before insertion (spec.md §4.6 word completer, §8 round-trip property).
func escapeRunes(s string, escape rune, special []rune) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == escape || containsRune(special, r) {
			out = append(out, escape)
		}
		out = append(out, r)
	}
	return string(out)
}

// escapeByPredicate prepends escape before every rune in s that the
// word-breaking predicate would treat as a terminator, or that is the
// escape rune itself.
func escapeByPredicate(s string, escape rune, wpred WordPredicate) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == escape || wpred(r) {
			out = append(out, escape)
		}
		out = append(out, r)
	}
	return string(out)
}
