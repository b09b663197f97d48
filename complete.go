package quill

import (
	"strings"

	"github.com/dshills/quill/internal/completion"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/editstate"
	"github.com/dshills/quill/internal/line"
)

// completionCycle tracks an in-progress MenuCompletion (or the menu fallback
// of ListCompletionOrMenu): repeated Tab presses walk candidates forward
// without re-running the completer, applying each one fresh against the
// same base split (spec.md §4.6 "MenuCompletion: inline cycle on repeated
// Tab; any non-Tab commits").
type completionCycle struct {
	unusedLeftRev []rune
	right         []rune
	candidates    []completion.Completion
	index         int
}

// runComplete drives the completion engine against st's current split and
// returns the state to continue with (spec.md §4.6). With no candidates it
// rings the bell; with exactly one it replaces inline; with more the
// presentation is governed by Prefs.CompletionType.
func (s *Session) runComplete(st *editstate.State) editstate.State {
	// A repeated Tab while a menu cycle is active advances it instead of
	// re-querying the completer.
	if s.menuCompletion != nil {
		return *st.WithLine(s.advanceMenuCompletion())
	}

	if s.complete == nil {
		s.bell()
		return *st
	}

	leftRev := st.Line.LeftReversed()
	right := st.Line.Right()
	unusedLeftRev, candidates := s.complete(leftRev, right)

	switch len(candidates) {
	case 0:
		s.bell()
		return *st
	case 1:
		return *st.WithLine(applyCompletion(unusedLeftRev, right, candidates[0]))
	default:
		switch s.prefs.CompletionType {
		case config.CompletionMenu:
			return *st.WithLine(s.startMenuCompletion(unusedLeftRev, right, candidates))
		case config.CompletionListOrMenu:
			if repl, ok := lcpReplacement(leftRev, unusedLeftRev, candidates); ok {
				return *st.WithLine(applyPlainReplacement(unusedLeftRev, right, repl))
			}
			return *st.WithLine(s.startMenuCompletion(unusedLeftRev, right, candidates))
		default: // config.CompletionList
			if repl, ok := lcpReplacement(leftRev, unusedLeftRev, candidates); ok {
				return *st.WithLine(applyPlainReplacement(unusedLeftRev, right, repl))
			}
			s.bell()
			s.listCandidates(candidates)
			return *st
		}
	}
}

// lcpReplacement computes the longest common prefix of candidates'
// Replacement fields and reports whether adopting it would advance the
// buffer past what the user already typed (spec.md §4.6 ListCompletion:
// "replace with longest common prefix; if no progress, beep and list").
func lcpReplacement(leftRev, unusedLeftRev []rune, candidates []completion.Completion) (string, bool) {
	lcp := longestCommonPrefix(candidates)
	if lcp == "" {
		return "", false
	}
	consumed := len(leftRev) - len(unusedLeftRev)
	alreadyTyped := string(reverseRunes(leftRev[:consumed]))
	if len(lcp) <= len(alreadyTyped) {
		return "", false
	}
	return lcp, true
}

// longestCommonPrefix returns the longest string every candidate's
// Replacement starts with, rune-wise.
func longestCommonPrefix(candidates []completion.Completion) string {
	if len(candidates) == 0 {
		return ""
	}
	lcp := []rune(candidates[0].Replacement)
	for _, c := range candidates[1:] {
		r := []rune(c.Replacement)
		n := len(lcp)
		if len(r) < n {
			n = len(r)
		}
		i := 0
		for i < n && lcp[i] == r[i] {
			i++
		}
		lcp = lcp[:i]
		if len(lcp) == 0 {
			break
		}
	}
	return string(lcp)
}

// listCandidates prints candidates above the prompt, capping at
// Prefs.CompletionPromptLimit and logging the overflow (spec.md §4.6's
// "Display all N possibilities?" prompt, simplified per DESIGN.md).
func (s *Session) listCandidates(candidates []completion.Completion) {
	total := len(candidates)
	if total > s.prefs.CompletionPromptLimit {
		s.log.Warnf("quill: %d completions exceed promptLimit %d, showing first %d",
			total, s.prefs.CompletionPromptLimit, s.prefs.CompletionPromptLimit)
		candidates = candidates[:s.prefs.CompletionPromptLimit]
	}
	s.showCompletionList(candidates)
}

// startMenuCompletion begins (or restarts) a menu cycle at its first
// candidate and applies it, stashing cycle state on the Session for the
// next Tab press.
func (s *Session) startMenuCompletion(unusedLeftRev, right []rune, candidates []completion.Completion) line.InsertMode {
	s.menuCompletion = &completionCycle{
		unusedLeftRev: unusedLeftRev,
		right:         right,
		candidates:    candidates,
		index:         0,
	}
	return applyCompletion(unusedLeftRev, right, candidates[0])
}

// advanceMenuCompletion applies the next candidate in the active cycle,
// wrapping back to the first after the last.
func (s *Session) advanceMenuCompletion() line.InsertMode {
	c := s.menuCompletion
	c.index = (c.index + 1) % len(c.candidates)
	return applyCompletion(c.unusedLeftRev, c.right, c.candidates[c.index])
}

// applyCompletion replaces the consumed portion of leftRev (the prefix
// that the completer scanned, measured as the length difference against
// unusedLeftRev) with the candidate's replacement, appending a trailing
// space when the candidate is finished (spec.md §8 invariant 5, the
// round-trip property: unconsumed text is never touched).
func applyCompletion(unusedLeftRev, right []rune, c completion.Completion) line.InsertMode {
	text := c.Replacement
	if c.IsFinished {
		text += " "
	}
	return applyPlainReplacement(unusedLeftRev, right, text)
}

// applyPlainReplacement is applyCompletion without IsFinished handling, for
// the LCP case where the replacement is only a partial candidate and never
// gets a trailing terminator.
func applyPlainReplacement(unusedLeftRev, right []rune, text string) line.InsertMode {
	replRev := reverseRunes([]rune(text))
	newPrefixRev := append(append([]rune{}, replRev...), unusedLeftRev...)
	return line.WithSplit(newPrefixRev, right)
}

func reverseRunes(r []rune) []rune {
	out := make([]rune, len(r))
	for i, c := range r {
		out[len(r)-1-i] = c
	}
	return out
}

func (s *Session) showCompletionList(candidates []completion.Completion) {
	var sb strings.Builder
	sb.WriteString("\r\n")
	for i, c := range candidates {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(c.Display)
	}
	sb.WriteString("\r\n")
	s.backend.Write([]byte(sb.String()))
}
