package line

// DeleteFromMove deletes the text between the current cursor and the
// position m would move to, returning the resulting line and the killed
// text plus whether the kill was backward (deleting text left of the
// original cursor). Callers push killed onto the kill ring; spec.md §4.2's
// deleteFromMove and §8 invariant 3 (yank undoes a kill) depend on this
// being exact.
func DeleteFromMove(state InsertMode, m Motion) (result InsertMode, killed string, backward bool) {
	dest := m(state)
	oldCur, newCur := state.Cursor(), dest.Cursor()
	full := state.runes()

	switch {
	case newCur < oldCur:
		killed = string(full[newCur:oldCur])
		result = WithSplit(state.prefixRev[oldCur-newCur:], state.suffix)
		return result, killed, true
	case newCur > oldCur:
		killed = string(full[oldCur:newCur])
		removed := newCur - oldCur
		result = WithSplit(state.prefixRev, state.suffix[removed:])
		return result, killed, false
	default:
		return state, "", false
	}
}

// Yank inserts text at the cursor (kill-ring paste), cursor ends after it.
func Yank(m InsertMode, text string) InsertMode {
	return InsertString(m, text)
}
