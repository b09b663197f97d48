package quill

// OutputLine writes s above the current prompt without corrupting
// whatever's being edited (spec.md §6 "outputLine"): it clears the
// current line, writes s terminated by a newline, then forces the next
// draw to redraw the prompt and buffer from scratch.
func (s *Session) OutputLine(text string) {
	s.backend.CarriageReturn()
	s.backend.ClearToEOL()
	s.backend.Write([]byte(text))
	s.backend.Write([]byte("\r\n"))
	s.renderer.Reset()
}
