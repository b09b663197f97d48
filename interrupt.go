package quill

// WithInterrupt runs body with handler installed as the active SIGINT
// response for the duration of any ReadLine/ReadChar/ReadPassword call
// nested inside it (spec.md §6 "withInterrupt"). handler returning true
// means it fully handled the interrupt and the in-progress read should
// keep going; false falls back to the default behavior of aborting the
// read with ErrInterrupted.
func (s *Session) WithInterrupt(handler func() bool, body func() error) error {
	s.pushInterrupt(handler)
	defer s.popInterrupt()
	return body()
}

// HandleInterrupt is WithInterrupt for handlers that always consume the
// interrupt and never want the default abort behavior (spec.md §6
// "handleInterrupt").
func (s *Session) HandleInterrupt(handler func(), body func() error) error {
	return s.WithInterrupt(func() bool { handler(); return true }, body)
}

func (s *Session) pushInterrupt(handler func() bool) {
	s.interruptHandlers = append(s.interruptHandlers, func() bool {
		if handler == nil {
			return false
		}
		return handler()
	})
}

func (s *Session) popInterrupt() {
	if len(s.interruptHandlers) == 0 {
		return
	}
	s.interruptHandlers = s.interruptHandlers[:len(s.interruptHandlers)-1]
}

// fireInterrupt runs the innermost installed interrupt handler, if any,
// reporting whether it consumed the interrupt (so the caller should keep
// reading rather than abort with ErrInterrupted).
func (s *Session) fireInterrupt() bool {
	if len(s.interruptHandlers) == 0 {
		return false
	}
	return s.interruptHandlers[len(s.interruptHandlers)-1]()
}
