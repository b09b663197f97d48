// Package quill is an embeddable line-editing library in the readline
// family (spec.md §1, §2): a pure line-state model (internal/line), two
// interchangeable key-dispatch disciplines (internal/emacs, internal/vi),
// a terminal back-end abstraction (internal/term), a completion engine
// (internal/completion), and a history store (internal/history), wired
// together by the Session type in this package.
//
// A minimal embedder:
//
//	settings := quill.Settings{HistoryFile: "~/.myapp_history"}
//	err := quill.RunSession(settings, func(sess *quill.Session) error {
//		for {
//			line, err := sess.ReadLine("myapp> ")
//			if errors.Is(err, quill.ErrEndOfInput) {
//				return nil
//			}
//			...
//		}
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package quill
