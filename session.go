package quill

import (
	"os"

	"github.com/dshills/quill/internal/applog"
	"github.com/dshills/quill/internal/completion"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/emacs"
	"github.com/dshills/quill/internal/history"
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/render"
	"github.com/dshills/quill/internal/term"
	"github.com/dshills/quill/internal/term/dumb"
	"github.com/dshills/quill/internal/term/terminfo"
	"github.com/mattn/go-isatty"
)

// Settings configures a Session (spec.md §6 "Settings" row).
type Settings struct {
	// HistoryFile, if non-empty, is read at session start and written back
	// at Close. "~/" is expanded the same way the filename completer does.
	HistoryFile string

	// PrefsFile is an inputrc-style preferences file layered under an
	// explicit Prefs override (spec.md §4.8 layering); both are optional.
	PrefsFile string
	TOMLFile  string
	Prefs     config.Prefs

	// Complete supplies the completion function driving Tab; nil disables
	// completion entirely (Tab then just rings the bell).
	Complete completion.Func

	// Backend overrides automatic terminal back-end selection — mainly for
	// tests, which supply an in-memory fake.
	Backend term.Backend

	// Log receives diagnostic events for recoverable errors (spec.md §7's
	// propagation policy); defaults to applog.Discard.
	Log applog.Sink

	// In/Out are the underlying files used to pick and build the default
	// Backend; default to os.Stdin/os.Stdout.
	In  *os.File
	Out *os.File
}

// Session owns one embedder's terminal, history, and preferences for the
// lifetime between RunSession and Close (spec.md §5 "Shared resources":
// exactly one Backend is exclusive-owned for as long as the Session runs).
type Session struct {
	prefs   config.Prefs
	backend term.Backend
	log     applog.Sink

	history    *history.Store
	historyPath string

	complete completion.Func

	// menuCompletion holds the in-progress MenuCompletion cycle, if any;
	// readLineCore clears it whenever a key other than Tab commits (spec.md
	// §4.6 "any non-Tab commits").
	menuCompletion *completionCycle

	renderer *render.Renderer

	// emacsDispatch carries the live prefix-trie position across events
	// within one readLine call; Vi needs no equivalent persistent
	// dispatcher since vi.Machine is small enough to build fresh per call.
	emacsDispatch *keymap.Dispatcher

	// searchRequested is set by the BeginSearch hook, which can't return a
	// value of its own through editstate.Hooks' func(string) signature;
	// readLineCore reads and clears it right after running the Effect that
	// invoked the hook.
	searchRequested *history.Search

	interruptHandlers []func() bool
}

// RunSession opens a Session, invoking body with it, and always closes it
// afterward regardless of how body returns (spec.md §6 "runSession").
func RunSession(settings Settings, body func(*Session) error) error {
	sess, err := newSession(settings)
	if err != nil {
		return err
	}
	defer sess.Close()
	return body(sess)
}

func newSession(settings Settings) (*Session, error) {
	log := settings.Log
	if log == nil {
		log = applog.Discard{}
	}

	prefs := config.Defaults()
	if settings.PrefsFile != "" || settings.TOMLFile != "" {
		layered, err := config.Layered(settings.PrefsFile, settings.TOMLFile)
		if err != nil {
			log.Warnf("quill: preferences load failed, using defaults: %v", err)
		} else {
			prefs = config.Merge(prefs, layered)
		}
	}
	prefs = config.Merge(prefs, settings.Prefs)

	backend := settings.Backend
	if backend == nil {
		var err error
		backend, err = defaultBackend(settings.In, settings.Out)
		if err != nil {
			return nil, err
		}
	}

	dedup := history.DedupConsecutive
	switch prefs.HistoryDuplicates {
	case config.HistoryDupNone:
		dedup = history.DedupNone
	case config.HistoryDupAll:
		dedup = history.DedupAll
	}
	store := history.New(prefs.MaxHistorySize, dedup, false)

	sess := &Session{
		prefs:         prefs,
		backend:       backend,
		log:           log,
		history:       store,
		historyPath:   settings.HistoryFile,
		complete:      settings.Complete,
		renderer:      render.New(80),
		emacsDispatch: emacs.NewDispatcher(),
	}

	if cols, _, err := backend.Size(); err == nil && cols > 0 {
		sess.renderer.SetWidth(cols)
	}
	if _, ok := backend.(*dumb.Backend); ok {
		sess.renderer.SetHorizontalScroll(true)
	}

	if settings.HistoryFile != "" {
		if err := sess.loadHistory(); err != nil {
			log.Warnf("quill: history load failed: %v", err)
		}
	}

	return sess, nil
}

// defaultBackend picks the Terminfo or dumb back-end: a real terminfo
// entry on a tty gets the full back-end, otherwise the single-line dumb
// fallback. The console back-end is never selected here.
func defaultBackend(in, out *os.File) (term.Backend, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if !isatty.IsTerminal(in.Fd()) || term.IsDumbTermName(os.Getenv("TERM")) {
		return dumb.New(in, out), nil
	}
	b, err := terminfo.New(in, out)
	if err != nil {
		return dumb.New(in, out), nil
	}
	return b, nil
}

// Close flushes history and releases the terminal back-end. Safe to call
// more than once.
func (s *Session) Close() error {
	if s.historyPath != "" {
		if err := s.saveHistory(); err != nil {
			s.log.Warnf("quill: history save failed: %v", err)
		}
	}
	return s.backend.Close()
}
