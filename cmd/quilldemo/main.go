// Package main is a small demo shell exercising the quill line editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/quill"
	"github.com/dshills/quill/internal/applog"
	"github.com/dshills/quill/internal/completion"
	"github.com/dshills/quill/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	prefs := config.Defaults()
	prefs.EditMode = config.EditMode(opts.editMode)

	settings := quill.Settings{
		HistoryFile: opts.historyFile,
		Prefs:       prefs,
		Complete:    completion.FilenameCompleter(),
		Log:         applog.NewStd(logLevel(opts.debug), os.Stderr, "quilldemo"),
	}

	err := quill.RunSession(settings, func(sess *quill.Session) error {
		for {
			line, err := sess.ReadLine("quill> ")
			if errors.Is(err, quill.ErrEndOfInput) {
				fmt.Println()
				return nil
			}
			if errors.Is(err, quill.ErrInterrupted) {
				sess.OutputLine("^C")
				continue
			}
			if err != nil {
				return err
			}
			if line == "exit" || line == "quit" {
				return nil
			}
			sess.OutputLine(line)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	editMode    string
	historyFile string
	debug       bool
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.editMode, "mode", "emacs", "Editing discipline (emacs or vi)")
	flag.StringVar(&opts.historyFile, "history", "~/.quilldemo_history", "History file path")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quilldemo - a demo shell for the quill line editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quilldemo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("quilldemo %s (%s)\n", version, commit)
		os.Exit(0)
	}

	switch opts.editMode {
	case "emacs", "vi":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid mode %q (must be emacs or vi)\n", opts.editMode)
		os.Exit(1)
	}

	return opts
}

func logLevel(debug bool) applog.Level {
	if debug {
		return applog.LevelDebug
	}
	return applog.LevelWarn
}
