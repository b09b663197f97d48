package quill

import (
	"os"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/history"
	"github.com/mitchellh/go-homedir"
)

// GetHistory returns the session's history entries, oldest first (spec.md
// §6 "getHistory").
func (s *Session) GetHistory() []string {
	return s.history.Entries()
}

// PutHistory appends line to history, subject to the session's dedup
// policy (spec.md §6 "putHistory"). Callers normally don't need this
// directly — ReadLine auto-adds non-empty lines when AutoAddHistory is on
// — but it's exposed for embedders that filter what gets recorded.
func (s *Session) PutHistory(line string) {
	s.history.Add(line)
}

// ModifyHistory replaces the full entry list via fn, which receives the
// current entries (oldest first) and returns the replacement (spec.md §6
// "modifyHistory" — e.g. to redact a line after the fact).
func (s *Session) ModifyHistory(fn func(entries []string) []string) {
	next := fn(s.history.Entries())
	dedup := history.DedupConsecutive
	switch s.prefs.HistoryDuplicates {
	case config.HistoryDupNone:
		dedup = history.DedupNone
	case config.HistoryDupAll:
		dedup = history.DedupAll
	}
	fresh := history.New(s.prefs.MaxHistorySize, dedup, false)
	for _, e := range next {
		fresh.Add(e)
	}
	s.history = fresh
}

// EditHistoryEntry replaces the history entry at idx (0 = oldest) with
// text, re-applying the session's dedup policy as ModifyHistory does
// (spec.md §4.9's "re-edit a picked history line" supplement, grounded in
// elves-elvish's store.SetBuffer). ok is false if idx is out of range.
func (s *Session) EditHistoryEntry(idx int, text string) (ok bool) {
	if idx < 0 || idx >= s.history.Len() {
		return false
	}
	s.ModifyHistory(func(entries []string) []string {
		entries[idx] = text
		return entries
	})
	return true
}

func (s *Session) loadHistory() error {
	path, err := homedir.Expand(s.historyPath)
	if err != nil {
		path = s.historyPath
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	_, err = s.history.Load(f)
	return err
}

func (s *Session) saveHistory() error {
	path, err := homedir.Expand(s.historyPath)
	if err != nil {
		path = s.historyPath
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = s.history.Save(f)
	return err
}
