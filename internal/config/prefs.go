// Package config implements the preferences layer from spec.md §4.8 (C8):
// a lenient inputrc-style key-value parser, plus an optional TOML override
// layer for embedders that want structured config instead.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// EditMode selects the Emacs or Vi key-dispatch discipline (spec.md §3).
type EditMode string

const (
	EditModeEmacs EditMode = "emacs"
	EditModeVi    EditMode = "vi"
)

// CompletionType selects how multiple completion candidates are presented.
type CompletionType string

const (
	// CompletionList always replaces with the longest common prefix of all
	// candidates and, absent progress, beeps and lists them.
	CompletionList CompletionType = "list"
	// CompletionMenu cycles inline through candidates on repeated Tab; any
	// non-Tab key commits whichever candidate is showing.
	CompletionMenu CompletionType = "menu"
	// CompletionListOrMenu tries the list behavior first and falls back to
	// menu cycling when the longest common prefix makes no progress, instead
	// of beeping and listing (spec.md §3's third completionType literal).
	CompletionListOrMenu CompletionType = "list-or-menu"
)

// HistoryDuplicates selects the dedup policy (spec.md §3 table).
type HistoryDuplicates string

const (
	HistoryDupNone       HistoryDuplicates = "none"
	HistoryDupConsecutive HistoryDuplicates = "consecutive"
	HistoryDupAll        HistoryDuplicates = "all"
)

// BellStyle selects how an unmatched key or completion-with-no-match is
// signaled.
type BellStyle string

const (
	BellAudible BellStyle = "audible"
	BellVisual  BellStyle = "visual"
	BellNone    BellStyle = "none"
)

// Prefs is the settings table from spec.md §3: "Prefs" row. Zero values
// mean "unset"; Defaults fills them in.
type Prefs struct {
	EditMode              EditMode
	CompletionType        CompletionType
	CompletionPromptLimit int
	MaxHistorySize        int
	HistoryDuplicates     HistoryDuplicates
	AutoAddHistory        *bool
	BellStyle             BellStyle

	// KeySequenceTimeout is how long the dispatcher waits for the next
	// event of a pending multi-key chord (e.g. Ctrl-X Ctrl-U) before
	// resolving it as-is (spec.md §4.1 point 2). Zero means "unset";
	// Defaults fills in 50ms.
	KeySequenceTimeout time.Duration
}

// Defaults returns the preferences a session uses when nothing overrides
// them.
func Defaults() Prefs {
	autoAdd := true
	return Prefs{
		EditMode:              EditModeEmacs,
		CompletionType:        CompletionList,
		CompletionPromptLimit: 100,
		MaxHistorySize:        1000,
		HistoryDuplicates:     HistoryDupConsecutive,
		AutoAddHistory:        &autoAdd,
		BellStyle:             BellAudible,
		KeySequenceTimeout:    50 * time.Millisecond,
	}
}

// Parse reads an inputrc-style preferences stream: one "key: value" or
// "key value" pair per line, "#" starts a comment, unknown keys are
// ignored rather than rejected (spec.md §4.8).
func Parse(r io.Reader) (Prefs, error) {
	p := Prefs{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := splitKV(line)
		if !ok {
			continue
		}
		if err := p.apply(key, val); err != nil {
			return p, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return p, err
	}
	return p, nil
}

func splitKV(line string) (key, val string, ok bool) {
	if i := strings.IndexAny(line, ":"); i >= 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
	}
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
	}
	return "", "", false
}

// apply sets one recognized key; unrecognized keys are silently ignored
// per the lenient-parser contract.
func (p *Prefs) apply(key, val string) error {
	switch strings.ToLower(key) {
	case "editmode":
		switch strings.ToLower(val) {
		case "emacs":
			p.EditMode = EditModeEmacs
		case "vi":
			p.EditMode = EditModeVi
		default:
			return fmt.Errorf("editMode: unknown value %q", val)
		}
	case "completiontype":
		switch strings.ToLower(val) {
		case "list":
			p.CompletionType = CompletionList
		case "menu":
			p.CompletionType = CompletionMenu
		case "listormenu", "list-or-menu":
			p.CompletionType = CompletionListOrMenu
		default:
			return fmt.Errorf("completionType: unknown value %q", val)
		}
	case "completionpromptlimit":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("completionPromptLimit: %w", err)
		}
		p.CompletionPromptLimit = n
	case "maxhistorysize":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("maxHistorySize: %w", err)
		}
		p.MaxHistorySize = n
	case "historyduplicates":
		switch strings.ToLower(val) {
		case "none":
			p.HistoryDuplicates = HistoryDupNone
		case "consecutive":
			p.HistoryDuplicates = HistoryDupConsecutive
		case "all":
			p.HistoryDuplicates = HistoryDupAll
		default:
			return fmt.Errorf("historyDuplicates: unknown value %q", val)
		}
	case "autoaddhistory":
		b, err := parseOnOff(val)
		if err != nil {
			return fmt.Errorf("autoAddHistory: %w", err)
		}
		p.AutoAddHistory = &b
	case "bellstyle":
		switch strings.ToLower(val) {
		case "audible":
			p.BellStyle = BellAudible
		case "visual":
			p.BellStyle = BellVisual
		case "none":
			p.BellStyle = BellNone
		default:
			return fmt.Errorf("bellStyle: unknown value %q", val)
		}
	case "keysequencetimeoutms":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("keySequenceTimeoutMs: %w", err)
		}
		p.KeySequenceTimeout = time.Duration(n) * time.Millisecond
	}
	// Unknown keys fall through silently.
	return nil
}

func parseOnOff(val string) (bool, error) {
	switch strings.ToLower(val) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on/off, got %q", val)
	}
}

// Merge layers override on top of base: any non-zero field in override
// replaces base's field (spec.md §4.8 layering between the preferences
// file and an embedder-supplied TOML override).
func Merge(base, override Prefs) Prefs {
	out := base
	if override.EditMode != "" {
		out.EditMode = override.EditMode
	}
	if override.CompletionType != "" {
		out.CompletionType = override.CompletionType
	}
	if override.CompletionPromptLimit != 0 {
		out.CompletionPromptLimit = override.CompletionPromptLimit
	}
	if override.MaxHistorySize != 0 {
		out.MaxHistorySize = override.MaxHistorySize
	}
	if override.HistoryDuplicates != "" {
		out.HistoryDuplicates = override.HistoryDuplicates
	}
	if override.AutoAddHistory != nil {
		out.AutoAddHistory = override.AutoAddHistory
	}
	if override.BellStyle != "" {
		out.BellStyle = override.BellStyle
	}
	if override.KeySequenceTimeout != 0 {
		out.KeySequenceTimeout = override.KeySequenceTimeout
	}
	return out
}
