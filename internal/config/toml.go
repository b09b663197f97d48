package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// tomlPrefs mirrors Prefs with string-friendly field names for TOML
// unmarshaling; zero/empty fields mean "not set" and are left out of the
// Merge.
type tomlPrefs struct {
	EditMode              string `toml:"edit_mode"`
	CompletionType        string `toml:"completion_type"`
	CompletionPromptLimit int    `toml:"completion_prompt_limit"`
	MaxHistorySize        int    `toml:"max_history_size"`
	HistoryDuplicates     string `toml:"history_duplicates"`
	AutoAddHistory        *bool  `toml:"auto_add_history"`
	BellStyle             string `toml:"bell_style"`
	KeySequenceTimeoutMs  int    `toml:"key_sequence_timeout_ms"`
}

// ParseError wraps a TOML decode failure with the source path, mirroring
// the shape readers of error chains expect (Unwrap to the underlying
// decode error).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("config: parsing %s: %s", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// LoadTOML reads an override layer from a TOML file. A missing file is not
// an error: it returns the zero Prefs, for the caller to Merge as a no-op.
func LoadTOML(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, err
	}
	return ParseTOML(data, path)
}

// ParseTOML decodes TOML bytes into a Prefs override layer.
func ParseTOML(data []byte, sourcePath string) (Prefs, error) {
	var t tomlPrefs
	if err := toml.Unmarshal(data, &t); err != nil {
		return Prefs{}, &ParseError{Path: sourcePath, Err: err}
	}

	p := Prefs{
		EditMode:              EditMode(t.EditMode),
		CompletionType:        CompletionType(t.CompletionType),
		CompletionPromptLimit: t.CompletionPromptLimit,
		MaxHistorySize:        t.MaxHistorySize,
		HistoryDuplicates:     HistoryDuplicates(t.HistoryDuplicates),
		AutoAddHistory:        t.AutoAddHistory,
		BellStyle:             BellStyle(t.BellStyle),
	}
	if t.KeySequenceTimeoutMs != 0 {
		p.KeySequenceTimeout = time.Duration(t.KeySequenceTimeoutMs) * time.Millisecond
	}
	return p, nil
}

// Layered loads the inputrc-style Prefs file at prefsPath (if any), then
// applies the TOML override at tomlPath (if any) on top, returning the
// fully merged result starting from Defaults().
func Layered(prefsPath, tomlPath string) (Prefs, error) {
	p := Defaults()

	if prefsPath != "" {
		f, err := os.Open(prefsPath)
		if err == nil {
			defer f.Close()
			fromFile, perr := Parse(f)
			if perr != nil {
				return p, perr
			}
			p = Merge(p, fromFile)
		} else if !os.IsNotExist(err) {
			return p, err
		}
	}

	if tomlPath != "" {
		override, err := LoadTOML(tomlPath)
		if err != nil {
			return p, err
		}
		p = Merge(p, override)
	}

	return p, nil
}
