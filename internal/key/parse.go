package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// ParseSequence parses a space-separated spec like "g g" or "<C-x> <C-s>" into
// a Sequence. Each token is parsed with Parse.
func ParseSequence(spec string) (*Sequence, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptySpec
	}
	tokens := strings.Fields(spec)
	seq := NewSequence()
	for _, t := range tokens {
		e, err := Parse(t)
		if err != nil {
			return nil, err
		}
		seq.Add(e)
	}
	return seq, nil
}

// Parse parses a single key token. Supported forms:
//   - bare character: "a", "A", "$"
//   - vim style: "<C-s>", "<A-f>", "<CR>", "<Esc>"
//   - modifier style: "Ctrl+S", "Alt+F4"
//   - bare name: "Enter", "Tab", "Left"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseVim(spec[1 : len(spec)-1])
	}
	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}
	return parseBare(spec)
}

func parseVim(inner string) (Event, error) {
	parts := strings.Split(inner, "-")
	var mods Modifier
	keyPart := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a", "m":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "d":
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKeyWithMods(keyPart, mods)
}

func parseModifierStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	if len(parts) < 2 {
		return Event{}, ErrInvalidSpec
	}
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKeyWithMods(strings.TrimSpace(parts[len(parts)-1]), mods)
}

func parseBare(spec string) (Event, error) {
	if k := KeyFromName(strings.ToLower(spec)); k != KeyNone && k != KeyRune {
		return NewSpecialEvent(k, ModNone), nil
	}
	runes := []rune(spec)
	if len(runes) == 1 {
		r := runes[0]
		var mods Modifier
		if unicode.IsUpper(r) {
			mods = ModShift
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

func parseKeyWithMods(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}
	lower := strings.ToLower(keyPart)
	switch lower {
	case "cr", "return", "enter":
		return NewSpecialEvent(KeyEnter, mods), nil
	case "esc", "escape":
		return NewSpecialEvent(KeyEscape, mods), nil
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "bs", "backspace":
		return NewSpecialEvent(KeyBackspace, mods), nil
	}
	if k := KeyFromName(lower); k != KeyNone && k != KeyRune {
		return NewSpecialEvent(k, mods), nil
	}
	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, keyPart)
}
