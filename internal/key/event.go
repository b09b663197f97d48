package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event is one decoded key press: either a character (Key == KeyRune) or a
// named special key, always carrying whatever modifiers were active.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Ctrl builds the event for Ctrl-<letter>, e.g. Ctrl('a') is Ctrl-A.
func Ctrl(r rune) Event {
	return NewRuneEvent(unicode.ToLower(r), ModCtrl)
}

// Alt builds the event for Meta/Alt-<rune>.
func Alt(r rune) Event {
	return NewRuneEvent(r, ModAlt)
}

func (e Event) IsRune() bool { return e.Key == KeyRune }

// IsChar reports whether e is a self-insertable printable character, i.e.
// unmodified (aside from Shift, which is absorbed into the rune itself).
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.Modifiers.HasCtrl() && !e.Modifiers.HasAlt() && !e.Modifiers.HasMeta()
}

func (e Event) IsSpecial() bool { return e.Key.IsSpecial() }

// Equals compares two events for exact identity (used by the keymap trie).
func (e Event) Equals(o Event) bool {
	return e.Key == o.Key && e.Rune == o.Rune && e.Modifiers == o.Modifiers
}

// String renders a canonical human-readable form, e.g. "Ctrl+S", "Enter",
// "A" (Shift is implicit in uppercase runes and not printed separately).
func (e Event) String() string {
	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "Alt")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "Meta")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "Shift")
	}
	if e.IsRune() {
		parts = append(parts, string(e.Rune))
	} else {
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "+")
}

// VimString renders the compact <C-s>-style form used in key-spec strings.
func (e Event) VimString() string {
	if e.Modifiers.IsEmpty() && e.IsRune() {
		return string(e.Rune)
	}
	var sb strings.Builder
	sb.WriteByte('<')
	if e.Modifiers.HasCtrl() {
		sb.WriteString("C-")
	}
	if e.Modifiers.HasAlt() {
		sb.WriteString("A-")
	}
	if e.Modifiers.HasMeta() {
		sb.WriteString("M-")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		sb.WriteString("S-")
	}
	if e.IsRune() {
		sb.WriteString(string(e.Rune))
	} else {
		sb.WriteString(e.Key.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// GoString supports %#v debugging output.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{%s}", e.String())
}
