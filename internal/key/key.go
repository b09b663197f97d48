// Package key models terminal key events and the sequences commands bind to.
//
// It intentionally does not talk to a terminal: internal/term decodes raw
// bytes and terminfo capability sequences into the Event values defined
// here. Keeping the model free of I/O lets internal/keymap, internal/emacs
// and internal/vi build and test key tables without a real tty.
package key

import "strings"

// Key identifies a logical key. Character keys use Rune and set Key to
// KeyRune; everything else is a named special key.
type Key uint16

const (
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete // DeleteForward
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyClear

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyInterrupt and KeyResize are synthetic events the terminal back-end
	// interleaves with real keystrokes per spec.md §4.1 and §5.
	KeyInterrupt
	KeyResize
	KeySuspend
	KeyContinue

	// KeyRune marks a decoded character; see Event.Rune.
	KeyRune
)

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyClear:
		return "Clear"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		return "F" + string(rune('1'+int(k-KeyF1)))
	case KeyInterrupt:
		return "Interrupt"
	case KeyResize:
		return "Resize"
	case KeySuspend:
		return "Suspend"
	case KeyContinue:
		return "Continue"
	case KeyRune:
		return "Rune"
	default:
		return "Unknown"
	}
}

// IsSpecial reports whether k is anything other than a plain character key.
func (k Key) IsSpecial() bool {
	return k != KeyRune && k != KeyNone
}

// IsSynthetic reports whether k is an event the back-end synthesizes rather
// than decodes from input bytes (spec.md §4.1 point 4, §5).
func (k Key) IsSynthetic() bool {
	switch k {
	case KeyInterrupt, KeyResize, KeySuspend, KeyContinue:
		return true
	default:
		return false
	}
}

var namesToKey = map[string]Key{
	"escape": KeyEscape, "esc": KeyEscape,
	"enter": KeyEnter, "return": KeyEnter, "cr": KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace, "bs": KeyBackspace,
	"delete": KeyDelete, "del": KeyDelete,
	"home": KeyHome,
	"end":  KeyEnd,
	"pageup": KeyPageUp, "pgup": KeyPageUp,
	"pagedown": KeyPageDown, "pgdn": KeyPageDown,
	"clear": KeyClear,
	"up":    KeyUp, "down": KeyDown, "left": KeyLeft, "right": KeyRight,
	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4,
	"f5": KeyF5, "f6": KeyF6, "f7": KeyF7, "f8": KeyF8,
	"f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,
	"space": KeyRune,
}

// KeyFromName resolves a lowercase key name to a Key, or KeyNone.
func KeyFromName(name string) Key {
	if k, ok := namesToKey[strings.ToLower(name)]; ok {
		return k
	}
	return KeyNone
}
