package key

import "strings"

// Modifier is a bitset of active modifier keys, combined with a Key or Rune
// to form the "Modifier-combination(Ctrl|Meta|Shift, KeyEvent)" case from
// spec.md §4.1 point 2.
type Modifier uint8

const (
	ModNone Modifier = 0

	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }
func (m Modifier) HasShift() bool        { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool         { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool          { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool         { return m.Has(ModMeta) }

func (m Modifier) With(mod Modifier) Modifier    { return m | mod }
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }
func (m Modifier) IsEmpty() bool                 { return m == ModNone }

func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// ModifierFromName resolves "ctrl", "alt", "shift" or "meta" (any case) to
// a Modifier, or ModNone if unrecognized.
func ModifierFromName(name string) Modifier {
	switch strings.ToLower(name) {
	case "ctrl", "control", "c":
		return ModCtrl
	case "alt", "meta", "a", "m", "opt", "option":
		return ModAlt
	case "shift", "s":
		return ModShift
	case "super", "cmd", "win", "d":
		return ModMeta
	default:
		return ModNone
	}
}
