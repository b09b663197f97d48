// Package keymap implements the prefix-trie key dispatcher from spec.md
// §4.4: KeyMap is a trie over key.Sequence whose leaves are Commands: the
// dispatcher advances a live node pointer per incoming event and, once a
// leaf is reached with no live continuation, runs the bound Command.
package keymap

// Kind identifies which of the four command outcomes (spec.md §4.4) a
// Command produced.
type Kind int

const (
	// Change replaces the editing state and continues the session.
	Change Kind = iota
	// Finish returns Result to readLine's caller.
	Finish
	// Fail signals EOF-like abort ("no input").
	Fail
	// Effect performs a side effect, then continues with State.
	Effect
)

// Outcome is what a Command produces. State is the new editing state for
// Change/Effect; Result carries the returned value for Finish.
type Outcome struct {
	Kind   Kind
	State  any
	Result any
	Effect func() (any, error) // run for Kind==Effect; returns the state to continue with
}

func ChangeTo(s any) Outcome { return Outcome{Kind: Change, State: s} }
func FinishWith(v any) Outcome { return Outcome{Kind: Finish, Result: v} }
func Failed() Outcome          { return Outcome{Kind: Fail} }
func WithEffect(fn func() (any, error)) Outcome {
	return Outcome{Kind: Effect, Effect: fn}
}

// Command maps a key sequence to an edit of the opaque session state s.
// internal/emacs and internal/vi supply concrete closures over their own
// state types.
type Command func(s any) Outcome

// Binding pairs a name (for diagnostics/keymap introspection) with a
// Command, analogous to spec.md's `+>` operator combining a key with a
// command.
type Binding struct {
	Name string
	Run  Command
}
