package keymap

import "github.com/dshills/quill/internal/key"

// node is one level of the prefix trie. children is small (a handful of
// keys per level at most) so linear scan beats a map for cache locality;
// real key tables rarely exceed a dozen siblings.
type node struct {
	events   []key.Event
	children []*node
	leaf     *Binding
}

// KeyMap is a trie over key.Sequence mapping to Commands (spec.md §4.4).
type KeyMap struct {
	root *node
}

// New creates an empty KeyMap.
func New() *KeyMap {
	return &KeyMap{root: &node{}}
}

func (n *node) child(e key.Event) *node {
	for i, ev := range n.events {
		if ev.Equals(e) {
			return n.children[i]
		}
	}
	return nil
}

func (n *node) childOrCreate(e key.Event) *node {
	if c := n.child(e); c != nil {
		return c
	}
	c := &node{}
	n.events = append(n.events, e)
	n.children = append(n.children, c)
	return c
}

// Bind registers cmd at the end of seq. A binding already present at a
// shorter prefix of seq is shadowed only at exact-sequence lookup time;
// collisions resolve in favor of the longer (more specific) sequence per
// spec.md §4.4.
func (k *KeyMap) Bind(seq *key.Sequence, b Binding) {
	n := k.root
	for i := 0; i < seq.Len(); i++ {
		n = n.childOrCreate(*seq.At(i))
	}
	bCopy := b
	n.leaf = &bCopy
}

// BindSpec parses spec (e.g. "<C-x> <C-s>") and binds it; it panics on a parse
// error since keymaps are built once at startup from static tables.
func (k *KeyMap) BindSpec(spec string, name string, cmd Command) {
	seq, err := key.ParseSequence(spec)
	if err != nil {
		panic("keymap: invalid key spec " + spec + ": " + err.Error())
	}
	k.Bind(seq, Binding{Name: name, Run: cmd})
}

// Merge unions other into k; choiceCmd from spec.md §4.4. Bindings in
// other take precedence on exact collisions (later registration wins,
// mirroring how Vi/Emacs user overrides layer atop defaults).
func (k *KeyMap) Merge(other *KeyMap) {
	mergeNode(k.root, other.root)
}

func mergeNode(dst, src *node) {
	if src.leaf != nil {
		dst.leaf = src.leaf
	}
	for i, e := range src.events {
		mergeNode(dst.childOrCreate(e), src.children[i])
	}
}
