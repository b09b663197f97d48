package key

import "testing"

func TestParseVimStyle(t *testing.T) {
	cases := []struct {
		spec string
		want Event
	}{
		{"<C-s>", NewRuneEvent('s', ModCtrl)},
		{"<A-f>", NewRuneEvent('f', ModAlt)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
	}
	for _, c := range cases {
		got, err := Parse(c.spec)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.spec, err)
		}
		if !got.Equals(c.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", c.spec, got, c.want)
		}
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("<C-x> <C-s>")
	if err != nil {
		t.Fatal(err)
	}
	if seq.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", seq.Len())
	}
	other, _ := ParseSequence("<C-x>")
	if !seq.HasPrefix(other) {
		t.Errorf("expected %q to have prefix %q", seq, other)
	}
}

func TestCtrlHelper(t *testing.T) {
	e := Ctrl('A')
	if e.Rune != 'a' || !e.Modifiers.HasCtrl() {
		t.Errorf("Ctrl('A') = %#v", e)
	}
}

func TestEventVimString(t *testing.T) {
	e := Ctrl('r')
	if got := e.VimString(); got != "<C-r>" {
		t.Errorf("VimString() = %q, want <C-r>", got)
	}
}
