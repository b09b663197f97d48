package keymap

import (
	"testing"

	"github.com/dshills/quill/internal/key"
)

func TestSingleKeyMatchesImmediately(t *testing.T) {
	km := New()
	ran := false
	km.BindSpec("<C-a>", "move-to-start", func(s any) Outcome {
		ran = true
		return ChangeTo(s)
	})
	d := NewDispatcher(km)
	res := d.Feed(key.Ctrl('a'), "state")
	if res.Status != Matched {
		t.Fatalf("Status = %v, want Matched", res.Status)
	}
	if !ran {
		t.Fatal("command did not run")
	}
	if !d.AtRoot() {
		t.Fatal("dispatcher should reset to root after a match")
	}
}

func TestMultiKeySequencePending(t *testing.T) {
	km := New()
	km.BindSpec("<C-x> <C-s>", "save", func(s any) Outcome {
		return FinishWith("saved")
	})
	d := NewDispatcher(km)

	res := d.Feed(key.Ctrl('x'), nil)
	if res.Status != Pending {
		t.Fatalf("Status after first key = %v, want Pending", res.Status)
	}
	res = d.Feed(key.Ctrl('s'), nil)
	if res.Status != Matched || res.Outcome.Result != "saved" {
		t.Fatalf("Status/Result = %v/%v", res.Status, res.Outcome.Result)
	}
}

func TestNoMatchResetsWithoutRingingBell(t *testing.T) {
	km := New()
	km.BindSpec("<C-x> <C-s>", "save", func(s any) Outcome { return FinishWith("saved") })
	d := NewDispatcher(km)
	bellRang := false
	d.Bell = func(s any) Outcome {
		bellRang = true
		return ChangeTo(s)
	}

	d.Feed(key.Ctrl('x'), nil)
	res := d.Feed(key.Ctrl('z'), nil) // not a continuation
	if res.Status != NoMatch {
		t.Fatalf("Status = %v, want NoMatch", res.Status)
	}
	if !d.AtRoot() {
		t.Fatal("expected reset to root")
	}
	if bellRang {
		t.Fatal("Feed rang the bell on NoMatch; the caller rings it")
	}
}

func TestSelfInsertFallback(t *testing.T) {
	km := New()
	d := NewDispatcher(km)
	var inserted rune
	d.SelfInsert = func(state any, r rune) Outcome {
		inserted = r
		return ChangeTo(state)
	}
	res := d.Feed(key.NewRuneEvent('q', key.ModNone), "s")
	if res.Status != Matched || inserted != 'q' {
		t.Fatalf("self-insert fallback failed: status=%v inserted=%q", res.Status, inserted)
	}
}

func TestResolveOnTimeout(t *testing.T) {
	km := New()
	km.BindSpec("g g", "go-top", func(s any) Outcome { return FinishWith("top") })
	km.BindSpec("g i", "go-insert", func(s any) Outcome { return FinishWith("insert") })
	d := NewDispatcher(km)

	d.Feed(key.NewRuneEvent('g', key.ModNone), nil)
	// Caller waited the inter-key timeout with nothing else arriving, but
	// "g" alone has no leaf (only "g g"/"g i" do), so Resolve rings the
	// bell rather than matching.
	res := d.Resolve(nil)
	if res.Status == Matched && res.Outcome.Result != nil {
		t.Fatalf("expected no leaf at bare 'g', got %v", res.Outcome.Result)
	}
}

func TestLongerSequenceWinsOverShorterPrefixLeaf(t *testing.T) {
	km := New()
	km.BindSpec("d", "delete-char", func(s any) Outcome { return FinishWith("char") })
	km.BindSpec("d d", "delete-line", func(s any) Outcome { return FinishWith("line") })
	d := NewDispatcher(km)

	res := d.Feed(key.NewRuneEvent('d', key.ModNone), nil)
	if res.Status != Pending {
		t.Fatalf("Status = %v, want Pending (d d could still match)", res.Status)
	}
	res = d.Feed(key.NewRuneEvent('d', key.ModNone), nil)
	if res.Status != Matched || res.Outcome.Result != "line" {
		t.Fatalf("Status/Result = %v/%v, want Matched/line", res.Status, res.Outcome.Result)
	}
}
