package applog

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	s := NewStd(LevelWarn, &buf, "quill")
	s.Infof("should not appear")
	s.Warnf("should appear")
	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("Info was logged despite level=Warn: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("Warn was not logged: %q", out)
	}
}

func TestStdIncludesPrefixAndLevel(t *testing.T) {
	var buf bytes.Buffer
	s := NewStd(LevelDebug, &buf, "quill")
	s.Errorf("boom: %d", 42)
	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "quill") || !strings.Contains(out, "boom: 42") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDiscardNeverPanics(t *testing.T) {
	var d Discard
	d.Debugf("x")
	d.Infof("x")
	d.Warnf("x")
	d.Errorf("x")
}
