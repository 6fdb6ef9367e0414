package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	if got, err := ExpandHome("/tmp"); err != nil || got != "/tmp" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	p, err := ExpandHome("~")
	if err != nil || p != home {
		t.Fatalf("expected %q, got %q err=%v", home, p, err)
	}
	exp, err := ExpandHome("~/fixtures")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if filepath.Base(exp) != "fixtures" || filepath.Dir(exp) != home {
		t.Fatalf("unexpected expanded path: %q", exp)
	}
}

func TestPathExists(t *testing.T) {
	d := t.TempDir()
	if !PathExists(d) {
		t.Fatalf("temp dir should exist")
	}
	if PathExists(filepath.Join(d, "missing")) {
		t.Fatalf("missing path reported as existing")
	}
}

func TestFirstExisting(t *testing.T) {
	d := t.TempDir()
	if err := os.Mkdir(filepath.Join(d, "chatbot.yaml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d, "chatbot.toml"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, ok := FirstExisting(d, "chatbot.yaml", "chatbot.toml", "chatbot.json")
	if !ok || filepath.Base(p) != "chatbot.toml" {
		t.Fatalf("got %q ok=%v; directories must be skipped", p, ok)
	}
	if _, ok := FirstExisting(d, "nope.json"); ok {
		t.Fatalf("expected no match")
	}
}
