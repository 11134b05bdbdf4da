package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSpecWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tuning.yaml"), []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != "tuning.yaml" {
			t.Fatalf("expected tuning.yaml, got %q", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("expected closed events channel")
	}
}

func TestRelativeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/tmp/prefabs/tuning.yaml", "tuning.yaml"},
		{"/tmp/prefabs/scripts/placement.tengo", "scripts/placement.tengo"},
		{filepath.Join("prefabs", "yeti.yaml"), "yeti.yaml"},
	}
	for _, c := range cases {
		if got := relativeName(c.in); got != c.want {
			t.Fatalf("relativeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
