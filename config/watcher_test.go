package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, filepath.Join(dir, "stubgen.yaml"), "classes: []\n")
	other := filepath.Join(dir, "notes.txt")

	w, err := NewWatcher(manifest, "")
	require.NoError(t, err)
	w.debouncePeriod = 20 * time.Millisecond
	defer w.Stop()

	changed := make(chan string, 4)
	w.OnChange(func(path string) { changed <- path })
	w.Start()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	select {
	case p := <-changed:
		t.Fatalf("unwatched file triggered a change: %s", p)
	case <-time.After(100 * time.Millisecond):
	}

	// A burst of writes collapses into one callback
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(manifest, []byte("functions: []\n"), 0o644))
	}
	select {
	case p := <-changed:
		assert.Equal(t, manifest, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case p := <-changed:
		t.Fatalf("burst produced a second callback: %s", p)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "stubgen.yaml"))
	assert.Error(t, err)
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "stubgen.yaml"))
	require.NoError(t, err)
	w.Start()
	require.NoError(t, w.Stop())
	_ = w.Stop()
}
