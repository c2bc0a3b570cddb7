package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.md")
	require.NoError(t, os.WriteFile(path, []byte("# v1\n"), 0o644))

	w, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("# v2\n"), 0o644))

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after write")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.md")
	require.NoError(t, os.WriteFile(path, []byte("# v1\n"), 0o644))

	w, err := New(path, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("# burst\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after burst")
	}

	// The burst collapses into a single notification.
	select {
	case <-w.Changed():
		t.Fatal("burst produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.md")
	require.NoError(t, os.WriteFile(path, []byte("# v1\n"), 0o644))

	w, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x\n"), 0o644))

	select {
	case <-w.Changed():
		t.Fatal("sibling file write should not notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.md")
	require.NoError(t, os.WriteFile(path, []byte("# v1\n"), 0o644))

	w, err := New(path)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}
