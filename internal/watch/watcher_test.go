package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, w *Watcher, dirs int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	// Give Run time to register the watches.
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.watched) == dirs
	}, time.Second, 10*time.Millisecond)
}

func TestWatcherDebouncesConfigWrites(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docnav.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("plugins: []\n"), 0o600))

	var calls atomic.Int32
	w, err := New(cfgPath, func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	startWatcher(t, w, 1)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(cfgPath, []byte("plugins: []\n# edit\n"), 0o600))
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatcherSeesNewContentInSubdirectories(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docnav.yaml")
	content := filepath.Join(dir, "content")
	require.NoError(t, os.WriteFile(cfgPath, []byte("plugins: []\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(content, "guides"), 0o750))

	var calls atomic.Int32
	w, err := New(cfgPath, func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(50*time.Millisecond), WithContentDir(content))
	require.NoError(t, err)
	startWatcher(t, w, 3)

	require.NoError(t, os.WriteFile(filepath.Join(content, "guides", "setup.md"), []byte("# Setup\n"), 0o600))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docnav.yaml")
	content := filepath.Join(dir, "content")
	w, err := New(cfgPath, func(context.Context) error { return nil }, WithContentDir(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })

	require.True(t, w.relevant(cfgPath))
	require.True(t, w.relevant(filepath.Join(dir, "theme-options.yaml")))
	require.True(t, w.relevant(filepath.Join(dir, ".env")))
	require.True(t, w.relevant(filepath.Join(content, "a", "b.md")))
	require.False(t, w.relevant(filepath.Join(dir, "README.md")))
	require.False(t, w.relevant(filepath.Join(dir, ".docnav.yaml.swp")))
	require.False(t, w.relevant(filepath.Join(dir, "other", "x.yaml")))
	require.False(t, w.relevant(filepath.Join(content, "a", "b.md~")))
}

func TestIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docnav.yaml")
	content := filepath.Join(dir, "content")
	w, err := New(cfgPath, func(context.Context) error { return nil },
		WithContentDir(content), WithIgnore("content/drafts/**"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })

	require.False(t, w.relevant(filepath.Join(content, "drafts", "wip.md")))
	require.True(t, w.relevant(filepath.Join(content, "guides", "setup.md")))

	_, err = New(cfgPath, func(context.Context) error { return nil }, WithIgnore("content/[drafts"))
	require.Error(t, err)
}
