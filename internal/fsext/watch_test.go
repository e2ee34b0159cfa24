package fsext

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesChanges(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "album"), 0o755))

	w := NewWatcher(root, nil)
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(paths []string) { batches <- paths })
	}()

	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	a := filepath.Join(root, "a.png")
	b := filepath.Join(root, "album", "b.png")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("h"), 0o644))

	var got []string
	deadline := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case batch := <-batches:
			got = append(got, batch...)
		case <-deadline:
			t.Fatalf("missing change events, got %v", got)
		}
	}
	require.Contains(t, got, a)
	require.Contains(t, got, b)
	require.NotContains(t, got, filepath.Join(root, ".hidden"))

	cancel()
	require.NoError(t, <-done)
}
