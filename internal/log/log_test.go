package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewHandler(&buf, false)
	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	require.True(t, NewHandler(&buf, true).Enabled(context.Background(), slog.LevelDebug))

	slog.New(h).Info("Listed files", "count", 3)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "Listed files", line["msg"])
	require.EqualValues(t, 3, line["count"])
	require.Contains(t, line, slog.SourceKey)
}

func TestWritePanicReport(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2025, 7, 1, 12, 30, 0, 0, time.UTC)
	path, err := writePanicReport(dir, "watcher", "boom", []byte("goroutine 1"), now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "recycler-panic-watcher-20250701-123000.log"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Panic in watcher: boom")
	require.Contains(t, string(data), "2025-07-01T12:30:00Z")
	require.Contains(t, string(data), "goroutine 1")
}

func TestRecoverPanic(t *testing.T) {
	dir := t.TempDir()
	prev := panicDirectory()
	panicDir.Store(dir)
	t.Cleanup(func() { panicDir.Store(prev) })

	cleaned := false
	func() {
		defer RecoverPanic("test", func() { cleaned = true })
		panic("boom")
	}()
	require.True(t, cleaned)

	reports, err := filepath.Glob(filepath.Join(dir, "recycler-panic-test-*.log"))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	require.NotPanics(t, func() {
		defer RecoverPanic("quiet", nil)
	})
}
