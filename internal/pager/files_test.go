package pager

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yumosx/recycler/internal/fsext"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
}

func TestFiles_List(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.png", "b.png", "sub/c.png", "notes.txt")
	f := NewFiles(root, fsext.ListOptions{Include: []string{"**/*.png"}})
	require.Equal(t, root, f.Root())

	ctx := context.Background()
	first, err := f.List(ctx, 1, 2)
	require.NoError(t, err)
	require.False(t, first.Last)
	require.Equal(t, []string{
		filepath.Join(root, "sub/c.png"),
		filepath.Join(root, "b.png"),
	}, first.Items)

	second, err := f.List(ctx, 2, 2)
	require.NoError(t, err)
	require.True(t, second.Last)
	require.Equal(t, []string{filepath.Join(root, "a.png")}, second.Items)

	_, err = f.List(ctx, 0, 2)
	require.ErrorIs(t, err, ErrInvalidPage)
}

func TestFiles_Reload(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.png")
	f := NewFiles(root, fsext.ListOptions{})

	all, err := f.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	writeFiles(t, root, "b.png")
	all, err = f.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1, "the listing is kept until reloaded")

	f.Reload()
	all, err = f.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestFiles_Filtered(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "cat.png", "dog.png", "cow.png")
	f := NewFiles(root, fsext.ListOptions{})

	source := f.Filtered(func(paths []string) []string {
		var out []string
		for _, p := range paths {
			if strings.HasPrefix(filepath.Base(p), "c") {
				out = append(out, p)
			}
		}
		return out
	})
	page, err := source.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.True(t, page.Last)
	require.Equal(t, []string{
		filepath.Join(root, "cow.png"),
		filepath.Join(root, "cat.png"),
	}, page.Items)
}
