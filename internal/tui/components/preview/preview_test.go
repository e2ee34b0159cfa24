package preview

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("source", func(t *testing.T) {
		t.Parallel()
		path := write(t, "main.go", "package main\n\nfunc main() {}\n")
		out, err := Render(path, 40, 10)
		require.NoError(t, err)
		require.Contains(t, ansi.Strip(out), "func main()")
	})

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()
		path := write(t, "README.md", "# Title\n\nSome **bold** text.\n")
		out, err := Render(path, 40, 10)
		require.NoError(t, err)
		plain := ansi.Strip(out)
		require.Contains(t, plain, "Title")
		require.Contains(t, plain, "bold")
		require.NotContains(t, plain, "**")
	})

	t.Run("binary", func(t *testing.T) {
		t.Parallel()
		path := write(t, "blob.bin", "ab\x00cd")
		out, err := Render(path, 40, 10)
		require.NoError(t, err)
		require.Equal(t, "binary file, 5 bytes", out)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := Render(filepath.Join(t.TempDir(), "nope.txt"), 40, 10)
		require.Error(t, err)
	})
}

func TestModel_LoadsAndCaches(t *testing.T) {
	t.Parallel()

	path := write(t, "notes.txt", "hello preview\n")
	m := New()
	require.Nil(t, m.SetSize(30, 10), "nothing is open")

	cmd := m.Open(path)
	require.NotNil(t, cmd)
	require.True(t, m.Loading())
	require.Contains(t, ansi.Strip(m.View()), "Loading preview")

	m, _ = m.Update(cmd())
	require.False(t, m.Loading())
	require.Contains(t, ansi.Strip(m.View()), "hello preview")

	m.Close()
	require.False(t, m.IsOpen())
	require.Empty(t, m.View())

	require.Nil(t, m.Open(path), "the rendering is cached")
	require.Contains(t, ansi.Strip(m.View()), "hello preview")
}

func TestModel_DropsStaleResults(t *testing.T) {
	t.Parallel()

	first := write(t, "a.txt", "first")
	second := write(t, "b.txt", "second")
	m := New()
	m.SetSize(30, 10)

	stale := m.Open(first)
	fresh := m.Open(second)
	m, _ = m.Update(stale())
	require.True(t, m.Loading())
	m, _ = m.Update(fresh())
	require.Equal(t, second, m.Path())
	require.Contains(t, ansi.Strip(m.View()), "second")
}

func TestModel_MissingFile(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetSize(40, 10)
	require.Nil(t, m.Open(filepath.Join(t.TempDir(), "gone.png")))
	require.ErrorIs(t, m.Err(), fs.ErrNotExist)
	require.NotEmpty(t, m.View())
}
