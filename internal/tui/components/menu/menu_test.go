package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestMenu_SelectWithKeyboard(t *testing.T) {
	t.Parallel()

	m := New("albums", "Albums", []any{"All", "camera", 42}, 20, 6)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, 2, m.Selected())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Contains(t, run(cmd), tea.Msg(SelectedMsg{ID: "albums", Position: 2, Item: 42}))
}

func TestMenu_SelectWithMouse(t *testing.T) {
	t.Parallel()

	m := New("albums", "Albums", []any{"All", "camera"}, 20, 6)
	// Border row, title row, then the items.
	m, _ = m.Update(tea.MouseClickMsg{X: 3, Y: 3, Button: tea.MouseLeft})
	_, cmd := m.Update(tea.MouseReleaseMsg{X: 3, Y: 3, Button: tea.MouseLeft})
	require.Equal(t, []tea.Msg{SelectedMsg{ID: "albums", Position: 1, Item: "camera"}}, run(cmd))
}

func TestMenu_Close(t *testing.T) {
	t.Parallel()

	m := New("albums", "Albums", []any{"All"}, 20, 6)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.Equal(t, []tea.Msg{ClosedMsg{ID: "albums"}}, run(cmd))

	m.Close()
	require.False(t, m.Adapter().Attached())
}

func TestMenu_View(t *testing.T) {
	t.Parallel()

	m := New("albums", "Albums", []any{"All", "camera"}, 20, 6)
	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")
	require.Contains(t, lines[1], "Albums")
	require.Contains(t, lines[2], "All")
	require.Contains(t, lines[3], "camera")
}
