package core_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"github.com/yumosx/recycler/internal/tui/components/core"
	"github.com/yumosx/recycler/internal/tui/styles"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  core.StatusOpts
		width int
		want  string
	}{
		{
			name:  "DefaultIcon",
			opts:  core.StatusOpts{Title: "Files", Description: "12 in 1 page(s)"},
			width: 80,
			want:  styles.CheckIcon + " Files 12 in 1 page(s)",
		},
		{
			name:  "CustomIcon",
			opts:  core.StatusOpts{Icon: "!", Title: "Logs", Description: "none yet"},
			width: 80,
			want:  "! Logs none yet",
		},
		{
			name:  "Truncated",
			opts:  core.StatusOpts{Icon: "!", Title: "Title", Description: "a long description"},
			width: 14,
			want:  "! Title a lon…",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ansi.Strip(core.Status(tt.opts, tt.width)))
		})
	}
}

func TestHeader(t *testing.T) {
	t.Parallel()

	got := core.Header("Files", "", 12)
	require.Equal(t, 12, lipgloss.Width(got))
	require.Equal(t, "Files ──────", ansi.Strip(got))

	require.Equal(t, "Files ───── 3", ansi.Strip(core.Header("Files", "3", 13)))
	require.Equal(t, "Wide title", core.Header("Wide title", "0/9", 4))
}

func TestNewSimpleHelp(t *testing.T) {
	t.Parallel()

	quit := key.NewBinding(key.WithKeys("q"))
	h := core.NewSimpleHelp([]key.Binding{quit}, [][]key.Binding{{quit}})
	require.Len(t, h.ShortHelp(), 1)
	require.Len(t, h.FullHelp(), 1)
}
