package views

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/tui/styles"
)

// Text is a single line of text, truncated to the width it is given.
type Text struct {
	id           adapter.ViewID
	text         string
	style        lipgloss.Style
	focusedStyle lipgloss.Style
}

func NewText(id adapter.ViewID) *Text {
	t := styles.CurrentTheme()
	return &Text{
		id:           id,
		style:        t.S().Cell,
		focusedStyle: t.S().CellFocused,
	}
}

func (t *Text) ID() adapter.ViewID { return t.id }

func (t *Text) FindView(id adapter.ViewID) adapter.View {
	if id == t.id {
		return t
	}
	return nil
}

func (t *Text) Text() string { return t.text }

func (t *Text) SetText(s string) { t.text = s }

// SetStyle sets the style used when the text is not focused.
func (t *Text) SetStyle(s lipgloss.Style) { t.style = s }

func (t *Text) Render(width int, focused bool) string {
	if width <= 0 {
		return ""
	}
	style := t.style
	if focused {
		style = t.focusedStyle
	}
	content := ansi.Truncate(t.text, width, "…")
	return style.Width(width).MaxWidth(width).Render(content)
}

func (t *Text) Hit(x, width int) []adapter.View {
	if x < 0 || x >= width {
		return nil
	}
	return []adapter.View{t}
}
