package views

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/tui/styles"
)

// Checkbox is a fixed width check mark.
type Checkbox struct {
	id           adapter.ViewID
	checked      bool
	style        lipgloss.Style
	checkedStyle lipgloss.Style
	focusedStyle lipgloss.Style
}

func NewCheckbox(id adapter.ViewID) *Checkbox {
	t := styles.CurrentTheme()
	return &Checkbox{
		id:           id,
		style:        t.S().Check,
		checkedStyle: t.S().CheckChecked,
		focusedStyle: t.S().CellFocused,
	}
}

func (c *Checkbox) ID() adapter.ViewID { return c.id }

func (c *Checkbox) FindView(id adapter.ViewID) adapter.View {
	if id == c.id {
		return c
	}
	return nil
}

func (c *Checkbox) Checked() bool { return c.checked }

func (c *Checkbox) SetChecked(checked bool) { c.checked = checked }

// Width implements Sized.
func (c *Checkbox) Width() int {
	return lipgloss.Width(styles.UncheckedBox)
}

func (c *Checkbox) Render(width int, focused bool) string {
	if width <= 0 {
		return ""
	}
	mark, style := styles.UncheckedBox, c.style
	if c.checked {
		mark, style = styles.CheckedBox, c.checkedStyle
	}
	if focused {
		style = c.focusedStyle
	}
	return style.Width(width).MaxWidth(width).Render(mark)
}

func (c *Checkbox) Hit(x, width int) []adapter.View {
	if x < 0 || x >= width {
		return nil
	}
	return []adapter.View{c}
}
