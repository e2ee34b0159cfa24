package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/tui/styles"
)

// Row lays its children out left to right. Sized children get their own
// width; the remaining cells are shared by the others, the first flexible
// child taking any remainder.
type Row struct {
	id           adapter.ViewID
	gap          int
	children     []Element
	style        lipgloss.Style
	focusedStyle lipgloss.Style
}

func NewRow(id adapter.ViewID, children ...Element) *Row {
	t := styles.CurrentTheme()
	return &Row{
		id:           id,
		gap:          1,
		children:     children,
		style:        t.S().Base,
		focusedStyle: t.S().CellFocused,
	}
}

// SetGap sets the number of cells between children.
func (r *Row) SetGap(gap int) { r.gap = max(0, gap) }

func (r *Row) ID() adapter.ViewID { return r.id }

func (r *Row) Children() []Element { return r.children }

func (r *Row) FindView(id adapter.ViewID) adapter.View {
	if id == r.id {
		return r
	}
	for _, c := range r.children {
		if v := c.FindView(id); v != nil {
			return v
		}
	}
	return nil
}

// widths returns the width of every child for a row of width cells.
// Children that do not fit get zero.
func (r *Row) widths(width int) []int {
	out := make([]int, len(r.children))
	if len(r.children) == 0 {
		return out
	}
	remaining := width - r.gap*(len(r.children)-1)
	flexible := 0
	for i, c := range r.children {
		if s, ok := c.(Sized); ok {
			w := min(max(0, remaining), s.Width())
			out[i] = w
			remaining -= w
			continue
		}
		flexible++
	}
	if flexible == 0 || remaining <= 0 {
		return out
	}
	share, extra := remaining/flexible, remaining%flexible
	for i, c := range r.children {
		if _, ok := c.(Sized); ok {
			continue
		}
		out[i] = share + extra
		extra = 0
	}
	return out
}

func (r *Row) Render(width int, focused bool) string {
	if width <= 0 {
		return ""
	}
	style := r.style
	if focused {
		style = r.focusedStyle
	}
	gap := style.Render(strings.Repeat(" ", r.gap))

	var b strings.Builder
	used := 0
	for i, w := range r.widths(width) {
		if i > 0 && used < width {
			b.WriteString(gap)
			used += r.gap
		}
		if w == 0 {
			continue
		}
		b.WriteString(r.children[i].Render(w, focused))
		used += w
	}
	if used < width {
		b.WriteString(style.Render(strings.Repeat(" ", width-used)))
	}
	return b.String()
}

func (r *Row) Hit(x, width int) []adapter.View {
	if x < 0 || x >= width {
		return nil
	}
	path := []adapter.View{r}
	start := 0
	for i, w := range r.widths(width) {
		if i > 0 {
			start += r.gap
		}
		if x >= start && x < start+w {
			return append(path, r.children[i].Hit(x-start, w)...)
		}
		start += w
	}
	return path
}
