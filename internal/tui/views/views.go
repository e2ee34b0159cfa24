// Package views provides the terminal view handles list holders are built
// from. Views draw into a single line of a fixed cell width and resolve
// pointer columns to the views underneath.
package views

import (
	"strings"

	"github.com/yumosx/recycler/internal/adapter"
)

// Element is a view that can draw itself.
type Element interface {
	adapter.View
	// Render draws the element into exactly width cells.
	Render(width int, focused bool) string
	// Hit returns the views under column x, from this element down to the
	// deepest child. It returns nil when x falls outside the element.
	Hit(x, width int) []adapter.View
}

// Sized is implemented by elements with a fixed width.
type Sized interface {
	Width() int
}

// Path returns the hit path for column x of v, or a path holding only v when
// v is not an Element.
func Path(v adapter.View, x, width int) []adapter.View {
	if el, ok := v.(Element); ok {
		return el.Hit(x, width)
	}
	if v == nil {
		return nil
	}
	return []adapter.View{v}
}

// Render draws v when it is an Element and blank cells otherwise.
func Render(v adapter.View, width int, focused bool) string {
	if el, ok := v.(Element); ok && width > 0 {
		return el.Render(width, focused)
	}
	return blank(width)
}

func blank(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}
