package adapter

// Arrangement decides how a renderer places item slots.
type Arrangement interface {
	// Span is the number of slots laid out side by side in one row.
	Span() int
}

// Linear places one slot per row.
type Linear struct{}

// Span implements Arrangement.
func (Linear) Span() int { return 1 }

// Grid places Columns slots per row.
type Grid struct {
	Columns int
}

// Span implements Arrangement.
func (g Grid) Span() int {
	return max(1, g.Columns)
}
