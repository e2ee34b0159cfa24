package adapter

import (
	"github.com/google/uuid"
)

// ViewID identifies a child view inside a holder's view tree.
type ViewID string

// View is a rendered view handle. Implementations must be comparable,
// typically pointers, since dispatch compares views by identity.
type View interface {
	ID() ViewID
	// FindView returns the view with the given id in this view's tree,
	// including the view itself, or nil.
	FindView(id ViewID) View
}

// Binder projects the item at position onto a holder's views.
type Binder interface {
	OnBindView(position int)
}

// BinderFunc adapts a function to Binder.
type BinderFunc func(position int)

// OnBindView implements Binder.
func (f BinderFunc) OnBindView(position int) {
	f(position)
}

// SimpleBinder binds nothing. It backs holders for static rows.
var SimpleBinder Binder = BinderFunc(func(int) {})

// Holder pairs one view with the logic to bind an item onto it. Holders are
// owned by the renderer's recycling pool and rebound many times.
type Holder struct {
	id     string
	kind   int
	view   View
	binder Binder

	// layoutPosition is the slot the renderer last placed this holder in.
	layoutPosition int
	// offset is the adapter position at the last bind minus layoutPosition.
	// It is only meaningful until the next bind.
	offset int

	rootClick       bool
	rootLongClick   bool
	childClicks     map[ViewID]View
	childLongClicks map[ViewID]View
}

// NewHolder creates a holder for view bound by binder.
func NewHolder(view View, binder Binder) *Holder {
	if binder == nil {
		binder = SimpleBinder
	}
	return &Holder{
		id:              uuid.NewString(),
		view:            view,
		binder:          binder,
		layoutPosition:  -1,
		childClicks:     make(map[ViewID]View),
		childLongClicks: make(map[ViewID]View),
	}
}

// NewSimpleHolder creates a holder whose bind does nothing.
func NewSimpleHolder(view View) *Holder {
	return NewHolder(view, SimpleBinder)
}

// ID returns a unique identifier for the holder.
func (h *Holder) ID() string { return h.id }

// Kind returns the slot kind the holder was created for.
func (h *Holder) Kind() int { return h.kind }

// ItemView returns the holder's root view.
func (h *Holder) ItemView() View { return h.view }

// FindView looks up a child of the root view.
func (h *Holder) FindView(id ViewID) View {
	if h.view == nil {
		return nil
	}
	return h.view.FindView(id)
}

// LayoutPosition returns the renderer slot the holder occupies, or -1.
func (h *Holder) LayoutPosition() int { return h.layoutPosition }

// SetLayoutPosition is called by the renderer when it places the holder.
func (h *Holder) SetLayoutPosition(slot int) { h.layoutPosition = slot }

// Offset returns the correction between the renderer slot and the adapter
// position recorded at the last bind.
func (h *Holder) Offset() int { return h.offset }

// Position returns the adapter position the holder currently represents.
func (h *Holder) Position() int {
	return h.layoutPosition + h.offset
}

func (h *Holder) bind(position int) {
	h.offset = position - h.layoutPosition
	h.binder.OnBindView(position)
}

// ClickTarget returns the deepest view in path that was wired for clicks
// when the holder was created. path runs from the root view to the view
// under the pointer.
func (h *Holder) ClickTarget(path []View) (View, bool) {
	return h.target(path, h.rootClick, h.childClicks)
}

// LongClickTarget is ClickTarget for long clicks.
func (h *Holder) LongClickTarget(path []View) (View, bool) {
	return h.target(path, h.rootLongClick, h.childLongClicks)
}

func (h *Holder) target(path []View, root bool, children map[ViewID]View) (View, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		v := path[i]
		if v == nil {
			continue
		}
		if v == h.view {
			return v, root
		}
		if wired, ok := children[v.ID()]; ok && wired == v {
			return v, true
		}
	}
	return nil, false
}
