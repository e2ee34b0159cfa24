package adapter

import "fmt"

// ClickFunc is called with the renderer, the clicked view and the item
// position.
type ClickFunc func(r Renderer, v View, position int)

// LongClickFunc is called on long clicks and reports whether it handled the
// event.
type LongClickFunc func(r Renderer, v View, position int) bool

// Dispatcher routes clicks on holder views back to item positions. The zero
// value has no items, so it drops every event.
type Dispatcher struct {
	itemClick       ClickFunc
	itemLongClick   LongClickFunc
	childClicks     map[ViewID]ClickFunc
	childLongClicks map[ViewID]LongClickFunc

	attached func() bool
	count    func() int
	renderer func() Renderer
}

func (d *Dispatcher) checkUnattached(op string) {
	if d.attached != nil && d.attached() {
		panic(fmt.Errorf("%s: %w", op, ErrAttached))
	}
}

// SetOnItemClick sets the listener for clicks on a holder's root view. It
// panics once the adapter is attached.
func (d *Dispatcher) SetOnItemClick(fn ClickFunc) {
	d.checkUnattached("SetOnItemClick")
	d.itemClick = fn
}

// SetOnItemLongClick sets the listener for long clicks on a holder's root
// view. It panics once the adapter is attached.
func (d *Dispatcher) SetOnItemLongClick(fn LongClickFunc) {
	d.checkUnattached("SetOnItemLongClick")
	d.itemLongClick = fn
}

// SetOnChildClick sets the click listener for child views with id. It panics
// once the adapter is attached.
func (d *Dispatcher) SetOnChildClick(id ViewID, fn ClickFunc) {
	d.checkUnattached("SetOnChildClick")
	if d.childClicks == nil {
		d.childClicks = make(map[ViewID]ClickFunc)
	}
	d.childClicks[id] = fn
}

// SetOnChildLongClick sets the long click listener for child views with id.
// It panics once the adapter is attached.
func (d *Dispatcher) SetOnChildLongClick(id ViewID, fn LongClickFunc) {
	d.checkUnattached("SetOnChildLongClick")
	if d.childLongClicks == nil {
		d.childLongClicks = make(map[ViewID]LongClickFunc)
	}
	d.childLongClicks[id] = fn
}

// wire records on h which of its views receive events, as of now.
func (d *Dispatcher) wire(h *Holder) {
	h.rootClick = d.itemClick != nil
	h.rootLongClick = d.itemLongClick != nil
	for id, fn := range d.childClicks {
		if fn == nil {
			continue
		}
		if v := h.FindView(id); v != nil {
			h.childClicks[id] = v
		}
	}
	for id, fn := range d.childLongClicks {
		if fn == nil {
			continue
		}
		if v := h.FindView(id); v != nil {
			h.childLongClicks[id] = v
		}
	}
}

func (d *Dispatcher) resolve(h *Holder) (int, bool) {
	position := h.Position()
	if position < 0 || position >= d.itemCount() {
		return position, false
	}
	return position, true
}

func (d *Dispatcher) itemCount() int {
	if d.count == nil {
		return 0
	}
	return d.count()
}

func (d *Dispatcher) currentRenderer() Renderer {
	if d.renderer == nil {
		return nil
	}
	return d.renderer()
}

// Click dispatches a click on v, a view of h. Events resolving outside the
// current item range are dropped.
func (d *Dispatcher) Click(h *Holder, v View) {
	position, ok := d.resolve(h)
	if !ok {
		return
	}
	if v == h.ItemView() {
		if d.itemClick != nil {
			d.itemClick(d.currentRenderer(), v, position)
		}
		return
	}
	if v == nil {
		return
	}
	if fn := d.childClicks[v.ID()]; fn != nil {
		fn(d.currentRenderer(), v, position)
	}
}

// LongClick dispatches a long click on v, a view of h, and returns whether a
// listener handled it.
func (d *Dispatcher) LongClick(h *Holder, v View) bool {
	position, ok := d.resolve(h)
	if !ok {
		return false
	}
	if v == h.ItemView() {
		if d.itemLongClick != nil {
			return d.itemLongClick(d.currentRenderer(), v, position)
		}
		return false
	}
	if v == nil {
		return false
	}
	if fn := d.childLongClicks[v.ID()]; fn != nil {
		return fn(d.currentRenderer(), v, position)
	}
	return false
}
