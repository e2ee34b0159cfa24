// Package adapter binds a store of items to recyclable view holders and
// routes interaction on those holders back to item positions.
//
// The renderer (a list view) drives an adapter through [Source]: it asks for
// the item count, creates holders per slot kind, binds holders to positions
// and forwards clicks. The adapter forwards store changes to the renderer as
// [Observer] calls. Everything runs on the renderer's goroutine.
package adapter

import (
	"errors"
	"fmt"

	"github.com/yumosx/recycler/internal/store"
)

var (
	// ErrAttached is wrapped by the panic raised when listeners are
	// registered after the adapter was attached to a renderer.
	ErrAttached = errors.New("adapter: listeners must be set before attaching to a renderer")
	// ErrNilHost is wrapped by the panic raised by New without a host.
	ErrNilHost = errors.New("adapter: host is required")
	// ErrNilFactory is wrapped by the panic raised by New without a holder
	// factory.
	ErrNilFactory = errors.New("adapter: holder factory is required")
)

// Host is the environment an adapter and its holders are created in.
type Host interface {
	// Size reports the cells available to the list.
	Size() (width, height int)
}

// Observer is the change vocabulary a renderer understands.
type Observer interface {
	DataSetChanged()
	ItemRangeInserted(start, count int)
	ItemChanged(position int)
	ItemRemoved(position int)
}

// Renderer is the list view an adapter is attached to.
type Renderer interface {
	Observer
	// Arrangement returns the arrangement set on the renderer, or nil.
	Arrangement() Arrangement
	SetArrangement(Arrangement)
}

// Source is the non-generic surface a renderer drives.
type Source interface {
	ItemCount() int
	ItemKind(position int) int
	CreateHolder(host Host, kind int) *Holder
	Bind(h *Holder, position int)
	Click(h *Holder, v View)
	LongClick(h *Holder, v View) bool
	Attach(r Renderer)
	Detach()
	Host() Host
	PageNumber() int
	IsLastPage() bool
}

// HolderFactory creates a holder for the given slot kind.
type HolderFactory func(host Host, kind int) *Holder

type lifecycle int

const (
	unattached lifecycle = iota
	attached
)

// Adapter binds a [store.Store] of T to holders built by a HolderFactory.
type Adapter[T comparable] struct {
	*store.Store[T]
	*Dispatcher

	host               Host
	factory            HolderFactory
	kinds              func(position int, item T) int
	defaultArrangement func(Host) Arrangement

	state    lifecycle
	renderer Renderer
}

// Option configures an Adapter.
type Option[T comparable] func(*Adapter[T])

// WithKinds sets the function mapping items to slot kinds. Without it every
// item has kind 0.
func WithKinds[T comparable](fn func(position int, item T) int) Option[T] {
	return func(a *Adapter[T]) {
		a.kinds = fn
	}
}

// WithDefaultArrangement overrides the arrangement used when the renderer
// has none.
func WithDefaultArrangement[T comparable](fn func(Host) Arrangement) Option[T] {
	return func(a *Adapter[T]) {
		a.defaultArrangement = fn
	}
}

// New creates an unattached adapter with an empty store. It panics when host
// or factory is nil.
func New[T comparable](host Host, factory HolderFactory, opts ...Option[T]) *Adapter[T] {
	if host == nil {
		panic(ErrNilHost)
	}
	if factory == nil {
		panic(ErrNilFactory)
	}
	a := &Adapter[T]{
		Store:   store.New[T](),
		host:    host,
		factory: factory,
	}
	a.Dispatcher = &Dispatcher{
		attached: a.Attached,
		count:    a.ItemCount,
		renderer: a.Renderer,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Observe(a.forward)
	return a
}

func (a *Adapter[T]) forward(c store.Change) {
	if a.state != attached || a.renderer == nil {
		return
	}
	switch c.Kind {
	case store.ChangeReset:
		a.renderer.DataSetChanged()
	case store.ChangeInserted:
		a.renderer.ItemRangeInserted(c.Start, c.Count)
	case store.ChangeChanged:
		a.renderer.ItemChanged(c.Start)
	case store.ChangeRemoved:
		a.renderer.ItemRemoved(c.Start)
	}
}

// Host returns the host the adapter was created with.
func (a *Adapter[T]) Host() Host {
	return a.host
}

// ItemCount is the number of items the renderer should lay out.
func (a *Adapter[T]) ItemCount() int {
	return a.Count()
}

// ItemKind returns the slot kind for position, or 0 when out of range.
func (a *Adapter[T]) ItemKind(position int) int {
	if a.kinds == nil {
		return 0
	}
	item, ok := a.Item(position)
	if !ok {
		return 0
	}
	return a.kinds(position, item)
}

// CreateHolder builds a holder for kind and wires the listeners registered so
// far onto its views.
func (a *Adapter[T]) CreateHolder(host Host, kind int) *Holder {
	if host == nil {
		host = a.host
	}
	h := a.factory(host, kind)
	if h == nil {
		panic(fmt.Errorf("adapter: factory returned no holder for kind %d", kind))
	}
	h.kind = kind
	a.wire(h)
	return h
}

// Bind binds h to position. The holder's offset is recomputed against its
// layout position before the binder runs. Out of range positions are
// ignored.
func (a *Adapter[T]) Bind(h *Holder, position int) {
	if h == nil || position < 0 || position >= a.Count() {
		return
	}
	h.bind(position)
}

// NotifyItemChanged tells the renderer that the item at position must be
// rebound even though the store holds the same value, for example when
// selection state kept outside the store changed.
func (a *Adapter[T]) NotifyItemChanged(position int) {
	if position < 0 || position >= a.Count() {
		return
	}
	a.forward(store.Change{Kind: store.ChangeChanged, Start: position, Count: 1})
}

// Attached reports whether the adapter is attached to a renderer.
func (a *Adapter[T]) Attached() bool {
	return a.state == attached
}

// Renderer returns the renderer the adapter is attached to, or nil.
func (a *Adapter[T]) Renderer() Renderer {
	return a.renderer
}

// Attach connects the adapter to r. If r has no arrangement the adapter's
// default is applied. Attaching to a second renderer panics.
func (a *Adapter[T]) Attach(r Renderer) {
	if a.state == attached {
		if a.renderer == r {
			return
		}
		panic(fmt.Errorf("Attach: %w", ErrAttached))
	}
	a.renderer = r
	a.state = attached
	if r.Arrangement() == nil {
		if arr := a.DefaultArrangement(a.host); arr != nil {
			r.SetArrangement(arr)
		}
	}
}

// Detach disconnects the adapter from its renderer.
func (a *Adapter[T]) Detach() {
	a.renderer = nil
	a.state = unattached
}

// DefaultArrangement returns the arrangement applied when the renderer has
// none: a single linear column unless overridden.
func (a *Adapter[T]) DefaultArrangement(host Host) Arrangement {
	if a.defaultArrangement != nil {
		return a.defaultArrangement(host)
	}
	return Linear{}
}
