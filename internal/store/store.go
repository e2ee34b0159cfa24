// Package store holds the ordered item sequence behind a list adapter along
// with its pagination cursor and an opaque caller tag.
//
// A Store is not safe for concurrent use. It is expected to be mutated from
// the same goroutine that drives rendering; callers fetching pages elsewhere
// must hand results back to that goroutine before calling AddData or SetData.
package store

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIndexOutOfRange is wrapped by the panic raised when an index-addressed
// mutation receives a position outside the current sequence.
var ErrIndexOutOfRange = errors.New("store: index out of range")

// ChangeKind discriminates the notifications a Store emits.
type ChangeKind int

const (
	// ChangeReset means the whole sequence was replaced.
	ChangeReset ChangeKind = iota
	// ChangeInserted covers the range [Start, Start+Count).
	ChangeInserted
	// ChangeChanged means the item at Start was overwritten.
	ChangeChanged
	// ChangeRemoved means the item at Start was removed.
	ChangeRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeReset:
		return "reset"
	case ChangeInserted:
		return "inserted"
	case ChangeChanged:
		return "changed"
	case ChangeRemoved:
		return "removed"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes a single mutation of the sequence.
type Change struct {
	Kind  ChangeKind
	Start int
	Count int
}

// Observer receives every change synchronously, before the mutating call
// returns.
type Observer func(Change)

// Store is the sole owner of an ordered, identity-free sequence of items.
type Store[T comparable] struct {
	items    []T
	page     int
	lastPage bool
	tag      any

	observers []observerEntry
	nextID    int
}

type observerEntry struct {
	id int
	fn Observer
}

// New creates an empty store on page 1.
func New[T comparable]() *Store[T] {
	return &Store[T]{page: 1}
}

// Observe registers o for change notifications, in registration order. The
// returned function unregisters it.
func (s *Store[T]) Observe(o Observer) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observerEntry{id: id, fn: o})
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(e observerEntry) bool {
			return e.id == id
		})
	}
}

func (s *Store[T]) notify(c Change) {
	for _, e := range s.observers {
		e.fn(c)
	}
}

// SetData replaces the whole sequence with a copy of items. A nil slice
// clears it. A reset is
// always emitted, even when the new sequence is empty.
func (s *Store[T]) SetData(items []T) {
	s.items = slices.Clone(items)
	s.notify(Change{Kind: ChangeReset})
}

// Data returns the current sequence, or nil if none was ever set. The slice
// must not be modified by the caller.
func (s *Store[T]) Data() []T {
	return s.items
}

// AddData appends a batch. Appending to an empty store is a full replace.
func (s *Store[T]) AddData(items []T) {
	if len(items) == 0 {
		return
	}
	if len(s.items) == 0 {
		s.SetData(items)
		return
	}
	start := len(s.items)
	s.items = append(s.items, items...)
	s.notify(Change{Kind: ChangeInserted, Start: start, Count: len(items)})
}

// ClearData empties the sequence. It does nothing when already empty.
func (s *Store[T]) ClearData() {
	if len(s.items) == 0 {
		return
	}
	s.items = s.items[:0]
	s.notify(Change{Kind: ChangeReset})
}

// Count returns the length of the sequence.
func (s *Store[T]) Count() int {
	return len(s.items)
}

// Item returns the item at position. ok is false when position is out of
// range.
func (s *Store[T]) Item(position int) (item T, ok bool) {
	if position < 0 || position >= len(s.items) {
		return item, false
	}
	return s.items[position], true
}

// ContainsItem reports whether an equal item is present.
func (s *Store[T]) ContainsItem(item T) bool {
	return slices.Contains(s.items, item)
}

// ContainsPosition reports whether position addresses an item.
func (s *Store[T]) ContainsPosition(position int) bool {
	return position >= 0 && position < len(s.items)
}

// SetItem overwrites the item at position and panics if position is out of
// range.
func (s *Store[T]) SetItem(position int, item T) {
	s.checkIndex("SetItem", position)
	s.items[position] = item
	s.notify(Change{Kind: ChangeChanged, Start: position, Count: 1})
}

// AddItem appends a single item.
func (s *Store[T]) AddItem(item T) {
	s.InsertItem(len(s.items), item)
}

// InsertItem inserts item before position. Positions at or past the end
// append, and the notification carries the index actually used. A negative
// position panics.
func (s *Store[T]) InsertItem(position int, item T) {
	if position < 0 {
		panic(fmt.Errorf("InsertItem(%d): %w", position, ErrIndexOutOfRange))
	}
	if s.items == nil {
		s.items = []T{}
	}
	if position < len(s.items) {
		s.items = slices.Insert(s.items, position, item)
	} else {
		s.items = append(s.items, item)
		position = len(s.items) - 1
	}
	s.notify(Change{Kind: ChangeInserted, Start: position, Count: 1})
}

// RemoveItem removes the first item equal to item, if any.
func (s *Store[T]) RemoveItem(item T) {
	if i := slices.Index(s.items, item); i != -1 {
		s.RemoveAt(i)
	}
}

// RemoveAt removes the item at position and panics if position is out of
// range.
func (s *Store[T]) RemoveAt(position int) {
	s.checkIndex("RemoveAt", position)
	s.items = slices.Delete(s.items, position, position+1)
	s.notify(Change{Kind: ChangeRemoved, Start: position, Count: 1})
}

func (s *Store[T]) checkIndex(op string, position int) {
	if position < 0 || position >= len(s.items) {
		panic(fmt.Errorf("%s(%d) with length %d: %w", op, position, len(s.items), ErrIndexOutOfRange))
	}
}

// PageNumber returns the current page, starting at 1.
func (s *Store[T]) PageNumber() int {
	return s.page
}

// SetPageNumber records the page most recently loaded.
func (s *Store[T]) SetPageNumber(n int) {
	s.page = n
}

// IsLastPage reports whether no further pages are expected.
func (s *Store[T]) IsLastPage() bool {
	return s.lastPage
}

// SetLastPage marks whether the loaded page was the final one.
func (s *Store[T]) SetLastPage(last bool) {
	s.lastPage = last
}

// Tag returns the opaque value set with SetTag.
func (s *Store[T]) Tag() any {
	return s.tag
}

// SetTag stores an opaque value for the caller's own bookkeeping.
func (s *Store[T]) SetTag(tag any) {
	s.tag = tag
}
