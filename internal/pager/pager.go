// Package pager loads pages of items off the UI goroutine and applies them
// to a store on it.
package pager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/yumosx/recycler/internal/csync"
)

// DefaultPageSize is used when a loader is created with a non-positive size.
const DefaultPageSize = 50

var ErrInvalidPage = errors.New("pager: page numbers start at 1")

// Page is one page of items returned by a DataSource.
type Page[T any] struct {
	Items []T
	// Page is the 1-based number of this page.
	Page int
	// Last reports that no page follows this one.
	Last bool
}

// DataSource fetches pages. List may block and is never called on the UI
// goroutine.
type DataSource[T any] interface {
	List(ctx context.Context, page, size int) (Page[T], error)
}

// DataSourceFunc adapts a function to a DataSource.
type DataSourceFunc[T any] func(ctx context.Context, page, size int) (Page[T], error)

func (f DataSourceFunc[T]) List(ctx context.Context, page, size int) (Page[T], error) {
	return f(ctx, page, size)
}

// PageMsg carries the result of a page load back to the update loop.
type PageMsg[T any] struct {
	Page[T]
	Err error

	generation uint64
}

// Target is the part of a store a page is applied to.
type Target[T any] interface {
	SetData(items []T)
	AddData(items []T)
	SetPageNumber(n int)
	SetLastPage(last bool)
}

// Apply stores a loaded page. The first page replaces the data, later pages
// are appended. It must run on the goroutine that owns the store. A message
// carrying an error leaves the store untouched and returns the error.
func Apply[T any](t Target[T], msg PageMsg[T]) error {
	if msg.Err != nil {
		return msg.Err
	}
	if msg.Page.Page <= 1 {
		t.SetData(msg.Items)
	} else {
		t.AddData(msg.Items)
	}
	t.SetPageNumber(max(msg.Page.Page, 1))
	t.SetLastPage(msg.Last)
	return nil
}

type request struct {
	generation uint64
	page       int
}

// Loader issues page requests against a DataSource. A page that is already
// being fetched is not requested again until its result was delivered.
type Loader[T any] struct {
	source DataSource[T]
	size   int

	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64

	inflight *csync.Map[request, struct{}]
}

func NewLoader[T any](source DataSource[T], size int) *Loader[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader[T]{
		source:   source,
		size:     size,
		ctx:      ctx,
		cancel:   cancel,
		inflight: csync.NewMap[request, struct{}](),
	}
}

// Size is the number of items requested per page.
func (l *Loader[T]) Size() int {
	return l.size
}

// SetSource replaces the data source and cancels requests made against the
// previous one.
func (l *Loader[T]) SetSource(source DataSource[T]) {
	l.Cancel()
	l.mu.Lock()
	l.source = source
	l.mu.Unlock()
}

// Pending reports whether any request is in flight.
func (l *Loader[T]) Pending() bool {
	return l.inflight.Len() > 0
}

// Load returns a command fetching page, or nil when that page is already
// being fetched.
func (l *Loader[T]) Load(page int) tea.Cmd {
	if page < 1 {
		return func() tea.Msg {
			return PageMsg[T]{Err: fmt.Errorf("load page %d: %w", page, ErrInvalidPage)}
		}
	}
	l.mu.Lock()
	ctx, source, gen := l.ctx, l.source, l.generation
	l.mu.Unlock()

	req := request{generation: gen, page: page}
	if !l.inflight.SetIfAbsent(req, struct{}{}) {
		return nil
	}
	size := l.size
	return func() tea.Msg {
		defer l.inflight.Del(req)
		p, err := source.List(ctx, page, size)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				slog.Error("Failed to load page", "page", page, "error", err)
			}
			return PageMsg[T]{Page: Page[T]{Page: page}, Err: fmt.Errorf("load page %d: %w", page, err), generation: gen}
		}
		p.Page = page
		return PageMsg[T]{Page: p, generation: gen}
	}
}

// Reload cancels outstanding requests and fetches the first page again.
func (l *Loader[T]) Reload() tea.Cmd {
	l.Cancel()
	return l.Load(1)
}

// Cancel aborts every outstanding request. Results of requests made before
// the call are rejected by Apply.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel()
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.generation++
	l.inflight.Reset()
}

// Current reports whether msg answers a request made since the last Cancel.
func (l *Loader[T]) Current(msg PageMsg[T]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return msg.generation == l.generation
}

// Apply applies msg to t unless it is stale. The boolean reports whether the
// store was touched.
func (l *Loader[T]) Apply(t Target[T], msg PageMsg[T]) (bool, error) {
	if !l.Current(msg) {
		slog.Debug("Dropping stale page", "page", msg.Page.Page)
		return false, nil
	}
	if err := Apply(t, msg); err != nil {
		return false, err
	}
	return true, nil
}
