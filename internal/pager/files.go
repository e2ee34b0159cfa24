package pager

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/yumosx/recycler/internal/csync"
	"github.com/yumosx/recycler/internal/fsext"
)

// Files pages through the files under a directory, newest first. The
// directory is walked once in the background; pages are windows over that
// listing until Reload is called.
type Files struct {
	root string
	opts fsext.ListOptions

	mu      sync.Mutex
	listing *csync.LazySlice[string]
}

func NewFiles(root string, opts fsext.ListOptions) *Files {
	return &Files{root: root, opts: opts}
}

func (f *Files) Root() string {
	return f.root
}

func (f *Files) snapshot() *csync.LazySlice[string] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listing == nil {
		root, opts := f.root, f.opts
		f.listing = csync.NewLazySlice(func() ([]string, error) {
			files, _, err := fsext.ListFiles(root, opts)
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", root, err)
			}
			paths := make([]string, len(files))
			for i, file := range files {
				paths[i] = file.Path
			}
			return paths, nil
		})
	}
	return f.listing
}

// Reload discards the current listing. The next page request walks the
// directory again.
func (f *Files) Reload() {
	f.mu.Lock()
	f.listing = nil
	f.mu.Unlock()
}

// All waits for the listing and returns a copy of it.
func (f *Files) All(ctx context.Context) ([]string, error) {
	l := f.snapshot()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.Done():
	}
	if err := l.Err(); err != nil {
		return nil, err
	}
	return slices.Collect(l.Seq()), nil
}

func (f *Files) List(ctx context.Context, page, size int) (Page[string], error) {
	if page < 1 {
		return Page[string]{}, ErrInvalidPage
	}
	l := f.snapshot()
	select {
	case <-ctx.Done():
		return Page[string]{}, ctx.Err()
	case <-l.Done():
	}
	if err := l.Err(); err != nil {
		return Page[string]{}, err
	}
	start := (page - 1) * size
	items := l.Window(start, size)
	return Page[string]{
		Items: items,
		Page:  page,
		Last:  start+len(items) >= l.Len(),
	}, nil
}

// Filtered returns a source paging through the listing after fn selected
// and ordered the paths.
func (f *Files) Filtered(fn func(paths []string) []string) DataSource[string] {
	return DataSourceFunc[string](func(ctx context.Context, page, size int) (Page[string], error) {
		all, err := f.All(ctx)
		if err != nil {
			return Page[string]{}, err
		}
		return Window(fn(all), page, size)
	})
}

// Window returns page of items, size items per page.
func Window[T any](items []T, page, size int) (Page[T], error) {
	if page < 1 {
		return Page[T]{}, ErrInvalidPage
	}
	start := (page - 1) * size
	if start >= len(items) || size <= 0 {
		return Page[T]{Page: page, Last: true}, nil
	}
	end := min(len(items), start+size)
	return Page[T]{
		Items: slices.Clone(items[start:end]),
		Page:  page,
		Last:  end >= len(items),
	}, nil
}
