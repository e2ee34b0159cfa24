package pager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yumosx/recycler/internal/store"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func sliceSource(items []int) DataSource[int] {
	return DataSourceFunc[int](func(_ context.Context, page, size int) (Page[int], error) {
		return Window(items, page, size)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	s := store.New[int]()
	var changes []store.Change
	s.Observe(func(c store.Change) { changes = append(changes, c) })

	require.NoError(t, Apply(s, PageMsg[int]{Page: Page[int]{Items: []int{1, 2}, Page: 1}}))
	require.NoError(t, Apply(s, PageMsg[int]{Page: Page[int]{Items: []int{3}, Page: 2, Last: true}}))

	require.Equal(t, []int{1, 2, 3}, s.Data())
	require.Equal(t, 2, s.PageNumber())
	require.True(t, s.IsLastPage())
	require.Equal(t, []store.Change{
		{Kind: store.ChangeReset},
		{Kind: store.ChangeInserted, Start: 2, Count: 1},
	}, changes)

	boom := errors.New("boom")
	require.ErrorIs(t, Apply(s, PageMsg[int]{Page: Page[int]{Page: 1}, Err: boom}), boom)
	require.Equal(t, []int{1, 2, 3}, s.Data())
}

func TestLoader_LoadsPages(t *testing.T) {
	t.Parallel()

	l := NewLoader(sliceSource(numbers(5)), 2)
	require.Equal(t, 2, l.Size())
	s := store.New[int]()

	for page := 1; ; page++ {
		msg := l.Load(page)().(PageMsg[int])
		applied, err := l.Apply(s, msg)
		require.NoError(t, err)
		require.True(t, applied)
		if msg.Last {
			break
		}
	}
	require.Equal(t, numbers(5), s.Data())
	require.Equal(t, 3, s.PageNumber())
	require.False(t, l.Pending())
}

func TestLoader_SuppressesDuplicates(t *testing.T) {
	t.Parallel()

	l := NewLoader(sliceSource(numbers(5)), 0)
	require.Equal(t, DefaultPageSize, l.Size())

	cmd := l.Load(1)
	require.NotNil(t, cmd)
	require.True(t, l.Pending())
	require.Nil(t, l.Load(1))
	require.NotNil(t, l.Load(2))

	cmd()
	require.NotNil(t, l.Load(1), "delivered pages can be requested again")
}

func TestLoader_CancelRejectsStaleResults(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	source := DataSourceFunc[int](func(ctx context.Context, page, size int) (Page[int], error) {
		close(started)
		<-ctx.Done()
		return Page[int]{}, ctx.Err()
	})
	l := NewLoader[int](source, 10)
	s := store.New[int]()

	cmd := l.Load(1)
	done := make(chan PageMsg[int])
	go func() { done <- cmd().(PageMsg[int]) }()
	<-started
	l.Cancel()
	msg := <-done

	require.ErrorIs(t, msg.Err, context.Canceled)
	require.False(t, l.Current(msg))
	applied, err := l.Apply(s, msg)
	require.NoError(t, err)
	require.False(t, applied)
	require.Nil(t, s.Data())
}

func TestLoader_SetSource(t *testing.T) {
	t.Parallel()

	l := NewLoader(sliceSource(numbers(3)), 10)
	old := l.Load(1)().(PageMsg[int])

	l.SetSource(sliceSource([]int{7}))
	require.False(t, l.Current(old))

	msg := l.Reload()().(PageMsg[int])
	require.True(t, l.Current(msg))
	require.Equal(t, []int{7}, msg.Items)
	require.True(t, msg.Last)
}

func TestLoader_InvalidPage(t *testing.T) {
	t.Parallel()

	l := NewLoader(sliceSource(nil), 10)
	msg := l.Load(0)().(PageMsg[int])
	require.ErrorIs(t, msg.Err, ErrInvalidPage)
}

func TestWindow(t *testing.T) {
	t.Parallel()

	items := numbers(5)
	for _, tt := range []struct {
		name string
		page int
		want Page[int]
	}{
		{name: "first", page: 1, want: Page[int]{Items: []int{0, 1}, Page: 1}},
		{name: "last partial", page: 3, want: Page[int]{Items: []int{4}, Page: 3, Last: true}},
		{name: "past the end", page: 4, want: Page[int]{Page: 4, Last: true}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Window(items, tt.page, 2)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := Window(items, 0, 2)
	require.ErrorIs(t, err, ErrInvalidPage)
}
