package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type call struct {
	kind     string
	view     ViewID
	position int
}

func TestDispatcher_RegistrationAfterAttachPanics(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	a.Attach(&testRenderer{})

	require.PanicsWithError(t, "SetOnItemClick: "+ErrAttached.Error(), func() {
		a.SetOnItemClick(func(Renderer, View, int) {})
	})
	require.Panics(t, func() { a.SetOnItemLongClick(func(Renderer, View, int) bool { return true }) })
	require.Panics(t, func() { a.SetOnChildClick("check", func(Renderer, View, int) {}) })
	require.Panics(t, func() { a.SetOnChildLongClick("check", func(Renderer, View, int) bool { return true }) })

	a.Detach()
	require.NotPanics(t, func() { a.SetOnItemClick(func(Renderer, View, int) {}) })
}

func TestDispatcher_Click(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	var calls []call
	a.SetOnItemClick(func(r Renderer, v View, position int) {
		require.NotNil(t, r)
		calls = append(calls, call{kind: "item", view: v.ID(), position: position})
	})
	a.SetOnChildClick("check", func(_ Renderer, v View, position int) {
		calls = append(calls, call{kind: "child", view: v.ID(), position: position})
	})
	a.SetData([]string{"a", "b", "c"})
	a.Attach(&testRenderer{})

	h := a.CreateHolder(a.Host(), 0)
	h.SetLayoutPosition(4)
	a.Bind(h, 2)

	a.Click(h, h.ItemView())
	a.Click(h, h.FindView("check"))
	a.Click(h, h.FindView("title"))

	require.Equal(t, []call{
		{kind: "item", view: "root", position: 2},
		{kind: "child", view: "check", position: 2},
	}, calls)
}

func TestDispatcher_ResolvesForAnySkew(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	var got []int
	a.SetOnItemClick(func(_ Renderer, _ View, position int) {
		got = append(got, position)
	})
	a.SetData([]string{"a", "b", "c", "d", "e"})

	h := a.CreateHolder(a.Host(), 0)
	var want []int
	for p := range 5 {
		for _, q := range []int{0, 1, 3, 7, 12} {
			h.SetLayoutPosition(q)
			a.Bind(h, p)
			a.Click(h, h.ItemView())
			want = append(want, p)
		}
	}
	require.Equal(t, want, got)
}

func TestDispatcher_DropsStalePositions(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	clicks, longClicks := 0, 0
	a.SetOnItemClick(func(Renderer, View, int) { clicks++ })
	a.SetOnItemLongClick(func(Renderer, View, int) bool {
		longClicks++
		return true
	})
	a.SetData([]string{"a", "b", "c"})

	h := a.CreateHolder(a.Host(), 0)
	h.SetLayoutPosition(2)
	a.Bind(h, 2)

	// The item goes away before the pending click is delivered.
	a.RemoveAt(2)
	a.Click(h, h.ItemView())
	require.False(t, a.LongClick(h, h.ItemView()))

	// A holder that was never bound sits at layout position -1.
	fresh := a.CreateHolder(a.Host(), 0)
	a.Click(fresh, fresh.ItemView())

	require.Zero(t, clicks)
	require.Zero(t, longClicks)
}

func TestDispatcher_LongClick(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	var calls []call
	a.SetOnItemLongClick(func(_ Renderer, v View, position int) bool {
		calls = append(calls, call{kind: "item", view: v.ID(), position: position})
		return true
	})
	a.SetOnChildLongClick("check", func(_ Renderer, v View, position int) bool {
		calls = append(calls, call{kind: "child", view: v.ID(), position: position})
		return false
	})
	a.SetData([]string{"a", "b"})

	h := a.CreateHolder(a.Host(), 0)
	h.SetLayoutPosition(1)
	a.Bind(h, 1)

	require.True(t, a.LongClick(h, h.ItemView()))
	require.False(t, a.LongClick(h, h.FindView("check")))
	require.False(t, a.LongClick(h, h.FindView("title")))
	require.False(t, a.LongClick(h, nil))

	require.Equal(t, []call{
		{kind: "item", view: "root", position: 1},
		{kind: "child", view: "check", position: 1},
	}, calls)
}

func TestDispatcher_LongClickWithoutListener(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	a.SetData([]string{"a"})
	h := a.CreateHolder(a.Host(), 0)
	h.SetLayoutPosition(0)
	a.Bind(h, 0)

	require.False(t, a.LongClick(h, h.ItemView()))
	require.NotPanics(t, func() { a.Click(h, h.ItemView()) })
}

func TestDispatcher_ReplacesListeners(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	var got []string
	a.SetOnItemClick(func(Renderer, View, int) { got = append(got, "first") })
	a.SetOnItemClick(func(Renderer, View, int) { got = append(got, "second") })
	a.SetOnChildClick("check", func(Renderer, View, int) { got = append(got, "child-first") })
	a.SetOnChildClick("check", func(Renderer, View, int) { got = append(got, "child-second") })
	a.SetData([]string{"a"})

	h := a.CreateHolder(a.Host(), 0)
	h.SetLayoutPosition(0)
	a.Bind(h, 0)
	a.Click(h, h.ItemView())
	a.Click(h, h.FindView("check"))

	require.Equal(t, []string{"second", "child-second"}, got)
}

func TestDispatcher_ZeroValueDropsEvents(t *testing.T) {
	t.Parallel()

	var d Dispatcher
	clicked := false
	d.SetOnItemClick(func(Renderer, View, int) { clicked = true })
	d.SetOnItemLongClick(func(Renderer, View, int) bool { return true })

	h := NewSimpleHolder(&testView{id: "root"})
	h.SetLayoutPosition(0)
	require.NotPanics(t, func() { d.Click(h, h.ItemView()) })
	require.False(t, clicked)
	require.False(t, d.LongClick(h, h.ItemView()))
}
