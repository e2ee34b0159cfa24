package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHolder_Defaults(t *testing.T) {
	t.Parallel()

	root := &testView{id: "root"}
	h := NewSimpleHolder(root)
	require.NotEmpty(t, h.ID())
	require.Equal(t, -1, h.LayoutPosition())
	require.Same(t, root, h.ItemView())
	require.Nil(t, h.FindView("missing"))
	require.NotEqual(t, h.ID(), NewSimpleHolder(root).ID())

	var empty Holder
	require.Nil(t, empty.FindView("root"))
}

func TestHolder_TargetsFollowWiring(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	a.SetOnChildClick("check", func(Renderer, View, int) {})
	a.SetOnChildLongClick("missing", func(Renderer, View, int) bool { return true })

	h := a.CreateHolder(a.Host(), 0)
	root := h.ItemView()
	check := h.FindView("check")
	title := h.FindView("title")

	t.Run("wired child wins over its parent", func(t *testing.T) {
		v, ok := h.ClickTarget([]View{root, check})
		require.True(t, ok)
		require.Equal(t, check, v)
	})

	t.Run("unwired child falls back to the root", func(t *testing.T) {
		v, ok := h.ClickTarget([]View{root, title})
		require.False(t, ok, "no item click listener was registered")
		require.Equal(t, root, v)
	})

	t.Run("views absent from the tree are never wired", func(t *testing.T) {
		_, ok := h.LongClickTarget([]View{root, check})
		require.False(t, ok)
	})

	t.Run("empty path", func(t *testing.T) {
		v, ok := h.ClickTarget(nil)
		require.False(t, ok)
		require.Nil(t, v)
	})
}

func TestHolder_LateRegistrationMissesExistingHolders(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter()
	early := a.CreateHolder(a.Host(), 0)
	a.SetOnItemClick(func(Renderer, View, int) {})
	late := a.CreateHolder(a.Host(), 0)

	_, ok := early.ClickTarget([]View{early.ItemView()})
	require.False(t, ok)
	_, ok = late.ClickTarget([]View{late.ItemView()})
	require.True(t, ok)
}

func TestBinderFunc(t *testing.T) {
	t.Parallel()

	var got int
	h := NewHolder(&testView{id: "root"}, BinderFunc(func(position int) { got = position }))
	h.SetLayoutPosition(5)
	h.bind(3)
	require.Equal(t, 3, got)
	require.Equal(t, -2, h.Offset())

	require.NotPanics(t, func() { NewHolder(&testView{}, nil).bind(0) })
}
