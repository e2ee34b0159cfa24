package recycler

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/tui/util"
	"github.com/yumosx/recycler/internal/tui/views"
)

type fixture struct {
	adapter *adapter.Adapter[string]
	created int
	events  []string
}

func newFixture(n int, opts ...adapter.Option[string]) *fixture {
	f := &fixture{}
	var a *adapter.Adapter[string]
	a = adapter.New(NewHost(30, 5), func(host adapter.Host, kind int) *adapter.Holder {
		f.created++
		title := views.NewText("title")
		row := views.NewRow("root", views.NewCheckbox("check"), title)
		return adapter.NewHolder(row, adapter.BinderFunc(func(position int) {
			item, _ := a.Item(position)
			title.SetText(item)
		}))
	}, opts...)
	f.adapter = a
	a.SetData(items(n))
	return f
}

func (f *fixture) listen() {
	f.adapter.SetOnItemClick(func(_ adapter.Renderer, _ adapter.View, position int) {
		f.events = append(f.events, fmt.Sprintf("click %d", position))
	})
	f.adapter.SetOnChildClick("check", func(_ adapter.Renderer, _ adapter.View, position int) {
		f.events = append(f.events, fmt.Sprintf("check %d", position))
	})
	f.adapter.SetOnItemLongClick(func(_ adapter.Renderer, _ adapter.View, position int) bool {
		f.events = append(f.events, fmt.Sprintf("long %d", position))
		return position%2 == 0
	})
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item-%d", i)
	}
	return out
}

// collect runs cmd and every command batched inside it.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestNew_AppliesArrangement(t *testing.T) {
	t.Parallel()

	t.Run("adapter default", func(t *testing.T) {
		t.Parallel()
		f := newFixture(3, adapter.WithDefaultArrangement[string](func(adapter.Host) adapter.Arrangement {
			return adapter.Grid{Columns: 3}
		}))
		m := New(f.adapter)
		require.Equal(t, adapter.Grid{Columns: 3}, m.Arrangement())
		require.Equal(t, 0, m.Selected())
	})

	t.Run("explicit", func(t *testing.T) {
		t.Parallel()
		f := newFixture(3, adapter.WithDefaultArrangement[string](func(adapter.Host) adapter.Arrangement {
			return adapter.Grid{Columns: 3}
		}))
		m := New(f.adapter, WithArrangement(adapter.Linear{}))
		require.Equal(t, adapter.Linear{}, m.Arrangement())
	})
}

func TestModel_RecyclesHolders(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	m := New(f.adapter, WithSize(30, 5))
	m.View()
	require.Equal(t, 5, f.created)

	m.SetSelected(50)
	m.View()
	require.Equal(t, 5, f.created, "scrolling reuses pooled holders")

	h := m.Holder(50)
	require.NotNil(t, h)
	require.Equal(t, 50, h.LayoutPosition())
	require.Equal(t, 50, h.Position())
	require.Nil(t, m.Holder(0), "positions out of view hold no holder")
}

func TestModel_HeaderSlotsOffsetHolders(t *testing.T) {
	t.Parallel()

	title := views.NewText("header")
	title.SetText("Files")
	sub := views.NewText("subheader")

	f := newFixture(4)
	m := New(f.adapter, WithSize(30, 6), WithHeaders(title, sub))

	h := m.Holder(1)
	require.NotNil(t, h)
	require.Equal(t, 3, h.LayoutPosition())
	require.Equal(t, -2, h.Offset())
	require.Equal(t, 1, h.Position())

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	require.Len(t, lines, 6)
	require.Equal(t, "Files", strings.TrimSpace(lines[0]))
	require.Contains(t, lines[2], "item-0")
	require.Contains(t, lines[5], "item-3")
}

func TestModel_ClickDispatch(t *testing.T) {
	t.Parallel()

	header := views.NewText("header")
	f := newFixture(4)
	f.listen()
	m := New(f.adapter, WithSize(30, 5), WithHeaders(header))

	// Row 2 holds item 1; column 1 is the checkbox, column 10 the title.
	m.Press(10, 2, tea.MouseLeft)
	require.Equal(t, 1, m.Selected())
	m.Release()
	m.Press(1, 2, tea.MouseLeft)
	m.Release()
	// Headers are not items.
	m.Press(10, 0, tea.MouseLeft)
	m.Release()
	// Release without a press.
	m.Release()

	require.Equal(t, []string{"click 1", "check 1"}, f.events)
}

func TestModel_LongPress(t *testing.T) {
	t.Parallel()

	f := newFixture(4)
	f.listen()
	m := New(f.adapter, WithSize(30, 5), WithLongPress(time.Second))

	clock := time.Unix(0, 0)
	m.now = func() time.Time { return clock }

	m.Press(10, 0, tea.MouseLeft)
	clock = clock.Add(999 * time.Millisecond)
	m.Release()

	m.Press(10, 2, tea.MouseLeft)
	clock = clock.Add(time.Second)
	m.Release()

	// Right clicks are long clicks; odd positions are not handled and fall
	// back to a click.
	m.Press(10, 1, tea.MouseRight)
	m.Release()

	require.Equal(t, []string{"click 0", "long 2", "long 1", "click 1"}, f.events)
}

func TestModel_DropsStaleEvents(t *testing.T) {
	t.Parallel()

	f := newFixture(3)
	f.listen()
	m := New(f.adapter, WithSize(30, 5))

	m.Press(10, 2, tea.MouseLeft)
	f.adapter.RemoveAt(2)
	m.Release()
	require.Empty(t, f.events)
	require.Equal(t, 1, m.Selected())
}

func TestModel_GridHitTesting(t *testing.T) {
	t.Parallel()

	f := newFixture(7)
	f.listen()
	m := New(f.adapter, WithSize(30, 5), WithArrangement(adapter.Grid{Columns: 3}))

	m.Press(15, 1, tea.MouseLeft)
	m.Release()
	m.Press(21, 1, tea.MouseLeft)
	m.Release()
	// Row 2 only holds item 6.
	m.Press(15, 2, tea.MouseLeft)
	m.Release()

	require.Equal(t, []string{"click 4", "check 5"}, f.events)

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "item-0")
	require.Contains(t, lines[0], "item-2")
	require.Contains(t, lines[2], "item-6")
}

func TestModel_Keyboard(t *testing.T) {
	t.Parallel()

	f := newFixture(9)
	f.listen()
	m := New(f.adapter, WithSize(30, 5), WithArrangement(adapter.Grid{Columns: 3}))
	f.adapter.SetLastPage(true)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, 3, m.Selected())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	require.Equal(t, 4, m.Selected())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	require.Equal(t, 8, m.Selected())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, 8, m.Selected())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	require.Equal(t, 0, m.Selected())

	m.LongClickSelected()
	require.Equal(t, []string{"click 8", "long 0"}, f.events)
}

func TestModel_LoadMore(t *testing.T) {
	t.Parallel()

	f := newFixture(10)
	m := New(f.adapter, WithSize(30, 5), WithPrefetch(2))

	require.Nil(t, m.SetSelected(7))
	cmd := m.SetSelected(8)
	require.True(t, m.Loading())
	require.Contains(t, collect(cmd), tea.Msg(LoadMoreMsg{Page: 2}))

	require.Nil(t, m.SetSelected(9), "a request is already outstanding")

	f.adapter.AddData(items(2))
	f.adapter.SetPageNumber(2)
	f.adapter.SetLastPage(true)
	m.SetLoading(false)
	require.Nil(t, m.SetSelected(11))
}

func TestModel_LoadingFooter(t *testing.T) {
	t.Parallel()

	f := newFixture(2)
	m := New(f.adapter, WithSize(30, 5))
	require.NotNil(t, m.SetLoading(true))
	require.Nil(t, m.SetLoading(true))

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[2], "Loading more")

	m.SetLoading(false)
	require.Len(t, strings.Split(m.View(), "\n"), 2)
}

func TestModel_ObserverKeepsSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(5)
	m := New(f.adapter, WithSize(30, 5))
	m.SetSelected(3)

	f.adapter.InsertItem(0, "new")
	require.Equal(t, 4, m.Selected())
	f.adapter.RemoveAt(0)
	require.Equal(t, 3, m.Selected())
	f.adapter.RemoveAt(4)
	require.Equal(t, 3, m.Selected())
	f.adapter.SetData(items(2))
	require.Equal(t, 1, m.Selected())
	f.adapter.ClearData()
	require.Equal(t, -1, m.Selected())
	require.Empty(t, m.View())
}

func TestModel_ResetDropsLoadingFooter(t *testing.T) {
	t.Parallel()

	f := newFixture(5)
	m := New(f.adapter, WithSize(30, 5), WithPrefetch(2))
	require.NotNil(t, m.SetSelected(3))
	require.True(t, m.Loading())
	require.Contains(t, ansi.Strip(m.View()), "Loading more")

	f.adapter.SetData(items(2))
	require.False(t, m.Loading())
	require.NotContains(t, ansi.Strip(m.View()), "Loading more")

	require.NotNil(t, m.SetSelected(1))
	f.adapter.ClearData()
	require.False(t, m.Loading())
	require.Empty(t, m.View())
}

func TestModel_ItemChangedRebinds(t *testing.T) {
	t.Parallel()

	f := newFixture(3)
	m := New(f.adapter, WithSize(30, 5))
	require.Contains(t, ansi.Strip(m.View()), "item-1")

	f.adapter.SetItem(1, "renamed")
	view := ansi.Strip(m.View())
	require.Contains(t, view, "renamed")
	require.NotContains(t, view, "item-1")
	require.Equal(t, 3, f.created)
}

func TestModel_EmitFromListener(t *testing.T) {
	t.Parallel()

	type opened struct{ position int }

	f := newFixture(3)
	f.adapter.SetOnItemClick(func(r adapter.Renderer, _ adapter.View, position int) {
		Emit(r, util.CmdHandler(opened{position: position}))
	})
	m := New(f.adapter, WithSize(30, 5))

	m, _ = m.Update(tea.MouseClickMsg{X: 10, Y: 2, Button: tea.MouseLeft})
	m, cmd := m.Update(tea.MouseReleaseMsg{X: 10, Y: 2, Button: tea.MouseLeft})
	require.Equal(t, []tea.Msg{opened{position: 2}}, collect(cmd))
	require.Nil(t, m.Flush())
}

func TestModel_ResizeUpdatesHost(t *testing.T) {
	t.Parallel()

	f := newFixture(3)
	m := New(f.adapter)
	m.SetSize(80, 20)
	w, h := f.adapter.Host().Size()
	require.Equal(t, 80, w)
	require.Equal(t, 20, h)

	m.Close()
	require.False(t, f.adapter.Attached())
}
