// Package menu is a popup list of choices.
package menu

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/tui/recycler"
	"github.com/yumosx/recycler/internal/tui/styles"
	"github.com/yumosx/recycler/internal/tui/util"
	"github.com/yumosx/recycler/internal/tui/views"
)

const LabelView adapter.ViewID = "label"

// SelectedMsg is sent when an item of the menu is clicked.
type SelectedMsg struct {
	ID       string
	Position int
	Item     any
}

// ClosedMsg is sent when the menu is dismissed without a choice.
type ClosedMsg struct {
	ID string
}

// MenuAdapter shows any items using their default formatting.
type MenuAdapter struct {
	*adapter.Adapter[any]
}

func NewMenuAdapter(host adapter.Host) *MenuAdapter {
	a := &MenuAdapter{}
	a.Adapter = adapter.New[any](host, func(adapter.Host, int) *adapter.Holder {
		label := views.NewText(LabelView)
		return adapter.NewHolder(label, adapter.BinderFunc(func(position int) {
			item, _ := a.Item(position)
			label.SetText(fmt.Sprint(item))
		}))
	})
	return a
}

// Model is a bordered menu. It owns its list and reports the choice with a
// SelectedMsg.
type Model struct {
	id      string
	title   string
	adapter *MenuAdapter
	list    *recycler.Model
	width   int
	height  int
	close   key.Binding
}

// New creates a menu identified by id. The id is carried by the messages
// the menu sends so a parent can tell its menus apart.
func New(id, title string, items []any, width, height int) *Model {
	host := recycler.NewHost(width-2, height-2)
	a := NewMenuAdapter(host)
	a.SetData(items)
	a.SetLastPage(true)
	a.SetOnItemClick(func(r adapter.Renderer, _ adapter.View, position int) {
		item, _ := a.Item(position)
		recycler.Emit(r, util.CmdHandler(SelectedMsg{ID: id, Position: position, Item: item}))
	})

	t := styles.CurrentTheme()
	header := views.NewText("title")
	header.SetText(title)
	header.SetStyle(t.S().Title)

	m := &Model{
		id:      id,
		title:   title,
		adapter: a,
		width:   width,
		height:  height,
		close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "close"),
		),
	}
	m.list = recycler.New(a, recycler.WithSize(width-2, height-2), recycler.WithHeaders(header))
	return m
}

func (m *Model) ID() string { return m.id }

func (m *Model) Adapter() *MenuAdapter { return m.adapter }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if key.Matches(msg, m.close) {
			return m, util.CmdHandler(ClosedMsg{ID: m.id})
		}
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		// Translate to list coordinates inside the border.
		m.list.Press(mouse.X-1, mouse.Y-1, mouse.Button)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Selected returns the highlighted item position.
func (m *Model) Selected() int {
	return m.list.Selected()
}

func (m *Model) Size() (int, int) {
	return m.width, m.height
}

func (m *Model) View() string {
	t := styles.CurrentTheme()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Render(m.list.View())
}

// Close detaches the menu's adapter.
func (m *Model) Close() {
	m.list.Close()
}
