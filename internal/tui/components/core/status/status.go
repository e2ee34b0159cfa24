package status

import (
	"github.com/charmbracelet/bubbles/v2/help"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/yumosx/recycler/internal/tui/styles"
	"github.com/yumosx/recycler/internal/tui/util"
)

// StatusCmp is the bottom bar. It shows the key help of the focused
// component, replaced by info messages until they expire.
type StatusCmp interface {
	Update(tea.Msg) (StatusCmp, tea.Cmd)
	View() string
	SetWidth(width int)
	SetKeyMap(keyMap help.KeyMap)
	Info() util.InfoMsg
}

type statusCmp struct {
	info   util.InfoMsg
	width  int
	keyMap help.KeyMap
	help   help.Model
}

func (m *statusCmp) Update(msg tea.Msg) (StatusCmp, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		return m, nil
	case util.InfoMsg:
		m.info = msg
		return m, msg.ClearAfter()
	case util.ClearStatusMsg:
		m.info = util.InfoMsg{}
	}
	return m, nil
}

func (m *statusCmp) SetWidth(width int) {
	m.width = width
}

func (m *statusCmp) SetKeyMap(keyMap help.KeyMap) {
	m.keyMap = keyMap
}

func (m *statusCmp) Info() util.InfoMsg {
	return m.info
}

func (m *statusCmp) View() string {
	t := styles.CurrentTheme()
	if m.info.Msg == "" {
		if m.keyMap == nil {
			return ""
		}
		return t.S().Base.Padding(0, 1).Render(m.help.View(m.keyMap))
	}
	style := t.S().Base.Foreground(t.FgSelected).Padding(0, 1).Width(m.width)
	switch m.info.Type {
	case util.InfoTypeError:
		style = style.Background(t.Error)
	case util.InfoTypeWarn:
		style = style.Background(t.Warning)
	default:
		style = style.Background(t.Info)
	}
	return style.Render(ansi.Truncate(m.info.Msg, max(0, m.width-2), "…"))
}

func NewStatusCmp() StatusCmp {
	t := styles.CurrentTheme()
	help := help.New()
	help.Styles = t.S().Help
	return &statusCmp{
		help: help,
	}
}
