package tui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/yumosx/recycler/internal/app"
	"github.com/yumosx/recycler/internal/config"
	"github.com/yumosx/recycler/internal/tui/components/core/status"
	"github.com/yumosx/recycler/internal/tui/components/files"
	"github.com/yumosx/recycler/internal/tui/styles"
	"github.com/yumosx/recycler/internal/tui/util"
)

var (
	lastMouseEvent time.Time
	mouseMu        sync.Mutex
)

// MouseEventFilter throttles wheel and motion events, which terminals send
// in bursts.
func MouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		mouseMu.Lock()
		defer mouseMu.Unlock()
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// configSavedMsg reports the outcome of persisting a UI preference.
type configSavedMsg struct {
	field string
	err   error
}

// appModel is the top level model: the file browser above a status bar.
type appModel struct {
	width, height int
	keyMap        KeyMap
	compact       bool

	browser *files.Browser
	status  status.StatusCmp

	app *app.App
}

func (a *appModel) Init() tea.Cmd {
	return a.browser.Init()
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.handleWindowResize(msg.Width, msg.Height)

	// Status Messages
	case util.InfoMsg, util.ClearStatusMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		return a, cmd

	case files.ColumnsChangedMsg:
		return a, a.saveField(config.FieldGridColumns, msg.Columns)
	case configSavedMsg:
		if msg.err != nil {
			return a, util.ReportError(msg.err)
		}
		slog.Debug("Saved preference", "field", msg.field)
		return a, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keyMap.Quit):
			a.browser.Close()
			return a, tea.Quit
		case key.Matches(msg, a.keyMap.Compact):
			a.compact = !a.compact
			return a, tea.Batch(
				a.handleWindowResize(a.width, a.height),
				a.saveField(config.FieldCompactMode, a.compact),
			)
		}
	}

	var cmd tea.Cmd
	a.browser, cmd = a.browser.Update(msg)
	return a, cmd
}

// saveField persists a preference without blocking the UI.
func (a *appModel) saveField(field string, value any) tea.Cmd {
	cfg := a.app.Config()
	return func() tea.Msg {
		return configSavedMsg{field: field, err: cfg.SetField(field, value)}
	}
}

func (a *appModel) handleWindowResize(width, height int) tea.Cmd {
	a.width, a.height = width, height
	a.status.SetWidth(width)
	if !a.compact {
		// Make space for the status bar
		height--
	}
	return a.browser.SetSize(width, max(0, height))
}

func (a *appModel) View() tea.View {
	components := []string{a.browser.View()}
	if !a.compact {
		a.status.SetKeyMap(a.browser.Help())
		components = append(components, a.status.View())
	}

	t := styles.CurrentTheme()
	view := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, components...))
	view.SetBackgroundColor(t.BgBase)
	view.SetCursor(a.browser.Cursor())
	return view
}

// New creates the TUI for the directory the app browses.
func New(app *app.App) tea.Model {
	opts := app.Config().Options
	if opts.TUI.Theme != "" {
		if err := styles.DefaultManager().SetTheme(opts.TUI.Theme); err != nil {
			slog.Warn("Falling back to the default theme", "error", err)
		}
	}
	return &appModel{
		app:     app,
		keyMap:  DefaultKeyMap(),
		compact: opts.TUI.CompactMode,
		status:  status.NewStatusCmp(),
		browser: files.New(files.Options{
			Root:      app.Root(),
			PageSize:  opts.PageSize,
			Columns:   opts.GridColumns,
			MaxSelect: opts.MaxSelect,
			LongPress: app.Config().LongPress(),
			List:      app.Config().ListOptions(),
		}),
	}
}
