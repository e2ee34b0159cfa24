// Package files is the file browser: a paged grid of the files under a
// directory with selection, fuzzy filtering, albums and previews.
package files

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/fsext"
	"github.com/yumosx/recycler/internal/pager"
	"github.com/yumosx/recycler/internal/tui/components/core"
	"github.com/yumosx/recycler/internal/tui/components/menu"
	"github.com/yumosx/recycler/internal/tui/components/preview"
	"github.com/yumosx/recycler/internal/tui/recycler"
	"github.com/yumosx/recycler/internal/tui/styles"
	"github.com/yumosx/recycler/internal/tui/util"
)

const (
	MinColumns = 1
	MaxColumns = 8

	albumsMenuID = "albums"
	headerHeight = 1
)

// ReloadMsg asks the browser to list its directory again, for example after
// the watcher saw Paths change.
type ReloadMsg struct {
	Paths []string
}

// ColumnsChangedMsg reports a new grid column count chosen by the user.
type ColumnsChangedMsg struct {
	Columns int
}

type albumsMsg struct {
	albums []Album
	err    error
}

type Options struct {
	Root      string
	PageSize  int
	Columns   int
	MaxSelect int
	LongPress time.Duration
	List      fsext.ListOptions
}

type Browser struct {
	root          string
	width, height int
	columns       int

	host    *recycler.Host
	adapter *SelectAdapter
	list    *recycler.Model
	files   *pager.Files
	loader  *pager.Loader[string]

	filter    Filter
	input     textinput.Model
	filtering bool

	albums  *menu.Model
	preview *preview.Model

	keyMap KeyMap
	copy   func(string) error
}

func New(opts Options) *Browser {
	t := styles.CurrentTheme()
	columns := util.Clamp(opts.Columns, MinColumns, MaxColumns)
	if opts.Columns <= 0 {
		columns = DefaultColumns
	}

	host := recycler.NewHost(0, 0)
	a := NewSelectAdapter(host, opts.Root, opts.MaxSelect, WithColumns(columns))
	files := pager.NewFiles(opts.Root, opts.List)

	ti := textinput.New()
	ti.Placeholder = "Filter files..."
	ti.Prompt = "/ "
	ti.SetVirtualCursor(false)
	ti.SetStyles(t.S().TextInput)

	b := &Browser{
		root:    opts.Root,
		columns: columns,
		host:    host,
		adapter: a,
		files:   files,
		loader:  pager.NewLoader[string](files, opts.PageSize),
		input:   ti,
		preview: preview.New(),
		keyMap:  DefaultKeyMap(),
		copy:    clipboard.WriteAll,
	}
	b.list = recycler.New(a, recycler.WithLongPress(opts.LongPress))
	return b
}

func (b *Browser) Init() tea.Cmd {
	return b.load()
}

// load requests the first page from the current source.
func (b *Browser) load() tea.Cmd {
	return tea.Batch(b.list.SetLoading(true), b.loader.Reload())
}

func (b *Browser) Adapter() *SelectAdapter { return b.adapter }

func (b *Browser) List() *recycler.Model { return b.list }

func (b *Browser) Filter() Filter { return b.filter }

func (b *Browser) Columns() int { return b.columns }

func (b *Browser) Filtering() bool { return b.filtering }

func (b *Browser) Preview() *preview.Model { return b.preview }

// Help returns the bindings for the help bar.
func (b *Browser) Help() help.KeyMap {
	lk := b.list.KeyMap()
	return core.NewSimpleHelp(
		[]key.Binding{lk.Click, lk.LongClick, b.keyMap.Toggle, b.keyMap.Filter, b.keyMap.Albums},
		[][]key.Binding{lk.KeyBindings(), b.keyMap.KeyBindings()},
	)
}

// Cursor returns the filter input cursor while filtering.
func (b *Browser) Cursor() *tea.Cursor {
	if !b.filtering {
		return nil
	}
	return b.input.Cursor()
}

func (b *Browser) SetSize(width, height int) tea.Cmd {
	b.width, b.height = width, height
	b.input.SetWidth(max(0, width-4))
	return b.layout()
}

// layout splits the area between the list and, when open, the preview.
func (b *Browser) layout() tea.Cmd {
	body := max(0, b.height-headerHeight)
	listWidth := b.width
	var cmd tea.Cmd
	if b.preview.IsOpen() {
		listWidth = b.width / 2
		cmd = b.preview.SetSize(b.width-listWidth, body)
	}
	b.list.SetSize(listWidth, body)
	return cmd
}

func (b *Browser) Update(msg tea.Msg) (*Browser, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return b, b.SetSize(msg.Width, msg.Height)
	case pager.PageMsg[string]:
		applied, err := b.loader.Apply(b.adapter, msg)
		if err != nil {
			b.list.SetLoading(b.loader.Pending())
			return b, util.ReportError(err)
		}
		if !applied {
			return b, nil
		}
		b.list.SetLoading(b.loader.Pending())
		// A short page may leave the selection close enough to the end to
		// need the next one right away.
		return b, b.list.SetSelected(b.list.Selected())
	case recycler.LoadMoreMsg:
		return b, b.loader.Load(msg.Page)
	case ReloadMsg:
		b.files.Reload()
		return b, tea.Batch(b.adapter.Prune(), b.load())
	case OpenMsg:
		cmd := b.preview.Open(msg.Path)
		// Opening the pane resizes it; a rendering at the old size is
		// dropped when it arrives.
		return b, tea.Batch(cmd, b.layout())
	case preview.LoadedMsg:
		var cmd tea.Cmd
		b.preview, cmd = b.preview.Update(msg)
		return b, cmd
	case albumsMsg:
		if msg.err != nil {
			return b, util.ReportError(msg.err)
		}
		items := make([]any, len(msg.albums))
		for i, a := range msg.albums {
			items[i] = a
		}
		b.albums = menu.New(albumsMenuID, "Albums", items, min(40, b.width), max(3, b.height-headerHeight))
		return b, nil
	case menu.SelectedMsg:
		if msg.ID != albumsMenuID {
			return b, nil
		}
		b.closeAlbums()
		if album, ok := msg.Item.(Album); ok {
			b.filter.Album = album.Dir
			return b, b.applyFilter()
		}
		return b, nil
	case menu.ClosedMsg:
		if msg.ID == albumsMenuID {
			b.closeAlbums()
		}
		return b, nil
	case tea.KeyPressMsg:
		return b, b.handleKey(msg)
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if b.albums != nil {
			var cmd tea.Cmd
			b.albums, cmd = b.albums.Update(tea.MouseClickMsg{X: mouse.X, Y: mouse.Y - headerHeight, Button: mouse.Button})
			return b, cmd
		}
		b.list.Press(mouse.X, mouse.Y-headerHeight, mouse.Button)
		return b, nil
	case tea.MouseReleaseMsg:
		if b.albums != nil {
			var cmd tea.Cmd
			b.albums, cmd = b.albums.Update(msg)
			return b, cmd
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b *Browser) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if b.albums != nil {
		var cmd tea.Cmd
		b.albums, cmd = b.albums.Update(msg)
		return cmd
	}
	if b.filtering {
		return b.handleFilterKey(msg)
	}
	switch {
	case key.Matches(msg, b.keyMap.Filter):
		b.filtering = true
		return b.input.Focus()
	case key.Matches(msg, b.keyMap.Albums):
		return b.loadAlbums()
	case key.Matches(msg, b.keyMap.Toggle):
		return b.adapter.Toggle(b.list.Selected())
	case key.Matches(msg, b.keyMap.Clear):
		return b.adapter.ClearSelection()
	case key.Matches(msg, b.keyMap.Copy):
		return b.copySelected()
	case key.Matches(msg, b.keyMap.MoreColumns):
		return b.SetColumns(b.columns + 1)
	case key.Matches(msg, b.keyMap.FewerColumns):
		return b.SetColumns(b.columns - 1)
	case key.Matches(msg, b.keyMap.Reload):
		return util.CmdHandler(ReloadMsg{})
	case key.Matches(msg, b.keyMap.Close):
		if b.preview.IsOpen() {
			b.preview.Close()
			return b.layout()
		}
		if !b.filter.Empty() {
			b.filter = Filter{}
			b.input.SetValue("")
			return b.applyFilter()
		}
		return nil
	}
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return cmd
}

func (b *Browser) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		b.filtering = false
		b.input.Blur()
		return nil
	case "esc":
		b.filtering = false
		b.input.Blur()
		b.input.SetValue("")
		if b.filter.Query == "" {
			return nil
		}
		b.filter.Query = ""
		return b.applyFilter()
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if q := strings.TrimSpace(b.input.Value()); q != b.filter.Query {
		b.filter.Query = q
		return tea.Batch(cmd, b.applyFilter())
	}
	return cmd
}

// applyFilter points the loader at the listing narrowed by the current
// filter and loads its first page.
func (b *Browser) applyFilter() tea.Cmd {
	f, root := b.filter, b.root
	b.adapter.SetTag(f)
	if f.Empty() {
		b.loader.SetSource(b.files)
	} else {
		b.loader.SetSource(b.files.Filtered(func(paths []string) []string {
			return f.Apply(root, paths)
		}))
	}
	return b.load()
}

func (b *Browser) loadAlbums() tea.Cmd {
	files, root := b.files, b.root
	return func() tea.Msg {
		paths, err := files.All(context.Background())
		if err != nil {
			return albumsMsg{err: err}
		}
		return albumsMsg{albums: Albums(root, paths)}
	}
}

func (b *Browser) closeAlbums() {
	if b.albums != nil {
		b.albums.Close()
		b.albums = nil
	}
}

// SetColumns changes the grid column count.
func (b *Browser) SetColumns(n int) tea.Cmd {
	n = util.Clamp(n, MinColumns, MaxColumns)
	if n == b.columns {
		return nil
	}
	b.columns = n
	b.list.SetArrangement(adapter.Grid{Columns: n})
	return util.CmdHandler(ColumnsChangedMsg{Columns: n})
}

func (b *Browser) copySelected() tea.Cmd {
	selected := b.adapter.Selected()
	if len(selected) == 0 {
		if path, ok := b.adapter.Item(b.list.Selected()); ok {
			selected = []string{path}
		}
	}
	if len(selected) == 0 {
		return nil
	}
	if err := b.copy(strings.Join(selected, "\n")); err != nil {
		return util.ReportError(fmt.Errorf("copy to clipboard: %w", err))
	}
	return util.ReportInfo(fmt.Sprintf("Copied %d path(s)", len(selected)))
}

func (b *Browser) header() string {
	t := styles.CurrentTheme()
	if b.filtering {
		return b.input.View()
	}
	info := fmt.Sprintf("%d/%d selected", len(b.adapter.Selected()), b.adapter.MaxSelect())
	title := fsext.PrettyPath(b.root)
	if !b.filter.Empty() {
		title += " " + t.S().Muted.Render("· "+b.filter.String())
	}
	return core.Header(title, info, b.width)
}

func (b *Browser) View() string {
	body := b.list.View()
	switch {
	case b.albums != nil:
		body = b.albums.View()
	case b.preview.IsOpen():
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, b.preview.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, b.header(), body)
}

// Close detaches the adapter and cancels outstanding loads.
func (b *Browser) Close() {
	b.loader.Cancel()
	b.closeAlbums()
	b.list.Close()
}
