package files

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/ansiext"
	"github.com/yumosx/recycler/internal/fsext"
	"github.com/yumosx/recycler/internal/tui/recycler"
	"github.com/yumosx/recycler/internal/tui/util"
	"github.com/yumosx/recycler/internal/tui/views"
)

const (
	RootView  adapter.ViewID = "root"
	CheckView adapter.ViewID = "check"
	NameView  adapter.ViewID = "name"
)

const DefaultColumns = 3

// OpenMsg asks for the file at Path to be previewed.
type OpenMsg struct {
	Position int
	Path     string
}

// SelectionChangedMsg reports the selected paths after a change.
type SelectionChangedMsg struct {
	Selected []string
}

// SelectAdapter shows file paths in a grid with a check box per cell. Up to
// maxSelect files can be checked; with a limit of one, checking another file
// moves the check.
type SelectAdapter struct {
	*adapter.Adapter[string]

	root      string
	columns   int
	maxSelect int
	selected  []string
	exists    func(path string) bool
}

type SelectOption func(*SelectAdapter)

// WithColumns sets the number of grid columns used when the list has no
// arrangement of its own.
func WithColumns(n int) SelectOption {
	return func(s *SelectAdapter) {
		s.columns = max(1, n)
	}
}

// WithExists replaces the check run before a file is toggled.
func WithExists(fn func(path string) bool) SelectOption {
	return func(s *SelectAdapter) {
		s.exists = fn
	}
}

// NewSelectAdapter creates an adapter for the files under root. Names are
// shown relative to root. Item clicks ask for a preview, check box clicks
// toggle the file and long clicks toggle it while the limit allows.
func NewSelectAdapter(host adapter.Host, root string, maxSelect int, opts ...SelectOption) *SelectAdapter {
	s := &SelectAdapter{
		root:      root,
		columns:   DefaultColumns,
		maxSelect: max(1, maxSelect),
		exists:    fsext.IsFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Adapter = adapter.New(host, s.createHolder,
		adapter.WithDefaultArrangement[string](func(adapter.Host) adapter.Arrangement {
			return adapter.Grid{Columns: s.columns}
		}),
	)

	s.SetOnItemClick(func(r adapter.Renderer, _ adapter.View, position int) {
		path, ok := s.Item(position)
		if !ok {
			return
		}
		recycler.Emit(r, util.CmdHandler(OpenMsg{Position: position, Path: path}))
	})
	s.SetOnChildClick(CheckView, func(r adapter.Renderer, _ adapter.View, position int) {
		recycler.Emit(r, s.Toggle(position))
	})
	s.SetOnItemLongClick(func(r adapter.Renderer, _ adapter.View, position int) bool {
		if len(s.selected) >= s.maxSelect {
			return false
		}
		recycler.Emit(r, s.Toggle(position))
		return true
	})
	return s
}

func (s *SelectAdapter) createHolder(adapter.Host, int) *adapter.Holder {
	check := views.NewCheckbox(CheckView)
	name := views.NewText(NameView)
	row := views.NewRow(RootView, check, name)
	return adapter.NewHolder(row, adapter.BinderFunc(func(position int) {
		path, ok := s.Item(position)
		if !ok {
			return
		}
		check.SetChecked(s.IsSelected(path))
		name.SetText(ansiext.Escape(fsext.RelOrAbs(s.root, path)))
	}))
}

func (s *SelectAdapter) Root() string { return s.root }

func (s *SelectAdapter) Columns() int { return s.columns }

func (s *SelectAdapter) MaxSelect() int { return s.maxSelect }

// Selected returns the checked paths in the order they were checked.
func (s *SelectAdapter) Selected() []string {
	return slices.Clone(s.selected)
}

func (s *SelectAdapter) IsSelected(path string) bool {
	return slices.Contains(s.selected, path)
}

// ClearSelection unchecks every file.
func (s *SelectAdapter) ClearSelection() tea.Cmd {
	if len(s.selected) == 0 {
		return nil
	}
	old := s.selected
	s.selected = nil
	for _, path := range old {
		s.notifyPath(path)
	}
	return s.changed()
}

// Toggle checks or unchecks the file at position. A file that no longer
// exists is removed from the list instead.
func (s *SelectAdapter) Toggle(position int) tea.Cmd {
	path, ok := s.Item(position)
	if !ok {
		return nil
	}
	if !s.exists(path) {
		s.RemoveAt(position)
		if i := slices.Index(s.selected, path); i >= 0 {
			s.selected = slices.Delete(s.selected, i, i+1)
		}
		return util.ReportWarn(fmt.Sprintf("%s no longer exists", fsext.PrettyPath(path)))
	}

	var cmd tea.Cmd
	switch i := slices.Index(s.selected, path); {
	case i >= 0:
		s.selected = slices.Delete(s.selected, i, i+1)
		cmd = s.changed()
	case s.maxSelect == 1 && len(s.selected) == 1:
		old := s.selected[0]
		s.selected[0] = path
		s.notifyPath(old)
		cmd = s.changed()
	case len(s.selected) < s.maxSelect:
		s.selected = append(s.selected, path)
		cmd = s.changed()
	default:
		cmd = util.ReportWarn(fmt.Sprintf("You can select up to %d files", s.maxSelect))
	}
	s.NotifyItemChanged(position)
	return cmd
}

// Prune unchecks files that no longer exist.
func (s *SelectAdapter) Prune() tea.Cmd {
	n := len(s.selected)
	s.selected = slices.DeleteFunc(s.selected, func(p string) bool {
		return !s.exists(p)
	})
	if len(s.selected) == n {
		return nil
	}
	return s.changed()
}

func (s *SelectAdapter) notifyPath(path string) {
	if i := slices.Index(s.Data(), path); i >= 0 {
		s.NotifyItemChanged(i)
	}
}

func (s *SelectAdapter) changed() tea.Cmd {
	return util.CmdHandler(SelectionChangedMsg{Selected: s.Selected()})
}
