// Package statuslist shows status entries, one per row.
package statuslist

import (
	"image/color"
	"strings"

	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/tui/components/core"
	"github.com/yumosx/recycler/internal/tui/styles"
	"github.com/yumosx/recycler/internal/tui/util"
	"github.com/yumosx/recycler/internal/tui/views"
)

const TextView adapter.ViewID = "text"

type Entry struct {
	Type        util.InfoType
	Title       string
	Description string
}

type StatusAdapter struct {
	*adapter.Adapter[Entry]
}

func New(host adapter.Host) *StatusAdapter {
	s := &StatusAdapter{}
	s.Adapter = adapter.New[Entry](host, s.createHolder)
	return s
}

func (s *StatusAdapter) createHolder(host adapter.Host, _ int) *adapter.Holder {
	text := views.NewText(TextView)
	return adapter.NewHolder(text, adapter.BinderFunc(func(position int) {
		entry, ok := s.Item(position)
		if !ok {
			return
		}
		width, _ := host.Size()
		text.SetText(Line(entry, width))
	}))
}

// Line renders entry as a single status line.
func Line(entry Entry, width int) string {
	t := styles.CurrentTheme()
	var icon string
	var iconColor color.Color
	switch entry.Type {
	case util.InfoTypeError:
		icon, iconColor = styles.ErrorIcon, t.Error
	case util.InfoTypeWarn:
		icon, iconColor = styles.LoadingIcon, t.Warning
	default:
		icon, iconColor = styles.CheckIcon, t.Success
	}
	return core.Status(core.StatusOpts{
		Icon:        icon,
		IconColor:   iconColor,
		Title:       entry.Title,
		Description: entry.Description,
	}, width)
}

// printer is a renderer that lays every item out once, top to bottom.
type printer struct {
	arrangement adapter.Arrangement
}

func (p *printer) DataSetChanged()                      {}
func (p *printer) ItemRangeInserted(int, int)           {}
func (p *printer) ItemChanged(int)                      {}
func (p *printer) ItemRemoved(int)                      {}
func (p *printer) Arrangement() adapter.Arrangement     { return p.arrangement }
func (p *printer) SetArrangement(a adapter.Arrangement) { p.arrangement = a }

// Render draws every entry of s with a single recycled holder. It is used
// where no interactive list runs, like plain command output.
func Render(s adapter.Source, width int) string {
	p := &printer{}
	s.Attach(p)
	defer s.Detach()

	count := s.ItemCount()
	if count == 0 {
		return ""
	}
	lines := make([]string, 0, count)
	holders := map[int]*adapter.Holder{}
	for position := range count {
		kind := s.ItemKind(position)
		h, ok := holders[kind]
		if !ok {
			h = s.CreateHolder(s.Host(), kind)
			holders[kind] = h
		}
		h.SetLayoutPosition(position)
		s.Bind(h, position)
		lines = append(lines, views.Render(h.ItemView(), width, false))
	}
	return strings.Join(lines, "\n")
}
