// Package recycler is a virtualized list for bubbletea driven by an
// [adapter.Source].
//
// Only visible item slots hold bound holders. Holders that scroll out of view,
// or whose slot is invalidated by a change notification, go back to a pool
// per slot kind and are rebound for other positions. Slots are numbered
// headers first, then items, then footers, so an item at position p sits in
// slot len(headers)+p.
package recycler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/yumosx/recycler/internal/adapter"
	"github.com/yumosx/recycler/internal/tui/styles"
	"github.com/yumosx/recycler/internal/tui/util"
	"github.com/yumosx/recycler/internal/tui/views"
)

const (
	DefaultLongPress = 500 * time.Millisecond
	DefaultPrefetch  = 5
)

// LoadMoreMsg asks for the next page of the list's adapter.
type LoadMoreMsg struct {
	Page int
}

// Host is a resizable [adapter.Host] shared by a list and its adapter.
type Host struct {
	width, height int
}

func NewHost(width, height int) *Host {
	return &Host{width: width, height: height}
}

func (h *Host) Size() (int, int) { return h.width, h.height }

func (h *Host) SetSize(width, height int) {
	h.width, h.height = width, height
}

type press struct {
	holder *adapter.Holder
	path   []adapter.View
	button tea.MouseButton
	at     time.Time
}

type Model struct {
	width, height int

	source      adapter.Source
	arrangement adapter.Arrangement
	headers     []views.Element
	footers     []views.Element

	keyMap    KeyMap
	longPress time.Duration
	prefetch  int

	// pools holds recycled holders by slot kind.
	pools map[int][]*adapter.Holder
	// bound holds the holders of visible items by adapter position.
	bound map[int]*adapter.Holder

	selected  int
	rowOffset int
	pressed   *press

	loading bool
	spinner spinner.Model

	pending []tea.Cmd
	now     func() time.Time
}

type Option func(*Model)

// WithArrangement sets an explicit arrangement. Without it the adapter's
// default arrangement is used.
func WithArrangement(a adapter.Arrangement) Option {
	return func(m *Model) {
		m.arrangement = a
	}
}

// WithHeaders adds full width rows above the items.
func WithHeaders(headers ...views.Element) Option {
	return func(m *Model) {
		m.headers = append(m.headers, headers...)
	}
}

// WithFooters adds full width rows below the items.
func WithFooters(footers ...views.Element) Option {
	return func(m *Model) {
		m.footers = append(m.footers, footers...)
	}
}

// WithLongPress sets how long a press lasts before its release counts as a
// long click.
func WithLongPress(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.longPress = d
		}
	}
}

// WithPrefetch sets how close to the end the selection gets before the next
// page is requested.
func WithPrefetch(n int) Option {
	return func(m *Model) {
		m.prefetch = max(0, n)
	}
}

func WithKeyMap(k KeyMap) Option {
	return func(m *Model) {
		m.keyMap = k
	}
}

// WithSize sets the initial size of the list.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// New creates a list and attaches source to it.
func New(source adapter.Source, opts ...Option) *Model {
	t := styles.CurrentTheme()
	m := &Model{
		source:    source,
		keyMap:    DefaultKeyMap(),
		longPress: DefaultLongPress,
		prefetch:  DefaultPrefetch,
		pools:     make(map[int][]*adapter.Holder),
		bound:     make(map[int]*adapter.Holder),
		selected:  -1,
		now:       time.Now,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(t.S().Base.Foreground(t.Secondary)),
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	source.Attach(m)
	m.clampSelection()
	return m
}

// Emit queues cmd to be returned from the next Update. Listeners use it to
// send messages from inside a dispatch.
func (m *Model) Emit(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// Emit queues cmd on r when r is a list.
func Emit(r adapter.Renderer, cmd tea.Cmd) {
	if m, ok := r.(*Model); ok {
		m.Emit(cmd)
	}
}

// Flush returns and clears the commands queued with Emit.
func (m *Model) Flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		m.Press(mouse.X, mouse.Y, mouse.Button)
	case tea.MouseReleaseMsg:
		m.Release()
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.ScrollBy(-1)
		case tea.MouseWheelDown:
			m.ScrollBy(1)
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, m.Flush())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	span := m.span()
	switch {
	case key.Matches(msg, m.keyMap.Up):
		return m.SetSelected(m.selected - span)
	case key.Matches(msg, m.keyMap.Down):
		return m.SetSelected(m.selected + span)
	case key.Matches(msg, m.keyMap.Left):
		return m.SetSelected(m.selected - 1)
	case key.Matches(msg, m.keyMap.Right):
		return m.SetSelected(m.selected + 1)
	case key.Matches(msg, m.keyMap.PageUp):
		return m.SetSelected(m.selected - max(1, m.height)*span)
	case key.Matches(msg, m.keyMap.PageDown):
		return m.SetSelected(m.selected + max(1, m.height)*span)
	case key.Matches(msg, m.keyMap.Home):
		return m.SetSelected(0)
	case key.Matches(msg, m.keyMap.End):
		return m.SetSelected(m.source.ItemCount() - 1)
	case key.Matches(msg, m.keyMap.Click):
		m.ClickSelected()
	case key.Matches(msg, m.keyMap.LongClick):
		m.LongClickSelected()
	}
	return nil
}

func (m *Model) KeyMap() KeyMap { return m.keyMap }

func (m *Model) Source() adapter.Source { return m.source }

func (m *Model) Size() (int, int) { return m.width, m.height }

func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	if h, ok := m.source.Host().(interface{ SetSize(int, int) }); ok {
		h.SetSize(width, height)
	}
	m.ensureVisible()
	return nil
}

// Selected returns the selected adapter position, or -1.
func (m *Model) Selected() int { return m.selected }

// SetSelected selects position, clamped to the items, and scrolls it into
// view. Reaching the last items of a page that is not the last one requests
// the next page.
func (m *Model) SetSelected(position int) tea.Cmd {
	count := m.source.ItemCount()
	if count == 0 {
		m.selected = -1
		return nil
	}
	m.selected = util.Clamp(position, 0, count-1)
	m.ensureVisible()
	return m.maybeLoadMore()
}

// Loading reports whether a page request is outstanding.
func (m *Model) Loading() bool { return m.loading }

// SetLoading marks a page request as outstanding or finished. The spinner
// footer is shown while loading.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	was := m.loading
	m.loading = loading
	m.clampOffset()
	if loading && !was {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) maybeLoadMore() tea.Cmd {
	count := m.source.ItemCount()
	if m.loading || m.source.IsLastPage() || count == 0 || m.selected < count-m.prefetch {
		return nil
	}
	page := m.source.PageNumber() + 1
	slog.Debug("Requesting next page", "page", page, "count", count)
	return tea.Batch(
		m.SetLoading(true),
		util.CmdHandler(LoadMoreMsg{Page: page}),
	)
}

// Holder returns the holder bound to position, laying the list out first.
// It returns nil for positions that are not visible.
func (m *Model) Holder(position int) *adapter.Holder {
	m.layout()
	return m.bound[position]
}

// ScrollBy moves the viewport by rows without changing the selection.
func (m *Model) ScrollBy(rows int) {
	m.rowOffset += rows
	m.clampOffset()
}

// Close detaches the adapter from the list.
func (m *Model) Close() {
	m.source.Detach()
}

// Arrangement implements adapter.Renderer.
func (m *Model) Arrangement() adapter.Arrangement {
	return m.arrangement
}

// SetArrangement implements adapter.Renderer.
func (m *Model) SetArrangement(a adapter.Arrangement) {
	m.arrangement = a
	m.recycleFrom(0)
	m.ensureVisible()
}

// DataSetChanged implements adapter.Observer. A reset makes any page request
// for the old sequence stale, so the loading footer is dropped with it.
func (m *Model) DataSetChanged() {
	m.loading = false
	m.recycleFrom(0)
	m.clampSelection()
}

// ItemRangeInserted implements adapter.Observer.
func (m *Model) ItemRangeInserted(start, count int) {
	m.recycleFrom(start)
	if m.selected >= start {
		m.selected += count
	}
	m.clampSelection()
}

// ItemChanged implements adapter.Observer.
func (m *Model) ItemChanged(position int) {
	m.recycle(position)
}

// ItemRemoved implements adapter.Observer.
func (m *Model) ItemRemoved(position int) {
	m.recycleFrom(position)
	if m.selected > position {
		m.selected--
	}
	m.clampSelection()
}

func (m *Model) clampSelection() {
	count := m.source.ItemCount()
	switch {
	case count == 0:
		m.selected = -1
	case m.selected < 0:
		m.selected = 0
	case m.selected >= count:
		m.selected = count - 1
	}
	m.clampOffset()
}

func (m *Model) span() int {
	if m.arrangement == nil {
		return 1
	}
	return max(1, m.arrangement.Span())
}

func (m *Model) dataRows() int {
	span := m.span()
	return (m.source.ItemCount() + span - 1) / span
}

func (m *Model) totalRows() int {
	rows := len(m.headers) + m.dataRows() + len(m.footers)
	if m.loading {
		rows++
	}
	return rows
}

func (m *Model) clampOffset() {
	m.rowOffset = util.Clamp(m.rowOffset, 0, max(0, m.totalRows()-m.height))
}

func (m *Model) ensureVisible() {
	if m.selected >= 0 && m.height > 0 {
		row := m.selected / m.span()
		if row == 0 {
			// Keep the headers in view at the top of the list.
			m.rowOffset = 0
		}
		row += len(m.headers)
		if row < m.rowOffset {
			m.rowOffset = row
		}
		if row >= m.rowOffset+m.height {
			m.rowOffset = row - m.height + 1
		}
	}
	m.clampOffset()
}

// visibleRange returns the adapter positions [first, last) in view.
func (m *Model) visibleRange() (int, int) {
	count := m.source.ItemCount()
	span := m.span()
	top := max(m.rowOffset, len(m.headers))
	bottom := min(m.rowOffset+m.height, len(m.headers)+m.dataRows())
	if bottom <= top {
		return 0, 0
	}
	first := (top - len(m.headers)) * span
	last := min(count, (bottom-len(m.headers))*span)
	return first, last
}

func (m *Model) recycle(position int) {
	h, ok := m.bound[position]
	if !ok {
		return
	}
	delete(m.bound, position)
	h.SetLayoutPosition(-1)
	m.pools[h.Kind()] = append(m.pools[h.Kind()], h)
}

func (m *Model) recycleFrom(start int) {
	for position := range m.bound {
		if position >= start {
			m.recycle(position)
		}
	}
}

func (m *Model) obtain(kind int) *adapter.Holder {
	pool := m.pools[kind]
	if n := len(pool); n > 0 {
		h := pool[n-1]
		m.pools[kind] = pool[:n-1]
		return h
	}
	h := m.source.CreateHolder(m.source.Host(), kind)
	slog.Debug("Created list holder", "holder", h.ID(), "kind", kind)
	return h
}

// layout binds a holder to every visible item, reusing pooled holders.
func (m *Model) layout() {
	first, last := m.visibleRange()
	for position := range m.bound {
		if position < first || position >= last {
			m.recycle(position)
		}
	}
	for position := first; position < last; position++ {
		kind := m.source.ItemKind(position)
		if h, ok := m.bound[position]; ok {
			if h.Kind() == kind {
				continue
			}
			m.recycle(position)
		}
		h := m.obtain(kind)
		h.SetLayoutPosition(len(m.headers) + position)
		m.source.Bind(h, position)
		m.bound[position] = h
	}
}

// column returns the start and width of column c.
func (m *Model) column(c int) (int, int) {
	span := m.span()
	base, extra := m.width/span, m.width%span
	start := c*base + min(c, extra)
	width := base
	if c < extra {
		width++
	}
	return start, width
}

// Press records a pointer press at x, y relative to the list and selects the
// item underneath.
func (m *Model) Press(x, y int, button tea.MouseButton) {
	m.pressed = nil
	position, ok := m.itemAt(x, y)
	if !ok {
		return
	}
	h := m.bound[position]
	if h == nil {
		return
	}
	span := m.span()
	start, width := m.column(position % span)
	m.selected = position
	m.pressed = &press{
		holder: h,
		path:   views.Path(h.ItemView(), x-start, width),
		button: button,
		at:     m.now(),
	}
}

// Release completes the pending press. Presses held for at least the long
// press duration, and right button presses, are long clicks.
func (m *Model) Release() {
	p := m.pressed
	m.pressed = nil
	if p == nil {
		return
	}
	long := p.button == tea.MouseRight || m.now().Sub(p.at) >= m.longPress
	m.dispatch(p.holder, p.path, long)
}

func (m *Model) itemAt(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, false
	}
	m.layout()
	row := m.rowOffset + y - len(m.headers)
	if row < 0 || row >= m.dataRows() {
		return 0, false
	}
	span := m.span()
	for c := range span {
		start, width := m.column(c)
		if x >= start && x < start+width {
			position := row*span + c
			return position, position < m.source.ItemCount()
		}
	}
	return 0, false
}

// ClickSelected clicks the root view of the selected item.
func (m *Model) ClickSelected() {
	if h := m.Holder(m.selected); h != nil {
		m.dispatch(h, []adapter.View{h.ItemView()}, false)
	}
}

// LongClickSelected long clicks the root view of the selected item.
func (m *Model) LongClickSelected() {
	if h := m.Holder(m.selected); h != nil {
		m.dispatch(h, []adapter.View{h.ItemView()}, true)
	}
}

// dispatch delivers an event to the adapter. A long click nobody handles is
// delivered as a click.
func (m *Model) dispatch(h *adapter.Holder, path []adapter.View, long bool) {
	count := m.source.ItemCount()
	if position := h.Position(); position < 0 || position >= count {
		slog.Debug("Dropping stale list event", "holder", h.ID(), "position", position, "count", count)
		return
	}
	if long {
		if v, ok := h.LongClickTarget(path); ok && m.source.LongClick(h, v) {
			return
		}
	}
	if v, ok := h.ClickTarget(path); ok {
		m.source.Click(h, v)
	}
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	m.layout()

	t := styles.CurrentTheme()
	count := m.source.ItemCount()
	span := m.span()
	dataRows := m.dataRows()
	headers := len(m.headers)

	lines := make([]string, 0, m.height)
	for row := m.rowOffset; row < m.totalRows() && len(lines) < m.height; row++ {
		switch {
		case row < headers:
			lines = append(lines, m.headers[row].Render(m.width, false))
		case row < headers+dataRows:
			var b strings.Builder
			for c := range span {
				position := (row-headers)*span + c
				_, width := m.column(c)
				var v adapter.View
				if h := m.bound[position]; h != nil && position < count {
					v = h.ItemView()
				}
				b.WriteString(views.Render(v, width, position == m.selected))
			}
			lines = append(lines, b.String())
		case row < headers+dataRows+len(m.footers):
			lines = append(lines, m.footers[row-headers-dataRows].Render(m.width, false))
		default:
			status := m.spinner.View() + " " + t.S().Muted.Render("Loading more…")
			lines = append(lines, t.S().Base.Width(m.width).MaxWidth(m.width).Render(status))
		}
	}
	return strings.Join(lines, "\n")
}
