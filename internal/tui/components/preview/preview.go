// Package preview shows the content of a file next to the list.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/yumosx/recycler/internal/ansiext"
	"github.com/yumosx/recycler/internal/csync"
	"github.com/yumosx/recycler/internal/fsext"
	"github.com/yumosx/recycler/internal/highlight"
	"github.com/yumosx/recycler/internal/tui/components/image"
	"github.com/yumosx/recycler/internal/tui/styles"
	"github.com/zeebo/xxh3"
)

// MaxTextSize is how much of a text file is read for its preview.
const MaxTextSize = 256 * 1024

var ErrNotRegular = errors.New("not a regular file")

// LoadedMsg carries a rendered preview.
type LoadedMsg struct {
	Path    string
	Content string
	Err     error

	key uint64
}

type Model struct {
	path          string
	width, height int

	key     uint64
	content string
	err     error
	loading bool

	cache *csync.Map[uint64, string]
}

func New() *Model {
	return &Model{cache: csync.NewMap[uint64, string]()}
}

// Open shows path, rendering it in the background unless it is cached.
func (m *Model) Open(path string) tea.Cmd {
	m.path = path
	return m.load()
}

func (m *Model) Close() {
	m.path = ""
	m.content = ""
	m.err = nil
	m.loading = false
}

func (m *Model) IsOpen() bool { return m.path != "" }

func (m *Model) Path() string { return m.path }

func (m *Model) Loading() bool { return m.loading }

// Err returns the error of the last rendering.
func (m *Model) Err() error { return m.err }

// SetSize changes the preview area and renders the open file again.
func (m *Model) SetSize(width, height int) tea.Cmd {
	if width == m.width && height == m.height {
		return nil
	}
	m.width, m.height = width, height
	if !m.IsOpen() {
		return nil
	}
	return m.load()
}

func (m *Model) load() tea.Cmd {
	path, width, height := m.path, m.contentWidth(), m.contentHeight()
	key, err := cacheKey(path, width, height)
	if err != nil {
		m.key, m.content, m.err, m.loading = 0, "", err, false
		return nil
	}
	m.key = key
	if content, ok := m.cache.Get(key); ok {
		m.content, m.err, m.loading = content, nil, false
		return nil
	}
	m.loading = true
	cache := m.cache
	return func() tea.Msg {
		content, err := Render(path, width, height)
		if err != nil {
			slog.Warn("Failed to render preview", "path", path, "error", err)
		} else {
			cache.Set(key, content)
		}
		return LoadedMsg{Path: path, Content: content, Err: err, key: key}
	}
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(LoadedMsg); ok {
		if msg.key != m.key || msg.Path != m.path {
			return m, nil
		}
		m.content, m.err, m.loading = msg.Content, msg.Err, false
	}
	return m, nil
}

func (m *Model) contentWidth() int  { return max(0, m.width-2) }
func (m *Model) contentHeight() int { return max(0, m.height-3) }

func (m *Model) View() string {
	if !m.IsOpen() || m.width <= 2 || m.height <= 3 {
		return ""
	}
	t := styles.CurrentTheme()
	title := t.S().Subtitle.Render(ansi.Truncate(ansiext.Escape(fsext.PrettyPath(m.path)), m.contentWidth(), "…"))

	var body string
	switch {
	case m.err != nil:
		body = t.S().Error.Render(ansi.Truncate(m.err.Error(), m.contentWidth(), "…"))
	case m.loading:
		body = t.S().Muted.Render(styles.LoadingIcon + " Loading preview…")
	default:
		body = clip(m.content, m.contentWidth(), m.contentHeight())
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// clip cuts s to height lines of at most width cells.
func clip(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}

// cacheKey identifies a rendering of the current version of path.
func cacheKey(path string, width, height int) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	h := xxh3.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d\x00%d\x00%d", path, info.Size(), info.ModTime().UnixNano(), width, height)
	return h.Sum64(), nil
}

// Render draws the file at path into width columns and height rows: images
// as half block cells, Markdown through glamour and anything else as
// highlighted source.
func Render(path string, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if image.IsImage(path) {
		return image.Render(f, path, uint(width), uint(height))
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxTextSize))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return fmt.Sprintf("binary file, %d bytes", len(data)), nil
	}

	t := styles.CurrentTheme()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		r, err := t.MarkdownRenderer(width)
		if err != nil {
			return "", fmt.Errorf("markdown renderer: %w", err)
		}
		out, err := r.Render(string(data))
		if err != nil {
			return "", fmt.Errorf("render %s: %w", path, err)
		}
		return strings.Trim(out, "\n"), nil
	}
	return highlight.SyntaxHighlight(string(data), path, t.BgBase)
}
