// Package core holds small rendering helpers shared by the file browser and
// the status list.
package core

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/yumosx/recycler/internal/tui/styles"
)

// Bindings is a static help.KeyMap.
type Bindings struct {
	Short []key.Binding
	Full  [][]key.Binding
}

var _ help.KeyMap = Bindings{}

func NewSimpleHelp(short []key.Binding, full [][]key.Binding) help.KeyMap {
	return Bindings{Short: short, Full: full}
}

func (b Bindings) ShortHelp() []key.Binding { return b.Short }

func (b Bindings) FullHelp() [][]key.Binding { return b.Full }

// Header renders title followed by a rule that fills width, with info
// right-aligned at the end. The rule is dropped when it does not fit.
func Header(title, info string, width int) string {
	t := styles.CurrentTheme()
	used := lipgloss.Width(title) + 1
	if info != "" {
		used += lipgloss.Width(info) + 1
	}
	rule := width - used
	if rule <= 0 {
		return title
	}
	parts := []string{title, t.S().Base.Foreground(t.Border).Render(strings.Repeat("─", rule))}
	if info != "" {
		parts = append(parts, info)
	}
	return strings.Join(parts, " ")
}

// StatusOpts describes one status line. Zero colors fall back to the theme.
type StatusOpts struct {
	Icon             string
	IconColor        color.Color
	Title            string
	Description      string
	DescriptionColor color.Color
}

// Status renders an icon, a title and a description on one line, truncating
// the description to fit width.
func Status(opts StatusOpts, width int) string {
	t := styles.CurrentTheme()
	icon := opts.Icon
	if icon == "" {
		icon = styles.CheckIcon
	}
	iconColor := cmpColor(opts.IconColor, t.Success)
	descColor := cmpColor(opts.DescriptionColor, t.FgSubtle)

	title := t.S().Base.Foreground(t.FgMuted).Render(opts.Title)
	desc := opts.Description
	if desc != "" {
		desc = ansi.Truncate(desc, width-lipgloss.Width(icon)-lipgloss.Width(title)-2, "…")
	}
	return strings.Join([]string{
		t.S().Base.Foreground(iconColor).Render(icon),
		title,
		t.S().Base.Foreground(descColor).Render(desc),
	}, " ")
}

func cmpColor(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
