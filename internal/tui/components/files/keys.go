package files

import (
	"github.com/charmbracelet/bubbles/v2/key"
)

type KeyMap struct {
	Filter,
	Albums,
	Toggle,
	Clear,
	Copy,
	MoreColumns,
	FewerColumns,
	Reload,
	Close key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Albums: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "albums"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "select"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear selection"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy paths"),
		),
		MoreColumns: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more columns"),
		),
		FewerColumns: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer columns"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// KeyBindings returns every binding of the browser.
func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.Filter,
		k.Albums,
		k.Toggle,
		k.Clear,
		k.Copy,
		k.MoreColumns,
		k.FewerColumns,
		k.Reload,
		k.Close,
	}
}
