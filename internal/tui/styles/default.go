package styles

import (
	"github.com/charmbracelet/x/exp/charmtone"
)

const (
	DefaultThemeName = "recycler"
	LightThemeName   = "recycler-light"
)

func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   DefaultThemeName,
		IsDark: true,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Dolly,
		Tertiary:  charmtone.Bok,
		Accent:    charmtone.Zest,

		// Backgrounds
		BgBase:   charmtone.Pepper,
		BgSubtle: charmtone.Charcoal,

		// Foregrounds
		FgBase:      charmtone.Ash,
		FgMuted:     charmtone.Squid,
		FgHalfMuted: charmtone.Smoke,
		FgSubtle:    charmtone.Oyster,
		FgSelected:  charmtone.Salt,

		// Borders
		Border:      charmtone.Charcoal,
		BorderFocus: charmtone.Charple,

		// Status
		Success: charmtone.Guac,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Zest,
		Info:    charmtone.Malibu,
	}
}

func NewLightTheme() *Theme {
	return &Theme{
		Name:   LightThemeName,
		IsDark: false,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Sapphire,
		Tertiary:  charmtone.Turtle,
		Accent:    charmtone.Coral,

		// Backgrounds
		BgBase:   charmtone.Salt,
		BgSubtle: charmtone.Ash,

		// Foregrounds
		FgBase:      charmtone.Pepper,
		FgMuted:     charmtone.Squid,
		FgHalfMuted: charmtone.Charcoal,
		FgSubtle:    charmtone.Oyster,
		FgSelected:  charmtone.Salt,

		// Borders
		Border:      charmtone.Smoke,
		BorderFocus: charmtone.Charple,

		// Status
		Success: charmtone.Turtle,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Mustard,
		Info:    charmtone.Malibu,
	}
}
