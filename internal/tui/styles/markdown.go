package styles

import (
	"fmt"
	"image/color"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/glamour/v2"
	"github.com/charmbracelet/glamour/v2/ansi"
)

const (
	defaultMargin     = 1
	defaultListIndent = 2
)

func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// MarkdownRenderer returns a glamour renderer using the theme colors and
// wrapping at width.
func (t *Theme) MarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(t.markdownStyle()),
		glamour.WithWordWrap(width),
	)
}

func (t *Theme) markdownStyle() ansi.StyleConfig {
	text := stringPtr(Hex(t.FgBase))
	heading := stringPtr(Hex(t.Secondary))
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: text},
			Margin:         uintPtr(defaultMargin),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  stringPtr(Hex(t.FgMuted)),
				Italic: boolPtr(true),
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: defaultListIndent,
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: text},
			},
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       heading,
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           stringPtr(Hex(t.FgSelected)),
				BackgroundColor: stringPtr(Hex(t.Primary)),
				Bold:            boolPtr(true),
			},
		},
		H2:            ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3:            ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		H4:            ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "#### "}},
		H5:            ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "##### "}},
		H6:            ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "###### "}},
		Strikethrough: ansi.StylePrimitive{CrossedOut: boolPtr(true)},
		Emph:          ansi.StylePrimitive{Italic: boolPtr(true)},
		Strong:        ansi.StylePrimitive{Bold: boolPtr(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  stringPtr(Hex(t.Border)),
			Format: "\n--------\n",
		},
		Item:        ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". "},
		Task: ansi.StyleTask{
			Ticked:   CheckedBox + " ",
			Unticked: UncheckedBox + " ",
		},
		Link: ansi.StylePrimitive{
			Color:     stringPtr(Hex(t.Info)),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: stringPtr(Hex(t.Tertiary)),
			Bold:  boolPtr(true),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           stringPtr(Hex(t.Accent)),
				BackgroundColor: stringPtr(Hex(t.BgSubtle)),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: stringPtr(Hex(t.FgHalfMuted))},
				Margin:         uintPtr(defaultMargin),
			},
		},
	}
}

// ChromaStyle returns the syntax highlighting style for the theme.
func (t *Theme) ChromaStyle() (*chroma.Style, error) {
	return chroma.NewStyle(t.Name, chroma.StyleEntries{
		chroma.Background:      "bg:" + Hex(t.BgBase),
		chroma.Text:            Hex(t.FgBase),
		chroma.Error:           Hex(t.Error),
		chroma.Comment:         "italic " + Hex(t.FgSubtle),
		chroma.Keyword:         Hex(t.Primary),
		chroma.KeywordType:     Hex(t.Secondary),
		chroma.NameFunction:    Hex(t.Tertiary),
		chroma.NameBuiltin:     Hex(t.Secondary),
		chroma.NameTag:         Hex(t.Primary),
		chroma.NameAttribute:   Hex(t.Tertiary),
		chroma.LiteralString:   Hex(t.Success),
		chroma.LiteralNumber:   Hex(t.Accent),
		chroma.Operator:        Hex(t.FgMuted),
		chroma.Punctuation:     Hex(t.FgMuted),
		chroma.GenericDeleted:  Hex(t.Error),
		chroma.GenericInserted: Hex(t.Success),
		chroma.GenericHeading:  "bold " + Hex(t.Secondary),
	})
}
