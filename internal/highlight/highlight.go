package highlight

import (
	"bytes"
	"image/color"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yumosx/recycler/internal/tui/styles"
)

// SyntaxHighlight colors source for the terminal, picking the lexer from
// fileName or, failing that, the content.
func SyntaxHighlight(source, fileName string, bg color.Color) (string, error) {
	l := lexers.Match(fileName)
	if l == nil {
		l = lexers.Analyse(source)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	f := formatters.Get("terminal16m")
	if f == nil {
		f = formatters.Fallback
	}

	style, err := styles.CurrentTheme().ChromaStyle()
	if err != nil {
		style = chromaStyles.Fallback
	}
	if bg != nil {
		r, g, b, _ := bg.RGBA()
		background := chroma.NewColour(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		style, err = style.Builder().Transform(
			func(t chroma.StyleEntry) chroma.StyleEntry {
				t.Background = background
				return t
			},
		).Build()
		if err != nil {
			style = chromaStyles.Fallback
		}
	}

	it, err := l.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = f.Format(&buf, style, it)
	return buf.String(), err
}
