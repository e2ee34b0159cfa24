// Package image draws pictures with half block cells.
//
// Based on the implementation by @trashhalo at:
// https://github.com/trashhalo/imgcat
package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imageorient"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg"}

// IsImage reports whether name has an extension Render can decode.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Render decodes the image read from r and draws it into at most width
// columns and height rows. The format is taken from the name's extension for
// SVG and sniffed otherwise.
func Render(r io.Reader, name string, width, height uint) (string, error) {
	if width == 0 || height == 0 {
		return "", nil
	}
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		img, err := rasterize(r)
		if err != nil {
			return "", fmt.Errorf("rasterize %s: %w", name, err)
		}
		return toString(width, height, img), nil
	}
	img, _, err := imageorient.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return toString(width, height, img), nil
}

// toString maps every two pixel rows to one row of upper half blocks, the
// foreground drawing the top pixel and the background the bottom one.
func toString(width, height uint, img image.Image) string {
	img = resize.Thumbnail(width, height*2, img, resize.Lanczos3)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := termenv.ColorProfile()
	var str strings.Builder
	for y := 0; y < h; y += 2 {
		for x := range w {
			c1, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			c2 := c1
			if y+1 < h {
				c2, _ = colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y+1))
			}
			str.WriteString(termenv.String("▀").
				Foreground(p.Color(c1.Hex())).
				Background(p.Color(c2.Hex())).
				String())
		}
		if y+2 < h {
			str.WriteString("\n")
		}
	}
	return str.String()
}

// rasterize draws an SVG at the size of its view box.
func rasterize(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty view box %dx%d", w, h)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.Draw(rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())), 1)

	// Round trip through PNG so the result is oriented like decoded files.
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, err
	}
	img, _, err := imageorient.Decode(&buf)
	return img, err
}
