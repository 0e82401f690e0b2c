/*
Package preview renders font atlases for inspection: as a PNG image, as
block characters on a terminal and as a table of glyph metrics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package preview

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strconv"
	"unicode"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/engine/atlas"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"golang.org/x/image/draw"
	"golang.org/x/text/unicode/runenames"
)

// tracer traces with key 'fontatlas.export'.
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.export")
}

// Scaled returns the atlas texture enlarged by an integer factor, without
// smoothing.
func Scaled(a *atlas.Atlas, scale int) *image.Gray {
	if scale <= 1 {
		return a.Image()
	}
	dst := image.NewGray(image.Rect(0, 0, a.Width*scale, a.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Rect, a.Image(), a.Image().Rect, draw.Src, nil)
	return dst
}

// WritePNG writes the atlas texture as a grayscale PNG, enlarged by scale.
func WritePNG(path string, a *atlas.Atlas, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EIO, "could not create preview image %s", path)
	}
	if err = png.Encode(f, Scaled(a, scale)); err != nil {
		f.Close()
		return core.WrapError(err, core.EIO, "could not encode preview image %s", path)
	}
	if err = f.Close(); err != nil {
		return core.WrapError(err, core.EIO, "could not close preview image %s", path)
	}
	tracer().Infof("preview image written to %s", path)
	return nil
}

// ramp maps coverage to characters, from no coverage to full coverage.
const ramp = " .:-=+*#%@"

// Terminal draws the atlas texture with a ramp of ASCII shade characters,
// at most cols characters wide. Terminal character cells are about twice as
// high as wide, so every text row covers two pixel rows of the scaled texture.
func Terminal(w io.Writer, a *atlas.Atlas, cols int) error {
	if cols <= 0 {
		cols = 80
	}
	tw := min(a.Width, cols)
	rows := max(1, (a.Height*tw/a.Width+1)/2)
	src := a.Image()
	if tw != a.Width || 2*rows != a.Height {
		small := image.NewGray(image.Rect(0, 0, tw, 2*rows))
		draw.ApproxBiLinear.Scale(small, small.Rect, src, src.Rect, draw.Src, nil)
		src = small
	}
	bw := bufio.NewWriter(w)
	for row := 0; row < rows; row++ {
		for x := 0; x < tw; x++ {
			v := max(src.GrayAt(x, 2*row).Y, src.GrayAt(x, 2*row+1).Y)
			bw.WriteByte(ramp[int(v)*(len(ramp)-1)/255])
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return core.WrapError(err, core.EIO, "could not write atlas preview")
	}
	return nil
}

// GlyphTable lists the metrics of glyphs, with a header row.
func GlyphTable(glyphs []atlas.Glyph) pterm.TableData {
	data := pterm.TableData{
		{"char", "name", "x", "y", "w", "h", "dx", "dy", "advance", "flipped"},
	}
	for _, g := range glyphs {
		x, y := "-", "-"
		if g.Placed {
			x, y = strconv.Itoa(g.Position.X), strconv.Itoa(g.Position.Y)
		}
		data = append(data, []string{
			printable(rune(g.Char)),
			runenames.Name(rune(g.Char)),
			x, y,
			strconv.Itoa(g.Size.W), strconv.Itoa(g.Size.H),
			strconv.Itoa(g.Offset.X), strconv.Itoa(g.Offset.Y),
			strconv.Itoa(g.Advance),
			fmt.Sprintf("%v", g.Flipped),
		})
	}
	return data
}

func printable(r rune) string {
	if r == ' ' || !unicode.IsPrint(r) {
		return strconv.QuoteRune(r)
	}
	return string(r)
}

// PrintGlyphs renders the glyph table to standard output.
func PrintGlyphs(glyphs []atlas.Glyph) error {
	return pterm.DefaultTable.WithHasHeader().WithData(GlyphTable(glyphs)).Render()
}
