package atlas

import (
	"image"

	"github.com/npillmayer/fontatlas/core"
)

// Compose copies the bitmaps of packed glyphs into a zeroed w×h buffer of
// one byte per pixel, row-major with the origin top-left.
//
// Flipped glyphs are copied transposed: source pixel (x, y) goes to texture
// pixel (Position.X+y, Position.Y+x). A glyph reaching outside the texture
// is a packer bug; Compose reports it with code EINTERNAL and writes nothing
// for that glyph.
func Compose(w, h int, glyphs []Glyph) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, core.Error(core.EINVALID, "texture size must be positive, is %d×%d", w, h)
	}
	buf := make([]byte, w*h)
	texture := image.Rect(0, 0, w, h)
	for i := range glyphs {
		g := &glyphs[i]
		if g.Empty() {
			continue
		}
		if !g.Placed {
			return nil, core.Error(core.EINTERNAL, "glyph %q has not been packed", g.Char)
		}
		if !g.Bounds().In(texture) {
			return nil, core.Error(core.EINTERNAL, "glyph %q at %v exceeds texture %v",
				g.Char, g.Bounds(), texture)
		}
		if len(g.Bitmap) != g.Size.Area() {
			return nil, core.Error(core.EINTERNAL, "glyph %q has %d bitmap bytes, expected %d",
				g.Char, len(g.Bitmap), g.Size.Area())
		}
		blit(buf, w, g)
	}
	return buf, nil
}

func blit(buf []byte, stride int, g *Glyph) {
	gw, gh := g.Size.W, g.Size.H
	px, py := g.Position.X, g.Position.Y
	if g.Flipped {
		for y := 0; y < gh; y++ {
			for x := 0; x < gw; x++ {
				buf[(py+x)*stride+px+y] = g.Bitmap[y*gw+x]
			}
		}
		return
	}
	for y := 0; y < gh; y++ {
		row := (py+y)*stride + px
		copy(buf[row:row+gw], g.Bitmap[y*gw:(y+1)*gw])
	}
}
