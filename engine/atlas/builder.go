package atlas

import (
	"image"

	"github.com/npillmayer/fontatlas/core"
)

// BuildGlyphSet rasterizes the atlas character set, returning one glyph per
// character in character set order.
//
// If any character fails, no glyphs are returned and the error carries code
// EGLYPH: a text renderer cannot use an incomplete glyph set.
func BuildGlyphSet(src GlyphSource) ([]Glyph, error) {
	glyphs := make([]Glyph, 0, CharSetSize)
	for _, c := range Characters() {
		g, err := src.Rasterize(c)
		if err != nil {
			tracer().Errorf("could not load character %q: %v", c, err)
			return nil, core.WrapError(err, core.EGLYPH, "could not load all characters of font: %q failed", c)
		}
		if g.Size.W < 0 || g.Size.H < 0 {
			return nil, core.Error(core.EGLYPH, "character %q has invalid size %d×%d", c, g.Size.W, g.Size.H)
		}
		if len(g.Bitmap) != g.Size.Area() {
			return nil, core.Error(core.EGLYPH, "character %q: bitmap has %d bytes, expected %d",
				c, len(g.Bitmap), g.Size.Area())
		}
		g.Char = c
		g.Position, g.Placed, g.Flipped = image.Point{}, false, false
		glyphs = append(glyphs, g)
	}
	tracer().Infof("rasterized %d characters", len(glyphs))
	return glyphs, nil
}
