package atlas

import (
	"image"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/engine/atlas/binpack"
)

// Atlas is a packed glyph texture with the metrics of its glyphs.
type Atlas struct {
	Width, Height int
	Glyphs        []Glyph   // one per character, in character set order
	Pixels        []byte    // Width*Height coverage values
	Stats         PackStats // zero for atlases read from a file
}

// Options configures Generate.
type Options struct {
	Width, Height int
	Packer        binpack.Packer // nil selects MaxRects with best short side fit and rotation
}

// Generate runs the atlas stages: rasterization, packing and compositing.
// Glyph bitmaps are released once compositing has completed; the glyphs of
// the resulting atlas carry metrics only.
func Generate(src GlyphSource, opts Options) (*Atlas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, core.Error(core.EINVALID, "texture size must be positive, is %d×%d",
			opts.Width, opts.Height)
	}
	packer := opts.Packer
	if packer == nil {
		packer = binpack.NewMaxRects(opts.Width, opts.Height, binpack.BestShortSideFit, true)
	}
	glyphs, err := BuildGlyphSet(src)
	if err != nil {
		return nil, err
	}
	stats, err := Pack(opts.Width, opts.Height, glyphs, packer)
	if err != nil {
		return nil, err
	}
	pixels, err := Compose(opts.Width, opts.Height, glyphs)
	if err != nil {
		return nil, err
	}
	ReleaseBitmaps(glyphs)
	return &Atlas{
		Width:  opts.Width,
		Height: opts.Height,
		Glyphs: glyphs,
		Pixels: pixels,
		Stats:  stats,
	}, nil
}

// ReleaseBitmaps drops the glyphs' references to their bitmaps.
func ReleaseBitmaps(glyphs []Glyph) {
	for i := range glyphs {
		glyphs[i].Bitmap = nil
	}
}

// Glyph returns the record for character c.
func (a *Atlas) Glyph(c byte) (Glyph, bool) {
	for _, g := range a.Glyphs {
		if g.Char == c {
			return g, true
		}
	}
	return Glyph{}, false
}

// Image returns a view of the pixel buffer. The image shares the buffer.
func (a *Atlas) Image() *image.Gray {
	return &image.Gray{
		Pix:    a.Pixels,
		Stride: a.Width,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
}

// Check verifies the atlas invariants: one glyph per character in order, a
// buffer of Width*Height bytes, and placed glyphs inside the texture without
// overlapping each other.
func (a *Atlas) Check() error {
	if a.Width <= 0 || a.Height <= 0 {
		return core.Error(core.EINVALID, "atlas size must be positive, is %d×%d", a.Width, a.Height)
	}
	if len(a.Pixels) != a.Width*a.Height {
		return core.Error(core.EINVALID, "atlas buffer has %d bytes, expected %d",
			len(a.Pixels), a.Width*a.Height)
	}
	if len(a.Glyphs) != CharSetSize {
		return core.Error(core.EINVALID, "atlas has %d glyphs, expected %d", len(a.Glyphs), CharSetSize)
	}
	texture := image.Rect(0, 0, a.Width, a.Height)
	for i := range a.Glyphs {
		g := &a.Glyphs[i]
		if g.Char != FirstChar+byte(i) {
			return core.Error(core.EINVALID, "glyph #%d is %q, expected %q", i, g.Char, FirstChar+byte(i))
		}
		if g.Empty() {
			continue
		}
		if !g.Placed || !g.Bounds().In(texture) {
			return core.Error(core.EINVALID, "glyph %q is not placed inside the texture", g.Char)
		}
		for j := 0; j < i; j++ {
			o := &a.Glyphs[j]
			if !o.Empty() && g.Bounds().Overlaps(o.Bounds()) {
				return core.Error(core.EINVALID, "glyphs %q and %q overlap", o.Char, g.Char)
			}
		}
	}
	return nil
}
