package atlas

import (
	"image"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/core/font"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// GlyphSource rasterizes single characters.
//
// Rasterize returns a glyph record with Char, Size, Offset, Advance and
// Bitmap set. A character without pixels yields an empty Size and no bitmap;
// a character which cannot be rasterized yields an error.
type GlyphSource interface {
	Rasterize(c byte) (Glyph, error)
}

// FaceSource is a GlyphSource for a font face.
type FaceSource struct {
	face     xfont.Face
	hasGlyph func(rune) bool
	Strict   bool // fail for characters the font has no glyph for
}

var _ GlyphSource = &FaceSource{}

// NewFaceSource creates a glyph source for a type case.
func NewFaceSource(tc *font.TypeCase) *FaceSource {
	return &FaceSource{face: tc.Face(), hasGlyph: tc.HasGlyph}
}

// NewFaceSourceFromFace creates a glyph source for a face. Strict mode
// has no effect for these sources.
func NewFaceSourceFromFace(face xfont.Face) *FaceSource {
	return &FaceSource{face: face}
}

// Rasterize renders c with the pen at the origin. Faces re-use their mask
// images, so the coverage is copied into a bitmap owned by the glyph.
func (fs *FaceSource) Rasterize(c byte) (Glyph, error) {
	r := rune(c)
	if fs.Strict && fs.hasGlyph != nil && !fs.hasGlyph(r) {
		return Glyph{}, core.Error(core.EGLYPH, "font has no glyph for character %q", r)
	}
	dr, mask, maskp, advance, ok := fs.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Glyph{}, core.Error(core.EGLYPH, "could not load character %q", r)
	}
	g := Glyph{
		Char:    c,
		Advance: advance.Floor(),
	}
	if dr.Empty() || mask == nil {
		return g, nil
	}
	g.Size = Size{W: dr.Dx(), H: dr.Dy()}
	g.Offset = image.Pt(dr.Min.X, -dr.Min.Y)
	bitmap := image.NewAlpha(image.Rect(0, 0, g.Size.W, g.Size.H))
	sr := image.Rectangle{Min: maskp, Max: maskp.Add(dr.Size())}
	draw.Copy(bitmap, image.Point{}, mask, sr, draw.Src, nil)
	g.Bitmap = bitmap.Pix
	return g, nil
}
