package atlas

import (
	"fmt"
	"image"
)

// First and last character of the atlas character set.
const (
	FirstChar byte = ' '
	LastChar  byte = '~'
)

// CharSetSize is the number of characters in an atlas.
const CharSetSize = int(LastChar-FirstChar) + 1

// Characters returns the atlas character set, space through tilde, in order.
func Characters() []byte {
	chars := make([]byte, 0, CharSetSize)
	for c := FirstChar; c <= LastChar; c++ {
		chars = append(chars, c)
	}
	return chars
}

// Size is the extent of a bitmap in pixels.
type Size struct {
	W, H int
}

// Empty is true for bitmaps without pixels.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Area is the number of pixels.
func (s Size) Area() int {
	if s.Empty() {
		return 0
	}
	return s.W * s.H
}

// Glyph is the record for one character.
//
// Offset is the bearing: X is the distance from the pen position to the
// left edge of the bitmap, Y is the distance from the baseline up to the top
// row of the bitmap. Position is valid if Placed is set. Bitmap holds
// Size.W*Size.H coverage values, row by row, and is owned by the record.
type Glyph struct {
	Char     byte
	Size     Size
	Offset   image.Point
	Advance  int
	Position image.Point
	Placed   bool
	Flipped  bool
	Bitmap   []byte
}

// Empty is true for glyphs without pixels, e.g. space.
func (g *Glyph) Empty() bool {
	return g.Size.Empty()
}

// Extent is the size the glyph occupies in the texture, i.e. Size with width
// and height swapped if the glyph is flipped.
func (g *Glyph) Extent() Size {
	if g.Flipped {
		return Size{W: g.Size.H, H: g.Size.W}
	}
	return g.Size
}

// Bounds is the rectangle the glyph occupies in the texture.
func (g *Glyph) Bounds() image.Rectangle {
	e := g.Extent()
	return image.Rectangle{Min: g.Position, Max: g.Position.Add(image.Pt(e.W, e.H))}
}

func (g Glyph) String() string {
	return fmt.Sprintf("glyph(%q, pos=%v, size=%d×%d, delta=%v, advance=%d, flipped=%v)",
		g.Char, g.Position, g.Size.W, g.Size.H, g.Offset, g.Advance, g.Flipped)
}
