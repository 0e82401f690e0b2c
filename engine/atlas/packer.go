package atlas

import (
	"image"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/engine/atlas/binpack"
)

// PackStats reports the outcome of packing.
type PackStats struct {
	Packed    int     // number of glyphs placed
	Skipped   int     // number of empty glyphs
	Occupancy float64 // packed area / texture area, informational only
}

// Pack places the non-empty glyphs into a w×h texture, in sequence order,
// and sets their Position, Placed and Flipped fields. Empty glyphs are not
// sent to the packer and stay unplaced.
//
// A glyph is flipped if the packer placed it rotated by 90°. If a glyph does
// not fit, Pack fails with code EOVERFLOW and every glyph is left unplaced.
func Pack(w, h int, glyphs []Glyph, p binpack.Packer) (PackStats, error) {
	stats := PackStats{}
	if w <= 0 || h <= 0 {
		return stats, core.Error(core.EINVALID, "texture size must be positive, is %d×%d", w, h)
	}
	for i := range glyphs {
		g := &glyphs[i]
		g.Position, g.Placed, g.Flipped = image.Point{}, false, false
		if g.Empty() {
			stats.Skipped++
			continue
		}
		r, ok := p.Insert(g.Size.W, g.Size.H)
		if !ok || r.H <= 0 {
			unplace(glyphs)
			tracer().Errorf("could not find a position to pack %q (%d×%d)", g.Char, g.Size.W, g.Size.H)
			return PackStats{}, core.Error(core.EOVERFLOW,
				"characters don't fit in texture size %d×%d: no room for %q (%d×%d)",
				w, h, g.Char, g.Size.W, g.Size.H)
		}
		g.Flipped = r.W != g.Size.W
		if g.Extent() != (Size{W: r.W, H: r.H}) {
			unplace(glyphs)
			return PackStats{}, core.Error(core.EINTERNAL,
				"packer placed %q (%d×%d) as %s", g.Char, g.Size.W, g.Size.H, r)
		}
		g.Position = image.Pt(r.X, r.Y)
		g.Placed = true
		stats.Packed++
	}
	stats.Occupancy = p.Occupancy()
	tracer().Infof("all characters were packed in bin, occupancy %.1f%%", 100*stats.Occupancy)
	return stats, nil
}

func unplace(glyphs []Glyph) {
	for i := range glyphs {
		glyphs[i].Position, glyphs[i].Placed, glyphs[i].Flipped = image.Point{}, false, false
	}
}
