package atlas

import (
	"errors"
	"image"
	"testing"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/engine/atlas/binpack"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synthSource rasterizes the glyphs it holds and returns empty glyphs with
// an advance of 3 for all other characters.
type synthSource map[byte]Glyph

func (s synthSource) Rasterize(c byte) (Glyph, error) {
	if g, ok := s[c]; ok {
		g.Bitmap = append([]byte(nil), g.Bitmap...)
		return g, nil
	}
	return Glyph{Char: c, Advance: 3}, nil
}

type failingSource struct {
	synthSource
	fail byte
}

func (s failingSource) Rasterize(c byte) (Glyph, error) {
	if c == s.fail {
		return Glyph{}, errors.New("rasterizer failed")
	}
	return s.synthSource.Rasterize(c)
}

func block(w, h int, fill func(x, y int) byte) Glyph {
	g := Glyph{Size: Size{W: w, H: h}, Advance: w + 1, Offset: image.Pt(1, h)}
	g.Bitmap = make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Bitmap[y*w+x] = fill(x, y)
		}
	}
	return g
}

func solid(w, h int) Glyph {
	return block(w, h, func(x, y int) byte { return 0xff })
}

func TestCharacters(t *testing.T) {
	chars := Characters()
	require.Len(t, chars, 95)
	assert.Equal(t, byte(' '), chars[0])
	assert.Equal(t, byte('~'), chars[94])
	for i := 1; i < len(chars); i++ {
		assert.Equal(t, chars[i-1]+1, chars[i])
	}
}

func TestBuildGlyphSetInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	glyphs, err := BuildGlyphSet(synthSource{'A': solid(4, 4)})
	require.NoError(t, err)
	require.Len(t, glyphs, CharSetSize)
	for i, g := range glyphs {
		assert.Equal(t, FirstChar+byte(i), g.Char)
	}
	assert.Equal(t, Size{W: 4, H: 4}, glyphs['A'-FirstChar].Size)
}

func TestBuildGlyphSetAllOrNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	glyphs, err := BuildGlyphSet(failingSource{synthSource: synthSource{}, fail: 'q'})
	require.Error(t, err)
	assert.Nil(t, glyphs)
	assert.Equal(t, core.EGLYPH, core.Code(err))
	//
	broken := Glyph{Size: Size{W: 3, H: 3}, Bitmap: make([]byte, 4)}
	_, err = BuildGlyphSet(synthSource{'x': broken})
	assert.Equal(t, core.EGLYPH, core.Code(err))
	//
	_, err = Generate(failingSource{synthSource: synthSource{}, fail: '~'}, Options{Width: 8, Height: 8})
	assert.Equal(t, core.EGLYPH, core.Code(err), "pipeline should halt before packing")
}

func TestSingleGlyphAtlas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	a, err := Generate(synthSource{'A': solid(4, 4)}, Options{Width: 8, Height: 8})
	require.NoError(t, err)
	require.NoError(t, a.Check())
	g, ok := a.Glyph('A')
	require.True(t, ok)
	assert.Equal(t, image.Pt(0, 0), g.Position)
	assert.True(t, g.Placed)
	assert.False(t, g.Flipped)
	assert.Nil(t, g.Bitmap, "bitmaps should be released after compositing")
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := a.Pixels[y*8+x]
			if x < 4 && y < 4 {
				assert.NotZero(t, v, "pixel (%d,%d)", x, y)
			} else {
				assert.Zero(t, v, "pixel (%d,%d)", x, y)
			}
		}
	}
	assert.Equal(t, 1, a.Stats.Packed)
	assert.Equal(t, CharSetSize-1, a.Stats.Skipped)
	assert.InDelta(t, 0.25, a.Stats.Occupancy, 1e-9)
}

func TestSpaceIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	a, err := Generate(synthSource{'A': solid(4, 4)}, Options{Width: 8, Height: 8})
	require.NoError(t, err)
	space, ok := a.Glyph(' ')
	require.True(t, ok)
	assert.True(t, space.Empty())
	assert.Equal(t, Size{}, space.Size)
	assert.False(t, space.Placed)
	assert.False(t, space.Flipped)
	assert.Equal(t, 3, space.Advance, "empty glyphs keep their metrics")
}

func TestPackingOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	a, err := Generate(synthSource{'A': solid(4, 4)}, Options{Width: 1, Height: 1})
	require.Error(t, err)
	assert.Nil(t, a)
	assert.Equal(t, core.EOVERFLOW, core.Code(err))
	//
	glyphs, err := BuildGlyphSet(synthSource{'A': solid(2, 2), 'B': solid(4, 4)})
	require.NoError(t, err)
	_, err = Pack(3, 3, glyphs, binpack.NewMaxRects(3, 3, binpack.BestShortSideFit, true))
	assert.Equal(t, core.EOVERFLOW, core.Code(err))
	for _, g := range glyphs {
		assert.False(t, g.Placed, "glyph %q should be unplaced after overflow", g.Char)
	}
}

// scriptedPacker returns prepared placements in turn, ignoring the bin.
type scriptedPacker struct {
	placements []binpack.Rect
	calls      int
}

func (p *scriptedPacker) Insert(w, h int) (binpack.Rect, bool) {
	if p.calls >= len(p.placements) {
		return binpack.Rect{}, false
	}
	r := p.placements[p.calls]
	p.calls++
	return r, true
}

func (p *scriptedPacker) Occupancy() float64 { return 0 }

func TestPackRejectsBrokenPlacements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	src := synthSource{'A': solid(2, 3), 'B': solid(4, 2)}
	for _, tc := range []struct {
		name       string
		placements []binpack.Rect
		code       int
	}{
		{"zero height", []binpack.Rect{{W: 2, H: 3}, {W: 4}}, core.EOVERFLOW},
		{"wrong extent", []binpack.Rect{{W: 2, H: 3}, {X: 2, W: 3, H: 3}}, core.EINTERNAL},
	} {
		glyphs, err := BuildGlyphSet(src)
		require.NoError(t, err)
		p := &scriptedPacker{placements: tc.placements}
		stats, err := Pack(8, 8, glyphs, p)
		assert.Equal(t, tc.code, core.Code(err), tc.name)
		assert.Equal(t, PackStats{}, stats, tc.name)
		assert.Equal(t, 2, p.calls, tc.name)
		for _, g := range glyphs {
			assert.False(t, g.Placed, "%s: glyph %q should be unplaced", tc.name, g.Char)
			assert.False(t, g.Flipped, "%s: glyph %q should not be flipped", tc.name, g.Char)
			assert.Equal(t, image.Point{}, g.Position, tc.name)
		}
	}
}

func TestComposeIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	g := block(3, 2, func(x, y int) byte { return byte(1 + y*3 + x) })
	g.Position, g.Placed = image.Pt(1, 2), true
	buf, err := Compose(5, 5, []Glyph{g})
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, g.Bitmap[y*3+x], buf[(2+y)*5+1+x])
		}
	}
	assert.Equal(t, 6, nonzero(buf))
}

func TestComposeTransposed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	g := block(3, 2, func(x, y int) byte { return byte(1 + y*3 + x) })
	g.Position, g.Placed, g.Flipped = image.Pt(1, 2), true, true
	buf, err := Compose(5, 5, []Glyph{g})
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, g.Bitmap[y*3+x], buf[(2+x)*5+1+y], "source pixel (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 6, nonzero(buf))
}

// The transposed copy has to match the rotation convention of the packer:
// a 3×2 glyph in a 2×3 texture only fits rotated and must fill it completely.
func TestFlipMatchesPackerRotation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	src := synthSource{'R': block(3, 2, func(x, y int) byte { return byte(10 + y*3 + x) })}
	glyphs, err := BuildGlyphSet(src)
	require.NoError(t, err)
	_, err = Pack(2, 3, glyphs, binpack.NewMaxRects(2, 3, binpack.BestShortSideFit, true))
	require.NoError(t, err)
	r := glyphs['R'-FirstChar]
	require.True(t, r.Flipped)
	assert.Equal(t, image.Rect(0, 0, 2, 3), r.Bounds())
	buf, err := Compose(2, 3, glyphs)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 13, 11, 14, 12, 15}, buf)
}

func TestComposeRejectsOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontatlas.atlas")
	defer teardown()
	//
	g := solid(4, 4)
	g.Position, g.Placed = image.Pt(6, 6), true
	_, err := Compose(8, 8, []Glyph{g})
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	//
	tall := solid(1, 6)
	tall.Placed, tall.Flipped = true, true
	_, err = Compose(6, 2, []Glyph{tall})
	assert.NoError(t, err, "flipped 1×6 glyph spans 6×1 pixels")
	wide := solid(6, 1)
	wide.Placed, wide.Flipped = true, true
	_, err = Compose(6, 2, []Glyph{wide})
	assert.Equal(t, core.EINTERNAL, core.Code(err), "flipped 6×1 glyph spans 1×6 pixels")
	//
	unplaced := solid(2, 2)
	_, err = Compose(8, 8, []Glyph{unplaced})
	assert.Equal(t, core.EINTERNAL, core.Code(err))
}

func TestCheckDetectsOverlap(t *testing.T) {
	a, err := Generate(synthSource{'A': solid(4, 4), 'B': solid(4, 4)}, Options{Width: 8, Height: 8})
	require.NoError(t, err)
	require.NoError(t, a.Check())
	a.Glyphs['B'-FirstChar].Position = a.Glyphs['A'-FirstChar].Position
	assert.Equal(t, core.EINVALID, core.Code(a.Check()))
}

func nonzero(buf []byte) int {
	n := 0
	for _, b := range buf {
		if b != 0 {
			n++
		}
	}
	return n
}
