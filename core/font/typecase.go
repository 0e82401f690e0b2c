package font

import (
	"fmt"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/npillmayer/fontatlas/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Rasterizer selects the library which renders glyph bitmaps.
type Rasterizer int

// Rasterizers available for type cases.
const (
	OpenType Rasterizer = iota // golang.org/x/image/font/opentype
	TrueType                   // github.com/golang/freetype/truetype
)

func (r Rasterizer) String() string {
	switch r {
	case OpenType:
		return "opentype"
	case TrueType:
		return "truetype"
	}
	return fmt.Sprintf("Rasterizer(%d)", int(r))
}

// ParseRasterizer returns the rasterizer for a name ("opentype" or "truetype").
func ParseRasterizer(name string) (Rasterizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "opentype", "otf":
		return OpenType, nil
	case "truetype", "freetype", "ttf":
		return TrueType, nil
	}
	return OpenType, core.Error(core.EINVALID, "unknown rasterizer: %s", name)
}

// Pixel sizes accepted by PrepareCase.
const (
	MinPixelSize = 1
	MaxPixelSize = 1024
)

// TypeCase is a scalable font prepared for rasterization at a pixel size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	pixelSize          int
	rasterizer         Rasterizer
	glyphIndex         func(r rune) int
}

// PrepareCase creates a type case for a pixel size. The font's em square will
// span pixelSize pixels.
//
// An invalid pixel size is reported with code EFONTSIZE. If the rasterizer
// cannot handle the font, code EINIT is returned.
func (sf *ScalableFont) PrepareCase(pixelSize int, r Rasterizer) (*TypeCase, error) {
	if pixelSize < MinPixelSize || pixelSize > MaxPixelSize {
		return nil, core.Error(core.EFONTSIZE, "can't set font size %d: must be %d ≤ size ≤ %d",
			pixelSize, MinPixelSize, MaxPixelSize)
	}
	typecase := &TypeCase{
		scalableFontParent: sf,
		pixelSize:          pixelSize,
		rasterizer:         r,
	}
	switch r {
	case OpenType:
		if sf.SFNT == nil {
			return nil, core.Error(core.EINIT, "font %s has not been parsed", sf.Fontname)
		}
		face, err := opentype.NewFace(sf.SFNT, &opentype.FaceOptions{
			Size:    float64(pixelSize),
			DPI:     72,
			Hinting: xfont.HintingFull,
		})
		if err != nil {
			return nil, core.WrapError(err, core.EINIT, "could not init opentype rasterizer for %s", sf.Fontname)
		}
		typecase.face = face
		var buf sfnt.Buffer
		typecase.glyphIndex = func(r rune) int {
			gid, err := sf.SFNT.GlyphIndex(&buf, r)
			if err != nil {
				return 0
			}
			return int(gid)
		}
	case TrueType:
		ttf, err := truetype.Parse(sf.Binary)
		if err != nil {
			return nil, core.WrapError(err, core.EINIT, "could not init truetype rasterizer for %s", sf.Fontname)
		}
		typecase.face = truetype.NewFace(ttf, &truetype.Options{
			Size:    float64(pixelSize),
			DPI:     72,
			Hinting: xfont.HintingFull,
		})
		typecase.glyphIndex = func(r rune) int {
			return int(ttf.Index(r))
		}
	default:
		return nil, core.Error(core.EINIT, "unknown rasterizer %s", r)
	}
	tracer().Debugf("prepared type case %s at %dpx with %s", sf.Fontname, pixelSize, r)
	return typecase, nil
}

// ScalableFontParent returns the font this type case has been prepared from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Face returns the rasterizing face.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// PixelSize is the em size in pixels.
func (tc *TypeCase) PixelSize() int {
	return tc.pixelSize
}

// Rasterizer returns the rasterizer of this type case.
func (tc *TypeCase) Rasterizer() Rasterizer {
	return tc.rasterizer
}

// HasGlyph is false if the font maps r to the missing glyph.
func (tc *TypeCase) HasGlyph(r rune) bool {
	return tc.glyphIndex(r) != 0
}

// Metrics returns the face's metrics.
func (tc *TypeCase) Metrics() xfont.Metrics {
	return tc.face.Metrics()
}

// Close releases the face.
func (tc *TypeCase) Close() error {
	return tc.face.Close()
}
