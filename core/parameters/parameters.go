/*
Package parameters holds the settings of an atlas generation run.

Settings are read from a schuko configuration. Every key is optional except
for the font and the output path:

	atlas.font        font file or name of a packaged/system font
	atlas.fontsize    pixel size (12)
	atlas.width       texture width (100)
	atlas.height      texture height (100)
	atlas.output      path of the atlas file
	atlas.rasterizer  opentype | truetype
	atlas.packer      maxrects | shelf
	atlas.heuristic   bssf | blsf | baf | bl | cp
	atlas.rotate      allow rotated placement (true)
	atlas.layout      legacy | versioned
	atlas.strict      fail for characters missing from the font (false)
	atlas.preview     print the texture to the terminal (false)
	atlas.glyphdebug  print the glyph metrics (false)
	atlas.png         path of a preview image ("")

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"

	"github.com/npillmayer/fontatlas/backend/atlasfile"
	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/core/font"
	"github.com/npillmayer/fontatlas/engine/atlas/binpack"
	"github.com/npillmayer/schuko"
)

// Configuration keys
const (
	KeyFont       = "atlas.font"
	KeyFontSize   = "atlas.fontsize"
	KeyWidth      = "atlas.width"
	KeyHeight     = "atlas.height"
	KeyOutput     = "atlas.output"
	KeyRasterizer = "atlas.rasterizer"
	KeyPacker     = "atlas.packer"
	KeyHeuristic  = "atlas.heuristic"
	KeyRotate     = "atlas.rotate"
	KeyLayout     = "atlas.layout"
	KeyStrict     = "atlas.strict"
	KeyPreview    = "atlas.preview"
	KeyGlyphDebug = "atlas.glyphdebug"
	KeyPNG        = "atlas.png"
)

// AtlasParameters configure an atlas generation run.
type AtlasParameters struct {
	FontName      string
	PixelSize     int
	Width, Height int
	Output        string
	Rasterizer    font.Rasterizer
	Packer        binpack.Kind
	Heuristic     binpack.Heuristic
	AllowRotation bool
	Layout        atlasfile.Layout
	StrictGlyphs  bool
	ShowPreview   bool
	ShowGlyphData bool
	PreviewPNG    string
}

// Defaults returns the parameters used for unset keys.
func Defaults() AtlasParameters {
	return AtlasParameters{
		PixelSize:     12,
		Width:         100,
		Height:        100,
		Rasterizer:    font.OpenType,
		Packer:        binpack.MaxRectsKind,
		Heuristic:     binpack.BestShortSideFit,
		AllowRotation: true,
		Layout:        atlasfile.Legacy,
	}
}

// FromConfig reads atlas parameters from a configuration.
func FromConfig(conf schuko.Configuration) (AtlasParameters, error) {
	p := Defaults()
	get := func(key string) string {
		return strings.TrimSpace(conf.GetString(key))
	}
	if p.FontName = get(KeyFont); p.FontName == "" {
		return p, core.Error(core.EINVALID, "%s is required", KeyFont)
	}
	if p.Output = get(KeyOutput); p.Output == "" {
		return p, core.Error(core.EINVALID, "%s is required", KeyOutput)
	}
	var err error
	if p.PixelSize, err = number(get(KeyFontSize), KeyFontSize, p.PixelSize,
		font.MinPixelSize, font.MaxPixelSize, core.EFONTSIZE); err != nil {
		return p, err
	}
	if p.Width, err = number(get(KeyWidth), KeyWidth, p.Width,
		1, atlasfile.MaxTextureSize, core.EINVALID); err != nil {
		return p, err
	}
	if p.Height, err = number(get(KeyHeight), KeyHeight, p.Height,
		1, atlasfile.MaxTextureSize, core.EINVALID); err != nil {
		return p, err
	}
	if p.Rasterizer, err = font.ParseRasterizer(get(KeyRasterizer)); err != nil {
		return p, err
	}
	if p.Packer, err = binpack.ParseKind(get(KeyPacker)); err != nil {
		return p, err
	}
	if p.Heuristic, err = binpack.ParseHeuristic(get(KeyHeuristic)); err != nil {
		return p, err
	}
	if p.Layout, err = atlasfile.ParseLayout(get(KeyLayout)); err != nil {
		return p, err
	}
	flags := []struct {
		key string
		v   *bool
	}{
		{KeyRotate, &p.AllowRotation},
		{KeyStrict, &p.StrictGlyphs},
		{KeyPreview, &p.ShowPreview},
		{KeyGlyphDebug, &p.ShowGlyphData},
	}
	for _, f := range flags {
		if *f.v, err = flag(get(f.key), f.key, *f.v); err != nil {
			return p, err
		}
	}
	p.PreviewPNG = get(KeyPNG)
	return p, nil
}

// IsNumber is true for non-empty strings of decimal digits.
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// number parses a decimal value for key. Values outside lo…hi are reported
// with code rangeCode.
func number(s, key string, dflt, lo, hi, rangeCode int) (int, error) {
	if s == "" {
		return dflt, nil
	}
	if !IsNumber(s) {
		return 0, core.Error(core.EINVALID, "%s is not a valid number: %q", key, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, core.Error(rangeCode, "%s must be %d ≤ %s ≤ %d", key, lo, s, hi)
	}
	return n, nil
}

func flag(s, key string, dflt bool) (bool, error) {
	if s == "" {
		return dflt, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return dflt, core.Error(core.EINVALID, "%s is not a boolean: %q", key, s)
	}
	return b, nil
}
