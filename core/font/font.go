/*
Package font is for typeface and font handling.

We stick to the following definitions:

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Go Regular".

* A "typecase" is a scaled font, i.e. a font prepared for rasterization at a
certain pixel size, by a certain rasterizer.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'fontatlas.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.fonts")
}

// ScalableFont is a font loaded from a file or from packaged data.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, "internal" for packaged fonts
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont loads a font file. Errors are reported with code EFONTLOAD.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTLOAD, "can't open font: %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTLOAD, "can't parse font: %s", fontfile)
	}
	f.Filepath = fontfile
	tracer().Infof("loaded font %s from %s", f.Fontname, fontfile)
	return f, nil
}

// ParseOpenTypeFont parses raw font data (TrueType or OpenType/CFF).
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTLOAD, "font data is not a valid font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Regular.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Filepath = "internal"
	return gofont
}

// ---------------------------------------------------------------------------

// NormalizeFontname strips a font name of blanks, dashes, underscores and a
// file extension and lowercases it. "Go Regular", "go-regular.ttf" and
// "goregular" all normalize to "goregular".
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(fname)
	fname = strings.ToLower(fname)
	return fname
}
