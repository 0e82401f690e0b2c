/*
Package atlas assembles glyph atlases.

An atlas is a single 8-bit texture holding the bitmaps of the 95 printable
ASCII characters of a font at one pixel size, plus metrics for each glyph.
Assembly runs in stages, each completing before the next one starts:

	BuildGlyphSet   rasterizes every character through a GlyphSource
	Pack            assigns texture positions through a binpack.Packer
	Compose         copies glyph bitmaps into the texture buffer

Generate runs all stages. Every stage either succeeds completely or returns
an error; there are no partial atlases.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atlas

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontatlas.atlas'.
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.atlas")
}
