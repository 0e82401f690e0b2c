/*
Package atlasfile reads and writes font atlas files.

An atlas file holds the texture size, one metrics record per character of
the atlas character set and the raw coverage buffer. All integers are
little-endian.

Legacy layout:

	int32 width, height
	95 × { int32 x, y, w, h, dx, dy, advance, flipped }
	width*height bytes of coverage, row-major, top-left origin

Glyphs without a texture position are written at (-1, -1).

Versioned layout prefixes the legacy content with the magic "FTAT", a
uint32 version and a uint32 glyph count, and starts every glyph record with
the int32 character code. The legacy layout is the default for byte-exact
compatibility with existing consumers.

Write failures may leave a partial file behind. There is no checksum, so
consumers cannot distinguish a truncated file reliably other than by size.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atlasfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontatlas.export'.
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.export")
}
