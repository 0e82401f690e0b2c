/*
Package binpack places rectangles into a fixed-size bin.

Packers implement the Packer interface: rectangles are inserted one at a time
and each insertion either succeeds with a placement or fails because no free
space is left for it. Two algorithms are provided:

MaxRects keeps a list of maximal free rectangles and chooses among them by a
heuristic (best short side fit by default). It may rotate a rectangle by 90°;
a rotated placement is reported with width and height swapped.

Shelf places rectangles left to right on horizontal shelves and never rotates.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package binpack

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontatlas.binpack'.
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.binpack")
}
