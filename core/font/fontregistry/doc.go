/*
Package fontregistry caches loaded fonts and the type cases prepared from
them.

Fonts are stored under a lookup key, usually the normalized font name or a
file path. Type cases are cached per key, pixel size and rasterizer and are
shared by all clients of a registry; clients must not close them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontatlas.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.fonts")
}
