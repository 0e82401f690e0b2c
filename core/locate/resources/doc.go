/*
Package resources resolves fonts for the atlas generator.

A font may be given as a file path, as the name of one of the Go fonts
packaged with golang.org/x/image (e.g. "Go Regular" or "gomono"), or as the
name of a font installed on the system.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontatlas.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontatlas.resources")
}
