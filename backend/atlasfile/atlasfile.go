package atlasfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/fontatlas/core"
	"github.com/npillmayer/fontatlas/engine/atlas"
)

// Layout selects the file layout.
type Layout int

// File layouts
const (
	Legacy    Layout = iota // no header, fixed character set
	Versioned               // magic, version and per-glyph character codes
)

func (l Layout) String() string {
	switch l {
	case Legacy:
		return "legacy"
	case Versioned:
		return "versioned"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout returns the layout for a name (legacy, versioned).
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return Legacy, nil
	case "versioned", "v1":
		return Versioned, nil
	}
	return Legacy, core.Error(core.EINVALID, "unknown atlas file layout: %s", name)
}

// Magic starts files in the versioned layout.
const Magic = "FTAT"

// Version is the version of the versioned layout written by this package.
const Version uint32 = 1

const recordFields = 8

var order = binary.LittleEndian

// Write serializes an atlas.
func Write(w io.Writer, a *atlas.Atlas, layout Layout) error {
	if a == nil {
		return core.Error(core.EINVALID, "cannot write nil atlas")
	}
	if a.Width <= 0 || a.Height <= 0 || a.Width > MaxTextureSize || a.Height > MaxTextureSize {
		return core.Error(core.EINVALID, "atlas size %d×%d outside of 1…%d",
			a.Width, a.Height, MaxTextureSize)
	}
	if len(a.Pixels) != a.Width*a.Height {
		return core.Error(core.EINVALID, "atlas buffer has %d bytes, expected %d",
			len(a.Pixels), a.Width*a.Height)
	}
	if layout == Legacy && len(a.Glyphs) != atlas.CharSetSize {
		return core.Error(core.EINVALID, "legacy layout requires %d glyphs, atlas has %d",
			atlas.CharSetSize, len(a.Glyphs))
	}
	bw := bufio.NewWriter(w)
	var err error
	put := func(v any) {
		if err == nil {
			err = binary.Write(bw, order, v)
		}
	}
	if layout == Versioned {
		put([]byte(Magic))
		put(Version)
		put(uint32(len(a.Glyphs)))
	}
	put([2]int32{int32(a.Width), int32(a.Height)})
	for i := range a.Glyphs {
		g := &a.Glyphs[i]
		if layout == Versioned {
			put(int32(g.Char))
		}
		put(record(g))
	}
	put(a.Pixels)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return core.WrapError(err, core.EIO, "could not write atlas")
	}
	tracer().Debugf("wrote %s atlas %d×%d with %d glyphs", layout, a.Width, a.Height, len(a.Glyphs))
	return nil
}

func record(g *atlas.Glyph) [recordFields]int32 {
	x, y := int32(-1), int32(-1)
	if g.Placed && !g.Empty() {
		x, y = int32(g.Position.X), int32(g.Position.Y)
	}
	flipped := int32(0)
	if g.Flipped {
		flipped = 1
	}
	return [recordFields]int32{
		x, y,
		int32(g.Size.W), int32(g.Size.H),
		int32(g.Offset.X), int32(g.Offset.Y),
		int32(g.Advance),
		flipped,
	}
}

// WriteFile writes an atlas to a file at path.
func WriteFile(path string, a *atlas.Atlas, layout Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EIO, "could not open output file %s", path)
	}
	if err = Write(f, a, layout); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return core.WrapError(err, core.EIO, "could not close output file %s", path)
	}
	tracer().Infof("atlas written to %s", path)
	return nil
}

// MaxTextureSize is the largest texture width and height Write and Read accept.
// It guards Read against allocating buffers for corrupt headers.
const MaxTextureSize = 1 << 14

// Read deserializes an atlas. Glyphs written at (-1, -1) are read as
// unplaced with a zero position.
func Read(r io.Reader, layout Layout) (*atlas.Atlas, error) {
	br := bufio.NewReader(r)
	count := atlas.CharSetSize
	if layout == Versioned {
		var head struct {
			Magic   [4]byte
			Version uint32
			Count   uint32
		}
		if err := binary.Read(br, order, &head); err != nil {
			return nil, readError(err, "header")
		}
		if string(head.Magic[:]) != Magic {
			return nil, core.Error(core.EIO, "not an atlas file, magic is %q", head.Magic[:])
		}
		if head.Version != Version {
			return nil, core.Error(core.EIO, "unsupported atlas file version %d", head.Version)
		}
		if head.Count > 1<<16 {
			return nil, core.Error(core.EIO, "atlas file has implausible glyph count %d", head.Count)
		}
		count = int(head.Count)
	}
	var size [2]int32
	if err := binary.Read(br, order, &size); err != nil {
		return nil, readError(err, "texture size")
	}
	w, h := int(size[0]), int(size[1])
	if w <= 0 || h <= 0 || w > MaxTextureSize || h > MaxTextureSize {
		return nil, core.Error(core.EIO, "atlas file has invalid texture size %d×%d", w, h)
	}
	a := &atlas.Atlas{Width: w, Height: h, Glyphs: make([]atlas.Glyph, count)}
	for i := range a.Glyphs {
		c := int32(atlas.FirstChar) + int32(i)
		if layout == Versioned {
			if err := binary.Read(br, order, &c); err != nil {
				return nil, readError(err, "character code")
			}
		}
		var rec [recordFields]int32
		if err := binary.Read(br, order, &rec); err != nil {
			return nil, readError(err, "glyph record")
		}
		a.Glyphs[i] = glyph(byte(c), rec)
	}
	a.Pixels = make([]byte, w*h)
	if _, err := io.ReadFull(br, a.Pixels); err != nil {
		return nil, readError(err, "pixel buffer")
	}
	return a, nil
}

func glyph(c byte, rec [recordFields]int32) atlas.Glyph {
	g := atlas.Glyph{
		Char:    c,
		Size:    atlas.Size{W: int(rec[2]), H: int(rec[3])},
		Offset:  image.Pt(int(rec[4]), int(rec[5])),
		Advance: int(rec[6]),
		Flipped: rec[7] != 0,
	}
	if rec[0] != -1 || rec[1] != -1 {
		g.Position = image.Pt(int(rec[0]), int(rec[1]))
		g.Placed = true
	}
	return g
}

func readError(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return core.WrapError(err, core.EIO, "atlas file truncated in %s", what)
	}
	return core.WrapError(err, core.EIO, "could not read %s of atlas file", what)
}

// ReadFile reads an atlas from a file at path.
func ReadFile(path string, layout Layout) (*atlas.Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EIO, "could not open atlas file %s", path)
	}
	defer f.Close()
	return Read(f, layout)
}
