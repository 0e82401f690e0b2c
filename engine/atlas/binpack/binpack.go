package binpack

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontatlas/core"
)

// Rect is a placed rectangle. X and Y denote the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %d×%d)", r.X, r.Y, r.W, r.H)
}

// Contains is true if o lies completely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Overlaps is true if r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Packer places rectangles into a bin.
//
// Insert returns the placement for a rectangle of size w×h. If the packer
// rotated the rectangle, the placement has W==h and H==w. If no free space
// fits the rectangle, Insert returns a zero-height Rect and false.
type Packer interface {
	Insert(w, h int) (Rect, bool)
	Occupancy() float64 // ratio of used area to bin area
}

// Kind selects a packing algorithm.
type Kind int

// Packing algorithms
const (
	MaxRectsKind Kind = iota
	ShelfKind
)

func (k Kind) String() string {
	switch k {
	case MaxRectsKind:
		return "maxrects"
	case ShelfKind:
		return "shelf"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the packing algorithm for a name ("maxrects" or "shelf").
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "maxrects":
		return MaxRectsKind, nil
	case "shelf":
		return ShelfKind, nil
	}
	return MaxRectsKind, core.Error(core.EINVALID, "unknown packer: %s", name)
}

// New creates a packer for a w×h bin. Heuristic and rotation apply to
// MaxRects only.
func New(kind Kind, w, h int, heuristic Heuristic, rotate bool) (Packer, error) {
	if w <= 0 || h <= 0 {
		return nil, core.Error(core.EINVALID, "bin size must be positive, is %d×%d", w, h)
	}
	switch kind {
	case MaxRectsKind:
		return NewMaxRects(w, h, heuristic, rotate), nil
	case ShelfKind:
		return NewShelf(w, h), nil
	}
	return nil, core.Error(core.EINVALID, "unknown packer %s", kind)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
