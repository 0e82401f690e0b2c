package binpack

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/fontatlas/core"
)

// Heuristic selects the free rectangle a MaxRects packer places into.
type Heuristic int

// Free rectangle choice heuristics
const (
	BestShortSideFit Heuristic = iota // minimize the shorter leftover side
	BestLongSideFit                   // minimize the longer leftover side
	BestAreaFit                       // minimize the leftover area
	BottomLeft                        // Tetris-like, lowest top edge first
	ContactPoint                      // maximize contact with bin edges and placed rects
)

var heuristicNames = []string{"bssf", "blsf", "baf", "bl", "cp"}

func (h Heuristic) String() string {
	if h >= 0 && int(h) < len(heuristicNames) {
		return heuristicNames[h]
	}
	return fmt.Sprintf("Heuristic(%d)", int(h))
}

// ParseHeuristic returns the heuristic for a short name (bssf, blsf, baf, bl, cp).
func ParseHeuristic(name string) (Heuristic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BestShortSideFit, nil
	}
	for i, n := range heuristicNames {
		if n == name {
			return Heuristic(i), nil
		}
	}
	return BestShortSideFit, core.Error(core.EINVALID, "unknown packing heuristic: %s", name)
}

// MaxRects is a maximal rectangles bin packer.
//
// The free space of the bin is kept as a list of possibly overlapping maximal
// rectangles. Every placement splits all free rectangles it intersects and
// the list is pruned of rectangles contained in others.
type MaxRects struct {
	width, height int
	heuristic     Heuristic
	rotate        bool
	used          []Rect
	free          []Rect
	usedArea      int
}

var _ Packer = &MaxRects{}

// NewMaxRects creates a packer for a w×h bin. If rotate is set, rectangles may
// be placed rotated by 90°.
func NewMaxRects(w, h int, heuristic Heuristic, rotate bool) *MaxRects {
	m := &MaxRects{
		width:     w,
		height:    h,
		heuristic: heuristic,
		rotate:    rotate,
	}
	m.free = append(m.free, Rect{X: 0, Y: 0, W: w, H: h})
	return m
}

// Insert places a w×h rectangle.
func (m *MaxRects) Insert(w, h int) (Rect, bool) {
	if w <= 0 || h <= 0 {
		return Rect{}, false
	}
	var node Rect
	switch m.heuristic {
	case BestLongSideFit:
		node = m.findPosition(w, h, longSideScore)
	case BestAreaFit:
		node = m.findPosition(w, h, areaScore)
	case BottomLeft:
		node = m.findPosition(w, h, bottomLeftScore)
	case ContactPoint:
		node = m.findPosition(w, h, m.contactPointScore)
	default:
		node = m.findPosition(w, h, shortSideScore)
	}
	if node.H <= 0 {
		tracer().Debugf("no free space for %d×%d", w, h)
		return Rect{}, false
	}
	m.place(node)
	return node, true
}

// Occupancy returns the ratio of used area to bin area.
func (m *MaxRects) Occupancy() float64 {
	return float64(m.usedArea) / float64(m.width*m.height)
}

// Used returns the rectangles placed so far.
func (m *MaxRects) Used() []Rect {
	return m.used
}

// scoreFunc rates placing a w×h rectangle at the top-left of a free
// rectangle. Lower scores are better; the second value breaks ties.
type scoreFunc func(free Rect, w, h int) (int, int)

func shortSideScore(free Rect, w, h int) (int, int) {
	dx, dy := abs(free.W-w), abs(free.H-h)
	return min(dx, dy), max(dx, dy)
}

func longSideScore(free Rect, w, h int) (int, int) {
	dx, dy := abs(free.W-w), abs(free.H-h)
	return max(dx, dy), min(dx, dy)
}

func areaScore(free Rect, w, h int) (int, int) {
	dx, dy := abs(free.W-w), abs(free.H-h)
	return free.W*free.H - w*h, min(dx, dy)
}

func bottomLeftScore(free Rect, w, h int) (int, int) {
	return free.Y + h, free.X
}

// contactPointScore negates the contact length, as larger contact is better.
func (m *MaxRects) contactPointScore(free Rect, w, h int) (int, int) {
	return -m.contactLength(free.X, free.Y, w, h), 0
}

func (m *MaxRects) findPosition(w, h int, score scoreFunc) Rect {
	var best Rect
	best1, best2 := math.MaxInt, math.MaxInt
	try := func(free Rect, w, h int) {
		s1, s2 := score(free, w, h)
		if s1 < best1 || (s1 == best1 && s2 < best2) {
			best = Rect{X: free.X, Y: free.Y, W: w, H: h}
			best1, best2 = s1, s2
		}
	}
	for _, free := range m.free {
		if free.W >= w && free.H >= h {
			try(free, w, h)
		}
		if m.rotate && w != h && free.W >= h && free.H >= w {
			try(free, h, w)
		}
	}
	return best
}

func (m *MaxRects) contactLength(x, y, w, h int) int {
	length := 0
	if x == 0 || x+w == m.width {
		length += h
	}
	if y == 0 || y+h == m.height {
		length += w
	}
	for _, u := range m.used {
		if u.X == x+w || u.X+u.W == x {
			length += commonInterval(u.Y, u.Y+u.H, y, y+h)
		}
		if u.Y == y+h || u.Y+u.H == y {
			length += commonInterval(u.X, u.X+u.W, x, x+w)
		}
	}
	return length
}

func commonInterval(start1, end1, start2, end2 int) int {
	if end1 < start2 || end2 < start1 {
		return 0
	}
	return min(end1, end2) - max(start1, start2)
}

func (m *MaxRects) place(node Rect) {
	var split []Rect
	kept := m.free[:0]
	for _, free := range m.free {
		if node.Overlaps(free) {
			split = splitFree(free, node, split)
		} else {
			kept = append(kept, free)
		}
	}
	m.free = append(kept, split...)
	m.prune()
	m.used = append(m.used, node)
	m.usedArea += node.W * node.H
	tracer().Debugf("placed %s, %d free rectangles", node, len(m.free))
}

// splitFree appends the parts of free not covered by used to parts.
func splitFree(free, used Rect, parts []Rect) []Rect {
	if used.X < free.X+free.W && used.X+used.W > free.X {
		if used.Y > free.Y && used.Y < free.Y+free.H { // above used
			r := free
			r.H = used.Y - r.Y
			parts = append(parts, r)
		}
		if used.Y+used.H < free.Y+free.H { // below used
			r := free
			r.Y = used.Y + used.H
			r.H = free.Y + free.H - r.Y
			parts = append(parts, r)
		}
	}
	if used.Y < free.Y+free.H && used.Y+used.H > free.Y {
		if used.X > free.X && used.X < free.X+free.W { // left of used
			r := free
			r.W = used.X - r.X
			parts = append(parts, r)
		}
		if used.X+used.W < free.X+free.W { // right of used
			r := free
			r.X = used.X + used.W
			r.W = free.X + free.W - r.X
			parts = append(parts, r)
		}
	}
	return parts
}

// prune removes free rectangles which are contained in other ones.
func (m *MaxRects) prune() {
	for i := 0; i < len(m.free); i++ {
		for j := i + 1; j < len(m.free); j++ {
			if m.free[j].Contains(m.free[i]) {
				m.free = append(m.free[:i], m.free[i+1:]...)
				i--
				break
			}
			if m.free[i].Contains(m.free[j]) {
				m.free = append(m.free[:j], m.free[j+1:]...)
				j--
			}
		}
	}
}
