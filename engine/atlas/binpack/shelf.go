package binpack

// Shelf implements shelf-based rectangle packing.
//
// Rectangles are organized in horizontal shelves. Each shelf is as high as
// the tallest rectangle placed on it so far. New rectangles go left-to-right
// onto the first shelf they fit, the last shelf may grow in height, and a new
// shelf is opened below the last one if none fits. Shelf never rotates.
type Shelf struct {
	width    int
	height   int
	shelves  []shelf
	usedArea int
}

// shelf represents a horizontal strip in the bin.
type shelf struct {
	y      int // top of shelf
	height int // height of the tallest rectangle so far
	x      int // next free x position
}

var _ Packer = &Shelf{}

// NewShelf creates a shelf packer for a w×h bin.
func NewShelf(w, h int) *Shelf {
	return &Shelf{
		width:   w,
		height:  h,
		shelves: make([]shelf, 0, 16),
	}
}

// Insert places a w×h rectangle.
func (s *Shelf) Insert(w, h int) (Rect, bool) {
	if w <= 0 || h <= 0 || w > s.width {
		return Rect{}, false
	}
	for i := range s.shelves {
		sh := &s.shelves[i]
		if sh.x+w > s.width {
			continue
		}
		if h > sh.height {
			// only the last shelf may grow, if there is room below
			if i < len(s.shelves)-1 || sh.y+h > s.height {
				continue
			}
			sh.height = h
		}
		return s.take(sh, w, h), true
	}
	y := 0
	if n := len(s.shelves); n > 0 {
		y = s.shelves[n-1].y + s.shelves[n-1].height
	}
	if y+h > s.height {
		tracer().Debugf("no shelf space for %d×%d", w, h)
		return Rect{}, false
	}
	s.shelves = append(s.shelves, shelf{y: y, height: h})
	return s.take(&s.shelves[len(s.shelves)-1], w, h), true
}

func (s *Shelf) take(sh *shelf, w, h int) Rect {
	r := Rect{X: sh.x, Y: sh.y, W: w, H: h}
	sh.x += w
	s.usedArea += w * h
	return r
}

// Occupancy returns the ratio of used area to bin area.
func (s *Shelf) Occupancy() float64 {
	return float64(s.usedArea) / float64(s.width*s.height)
}

// ShelfCount returns the number of shelves currently in use.
func (s *Shelf) ShelfCount() int {
	return len(s.shelves)
}
