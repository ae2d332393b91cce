package atlas

// shelfPacker places glyph bitmaps into horizontal shelves. Glyphs fill the
// current shelf left to right; a glyph that does not fit starts a new shelf
// below. Shelf height grows to the tallest glyph placed on it.
//
// A rectangle at the origin can be reserved before packing starts; shelves
// overlapping it begin to the right of the reserved width.
type shelfPacker struct {
	width   int
	height  int
	padding int

	reservedW int
	reservedH int

	shelves []shelf
}

type shelf struct {
	y      int
	height int
	x      int
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// reserve excludes a w x h rectangle at the origin from packing. Must be
// called before the first alloc.
func (p *shelfPacker) reserve(w, h int) {
	p.reservedW = w + p.padding
	p.reservedH = h + p.padding
}

// startX returns the left edge for a shelf spanning [y, y+h).
func (p *shelfPacker) startX(y, h int) int {
	if y < p.reservedH {
		return p.reservedW
	}
	return 0
}

// alloc finds space for a w x h bitmap. Returns the top-left corner, or
// ok=false when the atlas is full.
func (p *shelfPacker) alloc(w, h int) (x, y int, ok bool) {
	paddedW := w + p.padding
	paddedH := h + p.padding

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+paddedW > p.width {
			continue
		}
		if h > s.height {
			// Only the bottom shelf may grow to fit a taller glyph.
			if i != len(p.shelves)-1 || s.y+paddedH > p.height {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += paddedW
		return x, y, true
	}

	newY := 0
	if len(p.shelves) > 0 {
		last := p.shelves[len(p.shelves)-1]
		newY = last.y + last.height + p.padding
	}
	if newY+paddedH > p.height {
		return -1, -1, false
	}

	x = p.startX(newY, h)
	if x+paddedW > p.width {
		return -1, -1, false
	}
	p.shelves = append(p.shelves, shelf{y: newY, height: h, x: x + paddedW})
	return x, newY, true
}
