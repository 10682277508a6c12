package atlas

import (
	"cmp"
	"image"
	"math"
	"slices"
)

// shelfPacker places rectangles on horizontal shelves of a bin with a fixed
// width and an unbounded height. Each shelf is as tall as the first (and
// therefore tallest, given height-sorted input) rectangle placed on it.
type shelfPacker struct {
	width   int
	shelves []shelf
	usedW   int // widest shelf extent so far
}

// shelf represents a horizontal strip in the bin.
type shelf struct {
	y      int // Y position of shelf top
	height int // height of the shelf
	x      int // next free X position
}

// allocate returns the position for a w×h rectangle, starting a new shelf
// below the last one when no existing shelf has room.
func (p *shelfPacker) allocate(w, h int) image.Point {
	for i := range p.shelves {
		s := &p.shelves[i]
		if h <= s.height && s.x+w <= p.width {
			pt := image.Pt(s.x, s.y)
			s.x += w
			p.usedW = max(p.usedW, s.x)
			return pt
		}
	}

	y := 0
	if n := len(p.shelves); n > 0 {
		y = p.shelves[n-1].y + p.shelves[n-1].height
	}
	p.shelves = append(p.shelves, shelf{y: y, height: h, x: w})
	p.usedW = max(p.usedW, w)
	return image.Pt(0, y)
}

// size returns the bounding size of everything placed so far.
func (p *shelfPacker) size() image.Point {
	if len(p.shelves) == 0 {
		return image.Point{}
	}
	last := p.shelves[len(p.shelves)-1]
	return image.Pt(p.usedW, last.y+last.height)
}

// pack places every rectangle and returns their positions in input order
// together with the size of the resulting bin. The bin is roughly square:
// its width is the larger of the widest rectangle and the square root of
// the total area.
func pack(sizes []image.Point) ([]image.Point, image.Point) {
	if len(sizes) == 0 {
		return nil, image.Point{}
	}

	area, widest := 0, 0
	order := make([]int, len(sizes))
	for i, s := range sizes {
		order[i] = i
		area += s.X * s.Y
		widest = max(widest, s.X)
	}
	// Tallest first keeps shelves dense.
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(sizes[b].Y, sizes[a].Y)
	})

	p := shelfPacker{width: max(widest, int(math.Ceil(math.Sqrt(float64(area)))))}
	out := make([]image.Point, len(sizes))
	for _, i := range order {
		out[i] = p.allocate(sizes[i].X, sizes[i].Y)
	}
	return out, p.size()
}
