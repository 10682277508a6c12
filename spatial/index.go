// Package spatial provides the bounding-box index used for marker hit tests.
//
// An Index is rebuilt wholesale from the boxes produced by one completed
// render pass; it is never updated incrementally.
package spatial

import (
	"github.com/tidwall/rtree"
)

// Box is the bounding box of one drawn marker in buffer-local device pixels.
// Index is the marker's position in the caller's marker slice.
type Box struct {
	Index                  int
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether the point lies inside b. Both edges are inclusive.
func (b Box) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Inflate returns b grown by m on every side.
func (b Box) Inflate(m float64) Box {
	return Box{Index: b.Index, MinX: b.MinX - m, MinY: b.MinY - m, MaxX: b.MaxX + m, MaxY: b.MaxY + m}
}

// Index answers point and box queries over a set of marker boxes.
//
// The zero value is an empty index ready to use. An Index is not safe for
// concurrent use; readers and the rebuilding writer must be serialized.
type Index struct {
	tree rtree.RTreeG[int]
	n    int
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// Rebuild replaces the contents of the index with boxes.
func (ix *Index) Rebuild(boxes []Box) {
	ix.tree = rtree.RTreeG[int]{}
	for _, b := range boxes {
		ix.tree.Insert([2]float64{b.MinX, b.MinY}, [2]float64{b.MaxX, b.MaxY}, b.Index)
	}
	ix.n = len(boxes)
}

// Clear empties the index.
func (ix *Index) Clear() {
	ix.tree = rtree.RTreeG[int]{}
	ix.n = 0
}

// Len returns the number of indexed boxes.
func (ix *Index) Len() int {
	return ix.n
}

// SearchPoint returns the marker indices whose boxes contain (x, y).
// The result is empty, never nil, when nothing matches. Order is unspecified.
func (ix *Index) SearchPoint(x, y float64) []int {
	return ix.SearchBox(x, y, x, y)
}

// SearchBox returns the marker indices whose boxes intersect the query box.
func (ix *Index) SearchBox(minX, minY, maxX, maxY float64) []int {
	return ix.AppendSearch([]int{}, minX, minY, maxX, maxY)
}

// AppendSearch appends matches to dst and returns the extended slice.
// Reusing dst avoids allocations for high-rate pointer queries.
func (ix *Index) AppendSearch(dst []int, minX, minY, maxX, maxY float64) []int {
	if ix.n == 0 {
		return dst
	}
	ix.tree.Search([2]float64{minX, minY}, [2]float64{maxX, maxY},
		func(_, _ [2]float64, index int) bool {
			dst = append(dst, index)
			return true
		},
	)
	return dst
}
