package atlas

import (
	"image"
	"math/rand"
	"testing"
)

func TestShelfPacker_Basic(t *testing.T) {
	p := shelfPacker{width: 50}

	if got := p.allocate(20, 20); got != image.Pt(0, 0) {
		t.Errorf("first = %v, want (0,0)", got)
	}
	if got := p.allocate(20, 10); got != image.Pt(20, 0) {
		t.Errorf("second = %v, want (20,0)", got)
	}
	// does not fit horizontally: new shelf
	if got := p.allocate(20, 10); got != image.Pt(0, 20) {
		t.Errorf("third = %v, want (0,20)", got)
	}
	if got := p.size(); got != image.Pt(40, 30) {
		t.Errorf("size = %v, want (40,30)", got)
	}
}

func TestPack_Empty(t *testing.T) {
	pos, size := pack(nil)
	if pos != nil || size != (image.Point{}) {
		t.Errorf("pack(nil) = %v, %v", pos, size)
	}
}

func TestPack_NonOverlappingWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 7, 50, 300} {
		sizes := make([]image.Point, n)
		for i := range sizes {
			sizes[i] = image.Pt(4+rng.Intn(60), 4+rng.Intn(60))
		}
		pos, bin := pack(sizes)
		if len(pos) != n {
			t.Fatalf("n=%d: got %d positions", n, len(pos))
		}

		bounds := image.Rectangle{Max: bin}
		rects := make([]image.Rectangle, n)
		for i := range sizes {
			rects[i] = image.Rectangle{Min: pos[i], Max: pos[i].Add(sizes[i])}
			if !rects[i].In(bounds) {
				t.Errorf("n=%d: rect %d %v outside bin %v", n, i, rects[i], bounds)
			}
		}
		for i := range rects {
			for j := i + 1; j < n; j++ {
				if rects[i].Overlaps(rects[j]) {
					t.Fatalf("n=%d: rects %d %v and %d %v overlap", n, i, rects[i], j, rects[j])
				}
			}
		}
	}
}
