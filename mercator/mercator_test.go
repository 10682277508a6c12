package mercator

import (
	"image"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestProject_KnownPoints(t *testing.T) {
	tests := []struct {
		name string
		p    orb.Point
		zoom float64
		x, y float64
	}{
		{"origin z0", orb.Point{0, 0}, 0, 128, 128},
		{"origin z3", orb.Point{0, 0}, 3, 1024, 1024},
		{"west edge", orb.Point{-180, 0}, 0, 0, 128},
		{"east edge", orb.Point{180, 0}, 0, 256, 128},
		{"north clamp", orb.Point{0, MaxLatitude}, 0, 128, 0},
		{"south clamp", orb.Point{0, -MaxLatitude}, 0, 128, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Project(tt.p, tt.zoom)
			if math.Abs(x-tt.x) > 1e-6 || math.Abs(y-tt.y) > 1e-6 {
				t.Errorf("Project(%v, %v) = (%v, %v), want (%v, %v)", tt.p, tt.zoom, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestProject_ClampsPoles(t *testing.T) {
	x1, y1 := Project(orb.Point{10, 90}, 2)
	x2, y2 := Project(orb.Point{10, MaxLatitude}, 2)
	if x1 != x2 || y1 != y2 {
		t.Errorf("pole not clamped: (%v,%v) vs (%v,%v)", x1, y1, x2, y2)
	}
	if math.IsInf(y1, 0) || math.IsNaN(y1) {
		t.Errorf("pole projected to %v", y1)
	}
	_, y3 := Project(orb.Point{10, -90}, 2)
	if math.IsInf(y3, 0) || math.IsNaN(y3) {
		t.Errorf("south pole projected to %v", y3)
	}
}

func TestProject_Pure(t *testing.T) {
	p := orb.Point{37.6173, 55.7558}
	x1, y1 := Project(p, 11.5)
	x2, y2 := Project(p, 11.5)
	if x1 != x2 || y1 != y2 {
		t.Errorf("projection not stable: (%v,%v) then (%v,%v)", x1, y1, x2, y2)
	}
}

func TestUnproject_RoundTrip(t *testing.T) {
	for _, p := range []orb.Point{{0, 0}, {37.6173, 55.7558}, {-122.4194, 37.7749}, {151.2093, -33.8688}} {
		x, y := Project(p, 10)
		got := Unproject(x, y, 10)
		if math.Abs(got.Lon()-p.Lon()) > 1e-9 || math.Abs(got.Lat()-p.Lat()) > 1e-9 {
			t.Errorf("Unproject(Project(%v)) = %v", p, got)
		}
	}
}

func TestOrigin(t *testing.T) {
	got := Origin(orb.Point{0, 0}, 1, image.Pt(100, 50))
	want := image.Pt(256-50, 256-25)
	if got != want {
		t.Errorf("Origin = %v, want %v", got, want)
	}
}

func TestProjectRounded(t *testing.T) {
	got := ProjectRounded(orb.Point{0, 0}, 0)
	if got != image.Pt(128, 128) {
		t.Errorf("ProjectRounded = %v, want (128,128)", got)
	}
}
