package main

import (
	"image"
	"math"

	"github.com/paulmach/orb"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/mercator"
)

// Every terminal cell shows 2x4 braille dots; one dot is one logical pixel.
const (
	dotsX = 2
	dotsY = 4
)

// mapView is a terminal map: a center and zoom, and the offset of the map
// pane in the terminal since it was created.
type mapView struct {
	center     orb.Point
	zoom       float64
	cols, rows int

	// Offset of the layer frame in container pixels.
	panX, panY float64

	frame markers.Frame
	shown bool
}

var (
	_ markers.MapView   = (*mapView)(nil)
	_ markers.Container = (*mapView)(nil)
)

func (v *mapView) Center() orb.Point   { return v.center }
func (v *mapView) Zoom() float64       { return v.zoom }
func (v *mapView) PixelRatio() float64 { return 1 }

func (v *mapView) Size() image.Point {
	return image.Pt(v.cols*dotsX, v.rows*dotsY)
}

func (v *mapView) ContainerToLayer(x, y float64) (float64, float64) {
	return x - v.panX, y - v.panY
}

func (v *mapView) Present(f markers.Frame) {
	v.frame = f
	v.shown = true
}

func (v *mapView) Clear() {
	v.frame = markers.Frame{}
	v.shown = false
}

// pan moves the view by (dx, dy) logical pixels. The map content, and the
// presented frame with it, moves the opposite way.
func (v *mapView) pan(dx, dy int) {
	x, y := mercator.Project(v.center, v.zoom)
	v.center = mercator.Unproject(x+float64(dx), y+float64(dy), v.zoom)
	v.panX -= float64(dx)
	v.panY -= float64(dy)
}

// setZoom changes the zoom level, clamped to [0, 22].
func (v *mapView) setZoom(z float64) {
	v.zoom = math.Max(0, math.Min(22, z))
}

// at returns the geographic position under the container pixel (x, y).
func (v *mapView) at(x, y float64) orb.Point {
	cx, cy := mercator.Project(v.center, v.zoom)
	s := v.Size()
	return mercator.Unproject(cx+x-float64(s.X)/2, cy+y-float64(s.Y)/2, v.zoom)
}

// dots renders the presented frame as braille lines.
func (v *mapView) dots() []string {
	b := newBrailleBuf(v.cols, v.rows)
	if v.shown && v.frame.Image != nil {
		b.drawFrame(v.frame, v.panX, v.panY)
	}
	return b.toLines()
}
