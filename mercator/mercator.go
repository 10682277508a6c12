// Package mercator projects geographic coordinates into the spherical
// Mercator world-pixel space used by web map tiles.
//
// World pixel (0,0) is the north-west corner of the world at the given zoom;
// the world is TileSize·2^zoom pixels wide and tall. Projection is a pure
// function: the same coordinate and zoom always produce the same pixels.
package mercator

import (
	"image"
	"math"

	"github.com/paulmach/orb"
)

const (
	// TileSize is the edge length of one map tile in pixels.
	TileSize = 256

	// EarthRadius is the WGS84 semi-major axis in meters.
	EarthRadius = 6378137.0

	// MaxLatitude is the latitude at which the Mercator world becomes square.
	// Latitudes are clamped to ±MaxLatitude before projection.
	MaxLatitude = 85.0511287798
)

const deg = math.Pi / 180

// WorldSize returns the width (and height) of the world in pixels at zoom.
func WorldSize(zoom float64) float64 {
	return TileSize * math.Pow(2, zoom)
}

// Project converts p (lon, lat) to absolute world pixels at zoom.
//
// The computation goes through planar Mercator meters first so that the
// result rounds exactly like the host map's own projection.
func Project(p orb.Point, zoom float64) (x, y float64) {
	lat := math.Max(math.Min(MaxLatitude, p.Lat()), -MaxLatitude)
	sin := math.Sin(lat * deg)
	mx := EarthRadius * p.Lon() * deg
	my := EarthRadius * math.Log((1+sin)/(1-sin)) / 2

	scale := WorldSize(zoom)
	k := 0.5 / (math.Pi * EarthRadius)
	return scale * (k*mx + 0.5), scale * (-k*my + 0.5)
}

// Unproject converts absolute world pixels at zoom back to (lon, lat).
func Unproject(x, y, zoom float64) orb.Point {
	scale := WorldSize(zoom)
	k := math.Pi * EarthRadius * 2
	mx := (x/scale - 0.5) * k
	my := (0.5 - y/scale) * k

	lon := mx / EarthRadius / deg
	lat := (2*math.Atan(math.Exp(my/EarthRadius)) - math.Pi/2) / deg
	return orb.Point{lon, lat}
}

// ProjectRounded projects p and rounds each axis to the nearest pixel.
func ProjectRounded(p orb.Point, zoom float64) image.Point {
	x, y := Project(p, zoom)
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// Origin returns the world-pixel position of the top-left corner of a
// buffer of the given logical size centered on center. The origin is rounded
// before any per-marker position is subtracted from it.
func Origin(center orb.Point, zoom float64, size image.Point) image.Point {
	x, y := Project(center, zoom)
	return image.Pt(
		int(math.Round(x-float64(size.X)/2)),
		int(math.Round(y-float64(size.Y)/2)),
	)
}
