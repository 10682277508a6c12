package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/atlas"
	"github.com/gogpu/markers/imageio"
)

// readMarkers reads the points of a GeoJSON feature collection. A feature's
// integer "icon" property selects its sprite.
func readMarkers(path string) ([]markers.Marker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var out []markers.Marker
	for _, f := range fc.Features {
		icon := f.Properties.MustInt("icon", 0)
		switch g := f.Geometry.(type) {
		case orb.Point:
			out = append(out, markers.Marker{Position: g, Icon: icon})
		case orb.MultiPoint:
			for _, p := range g {
				out = append(out, markers.Marker{Position: p, Icon: icon})
			}
		}
	}
	return out, nil
}

// randomMarkers scatters n markers within about spread degrees of center.
// Every seventh marker uses icon 1.
func randomMarkers(n int, seed uint64, center orb.Point, spread float64) []markers.Marker {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]markers.Marker, n)
	for i := range out {
		// Denser toward the center.
		r := spread * math.Sqrt(rng.Float64())
		a := 2 * math.Pi * rng.Float64()
		out[i] = markers.Marker{
			Position: orb.Point{center.Lon() + r*math.Cos(a), center.Lat() + r*math.Sin(a)/2},
		}
		if i%7 == 0 {
			out[i].Icon = 1
		}
	}
	return out
}

// buildAtlas loads the icon files, or draws two pins when there are none.
func buildAtlas(ctx context.Context, paths []string) (*atlas.Atlas, error) {
	if len(paths) == 0 {
		bottom := &atlas.Vec2{X: 0.5, Y: 1}
		return atlas.New([]atlas.Icon{
			{Image: atlas.Loaded(pin(4, 6)), Anchor: bottom, InteractiveMargin: 1},
			{Image: atlas.Loaded(pin(6, 8)), Anchor: bottom},
		}), nil
	}

	files, err := imageio.LoadAll(ctx, paths, 4)
	if err != nil {
		return nil, err
	}
	icons := make([]atlas.Icon, len(files))
	for i, f := range files {
		icons[i] = atlas.Icon{Image: f, Anchor: &atlas.Vec2{X: 0.5, Y: 1}}
	}
	return atlas.New(icons), nil
}

// pin draws a filled pin of the given size: a disc over a one pixel stem.
func pin(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fg := color.RGBA{0xff, 0xff, 0xff, 0xff}
	r := float64(w) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r || (y >= w && x == w/2) {
				img.SetRGBA(x, y, fg)
			}
		}
	}
	return img
}
