package main

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/gogpu/markers"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeFile(t, "markerview.toml", `
count = 250
center = [30.3, 59.9]
zoom = 11.0
frame_budget = "4ms"
icons = ["a.png", "b.png"]
debug = true
`)
	cfg, err := loadConfig(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Count != 250 || cfg.Zoom != 11 || !cfg.Debug {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Center != [2]float64{30.3, 59.9} {
		t.Errorf("Center = %v", cfg.Center)
	}
	if cfg.FrameBudget.Duration != 4*time.Millisecond {
		t.Errorf("FrameBudget = %v", cfg.FrameBudget)
	}
	if len(cfg.Icons) != 2 {
		t.Errorf("Icons = %v", cfg.Icons)
	}
	// Unset keys keep their defaults.
	if cfg.BufferFactor != 0.5 || cfg.LogLevel != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")
	if _, err := loadConfig(missing, true); err != nil {
		t.Errorf("optional missing file: %v", err)
	}
	if _, err := loadConfig(missing, false); err == nil {
		t.Error("required missing file loaded")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad duration": `frame_budget = "soon"`,
		"zero budget":  `frame_budget = "0s"`,
		"zoom":         `zoom = 30.0`,
		"count":        `count = -1`,
		"factor":       `buffer_factor = -0.5`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(writeFile(t, "c.toml", data), false); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug") != slog.LevelDebug || parseLevel("WARN") != slog.LevelWarn {
		t.Error("known levels not parsed")
	}
	if parseLevel("chatty") != slog.LevelInfo {
		t.Error("unknown level should fall back to info")
	}
}

func TestReadMarkers(t *testing.T) {
	p := writeFile(t, "points.geojson", `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"icon": 1}, "geometry": {"type": "Point", "coordinates": [37.6, 55.7]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "MultiPoint", "coordinates": [[1, 2], [3, 4]]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[1, 2], [3, 4]]}}
  ]
}`)
	ms, err := readMarkers(p)
	if err != nil {
		t.Fatal(err)
	}
	want := []markers.Marker{
		{Position: orb.Point{37.6, 55.7}, Icon: 1},
		{Position: orb.Point{1, 2}},
		{Position: orb.Point{3, 4}},
	}
	if len(ms) != len(want) {
		t.Fatalf("got %d markers, want %d", len(ms), len(want))
	}
	for i := range want {
		if ms[i].Position != want[i].Position || ms[i].Icon != want[i].Icon {
			t.Errorf("marker %d = %+v, want %+v", i, ms[i], want[i])
		}
	}

	if _, err := readMarkers(writeFile(t, "bad.geojson", "{")); err == nil {
		t.Error("malformed GeoJSON accepted")
	}
}

func TestRandomMarkers(t *testing.T) {
	center := orb.Point{10, 20}
	a := randomMarkers(100, 7, center, 0.5)
	b := randomMarkers(100, 7, center, 0.5)
	if len(a) != 100 {
		t.Fatalf("len = %d", len(a))
	}
	for i := range a {
		if a[i].Position != b[i].Position || a[i].Icon != b[i].Icon {
			t.Fatalf("marker %d differs between runs with the same seed", i)
		}
		p := a[i].Position
		if p.Lon() < 9.5 || p.Lon() > 10.5 || p.Lat() < 19.75 || p.Lat() > 20.25 {
			t.Errorf("marker %d at %v is outside the spread", i, p)
		}
	}
	if a[0].Icon != 1 || a[1].Icon != 0 || a[7].Icon != 1 {
		t.Error("every seventh marker should use icon 1")
	}
}

func TestBuildAtlas_Pins(t *testing.T) {
	a, err := buildAtlas(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if len(a.Sprites()) != 2 {
		t.Fatalf("sprites = %d", len(a.Sprites()))
	}
	s, _ := a.Sprite(0)
	if s.Size != image.Pt(4, 6) {
		t.Errorf("pin size = %v", s.Size)
	}
}

func TestPin(t *testing.T) {
	img := pin(4, 6)
	opaque := func(x, y int) bool { return img.RGBAAt(x, y).A == 0xff }
	if !opaque(2, 2) {
		t.Error("disc center not filled")
	}
	if !opaque(2, 5) || opaque(0, 5) {
		t.Error("stem should be one pixel wide")
	}
}

func TestBraille(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	for y := 0; y < 4; y++ {
		img.Set(0, y, color.White)
	}
	b := newBrailleBuf(2, 1)
	b.drawFrame(markers.Frame{Image: img, PixelRatio: 1}, 0, 0)
	lines := b.toLines()
	// Left column of the first cell: dots 1, 2, 3 and 7.
	if got, want := lines[0], string([]rune{0x2847, ' '}); got != want {
		t.Errorf("lines[0] = %q, want %q", got, want)
	}

	b = newBrailleBuf(2, 1)
	b.drawFrame(markers.Frame{Image: img, PixelRatio: 1}, 2, 0)
	if got, want := b.toLines()[0], string([]rune{' ', 0x2847}); got != want {
		t.Errorf("panned: lines[0] = %q, want %q", got, want)
	}
}

func TestMapView(t *testing.T) {
	v := &mapView{center: orb.Point{0, 0}, zoom: 3, cols: 10, rows: 5}
	if v.Size() != image.Pt(20, 20) {
		t.Errorf("Size = %v", v.Size())
	}

	v.pan(8, -4)
	x, y := v.ContainerToLayer(0, 0)
	if x != 8 || y != -4 {
		t.Errorf("ContainerToLayer(0, 0) = %v, %v, want 8, -4", x, y)
	}
	if v.center.Lon() <= 0 || v.center.Lat() <= 0 {
		t.Errorf("center after pan = %v", v.center)
	}

	// The view center maps back to the center.
	c := v.at(10, 10)
	if d := c.Lon() - v.center.Lon(); d > 1e-9 || d < -1e-9 {
		t.Errorf("at(center) = %v, want %v", c, v.center)
	}

	v.setZoom(40)
	if v.zoom != 22 {
		t.Errorf("zoom = %v, want clamped 22", v.zoom)
	}

	v.Present(markers.Frame{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))})
	v.Clear()
	if v.shown {
		t.Error("Clear kept the frame")
	}
}
