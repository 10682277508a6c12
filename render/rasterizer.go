// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/colornames"

	"github.com/gogpu/markers/atlas"
	"github.com/gogpu/markers/internal/logging"
	"github.com/gogpu/markers/mercator"
	"github.com/gogpu/markers/spatial"
	"github.com/gogpu/markers/surface"
)

// Marker is a point to draw.
//
// The identity of a marker is its index in the slice given to SetMarkers.
// Markers with a higher index are drawn later, on top of lower ones.
type Marker struct {
	// Position is the geographic position (longitude, latitude).
	Position orb.Point

	// Icon is the index of the sprite to draw.
	Icon int

	// DebugOffsets adds one outline per entry around the sprite when debug
	// drawing is enabled, grown by the entry in device pixels.
	DebugOffsets []float64
}

// View is the part of the host map view a Rasterizer reads.
type View interface {
	// Center returns the geographic center of the viewport.
	Center() orb.Point

	// Zoom returns the current zoom level.
	Zoom() float64

	// Size returns the viewport size in logical pixels.
	Size() image.Point

	// PixelRatio returns the number of device pixels per logical pixel.
	PixelRatio() float64
}

// SpriteSource provides the atlas image and its sprites. *atlas.Atlas
// implements it.
type SpriteSource interface {
	Image() image.Image
	Sprite(i int) (atlas.Sprite, bool)
}

// State is the state of a Rasterizer.
type State uint8

const (
	// Idle means no pass is in flight.
	Idle State = iota

	// Rendering means a pass is drawing into the building frame.
	Rendering
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// pass is the snapshot a render pass works from.
type pass struct {
	markers []Marker
	sprites SpriteSource
	image   image.Image
	debug   bool
	zoom    float64
	origin  image.Point
	cursor  int
	slices  int
	drawn   int
}

// Rasterizer draws markers into a pair of frames, a slice per scheduler
// callback.
type Rasterizer struct {
	view  View
	sched Scheduler
	opts  options

	sprites SpriteSource
	markers []Marker
	debug   bool

	visible  *Frame
	building *Frame

	viewport image.Point // logical
	margin   image.Point // logical
	ratio    float64
	bounds   image.Point // device

	state    State
	pending  bool
	frame    FrameID
	queued   bool
	perSlice int
	passes   int
	cur      pass
}

// New creates a Rasterizer for view that schedules slices with sched, and
// allocates its frames for the current viewport size.
func New(view View, sched Scheduler, opts ...Option) *Rasterizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = surface.Default()
	}
	o.maxSlice = max(o.maxSlice, o.minSlice)
	o.initialSlice = min(max(o.initialSlice, o.minSlice), o.maxSlice)

	r := &Rasterizer{
		view:     view,
		sched:    sched,
		opts:     o,
		perSlice: o.initialSlice,
	}
	r.Resize()
	return r
}

// SetSprites sets the sprite source used from the next pass on.
func (r *Rasterizer) SetSprites(s SpriteSource) {
	r.sprites = s
}

// SetMarkers sets the markers drawn from the next pass on. The slice is
// read during passes and must not be modified until a pass started after
// a later SetMarkers call.
func (r *Rasterizer) SetMarkers(markers []Marker) {
	r.markers = markers
}

// Markers returns the current marker slice.
func (r *Rasterizer) Markers() []Marker {
	return r.markers
}

// SetDebugDrawing enables outlines around every drawn marker from the next
// pass on.
func (r *Rasterizer) SetDebugDrawing(on bool) {
	r.debug = on
}

// State returns the current state.
func (r *Rasterizer) State() State {
	return r.state
}

// UpdatePending reports whether another pass will follow the one in flight.
func (r *Rasterizer) UpdatePending() bool {
	return r.pending
}

// SliceSize returns the number of markers the next slice will draw.
func (r *Rasterizer) SliceSize() int {
	return r.perSlice
}

// Visible returns the visible frame.
func (r *Rasterizer) Visible() *Frame {
	return r.visible
}

// Margin returns the buffer margin on each side of the viewport in logical
// pixels.
func (r *Rasterizer) Margin() image.Point {
	return r.margin
}

// BufferSize returns the frame size in logical pixels: the viewport plus
// the margin on each side.
func (r *Rasterizer) BufferSize() image.Point {
	return r.viewport.Add(r.margin.Mul(2))
}

// PixelRatio returns the device pixel ratio the frames were allocated for.
func (r *Rasterizer) PixelRatio() float64 {
	return r.ratio
}

// Bounds returns the frame size in device pixels.
func (r *Rasterizer) Bounds() image.Point {
	return r.bounds
}

// Search returns the markers of the visible frame whose hit-test box
// contains the device pixel (x, y) of the frame.
func (r *Rasterizer) Search(x, y float64) []int {
	return r.visible.index.SearchPoint(x, y)
}

// RequestUpdate starts a pass, or marks one as pending if a pass is already
// in flight. It returns without drawing; the first slice runs on the next
// scheduler callback.
func (r *Rasterizer) RequestUpdate() {
	if r.state == Rendering {
		r.pending = true
		return
	}
	r.start()
}

// Clear cancels the pass in flight, if any, and empties the visible frame.
func (r *Rasterizer) Clear() {
	r.cancel()
	r.visible.reset()
}

// Resize cancels the pass in flight and reallocates both frames for the
// current viewport size and pixel ratio. Both frames are empty afterwards.
func (r *Rasterizer) Resize() {
	r.cancel()
	r.closeFrames()

	r.viewport = r.view.Size()
	r.ratio = r.view.PixelRatio()
	if r.ratio <= 0 {
		r.ratio = 1
	}
	f := r.opts.bufferFactor
	r.margin = image.Point{
		X: int(math.Floor(float64(r.viewport.X) * f)),
		Y: int(math.Floor(float64(r.viewport.Y) * f)),
	}
	size := r.BufferSize()
	r.bounds = image.Point{
		X: int(math.Round(float64(size.X) * r.ratio)),
		Y: int(math.Round(float64(size.Y) * r.ratio)),
	}

	r.visible = newFrame(r.newSurface())
	r.building = newFrame(r.newSurface())
}

// Close cancels the pass in flight and releases both frames.
func (r *Rasterizer) Close() {
	r.cancel()
	r.closeFrames()
}

func (r *Rasterizer) closeFrames() {
	if r.visible != nil {
		r.visible.close()
	}
	if r.building != nil {
		r.building.close()
	}
}

func (r *Rasterizer) newSurface() surface.Surface {
	if r.bounds.X <= 0 || r.bounds.Y <= 0 {
		return nil
	}
	s, err := r.opts.registry.NewSurface(surface.Options{Width: r.bounds.X, Height: r.bounds.Y})
	if err != nil {
		logging.Logger().Warn("render: no frame surface, markers will not be drawn",
			"width", r.bounds.X, "height", r.bounds.Y, "err", err)
		return nil
	}
	return s
}

func (r *Rasterizer) start() {
	zoom := r.view.Zoom()
	r.cur = pass{
		markers: r.markers,
		sprites: r.sprites,
		debug:   r.debug,
		zoom:    zoom,
		origin:  mercator.Origin(r.view.Center(), zoom, r.viewport),
	}
	if r.cur.sprites != nil {
		r.cur.image = r.cur.sprites.Image()
	}

	b := r.building
	b.reset()
	b.origin = r.cur.origin
	b.zoom = zoom

	r.state = Rendering
	if h := r.opts.hooks.PassStarted; h != nil {
		h()
	}
	r.schedule()
}

func (r *Rasterizer) schedule() {
	r.frame = r.sched.RequestFrame(r.tick)
	r.queued = true
}

func (r *Rasterizer) cancel() {
	if r.queued {
		r.sched.CancelFrame(r.frame)
		r.queued = false
	}
	r.pending = false
	if r.state != Rendering {
		return
	}
	r.state = Idle
	r.cur = pass{}
	logging.Logger().Debug("render: pass cancelled")
	if h := r.opts.hooks.Cancelled; h != nil {
		h()
	}
}

func (r *Rasterizer) tick() {
	r.queued = false
	if r.state != Rendering {
		return
	}

	p := &r.cur
	from := p.cursor
	to := min(from+r.perSlice, len(p.markers))

	t0 := r.opts.clock.Now()
	r.drawRange(from, to)
	elapsed := r.opts.clock.Now().Sub(t0)

	r.perSlice = nextSliceSize(r.perSlice, to-from, elapsed, r.opts.budget, r.opts.minSlice, r.opts.maxSlice)
	p.cursor = to
	p.slices++

	if to < len(p.markers) {
		r.schedule()
		return
	}
	r.finish()
}

func (r *Rasterizer) finish() {
	b := r.building
	b.index.Rebuild(b.boxes)
	r.passes++
	b.pass = r.passes

	r.visible, r.building = b, r.visible
	r.state = Idle

	logging.Logger().Debug("render: pass complete",
		"pass", r.passes,
		"markers", len(r.cur.markers),
		"drawn", r.cur.drawn,
		"slices", r.cur.slices,
		"slice_size", r.perSlice)
	r.cur = pass{}

	if h := r.opts.hooks.Swapped; h != nil {
		h(r.visible)
	}

	if r.pending {
		r.pending = false
		r.RequestUpdate()
	}
}

func (r *Rasterizer) drawRange(from, to int) {
	p := &r.cur
	b := r.building
	if p.sprites == nil || p.image == nil || b.surface == nil {
		return
	}

	for i := from; i < to; i++ {
		m := p.markers[i]
		sp, ok := p.sprites.Sprite(m.Icon)
		if !ok {
			continue
		}
		dst, box, ok := place(m.Position, sp, p.zoom, p.origin, r.margin, r.ratio, r.bounds)
		if !ok {
			continue
		}
		box.Index = i
		b.boxes = append(b.boxes, box)
		b.surface.DrawImage(p.image, surface.DrawImageOptions{
			SrcRect:       sp.Rect(),
			DstRect:       dst,
			Interpolation: r.opts.interp,
		})
		p.drawn++

		if p.debug {
			debugDraw(b.surface, i, m, dst, box)
		}
	}
}

// place computes where a sprite for a marker at pos is drawn in a frame and
// its hit-test box, both in device pixels. ok is false when the drawn
// rectangle is not entirely inside bounds.
func place(pos orb.Point, sp atlas.Sprite, zoom float64, origin, margin image.Point, ratio float64, bounds image.Point) (dst image.Rectangle, box spatial.Box, ok bool) {
	scale := 1.0
	if sp.PixelDensity != 1 && sp.PixelDensity > 0 {
		scale = ratio / sp.PixelDensity
	}
	w := int(math.Round(float64(sp.Size.X) * scale))
	h := int(math.Round(float64(sp.Size.Y) * scale))

	px := mercator.ProjectRounded(pos, zoom).Sub(origin).Add(margin)
	x := int(math.Round(float64(px.X)*ratio - float64(sp.Size.X)*sp.Anchor.X*scale))
	y := int(math.Round(float64(px.Y)*ratio - float64(sp.Size.Y)*sp.Anchor.Y*scale))

	if x < 0 || y < 0 || x+w > bounds.X || y+h > bounds.Y {
		return image.Rectangle{}, spatial.Box{}, false
	}

	dst = image.Rect(x, y, x+w, y+h)
	box = spatial.Box{
		MinX: float64(x),
		MinY: float64(y),
		MaxX: float64(x + w),
		MaxY: float64(y + h),
	}.Inflate(sp.InteractiveMargin * ratio)
	return dst, box, true
}

var debugPalette = []color.RGBA{
	colornames.Red,
	colornames.Blue,
	colornames.Green,
	colornames.Orange,
	colornames.Purple,
	colornames.Teal,
	colornames.Magenta,
	colornames.Olive,
}

// debugColor returns the outline colour of marker i.
func debugColor(i int) color.RGBA {
	return debugPalette[i%len(debugPalette)]
}

func debugDraw(s surface.Surface, i int, m Marker, dst image.Rectangle, box spatial.Box) {
	hit := image.Rect(
		int(math.Floor(box.MinX)), int(math.Floor(box.MinY)),
		int(math.Ceil(box.MaxX)), int(math.Ceil(box.MaxY)),
	)
	s.StrokeRect(hit, debugColor(i))

	for j, off := range m.DebugOffsets {
		d := int(math.Round(off))
		s.StrokeRect(dst.Inset(-d), debugPalette[j%len(debugPalette)])
	}
}
