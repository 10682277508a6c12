package markers

import (
	"image"
	"math"

	"github.com/gogpu/markers/atlas"
	"github.com/gogpu/markers/hittest"
	"github.com/gogpu/markers/render"
)

// Layer draws markers on a host map view and dispatches marker events.
//
// All methods must be called from the host's event loop goroutine. None of
// them block: drawing happens in slices run by the scheduler.
type Layer struct {
	opts options

	view      MapView
	container Container
	raster    *render.Rasterizer
	events    *hittest.Engine

	atlas   *atlas.Atlas
	markers []Marker
	debug   bool

	// Layer position of the visible frame, set at each swap.
	pos   image.Point
	shown bool
}

// New creates an unmounted Layer.
func New(opts ...Option) (*Layer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	l := &Layer{
		opts:  o,
		debug: o.debugDrawing,
	}
	l.events = hittest.New(hittest.SearcherFunc(l.Search))
	return l, nil
}

// Mount attaches the layer to view, presents frames into c and starts
// a render pass.
func (l *Layer) Mount(view MapView, c Container) error {
	if l.raster != nil {
		return ErrAlreadyMounted
	}
	if view == nil || c == nil {
		return ErrNilView
	}

	l.view = view
	l.container = c
	l.raster = render.New(view, l.opts.scheduler,
		render.WithClock(l.opts.clock),
		render.WithRegistry(l.opts.registry),
		render.WithBufferFactor(l.opts.bufferFactor),
		render.WithFrameBudget(l.opts.frameBudget),
		render.WithSliceLimits(l.opts.initialSlice, l.opts.minSlice, 0),
		render.WithInterpolation(l.opts.interpolation),
		render.WithHooks(render.Hooks{
			PassStarted: l.events.Invalidate,
			Swapped:     l.swapped,
		}),
	)
	l.raster.SetMarkers(l.markers)
	l.raster.SetDebugDrawing(l.debug)
	if l.atlas != nil {
		l.raster.SetSprites(l.atlas)
	}

	Logger().Info("markers: layer mounted",
		"viewport", view.Size(),
		"margin", l.raster.Margin(),
		"pixel_ratio", l.raster.PixelRatio())
	l.Update()
	return nil
}

// Unmount detaches the layer, cancels rendering and clears the container.
func (l *Layer) Unmount() error {
	if l.raster == nil {
		return ErrNotMounted
	}
	l.raster.Close()
	l.raster = nil
	l.container.Clear()
	l.container = nil
	l.view = nil
	l.shown = false
	l.events.Reset()
	return nil
}

// Mounted reports whether the layer is mounted.
func (l *Layer) Mounted() bool {
	return l.raster != nil
}

// Rendering reports whether a render pass is in flight.
func (l *Layer) Rendering() bool {
	return l.raster != nil && l.raster.State() == render.Rendering
}

// SetAtlas sets the icons markers are drawn with. Markers are drawn only
// once the atlas is ready; call Update after a.Wait returns if the atlas
// was not ready when set.
func (l *Layer) SetAtlas(a *atlas.Atlas) {
	l.atlas = a
	if l.raster == nil {
		return
	}
	if a == nil {
		l.raster.SetSprites(nil)
		return
	}
	l.raster.SetSprites(a)
}

// SetMarkers replaces the markers. The slice must not be modified while it
// is in use; pass a new slice instead. The change is drawn by the next
// Update. Hit tests are deferred until then.
func (l *Layer) SetMarkers(m []Marker) {
	l.markers = m
	l.events.Invalidate()
	if l.raster != nil {
		l.raster.SetMarkers(m)
	}
}

// Markers returns the current markers.
func (l *Layer) Markers() []Marker {
	return l.markers
}

// Update requests a repaint. Requests made while a pass is in flight are
// merged into a single follow-up pass.
func (l *Layer) Update() {
	if l.raster == nil {
		return
	}
	l.raster.RequestUpdate()
}

// SetDebugDrawing toggles outlines around every marker's hit-test box. It
// takes effect on the next Update.
func (l *Layer) SetDebugDrawing(on bool) {
	l.debug = on
	if l.raster != nil {
		l.raster.SetDebugDrawing(on)
	}
}

// On registers fn for marker events of kind k. The returned function
// unregisters it.
func (l *Layer) On(k hittest.Kind, fn func(hittest.Event)) (off func()) {
	return l.events.On(k, fn)
}

// Resize reallocates the frames for the current viewport size and repaints.
func (l *Layer) Resize() {
	if l.raster == nil {
		return
	}
	l.raster.Resize()
	l.shown = false
	l.container.Clear()
	l.Update()
}

// PanStart is called when the host map starts panning. The visible frame
// stays in place and moves with the map until PanEnd.
func (l *Layer) PanStart() {}

// PanEnd is called when the host map stops panning. It repaints unless the
// layer was created with WithUpdateOnMoveEnd(false).
func (l *Layer) PanEnd() {
	if l.opts.updateOnMoveEnd {
		l.Update()
	}
}

// ZoomStart is called when a zoom gesture starts. The visible frame no
// longer matches the map, so it is discarded along with any pass in flight.
func (l *Layer) ZoomStart() {
	l.events.SetZooming(true)
	if l.raster == nil {
		return
	}
	l.raster.Clear()
	l.shown = false
	l.container.Clear()
}

// ZoomEnd is called when a zoom gesture ends. It repaints.
func (l *Layer) ZoomEnd() {
	l.events.SetZooming(false)
	l.Update()
}

// PointerMove forwards a pointer move in container pixels.
func (l *Layer) PointerMove(p hittest.Pointer) {
	l.events.PointerMove(p)
}

// PointerDown forwards a button press in container pixels.
func (l *Layer) PointerDown(p hittest.Pointer) {
	l.events.PointerDown(p)
}

// PointerUp forwards a button release in container pixels.
func (l *Layer) PointerUp(p hittest.Pointer) {
	l.events.PointerUp(p)
}

// Click forwards a click in container pixels. It returns true when a marker
// was clicked; the host should then stop propagating the event.
func (l *Layer) Click(p hittest.Pointer) bool {
	return l.events.Click(p)
}

// ContextMenu forwards a context menu request. It returns true when it was
// on a marker.
func (l *Layer) ContextMenu(p hittest.Pointer) bool {
	return l.events.ContextMenu(p)
}

// PointerLeave forwards the pointer leaving the container.
func (l *Layer) PointerLeave(p hittest.Pointer) {
	l.events.PointerLeave(p)
}

// Search returns the markers under the container point (x, y), in no
// particular order. It is empty when nothing is shown.
func (l *Layer) Search(x, y float64) []int {
	if l.raster == nil || !l.shown {
		return []int{}
	}
	lx, ly := l.view.ContainerToLayer(x, y)
	r := l.raster.PixelRatio()
	return l.raster.Search((lx-float64(l.pos.X))*r, (ly-float64(l.pos.Y))*r)
}

func (l *Layer) swapped(f *render.Frame) {
	m := l.raster.Margin()
	x, y := l.view.ContainerToLayer(float64(-m.X), float64(-m.Y))
	l.pos = image.Pt(int(math.Round(x)), int(math.Round(y)))
	l.shown = true

	l.container.Present(Frame{
		Image:      f.Image(),
		Position:   l.pos,
		Size:       l.raster.BufferSize(),
		PixelRatio: l.raster.PixelRatio(),
	})
	// A follow-up pass may carry newer markers; hit tests wait for it.
	if !l.raster.UpdatePending() {
		l.events.Validate()
	}
}
