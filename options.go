package markers

import (
	"time"

	"github.com/gogpu/markers/render"
	"github.com/gogpu/markers/surface"
)

// Option configures a Layer during creation.
//
// Example:
//
//	layer, err := markers.New(
//	    markers.WithScheduler(sched),
//	    markers.WithBufferFactor(1),
//	)
type Option func(*options)

// options holds optional configuration for Layer creation.
type options struct {
	scheduler       render.Scheduler
	clock           render.Clock
	registry        *surface.Registry
	bufferFactor    float64
	debugDrawing    bool
	updateOnMoveEnd bool
	frameBudget     time.Duration
	initialSlice    int
	minSlice        int
	interpolation   surface.Interpolation
}

// defaultOptions returns the default layer options.
func defaultOptions() options {
	return options{
		clock:           render.SystemClock{},
		bufferFactor:    0.5,
		updateOnMoveEnd: true,
		frameBudget:     render.DefaultFrameBudget,
		initialSlice:    render.DefaultInitialSlice,
		minSlice:        render.DefaultMinSlice,
	}
}

func (o *options) validate() error {
	switch {
	case o.scheduler == nil:
		return &ConfigError{Field: "scheduler", Reason: "required"}
	case o.bufferFactor < 0:
		return &ConfigError{Field: "buffer factor", Reason: "must not be negative"}
	case o.frameBudget <= 0:
		return &ConfigError{Field: "frame budget", Reason: "must be positive"}
	case o.minSlice <= 0:
		return &ConfigError{Field: "min slice", Reason: "must be positive"}
	case o.initialSlice < o.minSlice:
		return &ConfigError{Field: "initial slice", Reason: "below min slice"}
	}
	return nil
}

// WithScheduler sets the scheduler that runs render slices, usually tied to
// the host's display loop. It is required.
func WithScheduler(s render.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithClock sets the clock used to measure slices. The default is the
// system clock.
func WithClock(c render.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithSurfaceRegistry sets the registry frame surfaces are allocated from.
// The default is surface.Default().
func WithSurfaceRegistry(r *surface.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithBufferFactor sets the margin drawn around the viewport on each side,
// as a fraction of the viewport size. Larger margins let the map pan further
// before markers at the edge disappear. The default is 0.5.
func WithBufferFactor(f float64) Option {
	return func(o *options) {
		o.bufferFactor = f
	}
}

// WithDebugDrawing outlines the hit-test box of every marker.
func WithDebugDrawing(on bool) Option {
	return func(o *options) {
		o.debugDrawing = on
	}
}

// WithUpdateOnMoveEnd controls whether PanEnd repaints. The default is true.
func WithUpdateOnMoveEnd(on bool) Option {
	return func(o *options) {
		o.updateOnMoveEnd = on
	}
}

// WithFrameBudget sets the time one render slice aims to take.
// The default is 10ms.
func WithFrameBudget(d time.Duration) Option {
	return func(o *options) {
		o.frameBudget = d
	}
}

// WithInitialSlice sets the number of markers in the first slice of a layer.
func WithInitialSlice(n int) Option {
	return func(o *options) {
		o.initialSlice = n
	}
}

// WithMinSlice sets the smallest number of markers a slice draws.
func WithMinSlice(n int) Option {
	return func(o *options) {
		o.minSlice = n
	}
}

// WithInterpolation sets the filter used when sprites are scaled for the
// device pixel ratio.
func WithInterpolation(i surface.Interpolation) Option {
	return func(o *options) {
		o.interpolation = i
	}
}
