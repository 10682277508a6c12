// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"time"

	"github.com/gogpu/markers/surface"
)

// Hooks are called by the Rasterizer at pass boundaries. Nil hooks are
// skipped.
type Hooks struct {
	// PassStarted is called when a pass begins drawing into the building
	// frame.
	PassStarted func()

	// Swapped is called after a completed pass made its frame visible.
	Swapped func(visible *Frame)

	// Cancelled is called when an in-flight pass is abandoned.
	Cancelled func()
}

// Option configures a Rasterizer.
type Option func(*options)

type options struct {
	clock        Clock
	registry     *surface.Registry
	bufferFactor float64
	budget       time.Duration
	initialSlice int
	minSlice     int
	maxSlice     int
	interp       surface.Interpolation
	hooks        Hooks
}

func defaultOptions() options {
	return options{
		clock:        SystemClock{},
		bufferFactor: 0.5,
		budget:       DefaultFrameBudget,
		initialSlice: DefaultInitialSlice,
		minSlice:     DefaultMinSlice,
		maxSlice:     DefaultMaxSlice,
	}
}

// WithClock sets the clock used to time slices.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithRegistry sets the registry frame surfaces are allocated from.
// The default is surface.Default().
func WithRegistry(r *surface.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithBufferFactor sets the margin around the viewport, as a fraction of
// the viewport size on each side. Negative values are treated as zero.
func WithBufferFactor(f float64) Option {
	return func(o *options) {
		o.bufferFactor = max(f, 0)
	}
}

// WithFrameBudget sets the target duration of one slice.
func WithFrameBudget(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.budget = d
		}
	}
}

// WithSliceLimits sets the initial slice size and the bounds the adaptive
// size is kept within. Non-positive values keep the defaults.
func WithSliceLimits(initial, minSize, maxSize int) Option {
	return func(o *options) {
		if initial > 0 {
			o.initialSlice = initial
		}
		if minSize > 0 {
			o.minSlice = minSize
		}
		if maxSize > 0 {
			o.maxSlice = maxSize
		}
	}
}

// WithInterpolation sets the filter used when sprites are scaled for the
// device pixel ratio.
func WithInterpolation(i surface.Interpolation) Option {
	return func(o *options) {
		o.interp = i
	}
}

// WithHooks sets the pass hooks.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}
