// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// Surface is a 2D pixel buffer that images can be blitted into.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear resets every pixel to transparent.
	Clear()

	// DrawImage composites the SrcRect region of src over the DstRect region
	// of the surface, scaling when the two rectangles differ in size.
	DrawImage(src image.Image, opts DrawImageOptions)

	// StrokeRect draws a one pixel wide outline just inside r.
	StrokeRect(r image.Rectangle, c color.Color)

	// Image returns the live surface contents. Callers must not modify it.
	Image() image.Image

	// Snapshot returns a copy of the surface contents.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Interpolation selects the sampling filter used when an image is scaled.
type Interpolation uint8

const (
	// InterpBilinear performs linear interpolation between neighboring pixels.
	// It is the default.
	InterpBilinear Interpolation = iota

	// InterpNearest selects the closest pixel (no interpolation).
	InterpNearest

	// InterpBicubic performs Catmull-Rom cubic interpolation. Highest
	// quality but slowest.
	InterpBicubic
)

// String returns the interpolation name.
func (i Interpolation) String() string {
	switch i {
	case InterpBilinear:
		return "bilinear"
	case InterpNearest:
		return "nearest"
	case InterpBicubic:
		return "bicubic"
	default:
		return "unknown"
	}
}

// DrawImageOptions specifies parameters for drawing an image.
type DrawImageOptions struct {
	// SrcRect is the region of the source image to sample.
	// An empty rectangle means the whole source image.
	SrcRect image.Rectangle

	// DstRect is the destination region on the surface.
	// An empty rectangle means SrcRect's size placed at the origin.
	DstRect image.Rectangle

	// Interpolation is used only when SrcRect and DstRect differ in size.
	Interpolation Interpolation
}

// Options configures surface creation.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int
}
