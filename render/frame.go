// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/markers/spatial"
	"github.com/gogpu/markers/surface"
)

// Frame is one of the two off-screen buffers of a Rasterizer.
//
// A frame is written only while it is the building frame. Once swapped in
// as the visible frame it is read-only until the next swap.
type Frame struct {
	surface surface.Surface // nil when no backend could provide one
	index   *spatial.Index
	boxes   []spatial.Box

	origin image.Point
	zoom   float64
	pass   int
}

func newFrame(s surface.Surface) *Frame {
	return &Frame{surface: s, index: spatial.New()}
}

// Image returns the frame pixels, or nil if the frame has no surface.
func (f *Frame) Image() image.Image {
	if f.surface == nil {
		return nil
	}
	return f.surface.Image()
}

// Index returns the spatial index of the markers drawn in the frame.
func (f *Frame) Index() *spatial.Index {
	return f.index
}

// Boxes returns the hit-test boxes of the markers drawn in the frame,
// in drawing order. The slice must not be modified.
func (f *Frame) Boxes() []spatial.Box {
	return f.boxes
}

// Origin returns the world pixel of the viewport's top-left corner at the
// time the frame was drawn. It does not include the buffer margin.
func (f *Frame) Origin() image.Point {
	return f.origin
}

// Zoom returns the zoom level the frame was drawn at.
func (f *Frame) Zoom() float64 {
	return f.zoom
}

// Pass returns the sequence number of the pass that drew the frame.
// Zero means the frame has never been shown.
func (f *Frame) Pass() int {
	return f.pass
}

func (f *Frame) reset() {
	if f.surface != nil {
		f.surface.Clear()
	}
	f.index.Clear()
	f.boxes = f.boxes[:0]
}

func (f *Frame) close() {
	if f.surface != nil {
		_ = f.surface.Close()
		f.surface = nil
	}
	f.index.Clear()
	f.boxes = nil
}
