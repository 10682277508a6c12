// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the pixel surfaces that markers are drawn into.
//
// Two kinds of surface exist in a running layer: the composite atlas image
// and the two off-screen frame buffers of the rasterizer. Both are obtained
// from a Registry so that a host can substitute its own backend, or none at
// all.
//
// # Degraded operation
//
// When no backend can provide a surface, NewSurface returns an error. Callers
// in this module treat that as "draw nothing": the atlas has no image and the
// rasterizer indexes no markers. It is never fatal.
//
// # Usage
//
//	s, err := surface.NewSurface(800, 600)
//	if err != nil {
//	    // no drawing available
//	}
//	defer s.Close()
//
//	s.DrawImage(icon, surface.DrawImageOptions{
//	    SrcRect: icon.Bounds(),
//	    DstRect: image.Rect(10, 10, 30, 40),
//	})
//	img := s.Snapshot()
package surface
