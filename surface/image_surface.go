// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ImageSurface is a CPU surface that renders to an *image.RGBA.
// It is the default backend registered under the name "image".
type ImageSurface struct {
	img    *image.RGBA
	closed bool
}

// NewImageSurface creates a transparent surface with the given dimensions.
// Non-positive dimensions produce an empty surface that ignores drawing.
func NewImageSurface(width, height int) *ImageSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &ImageSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.img.Rect.Dy()
}

// Clear resets every pixel to transparent.
func (s *ImageSurface) Clear() {
	if s.closed {
		return
	}
	clear(s.img.Pix)
}

// DrawImage composites src over the surface using Porter-Duff source-over.
func (s *ImageSurface) DrawImage(src image.Image, opts DrawImageOptions) {
	if s.closed || src == nil {
		return
	}

	sr := opts.SrcRect
	if sr.Empty() {
		sr = src.Bounds()
	}
	dr := opts.DstRect
	if dr.Empty() {
		dr = image.Rectangle{Max: sr.Size()}
	}
	if sr.Empty() || dr.Empty() || !dr.Overlaps(s.img.Rect) {
		return
	}

	if dr.Size() == sr.Size() {
		xdraw.Draw(s.img, dr, src, sr.Min, xdraw.Over)
		return
	}
	scaler(opts.Interpolation).Scale(s.img, dr, src, sr, xdraw.Over, nil)
}

// scaler maps an Interpolation to an x/image interpolator.
func scaler(i Interpolation) xdraw.Interpolator {
	switch i {
	case InterpNearest:
		return xdraw.NearestNeighbor
	case InterpBicubic:
		return xdraw.CatmullRom
	default:
		return xdraw.ApproxBiLinear
	}
}

// StrokeRect draws a one pixel outline along the inside of r.
func (s *ImageSurface) StrokeRect(r image.Rectangle, c color.Color) {
	if s.closed || r.Empty() {
		return
	}
	u := image.NewUniform(c)
	edges := [4]image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		xdraw.Draw(s.img, e.Intersect(s.img.Rect), u, image.Point{}, xdraw.Over)
	}
}

// Image returns the backing image. Callers must not modify it.
func (s *ImageSurface) Image() image.Image {
	return s.img
}

// Snapshot returns a copy of the surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Close marks the surface as closed. Subsequent drawing is ignored.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

var _ Surface = (*ImageSurface)(nil)
