// Package atlas packs many icon images into one composite image.
//
// An Atlas is created synchronously and becomes ready asynchronously, once
// every source image has signalled that it is loaded and packing has
// finished. Consumers must wait for readiness before relying on Image or
// Sprites:
//
//	a := atlas.New([]atlas.Icon{
//	    {Image: atlas.Loaded(pin), Anchor: &atlas.Vec2{X: 0.5, Y: 1}},
//	    {Image: atlas.Loaded(dot), InteractiveMargin: 4},
//	})
//	if err := a.Wait(ctx); err != nil {
//	    return err
//	}
//	sprite, ok := a.Sprite(1)
package atlas

import (
	"context"
	"image"
	"slices"

	"github.com/gogpu/markers/internal/logging"
	"github.com/gogpu/markers/surface"
)

// Gutter is the transparent border, in pixels, kept around every sprite so
// that sampling at higher densities does not bleed into neighbours.
const Gutter = 2

// Option configures an Atlas.
type Option func(*options)

type options struct {
	registry      *surface.Registry
	interpolation surface.Interpolation
}

// WithRegistry sets the registry the composite image surface is taken from.
// The default is surface.Default().
func WithRegistry(r *surface.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithInterpolation sets the filter used to scale icons to their declared
// size. The default is bilinear.
func WithInterpolation(i surface.Interpolation) Option {
	return func(o *options) {
		o.interpolation = i
	}
}

// Atlas holds one composite image and the sprites placed in it.
//
// All accessors are safe for concurrent use. Before the atlas is ready they
// report no image and no sprites.
type Atlas struct {
	ready chan struct{}

	// Written once by build before ready is closed; read-only afterwards.
	image   image.Image
	size    image.Point
	sprites []Sprite
}

// New starts building an atlas from icons. The returned atlas becomes ready
// once every icon image has loaded.
func New(icons []Icon, opts ...Option) *Atlas {
	o := options{registry: surface.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	a := &Atlas{ready: make(chan struct{})}
	icons = slices.Clone(icons)
	go func() {
		for _, icon := range icons {
			if icon.Image != nil {
				<-icon.Image.Loaded()
			}
		}
		a.build(icons, o)
		close(a.ready)
	}()
	return a
}

// build packs the icons and draws them into the composite image.
func (a *Atlas) build(icons []Icon, o options) {
	log := logging.Logger()

	images := make([]image.Image, len(icons))
	rects := make([]image.Point, len(icons))
	sprites := make([]Sprite, len(icons))
	for i, icon := range icons {
		var natural image.Point
		if icon.Image != nil {
			images[i] = icon.Image.Image()
		}
		if images[i] != nil {
			natural = images[i].Bounds().Size()
		}

		size := icon.Size
		if size == (image.Point{}) {
			size = natural
		}
		anchor := Vec2{X: 0.5, Y: 0.5}
		if icon.Anchor != nil {
			anchor = *icon.Anchor
		}
		density := icon.PixelDensity
		if density <= 0 {
			density = 1
		}

		rects[i] = image.Pt(size.X+2*Gutter, size.Y+2*Gutter)
		sprites[i] = Sprite{
			Size:              size,
			Anchor:            anchor,
			PixelDensity:      density,
			InteractiveMargin: max(icon.InteractiveMargin, 0),
		}
	}

	positions, binSize := pack(rects)
	for i := range sprites {
		sprites[i].Position = positions[i].Add(image.Pt(Gutter, Gutter))
	}
	a.sprites = sprites
	a.size = binSize

	s, err := o.registry.NewSurface(surface.Options{Width: binSize.X, Height: binSize.Y})
	if err != nil {
		log.Warn("atlas: no drawing surface, icons will not be drawn", "err", err)
		return
	}
	defer s.Close()

	for i, img := range images {
		if img == nil {
			continue
		}
		s.DrawImage(img, surface.DrawImageOptions{
			SrcRect:       img.Bounds(),
			DstRect:       sprites[i].Rect(),
			Interpolation: o.interpolation,
		})
	}
	a.image = s.Snapshot()

	log.Info("atlas: ready", "icons", len(icons), "width", binSize.X, "height", binSize.Y)
}

// Ready returns a channel that is closed when the atlas is ready.
func (a *Atlas) Ready() <-chan struct{} {
	return a.ready
}

// IsReady reports whether the atlas is ready, without blocking.
func (a *Atlas) IsReady() bool {
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until the atlas is ready or ctx is done.
func (a *Atlas) Wait(ctx context.Context) error {
	select {
	case <-a.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Image returns the composite image. It is nil before the atlas is ready
// and when no drawing surface could be obtained.
func (a *Atlas) Image() image.Image {
	if !a.IsReady() {
		return nil
	}
	return a.image
}

// Size returns the size of the composite image.
func (a *Atlas) Size() image.Point {
	if !a.IsReady() {
		return image.Point{}
	}
	return a.size
}

// Sprites returns the sprites in icon order. It is nil before the atlas is
// ready. The returned slice must not be modified.
func (a *Atlas) Sprites() []Sprite {
	if !a.IsReady() {
		return nil
	}
	return a.sprites
}

// Sprite returns the sprite for icon index i.
func (a *Atlas) Sprite(i int) (Sprite, bool) {
	sprites := a.Sprites()
	if i < 0 || i >= len(sprites) {
		return Sprite{}, false
	}
	return sprites[i], true
}
