package atlas

import "image"

// Vec2 is a pair of floating point values, used for anchors.
type Vec2 struct {
	X, Y float64
}

// Image is a loadable image handle.
//
// Loaded returns a channel that is closed once the image has finished
// loading; Image must not be called before that. A handle that never loads
// stalls atlas readiness indefinitely: the image belongs to the caller, and
// the atlas neither times out nor retries.
type Image interface {
	Image() image.Image
	Loaded() <-chan struct{}
}

// closed is a shared, already-closed channel for images that need no loading.
var closed = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

type loadedImage struct {
	img image.Image
}

func (l loadedImage) Image() image.Image      { return l.img }
func (l loadedImage) Loaded() <-chan struct{} { return closed }

// Loaded wraps an already decoded image. It resolves immediately.
func Loaded(img image.Image) Image {
	return loadedImage{img: img}
}

// Icon describes one image to place in an atlas.
type Icon struct {
	// Image is the source image handle.
	Image Image

	// Anchor is the point of the icon, in fractions of its size, that is
	// aligned with the marker position. Nil means the center (0.5, 0.5).
	Anchor *Vec2

	// Size is the size of the icon in the atlas image. The zero value means
	// the natural size of the image. A different size scales the icon when
	// the atlas is built.
	Size image.Point

	// PixelDensity is the number of image pixels per logical pixel.
	// Zero means 1.
	PixelDensity float64

	// InteractiveMargin grows the hit-test box of every marker using this
	// icon by the given number of logical pixels on each side, without
	// growing what is drawn.
	InteractiveMargin float64
}

// Sprite records where one icon was placed in the atlas image.
type Sprite struct {
	// Position is the top-left corner of the icon in the atlas image.
	Position image.Point

	// Size is the size of the icon in the atlas image.
	Size image.Point

	Anchor            Vec2
	PixelDensity      float64
	InteractiveMargin float64
}

// Rect returns the sprite's rectangle in the atlas image.
func (s Sprite) Rect() image.Rectangle {
	return image.Rectangle{Min: s.Position, Max: s.Position.Add(s.Size)}
}
