package markers

import (
	"image"

	"github.com/gogpu/markers/render"
)

// Marker is a point drawn by a Layer. Its identity is its index in the
// slice given to SetMarkers; higher indices are drawn on top.
type Marker = render.Marker

// MapView is the host map a Layer is mounted on.
type MapView interface {
	render.View

	// ContainerToLayer maps a point in container pixels to the layer
	// coordinate frame frames are positioned in.
	ContainerToLayer(x, y float64) (lx, ly float64)
}

// Frame is a rendered frame handed to a Container.
type Frame struct {
	// Image holds the frame pixels, or nil when no surface backend was
	// available.
	Image image.Image

	// Position is the layer position of the frame's top-left corner.
	Position image.Point

	// Size is the frame size in logical pixels. Image is Size times
	// PixelRatio device pixels.
	Size image.Point

	PixelRatio float64
}

// Container displays the frames of a Layer.
type Container interface {
	// Present replaces the displayed frame.
	Present(f Frame)

	// Clear removes the displayed frame.
	Clear()
}
