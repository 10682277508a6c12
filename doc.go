// Package markers draws large sets of point markers on a 2D map and
// reports pointer events on them.
//
// # Overview
//
// A Layer keeps no per-marker objects. Markers are painted into an
// off-screen frame a slice at a time, so that tens of thousands of markers
// never stall the host's display loop, and the frame's bounding boxes are
// indexed for hit tests. When a pass completes the new frame replaces the
// visible one in a single swap and is handed to the host's Container.
//
// # Quick Start
//
//	sched := render.NewManualScheduler()
//	layer, err := markers.New(markers.WithScheduler(sched))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	icons := atlas.New([]atlas.Icon{{Image: atlas.Loaded(pin)}})
//	layer.SetAtlas(icons)
//	layer.SetMarkers([]markers.Marker{{Position: orb.Point{37.62, 55.75}}})
//	layer.On(hittest.Click, func(ev hittest.Event) {
//	    fmt.Println("clicked", ev.Marker)
//	})
//
//	if err := layer.Mount(view, container); err != nil {
//	    log.Fatal(err)
//	}
//
//	// In the host's frame callback:
//	sched.Step()
//
// # Architecture
//
// The library is organized into:
//   - atlas: packs icon images into one image and records sprites
//   - mercator: spherical Mercator world pixels
//   - spatial: bounding-box index over drawn markers
//   - surface: pixel surfaces and the backend registry
//   - render: the time-budgeted rasterizer and its two frames
//   - hittest: hover, press and click events
//   - imageio: file backed image handles for atlases
//
// # Host Integration
//
// The host supplies a MapView (center, zoom, viewport size, pixel ratio and
// a container to layer mapping), a Container to present frames into, and a
// render.Scheduler tied to its display loop. Lifecycle notifications (Resize,
// PanStart, PanEnd, ZoomStart, ZoomEnd) and pointer input are forwarded to
// the Layer explicitly.
//
// # Logging
//
// The package is silent by default. See SetLogger.
package markers
