// Package hittest turns pointer input into marker events.
//
// An Engine queries a Searcher for the markers under the pointer, picks the
// topmost one (the highest marker index, which is drawn last) and emits
// hover, press and click events. While the searched index is being rebuilt
// the engine is invalid: moves are deferred and replayed on Validate, and
// presses and clicks are ignored.
package hittest

import (
	"slices"

	"github.com/gogpu/markers/internal/logging"
)

// None is the marker index used when no marker is hovered or pressed.
const None = -1

// Searcher returns the indices of the markers under a container point,
// in any order.
type Searcher interface {
	Search(x, y float64) []int
}

// SearcherFunc adapts a function to the Searcher interface.
type SearcherFunc func(x, y float64) []int

// Search calls f.
func (f SearcherFunc) Search(x, y float64) []int { return f(x, y) }

// Engine tracks the hovered and pressed marker and dispatches events.
//
// An Engine must be used from a single goroutine.
type Engine struct {
	search    Searcher
	listeners listeners

	hovered int
	pressed int

	valid    bool
	deferred *Pointer
	zooming  bool
}

// New creates a valid Engine that queries s.
func New(s Searcher) *Engine {
	return &Engine{
		search:  s,
		hovered: None,
		pressed: None,
		valid:   true,
	}
}

// On registers fn for events of kind k and returns a function that
// unregisters it. Listeners are called in registration order.
func (e *Engine) On(k Kind, fn func(Event)) (off func()) {
	return e.listeners.add(k, fn)
}

// Hovered returns the hovered marker, or None.
func (e *Engine) Hovered() int {
	return e.hovered
}

// Pressed returns the marker a button went down on, or None.
func (e *Engine) Pressed() int {
	return e.pressed
}

// Valid reports whether the searched index reflects the current markers.
func (e *Engine) Valid() bool {
	return e.valid
}

// Invalidate marks the searched index as stale.
func (e *Engine) Invalidate() {
	e.valid = false
}

// Validate marks the searched index as current and replays the last move
// received while it was stale.
func (e *Engine) Validate() {
	e.valid = true
	if p := e.deferred; p != nil {
		e.deferred = nil
		e.PointerMove(*p)
	}
}

// SetZooming tells the engine whether a zoom gesture is in progress.
func (e *Engine) SetZooming(on bool) {
	e.zooming = on
}

// Reset forgets the hovered and pressed markers and any deferred move
// without emitting events.
func (e *Engine) Reset() {
	e.hovered = None
	e.pressed = None
	e.deferred = nil
}

// PointerMove updates the hovered marker for a pointer at p.
func (e *Engine) PointerMove(p Pointer) {
	if !e.valid {
		e.deferred = &p
		return
	}

	hits := e.query(p)
	top := topmost(hits)
	if top == e.hovered {
		return
	}
	if e.hovered != None {
		e.leave(p)
	}
	if top != None {
		e.hovered = top
		e.emit(Event{Kind: HoverEnter, Marker: top, Markers: hits, Pointer: p})
	}
}

// PointerDown records and reports a press on the topmost marker at p.
func (e *Engine) PointerDown(p Pointer) {
	if !e.valid {
		return
	}
	hits := e.query(p)
	top := topmost(hits)
	if top == None {
		return
	}
	e.pressed = top
	e.emit(Event{Kind: Press, Marker: top, Markers: hits, Pointer: p})
}

// PointerUp reports the release of the pressed marker, if any, wherever
// the pointer is.
func (e *Engine) PointerUp(p Pointer) {
	if e.pressed == None {
		return
	}
	m := e.pressed
	e.pressed = None
	e.emit(Event{Kind: Release, Marker: m, Pointer: p})
}

// Click reports a click at p. It returns true when a marker was hit; the
// host should then stop propagating its event.
func (e *Engine) Click(p Pointer) bool {
	return e.activate(Click, p)
}

// ContextMenu reports a context menu request at p. It returns true when a
// marker was hit.
func (e *Engine) ContextMenu(p Pointer) bool {
	return e.activate(ContextMenu, p)
}

// PointerLeave reports that the pointer left the container. It is ignored
// during a zoom gesture, where hosts emit it spuriously.
func (e *Engine) PointerLeave(p Pointer) {
	e.deferred = nil
	if e.zooming || e.hovered == None {
		return
	}
	e.leave(p)
}

func (e *Engine) activate(k Kind, p Pointer) bool {
	if !e.valid {
		return false
	}
	hits := e.query(p)
	top := topmost(hits)
	if top == None {
		return false
	}
	e.emit(Event{Kind: k, Marker: top, Markers: hits, Pointer: p})
	return true
}

func (e *Engine) leave(p Pointer) {
	m := e.hovered
	e.hovered = None
	e.emit(Event{Kind: HoverLeave, Marker: m, Pointer: p})
}

func (e *Engine) query(p Pointer) []int {
	if e.search == nil {
		return nil
	}
	hits := slices.Clone(e.search.Search(p.X, p.Y))
	slices.Sort(hits)
	return hits
}

func (e *Engine) emit(ev Event) {
	logging.Logger().Debug("hittest: event", "kind", ev.Kind, "marker", ev.Marker)
	e.listeners.call(ev)
}

// topmost returns the highest index of sorted hits, or None.
func topmost(hits []int) int {
	if len(hits) == 0 {
		return None
	}
	return hits[len(hits)-1]
}
