package hittest

// Kind is the kind of a marker event.
type Kind uint8

const (
	// HoverEnter is emitted when the pointer moves onto a marker.
	HoverEnter Kind = iota

	// HoverLeave is emitted when the pointer leaves the hovered marker.
	HoverLeave

	// Press is emitted when a pointer button goes down on a marker.
	Press

	// Release is emitted when the button pressed on a marker goes up,
	// wherever the pointer is.
	Release

	// Click is emitted for a click on a marker.
	Click

	// ContextMenu is emitted for a context menu request on a marker.
	ContextMenu

	kindCount
)

var kindNames = [...]string{
	HoverEnter:  "hover-enter",
	HoverLeave:  "hover-leave",
	Press:       "press",
	Release:     "release",
	Click:       "click",
	ContextMenu: "context-menu",
}

// String returns the kind name, for example "hover-enter".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Pointer is a pointer position in container pixels together with the
// host's original event.
type Pointer struct {
	X, Y float64

	// Event is the host event, passed through to listeners untouched.
	Event any
}

// Event is a semantic marker event.
type Event struct {
	Kind Kind

	// Marker is the index of the topmost marker concerned.
	Marker int

	// Markers holds every marker under the pointer in ascending order.
	// It is nil for HoverLeave and Release.
	Markers []int

	// Pointer is the pointer event that caused this event.
	Pointer Pointer
}

type listener struct {
	id int
	fn func(Event)
}

// listeners holds the registered functions per event kind.
type listeners struct {
	next  int
	kinds [kindCount][]listener
}

func (ls *listeners) add(k Kind, fn func(Event)) (off func()) {
	if k >= kindCount || fn == nil {
		return func() {}
	}
	ls.next++
	id := ls.next
	ls.kinds[k] = append(ls.kinds[k], listener{id: id, fn: fn})
	return func() {
		l := ls.kinds[k]
		for i := range l {
			if l[i].id == id {
				// Copy so a call loop in progress keeps its slice.
				ls.kinds[k] = append(l[:i:i], l[i+1:]...)
				return
			}
		}
	}
}

func (ls *listeners) call(ev Event) {
	for _, l := range ls.kinds[ev.Kind] {
		l.fn(ev)
	}
}
