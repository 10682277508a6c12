package hittest

import (
	"slices"
	"testing"

	"github.com/gogpu/markers/spatial"
)

// boxSearcher searches a fixed set of boxes in container pixels.
type boxSearcher struct {
	ix *spatial.Index
}

func newBoxSearcher(boxes ...spatial.Box) *boxSearcher {
	ix := spatial.New()
	ix.Rebuild(boxes)
	return &boxSearcher{ix: ix}
}

func (s *boxSearcher) Search(x, y float64) []int { return s.ix.SearchPoint(x, y) }

type recorder struct {
	events []Event
}

func (r *recorder) listen(e *Engine) {
	for k := range kindCount {
		e.On(k, func(ev Event) { r.events = append(r.events, ev) })
	}
}

func (r *recorder) kinds() []string {
	var out []string
	for _, ev := range r.events {
		out = append(out, ev.Kind.String())
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

func box(i int, minX, minY, maxX, maxY float64) spatial.Box {
	return spatial.Box{Index: i, MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func pt(x, y float64) Pointer { return Pointer{X: x, Y: y} }

func TestEngine_TopmostIsHighestIndex(t *testing.T) {
	s := newBoxSearcher(box(7, 0, 0, 10, 10), box(3, 0, 0, 10, 10))
	e := New(s)
	var rec recorder
	rec.listen(e)

	if !e.Click(pt(5, 5)) {
		t.Fatal("Click on markers returned false")
	}
	if len(rec.events) != 1 {
		t.Fatalf("events = %v", rec.kinds())
	}
	ev := rec.events[0]
	if ev.Kind != Click || ev.Marker != 7 {
		t.Errorf("got %v on %d, want click on 7", ev.Kind, ev.Marker)
	}
	if !slices.Equal(ev.Markers, []int{3, 7}) {
		t.Errorf("Markers = %v, want [3 7]", ev.Markers)
	}
}

func TestEngine_HoverDebounce(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10), box(1, 20, 0, 30, 10)))
	var rec recorder
	rec.listen(e)

	for x := 1.0; x < 10; x++ {
		e.PointerMove(pt(x, 5))
	}
	if got := rec.kinds(); !slices.Equal(got, []string{"hover-enter"}) {
		t.Fatalf("events = %v, want one hover-enter", got)
	}

	e.PointerMove(pt(25, 5))
	e.PointerMove(pt(50, 50))
	want := []string{"hover-enter", "hover-leave", "hover-enter", "hover-leave"}
	if got := rec.kinds(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if rec.events[1].Marker != 0 || rec.events[2].Marker != 1 || rec.events[3].Marker != 1 {
		t.Errorf("markers = %d %d %d", rec.events[1].Marker, rec.events[2].Marker, rec.events[3].Marker)
	}
	if e.Hovered() != None {
		t.Errorf("Hovered = %d, want None", e.Hovered())
	}
}

func TestEngine_DeferredMoveReplayed(t *testing.T) {
	s := newBoxSearcher()
	e := New(s)
	var rec recorder
	rec.listen(e)

	e.Invalidate()
	e.PointerMove(pt(100, 100))
	e.PointerMove(pt(5, 5))
	if len(rec.events) != 0 {
		t.Fatalf("events while invalid: %v", rec.kinds())
	}

	// A new marker appears under the pointer once the rebuild completes.
	s.ix.Rebuild([]spatial.Box{box(2, 0, 0, 10, 10)})
	e.Validate()

	if len(rec.events) != 1 || rec.events[0].Kind != HoverEnter || rec.events[0].Marker != 2 {
		t.Fatalf("events = %v, want hover-enter on 2", rec.kinds())
	}
	if rec.events[0].Pointer.X != 5 {
		t.Errorf("replayed the wrong move: %+v", rec.events[0].Pointer)
	}

	rec.reset()
	e.Validate()
	if len(rec.events) != 0 {
		t.Errorf("move replayed twice: %v", rec.kinds())
	}
}

func TestEngine_InvalidIgnoresPressAndClick(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10)))
	var rec recorder
	rec.listen(e)

	e.Invalidate()
	e.PointerDown(pt(5, 5))
	if e.Click(pt(5, 5)) || e.ContextMenu(pt(5, 5)) {
		t.Error("click handled while invalid")
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %v", rec.kinds())
	}
}

func TestEngine_PressReleasePairing(t *testing.T) {
	e := New(newBoxSearcher(box(4, 0, 0, 10, 10)))
	var rec recorder
	rec.listen(e)

	e.PointerDown(pt(5, 5))
	if e.Pressed() != 4 {
		t.Fatalf("Pressed = %d, want 4", e.Pressed())
	}
	// Released far away from the marker.
	e.PointerUp(pt(500, 500))
	e.PointerUp(pt(500, 500))

	want := []string{"press", "release"}
	if got := rec.kinds(); !slices.Equal(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if rec.events[1].Marker != 4 {
		t.Errorf("release marker = %d, want 4", rec.events[1].Marker)
	}
}

func TestEngine_PressOnNothing(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10)))
	var rec recorder
	rec.listen(e)
	e.PointerDown(pt(50, 50))
	e.PointerUp(pt(5, 5))
	if len(rec.events) != 0 {
		t.Errorf("events = %v", rec.kinds())
	}
}

func TestEngine_ClickMiss(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10)))
	if e.Click(pt(50, 50)) {
		t.Error("Click on empty space returned true")
	}
	if !e.ContextMenu(pt(10, 10)) {
		t.Error("ContextMenu on the box edge returned false")
	}
}

func TestEngine_LeaveSuppressedWhileZooming(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10)))
	var rec recorder
	rec.listen(e)

	e.PointerMove(pt(5, 5))
	e.SetZooming(true)
	e.PointerLeave(pt(-1, -1))
	if e.Hovered() != 0 {
		t.Fatal("leave during zoom cleared the hover")
	}

	e.SetZooming(false)
	e.PointerLeave(pt(-1, -1))
	want := []string{"hover-enter", "hover-leave"}
	if got := rec.kinds(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestEngine_Off(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10)))
	var a, b int
	offA := e.On(Click, func(Event) { a++ })
	e.On(Click, func(Event) { b++ })

	e.Click(pt(5, 5))
	offA()
	offA()
	e.Click(pt(5, 5))

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
}

func TestEngine_OffDuringDispatch(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10)))
	calls := 0
	var off func()
	off = e.On(Click, func(Event) { calls++; off() })
	e.On(Click, func(Event) { calls++ })

	e.Click(pt(5, 5))
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestEngine_PointerPassedThrough(t *testing.T) {
	e := New(newBoxSearcher(box(0, 0, 0, 10, 10)))
	type hostEvent struct{ button int }
	var got any
	e.On(Click, func(ev Event) { got = ev.Pointer.Event })
	e.Click(Pointer{X: 5, Y: 5, Event: hostEvent{button: 1}})
	if got != (hostEvent{button: 1}) {
		t.Errorf("Pointer.Event = %v", got)
	}
}

func TestKind_String(t *testing.T) {
	if HoverEnter.String() != "hover-enter" || ContextMenu.String() != "context-menu" || Kind(42).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
