package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerKind is the kind of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// PointerEvent carries a global surface-space position. Outside marks an Up
// delivered after the pointer left the surface.
type PointerEvent struct {
	Kind    PointerKind
	X, Y    float64
	Outside bool
}

// PointerTracker turns ebiten's polled mouse state into discrete
// down/move/up events, one frame at a time.
type PointerTracker struct {
	pressed bool
	lastX   int
	lastY   int
	boundsW int
	boundsH int
}

func NewPointerTracker(w, h int) *PointerTracker {
	return &PointerTracker{boundsW: w, boundsH: h}
}

// Poll reads the current input and returns the events since the last call.
func (p *PointerTracker) Poll() []PointerEvent {
	x, y := cursorPosition()
	down := isMouseButtonPressed(ebiten.MouseButtonLeft)
	ev := PointerEvent{X: float64(x), Y: float64(y)}

	var out []PointerEvent
	switch {
	case down && !p.pressed:
		ev.Kind = PointerDown
		out = append(out, ev)
	case down && (x != p.lastX || y != p.lastY):
		ev.Kind = PointerMove
		out = append(out, ev)
	case !down && p.pressed:
		ev.Kind = PointerUp
		ev.Outside = x < 0 || y < 0 || x >= p.boundsW || y >= p.boundsH
		out = append(out, ev)
	}
	p.pressed = down
	p.lastX, p.lastY = x, y
	return out
}
