package ui

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/midiclip/core/clip"
	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
	"github.com/ingyamilmolinar/midiclip/internal/utils"
)

const (
	defaultWindowStart = 0
	defaultWindowEnd   = 400

	hitZoneSize  = 29
	hitZoneInset = 30

	gridColumns = 16
	gridRows    = clip.MaxPitch + 1
)

// GestureState is the pointer gesture a Region is tracking.
type GestureState int

const (
	Idle GestureState = iota
	Moving
	ResizingLeft
	ResizingRight
)

func (g GestureState) String() string {
	switch g {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case ResizingLeft:
		return "resizing-left"
	case ResizingRight:
		return "resizing-right"
	default:
		return fmt.Sprintf("GestureState(%d)", int(g))
	}
}

type hitTarget int

const (
	hitNone hitTarget = iota
	hitBody
	hitLeft
	hitRight
)

// transition is the gesture state machine. Up always ends the gesture, Down
// only starts one from Idle, and Move never changes state.
func transition(cur GestureState, kind PointerKind, target hitTarget) GestureState {
	switch kind {
	case PointerUp:
		return Idle
	case PointerDown:
		if cur != Idle {
			return cur
		}
		switch target {
		case hitLeft:
			return ResizingLeft
		case hitRight:
			return ResizingRight
		case hitBody:
			return Moving
		}
		return Idle
	default:
		return cur
	}
}

// NoteRect is one drawn note. Note is refreshed from the clip state on every
// render and is never written back.
type NoteRect struct {
	ID   clip.Identity
	Note clip.Note
	Rect Rect
}

// Region is the draggable, resizable time window over a clip. It owns the
// window bounds and the note rectangles visible through it.
type Region struct {
	width, height float64

	start, end float64

	state   *clip.State
	gesture GestureState
	anchorX float64

	rects  map[clip.Identity]*NoteRect
	logger *game_log.Logger
}

func NewRegion(width, height float64, state *clip.State, logger *game_log.Logger) *Region {
	return &Region{
		width:  width,
		height: height,
		start:  defaultWindowStart,
		end:    defaultWindowEnd,
		state:  state,
		rects:  make(map[clip.Identity]*NoteRect),
		logger: logger.Named("REGION"),
	}
}

func (r *Region) UpdateState(s *clip.State) { r.state = s }

// Window returns the current [start, end) bounds. start > end is possible
// after a resize drags one edge past the other.
func (r *Region) Window() (start, end float64) { return r.start, r.end }

// SetWindow places the window without going through a gesture.
func (r *Region) SetWindow(start, end float64) { r.start, r.end = start, end }

func (r *Region) Gesture() GestureState { return r.gesture }

// Listening reports whether move events are currently consumed.
func (r *Region) Listening() bool { return r.gesture != Idle }

// Body is the move area of the window.
func (r *Region) Body() Rect {
	return Rect{X: r.start, Y: 0, W: r.end - r.start, H: r.height}
}

// LeftZone is the resize handle at the top-left corner.
func (r *Region) LeftZone() Rect {
	return Rect{X: r.start + 1, Y: 0, W: hitZoneSize, H: hitZoneSize}
}

// RightZone is the resize handle at the bottom-right corner.
func (r *Region) RightZone() Rect {
	return Rect{X: r.end - hitZoneInset, Y: r.height - hitZoneInset, W: hitZoneSize, H: hitZoneSize}
}

func (r *Region) hitTest(x, y float64) hitTarget {
	switch {
	case r.LeftZone().Contains(x, y):
		return hitLeft
	case r.RightZone().Contains(x, y):
		return hitRight
	case r.Body().Contains(x, y):
		return hitBody
	}
	return hitNone
}

// HandlePointer feeds one pointer event through the gesture state machine.
// Events that do not fit the current state are ignored.
func (r *Region) HandlePointer(ev PointerEvent) {
	target := hitNone
	if ev.Kind == PointerDown {
		target = r.hitTest(ev.X, ev.Y)
	}
	prev := r.gesture
	r.gesture = transition(prev, ev.Kind, target)

	switch ev.Kind {
	case PointerDown:
		if prev != Idle || r.gesture == Idle {
			return
		}
		if r.gesture == Moving {
			r.anchorX = ev.X
		}
		r.logger.Debugf("%s start at (%.1f, %.1f) window=[%.1f, %.1f)", r.gesture, ev.X, ev.Y, r.start, r.end)
	case PointerMove:
		r.onMove(ev.X)
	case PointerUp:
		if prev != Idle {
			r.logger.Debugf("%s end (outside=%t) window=[%.1f, %.1f)", prev, ev.Outside, r.start, r.end)
		}
	}
}

func (r *Region) onMove(x float64) {
	switch r.gesture {
	case Moving:
		dx := x - r.anchorX
		switch {
		case r.start+dx < 0:
			r.start = 0
		case r.end+dx > r.width:
			r.end = r.width
		default:
			r.start += dx
			r.end += dx
		}
		r.anchorX = x
	case ResizingLeft:
		// no ordering clamp: the window may invert
		r.start = x
	case ResizingRight:
		r.end = x
	}
}

// noteRect places n on the 16×128 grid and clips it to the window. ok is
// false when nothing of the note is visible.
func (r *Region) noteRect(n clip.Note, colW, rowH float64) (Rect, bool) {
	startUnits, lenUnits := n.Units()
	x0 := math.Floor(startUnits * colW)
	x1 := x0 + colW*lenUnits
	lo, hi := utils.Overlap(x0, x1, r.start, r.end)
	if lo >= hi {
		return Rect{}, false
	}
	return Rect{X: lo, Y: float64(clip.MaxPitch-n.Number) * rowH, W: hi - lo, H: rowH}, true
}

// RenderNotes reconciles the rectangle cache against the clip state: stale
// identities are pruned, survivors repositioned (or evicted once out of the
// window) and newly visible notes added. A malformed state leaves the cache
// untouched.
func (r *Region) RenderNotes() error {
	if err := r.state.Validate(); err != nil {
		return fmt.Errorf("render notes: %w", err)
	}
	colW := r.width / gridColumns
	rowH := r.height / gridRows
	index := r.state.Index()

	pruned, evicted, created := 0, 0, 0
	for id := range r.rects {
		if _, ok := index[id]; !ok {
			delete(r.rects, id)
			pruned++
		}
	}

	for id, nr := range r.rects {
		n := index[id]
		rect, ok := r.noteRect(n, colW, rowH)
		if !ok {
			delete(r.rects, id)
			evicted++
			continue
		}
		nr.Note = n
		nr.Rect = rect
	}

	for _, n := range r.state.Notes() {
		id := n.Identity()
		if _, ok := r.rects[id]; ok || index[id] != n {
			continue
		}
		rect, ok := r.noteRect(n, colW, rowH)
		if !ok {
			continue
		}
		r.rects[id] = &NoteRect{ID: id, Note: n, Rect: rect}
		created++
		r.logger.Debugf("note %s (%s) at [%.1f, %.1f)", id, clip.PitchName(n.Number), rect.X, rect.X+rect.W)
	}

	if pruned+evicted+created > 0 {
		r.logger.Debugf("render: %d cached (+%d, -%d pruned, -%d evicted)", len(r.rects), created, pruned, evicted)
	}
	return nil
}

// Keys returns the cached identities in sorted order.
func (r *Region) Keys() []clip.Identity {
	return slices.Sorted(maps.Keys(r.rects))
}

// NoteRects returns a snapshot of the cache ordered by identity.
func (r *Region) NoteRects() []NoteRect {
	out := make([]NoteRect, 0, len(r.rects))
	for _, id := range r.Keys() {
		out = append(out, *r.rects[id])
	}
	return out
}

// Draw paints background, notes and both hit-zones from the current bounds.
func (r *Region) Draw(dst *ebiten.Image) {
	bg := Rect{X: r.start + 1, Y: 0, W: r.end - r.start - 1, H: r.height - 1}
	drawRect(dst, bg, colRegionFill, true)
	drawRect(dst, bg, colRegionBorder, false)
	for _, nr := range r.NoteRects() {
		drawRect(dst, nr.Rect, colNote, true)
	}
	drawRect(dst, r.LeftZone(), colHitZone, true)
	drawRect(dst, r.RightZone(), colHitZone, true)
}
