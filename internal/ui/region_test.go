package ui

import (
	"errors"
	"slices"
	"testing"

	"github.com/ingyamilmolinar/midiclip/core/clip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down(x, y float64) PointerEvent { return PointerEvent{Kind: PointerDown, X: x, Y: y} }
func move(x float64) PointerEvent    { return PointerEvent{Kind: PointerMove, X: x, Y: 100} }
func up() PointerEvent               { return PointerEvent{Kind: PointerUp} }

// grab starts a move gesture in the body, away from both hit-zones.
func grab(r *Region, x float64) {
	r.HandlePointer(down(x, r.height/2))
}

func TestRenderScenarioGeometry(t *testing.T) {
	st := clip.New(clip.Note{Number: 60, Tick: 0, Duration: 12})
	r := NewRegion(1600, 200, st, testLogger)
	require.NoError(t, r.RenderNotes())

	rects := r.NoteRects()
	require.Len(t, rects, 1)
	got := rects[0]
	assert.Equal(t, clip.Identity("60,0"), got.ID)
	assert.Equal(t, 0.0, got.Rect.X)
	assert.Equal(t, 200.0, got.Rect.W)
	assert.InDelta(t, 104.7, got.Rect.Y, 0.05)
	assert.Equal(t, 200.0/128, got.Rect.H)
}

func TestRenderSkipsNotesOutsideWindow(t *testing.T) {
	st := clip.New(
		clip.Note{Number: 60, Tick: 0, Duration: 12},
		clip.Note{Number: 64, Tick: 2400, Duration: 12},
	)
	r := NewRegion(1600, 200, st, testLogger)
	require.NoError(t, r.RenderNotes())
	assert.Equal(t, []clip.Identity{"60,0"}, r.Keys())
}

func TestRenderClipsToWindow(t *testing.T) {
	// 100px columns: the note spans [300, 500) and the window ends at 400
	st := clip.New(clip.Note{Number: 10, Tick: 18, Duration: 12})
	r := NewRegion(1600, 128, st, testLogger)
	require.NoError(t, r.RenderNotes())
	rects := r.NoteRects()
	require.Len(t, rects, 1)
	assert.Equal(t, Rect{X: 300, Y: 117, W: 100, H: 1}, rects[0].Rect)
}

func TestRenderIdempotent(t *testing.T) {
	st := clip.New(
		clip.Note{Number: 60, Tick: 0, Duration: 12},
		clip.Note{Number: 62, Tick: 6, Duration: 6},
		clip.Note{Number: 70, Tick: 30, Duration: 24},
	)
	r := NewRegion(900, 200, st, testLogger)
	calls, restore := captureDraws()
	defer restore()

	require.NoError(t, r.RenderNotes())
	firstRects := r.NoteRects()
	r.Draw(nil)
	firstDraw := slices.Clone(*calls)

	*calls = (*calls)[:0]
	require.NoError(t, r.RenderNotes())
	assert.Equal(t, firstRects, r.NoteRects())
	r.Draw(nil)
	assert.Equal(t, firstDraw, *calls)
}

func TestRenderRemovesDeletedNote(t *testing.T) {
	a := clip.Note{Number: 60, Tick: 0, Duration: 6}
	b := clip.Note{Number: 61, Tick: 6, Duration: 6}
	r := NewRegion(900, 200, clip.New(a, b), testLogger)
	require.NoError(t, r.RenderNotes())
	require.Len(t, r.Keys(), 2)

	r.UpdateState(clip.New(b))
	require.NoError(t, r.RenderNotes())
	assert.Equal(t, []clip.Identity{b.Identity()}, r.Keys())

	calls, restore := captureDraws()
	defer restore()
	r.Draw(nil)
	var notes int
	for _, c := range *calls {
		if c.Color == colNote {
			notes++
		}
	}
	assert.Equal(t, 1, notes, "removed note must not be drawn")
}

func TestRenderRepositionsFromCurrentNote(t *testing.T) {
	r := NewRegion(1600, 200, clip.New(clip.Note{Number: 60, Tick: 0, Duration: 6}), testLogger)
	require.NoError(t, r.RenderNotes())
	assert.Equal(t, 100.0, r.NoteRects()[0].Rect.W)

	// same identity, longer note
	r.UpdateState(clip.New(clip.Note{Number: 60, Tick: 0, Duration: 18}))
	require.NoError(t, r.RenderNotes())
	rects := r.NoteRects()
	require.Len(t, rects, 1)
	assert.Equal(t, 300.0, rects[0].Rect.W)
	assert.Equal(t, 18, rects[0].Note.Duration)
}

func TestRenderEvictsAndRecreatesOnWindowChange(t *testing.T) {
	n := clip.Note{Number: 60, Tick: 0, Duration: 6} // [0, 100) at 1600 wide
	r := NewRegion(1600, 200, clip.New(n), testLogger)
	require.NoError(t, r.RenderNotes())
	require.Len(t, r.Keys(), 1)

	r.SetWindow(200, 600)
	require.NoError(t, r.RenderNotes())
	assert.Empty(t, r.Keys())

	r.SetWindow(50, 450)
	require.NoError(t, r.RenderNotes())
	rects := r.NoteRects()
	require.Len(t, rects, 1)
	assert.Equal(t, Rect{X: 50, Y: 67 * 200.0 / 128, W: 50, H: 200.0 / 128}, rects[0].Rect)
}

func TestRenderCacheMatchesVisibleIdentities(t *testing.T) {
	var notes []clip.Note
	for i := 0; i < 40; i++ {
		notes = append(notes, clip.Note{Number: (i * 7) % 128, Tick: i * 9, Duration: 3 + i%5*6})
	}
	r := NewRegion(800, 256, clip.New(notes...), testLogger)

	windows := [][2]float64{{0, 400}, {120, 300}, {650, 800}, {0, 800}, {300, 200}, {799, 800}}
	for _, w := range windows {
		r.SetWindow(w[0], w[1])
		require.NoError(t, r.RenderNotes())

		colW := 800.0 / 16
		var want []clip.Identity
		for _, n := range notes {
			start, length := n.Units()
			x0 := float64(int(start * colW))
			x1 := x0 + length*colW
			if max(x0, w[0]) < min(x1, w[1]) {
				want = append(want, n.Identity())
			}
		}
		slices.Sort(want)
		assert.Equal(t, slices.Compact(want), r.Keys(), "window %v", w)
	}
}

func TestRenderDuplicateIdentityFirstWins(t *testing.T) {
	st := clip.New(
		clip.Note{Number: 60, Tick: 0, Duration: 6},
		clip.Note{Number: 60, Tick: 0, Duration: 12},
	)
	r := NewRegion(1600, 200, st, testLogger)
	require.NoError(t, r.RenderNotes())
	rects := r.NoteRects()
	require.Len(t, rects, 1)
	assert.Equal(t, 6, rects[0].Note.Duration)
}

func TestRenderMalformedStateKeepsCache(t *testing.T) {
	r := NewRegion(900, 200, clip.New(clip.Note{Number: 60, Duration: 6}), testLogger)
	require.NoError(t, r.RenderNotes())

	r.UpdateState(&clip.State{Clip: &clip.Clip{}})
	err := r.RenderNotes()
	require.Error(t, err)
	assert.True(t, errors.Is(err, clip.ErrMalformedState))
	assert.Len(t, r.Keys(), 1)

	r.UpdateState(nil)
	assert.ErrorIs(t, r.RenderNotes(), clip.ErrMalformedState)
}

func TestMoveShiftsWindowAndAnchor(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	r.SetWindow(100, 500)
	grab(r, 200)
	require.Equal(t, Moving, r.Gesture())

	r.HandlePointer(move(250))
	r.HandlePointer(move(260))
	s, e := r.Window()
	assert.Equal(t, 160.0, s)
	assert.Equal(t, 560.0, e)
}

func TestMoveClampsEndToSurfaceWidth(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	r.SetWindow(100, 500)
	grab(r, 200)
	r.HandlePointer(move(700)) // +500

	s, e := r.Window()
	assert.Equal(t, 800.0, e)
	assert.Equal(t, 100.0, s, "start is not shifted on the clamp branch")
}

func TestMovePinsStartAtZero(t *testing.T) {
	for _, dx := range []float64{-101, -150, -500, -1e6} {
		r := NewRegion(800, 200, clip.New(), testLogger)
		r.SetWindow(100, 500)
		grab(r, 300)
		r.HandlePointer(move(300 + dx))
		s, e := r.Window()
		assert.Equal(t, 0.0, s, "dx=%v", dx)
		assert.Equal(t, 500.0, e, "dx=%v", dx)
	}
}

func TestResizeRightFollowsPointer(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	z := r.RightZone()
	r.HandlePointer(down(z.X+5, z.Y+5))
	require.Equal(t, ResizingRight, r.Gesture())

	r.HandlePointer(move(620))
	_, e := r.Window()
	assert.Equal(t, 620.0, e)

	// no ordering clamp: the window may invert
	r.HandlePointer(move(-20))
	s, e := r.Window()
	assert.Equal(t, 0.0, s)
	assert.Equal(t, -20.0, e)
}

func TestResizeLeftFollowsPointer(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	z := r.LeftZone()
	r.HandlePointer(down(z.X+2, z.Y+2))
	require.Equal(t, ResizingLeft, r.Gesture())

	r.HandlePointer(move(120))
	s, e := r.Window()
	assert.Equal(t, 120.0, s)
	assert.Equal(t, 400.0, e)

	r.HandlePointer(move(450))
	s, _ = r.Window()
	assert.Equal(t, 450.0, s)
}

func TestPointerUpEndsEveryGesture(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	starts := map[GestureState]PointerEvent{
		Moving:        down(200, 100),
		ResizingLeft:  down(r.LeftZone().X+1, 1),
		ResizingRight: down(r.RightZone().X+1, r.RightZone().Y+1),
	}
	for want, ev := range starts {
		r.HandlePointer(ev)
		require.Equal(t, want, r.Gesture())
		require.True(t, r.Listening())

		r.HandlePointer(PointerEvent{Kind: PointerUp, X: -50, Y: -50, Outside: true})
		assert.Equal(t, Idle, r.Gesture())
		assert.False(t, r.Listening())

		before0, before1 := r.Window()
		r.HandlePointer(move(333))
		after0, after1 := r.Window()
		assert.Equal(t, before0, after0, "moves after release are ignored")
		assert.Equal(t, before1, after1)
	}
}

func TestGesturesAreExclusive(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	grab(r, 200)
	require.Equal(t, Moving, r.Gesture())

	// a second press on a hit-zone does not switch gestures
	z := r.RightZone()
	r.HandlePointer(down(z.X+1, z.Y+1))
	assert.Equal(t, Moving, r.Gesture())

	r.HandlePointer(up())
	r.HandlePointer(down(z.X+1, z.Y+1))
	assert.Equal(t, ResizingRight, r.Gesture())
}

func TestMoveWithoutGestureIsNoop(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	r.HandlePointer(move(300))
	r.HandlePointer(up())
	s, e := r.Window()
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 400.0, e)
	assert.Equal(t, Idle, r.Gesture())
}

func TestDownOutsideRegionStaysIdle(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	r.HandlePointer(down(600, 100))
	assert.Equal(t, Idle, r.Gesture())
	r.HandlePointer(down(100, 230)) // below the track
	assert.Equal(t, Idle, r.Gesture())
}

func TestHitZonesAreDisjointCorners(t *testing.T) {
	r := NewRegion(800, 200, clip.New(), testLogger)
	l, rz := r.LeftZone(), r.RightZone()
	assert.Equal(t, Rect{X: 1, Y: 0, W: 29, H: 29}, l)
	assert.Equal(t, Rect{X: 370, Y: 170, W: 29, H: 29}, rz)
	assert.Equal(t, hitLeft, r.hitTest(5, 5))
	assert.Equal(t, hitRight, r.hitTest(380, 190))
	assert.Equal(t, hitBody, r.hitTest(380, 5))
	assert.Equal(t, hitNone, r.hitTest(450, 5))
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		cur    GestureState
		kind   PointerKind
		target hitTarget
		want   GestureState
	}{
		{Idle, PointerDown, hitBody, Moving},
		{Idle, PointerDown, hitLeft, ResizingLeft},
		{Idle, PointerDown, hitRight, ResizingRight},
		{Idle, PointerDown, hitNone, Idle},
		{Idle, PointerMove, hitNone, Idle},
		{Idle, PointerUp, hitNone, Idle},
		{Moving, PointerDown, hitLeft, Moving},
		{Moving, PointerMove, hitNone, Moving},
		{ResizingLeft, PointerUp, hitNone, Idle},
		{ResizingRight, PointerUp, hitNone, Idle},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, transition(c.cur, c.kind, c.target), "%s + %s", c.cur, c.kind)
	}
}

func TestDrawOrder(t *testing.T) {
	r := NewRegion(1600, 200, clip.New(clip.Note{Number: 60, Duration: 12}), testLogger)
	require.NoError(t, r.RenderNotes())
	calls, restore := captureDraws()
	defer restore()
	r.Draw(nil)

	require.Len(t, *calls, 5)
	assert.Equal(t, colRegionFill, (*calls)[0].Color)
	assert.Equal(t, colNote, (*calls)[2].Color)
	assert.Equal(t, r.LeftZone(), (*calls)[3].Rect)
	assert.Equal(t, r.RightZone(), (*calls)[4].Rect)
}
