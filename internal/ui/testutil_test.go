package ui

import (
	"image/color"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
)

var testLogger = game_log.New(io.Discard, game_log.LevelError)

type drawCall struct {
	Rect   Rect
	Color  color.Color
	Filled bool
}

// captureDraws replaces the drawing primitives with recorders so tests run
// without a graphics context.
func captureDraws() (calls *[]drawCall, restore func()) {
	var recorded []drawCall
	origRect, origPrint := drawRect, debugPrintAt
	drawRect = func(_ *ebiten.Image, r Rect, c color.Color, filled bool) {
		recorded = append(recorded, drawCall{Rect: r, Color: c, Filled: filled})
	}
	debugPrintAt = func(*ebiten.Image, string, int, int) {}
	return &recorded, func() {
		drawRect, debugPrintAt = origRect, origPrint
	}
}

// mouse is a scripted pointer for SetInputForTest.
type mouse struct {
	x, y  int
	down  bool
	keys  map[ebiten.Key]bool
	chars []rune
}

func (m *mouse) install() func() {
	return SetInputForTest(
		func() (int, int) { return m.x, m.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && m.down },
		func(k ebiten.Key) bool { return m.keys[k] },
		func(buf []rune) []rune {
			buf = append(buf, m.chars...)
			m.chars = nil
			return buf
		},
	)
}

type fakeMounter struct {
	err       error
	elementID string
	w, h      int
}

func (m *fakeMounter) Mount(id string, w, h int) error {
	m.elementID, m.w, m.h = id, w, h
	return m.err
}

type fakeControl struct {
	mu      sync.Mutex
	playing bool
	tempos  []float64
	toggles int
}

func (c *fakeControl) Toggle() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toggles++
	c.playing = !c.playing
	return c.playing, nil
}

func (c *fakeControl) SetTempo(bpm float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tempos = append(c.tempos, bpm)
	return nil
}

func (c *fakeControl) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

func (c *fakeControl) Tempos() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.tempos...)
}
