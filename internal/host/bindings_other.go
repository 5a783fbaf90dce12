//go:build !js

package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
)

// windowMounter sizes the desktop window; there is no page to mount into.
type windowMounter struct {
	title string
}

func NewMounter(title string) Mounter { return windowMounter{title: title} }

func (m windowMounter) Mount(elementID string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(m.title)
	return nil
}

// Bind returns wall-clock and logging stand-ins; the page global names are
// only meaningful in the browser.
func Bind(audioContextVar, schedulerFunc string, logger *game_log.Logger) (AudioContext, Scheduler, error) {
	return NewClockContext(), NewLogScheduler(logger), nil
}
