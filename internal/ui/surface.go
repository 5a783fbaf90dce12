package ui

import (
	"fmt"
	"image"
	"sync"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/midiclip/core/clip"
	"github.com/ingyamilmolinar/midiclip/internal/config"
	"github.com/ingyamilmolinar/midiclip/internal/host"
	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
)

// Deps are the collaborators a Surface is wired to.
type Deps struct {
	ID        string // session id; generated when empty
	Mounter   host.Mounter
	Transport TransportControl
	Logger    *game_log.Logger
}

// Surface is the track: a fixed-size canvas holding exactly one Region and
// the transport bar below it. It implements ebiten.Game.
type Surface struct {
	ID string

	width, height int
	state         *clip.State
	region        *Region
	pointer       *PointerTracker
	bar           *TransportBar
	logger        *game_log.Logger

	// calls queued from other goroutines (browser callbacks), run in Update
	mu      sync.Mutex
	pending []func()
}

// New mounts a cfg.Width×cfg.Height surface into the host element and binds
// a Region to it and to state.
func New(cfg *config.Config, state *clip.State, deps Deps) (*Surface, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("surface config: %w", err)
	}
	id := deps.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := deps.Logger.Named("SURFACE")

	totalH := cfg.Height + barHeight
	if err := deps.Mounter.Mount(cfg.HostElementID, cfg.Width, totalH); err != nil {
		return nil, fmt.Errorf("mount surface: %w", err)
	}

	s := &Surface{
		ID:      id,
		width:   cfg.Width,
		height:  cfg.Height,
		state:   state,
		region:  NewRegion(float64(cfg.Width), float64(cfg.Height), state, deps.Logger),
		pointer: NewPointerTracker(cfg.Width, totalH),
		bar:     NewTransportBar(cfg.Height, cfg.Width, cfg.Tempo, deps.Transport, cfg.TempoDebounce(), deps.Logger),
		logger:  logger,
	}
	s.initJS(cfg)
	logger.Infof("mounted %s into #%s (%dx%d)", id, cfg.HostElementID, cfg.Width, cfg.Height)
	return s, nil
}

func (s *Surface) Region() *Region { return s.region }

func (s *Surface) State() *clip.State { return s.state }

// UpdateState swaps the clip state; the next Render picks it up.
func (s *Surface) UpdateState(state *clip.State) {
	s.state = state
	s.region.UpdateState(state)
}

// Render reconciles the region's note rectangles with the current state.
// Errors are logged before being returned.
func (s *Surface) Render() error {
	if err := s.region.RenderNotes(); err != nil {
		s.logger.Errorf("%v", err)
		return err
	}
	return nil
}

// Post queues f to run on the update loop. It never blocks.
func (s *Surface) Post(f func()) {
	s.mu.Lock()
	s.pending = append(s.pending, f)
	s.mu.Unlock()
}

func (s *Surface) drain() {
	s.mu.Lock()
	calls := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, f := range calls {
		f()
	}
}

func (s *Surface) Update() error {
	s.drain()

	for _, ev := range s.pointer.Poll() {
		wasActive := s.region.Listening()
		s.region.HandlePointer(ev)
		if wasActive && !s.region.Listening() {
			// a finished gesture may have exposed or hidden notes; Render
			// logs its own error
			s.Render()
		}
	}
	s.bar.Update(!s.region.Listening())
	return nil
}

func (s *Surface) Draw(dst *ebiten.Image) {
	drawRect(dst, rectFrom(image.Rect(0, 0, s.width, s.height)), colTrackBG, true)
	s.region.Draw(dst)
	s.bar.Draw(dst)
}

func (s *Surface) Layout(_, _ int) (int, int) {
	return s.width, s.height + barHeight
}
