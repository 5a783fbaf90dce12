package host

import (
	"fmt"
	"sync"

	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
)

const TransportEventType = "wam-transport"

// TransportEvent is the payload of a wam-transport event.
type TransportEvent struct {
	Playing            bool    `json:"playing"`
	TimeSigNumerator   int     `json:"timeSigNumerator"`
	TimeSigDenominator int     `json:"timeSigDenominator"`
	CurrentBar         int     `json:"currentBar"`
	CurrentBarStarted  float64 `json:"currentBarStarted"`
	Tempo              float64 `json:"tempo"`
	HostGroupID        string  `json:"hostGroupId,omitempty"`
}

// ScheduledEvent is the envelope handed to Scheduler.ScheduleEvents.
type ScheduledEvent struct {
	Type string         `json:"type"`
	Data TransportEvent `json:"data"`
}

type TransportOptions struct {
	Tempo              float64
	TimeSigNumerator   int
	TimeSigDenominator int
	HostGroupID        string
}

// Transport drives play/stop and tempo through an explicit audio context
// and scheduler. It is safe for use from the UI loop and from timer
// goroutines.
type Transport struct {
	mu     sync.Mutex
	ctx    AudioContext
	sched  Scheduler
	opts   TransportOptions
	logger *game_log.Logger
}

func NewTransport(ctx AudioContext, sched Scheduler, opts TransportOptions, logger *game_log.Logger) *Transport {
	return &Transport{ctx: ctx, sched: sched, opts: opts, logger: logger.Named("TRANSPORT")}
}

// Toggle suspends a running context, or resumes a suspended one and tells
// the sequencer to start from bar 0. It returns the new playing state.
func (t *Transport) Toggle() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctx.Running() {
		if err := t.ctx.Suspend(); err != nil {
			return true, fmt.Errorf("suspend audio context: %w", err)
		}
		t.logger.Infof("stopped")
		return false, nil
	}
	if err := t.ctx.Resume(); err != nil {
		return false, fmt.Errorf("resume audio context: %w", err)
	}
	if err := t.schedule(true); err != nil {
		return true, err
	}
	t.logger.Infof("playing at %.0f BPM", t.opts.Tempo)
	return true, nil
}

// SetTempo stores bpm and reschedules the transport with it.
func (t *Transport) SetTempo(bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("tempo %.2f must be positive", bpm)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opts.Tempo = bpm
	t.logger.Debugf("tempo -> %.0f", bpm)
	return t.schedule(t.ctx.Running())
}

func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx.Running()
}

func (t *Transport) Tempo() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opts.Tempo
}

func (t *Transport) schedule(playing bool) error {
	ev := ScheduledEvent{
		Type: TransportEventType,
		Data: TransportEvent{
			Playing:            playing,
			TimeSigNumerator:   t.opts.TimeSigNumerator,
			TimeSigDenominator: t.opts.TimeSigDenominator,
			CurrentBar:         0,
			CurrentBarStarted:  t.ctx.CurrentTime(),
			Tempo:              t.opts.Tempo,
			HostGroupID:        t.opts.HostGroupID,
		},
	}
	if err := t.sched.ScheduleEvents(ev); err != nil {
		return fmt.Errorf("schedule %s: %w", ev.Type, err)
	}
	return nil
}
