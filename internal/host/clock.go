package host

import (
	"encoding/json"
	"sync"
	"time"

	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
)

// ClockContext is an AudioContext backed by the wall clock, for builds
// without a browser. Like WebAudio, its time only advances while running.
type ClockContext struct {
	mu      sync.Mutex
	now     func() time.Time
	running bool
	since   time.Time
	elapsed time.Duration
}

func NewClockContext() *ClockContext {
	return &ClockContext{now: time.Now}
}

func (c *ClockContext) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		c.running = true
		c.since = c.now()
	}
	return nil
}

func (c *ClockContext) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		c.elapsed += c.now().Sub(c.since)
		c.running = false
	}
	return nil
}

func (c *ClockContext) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *ClockContext) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.elapsed
	if c.running {
		d += c.now().Sub(c.since)
	}
	return d.Seconds()
}

// LogScheduler writes every scheduled event to the log instead of a plugin.
type LogScheduler struct {
	logger *game_log.Logger
}

func NewLogScheduler(logger *game_log.Logger) *LogScheduler {
	return &LogScheduler{logger: logger.Named("SCHEDULER")}
}

func (s *LogScheduler) ScheduleEvents(ev ScheduledEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	s.logger.Infof("%s", b)
	return nil
}
