// Package host holds the collaborators the editor is wired to: the page
// element it mounts into, the audio context and the plugin's event
// scheduler. They are passed in explicitly; nothing here is reached through
// package-level globals.
package host

import "errors"

// ErrHostElementNotFound means the page has no element to mount into.
var ErrHostElementNotFound = errors.New("host: element not found")

// ErrBindingNotFound means a page global named in the config is missing.
var ErrBindingNotFound = errors.New("host: page binding not found")

// Mounter attaches the drawing surface to the host, replacing whatever the
// host element contained.
type Mounter interface {
	Mount(elementID string, width, height int) error
}

// AudioContext is the slice of a WebAudio context the transport needs.
type AudioContext interface {
	Resume() error
	Suspend() error
	Running() bool
	CurrentTime() float64
}

// Scheduler delivers events to the sequencer plugin's audio node.
type Scheduler interface {
	ScheduleEvents(ev ScheduledEvent) error
}
