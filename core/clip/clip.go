package clip

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const (
	// TicksPerUnit quantizes a note start into a grid column; at 24 PPQN
	// one unit is a sixteenth.
	TicksPerUnit = 6
	// PPQN is the tick resolution the sequencer plugin uses.
	PPQN = 24

	MaxPitch = 127
)

// ErrMalformedState reports a state without a clip.state.notes collection.
var ErrMalformedState = errors.New("clip: malformed state")

// Note is a single sequencer note as published by the clip editor.
type Note struct {
	Number   int `json:"number"`
	Tick     int `json:"tick"`
	Duration int `json:"duration"`
}

// Identity is the render-cache key of a note: pitch and quantized start.
type Identity string

func (n Note) Identity() Identity {
	unit := strconv.FormatFloat(float64(n.Tick)/TicksPerUnit, 'f', -1, 64)
	return Identity(strconv.Itoa(n.Number) + "," + unit)
}

// Units returns the start and length of the note in grid units.
func (n Note) Units() (start, length float64) {
	return float64(n.Tick) / TicksPerUnit, float64(n.Duration) / TicksPerUnit
}

// ClipState holds the ordered note list. Two notes sharing an Identity
// collide in the render cache; the editor is expected to prevent that.
type ClipState struct {
	Notes []Note `json:"notes"`
}

type Clip struct {
	State *ClipState `json:"state"`
}

// State is the document the host page publishes (clip.state.notes).
type State struct {
	Clip *Clip `json:"clip"`
}

// New builds a well-formed state around notes. An empty clip keeps a
// non-nil slice so it encodes as "notes":[] and decodes back.
func New(notes ...Note) *State {
	if notes == nil {
		notes = []Note{}
	}
	return &State{Clip: &Clip{State: &ClipState{Notes: notes}}}
}

// Validate reports ErrMalformedState when any level of clip.state is missing.
func (s *State) Validate() error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil state", ErrMalformedState)
	case s.Clip == nil:
		return fmt.Errorf("%w: missing clip", ErrMalformedState)
	case s.Clip.State == nil:
		return fmt.Errorf("%w: missing clip.state", ErrMalformedState)
	}
	return nil
}

// Notes returns the note list of a validated state.
func (s *State) Notes() []Note {
	return s.Clip.State.Notes
}

// Index maps each identity to the first note carrying it.
func (s *State) Index() map[Identity]Note {
	notes := s.Notes()
	idx := make(map[Identity]Note, len(notes))
	for _, n := range notes {
		id := n.Identity()
		if _, dup := idx[id]; dup {
			continue
		}
		idx[id] = n
	}
	return idx
}

// Decode parses a published state document. A document without a
// clip.state.notes array is rejected.
func Decode(data []byte) (*State, error) {
	var raw struct {
		Clip *struct {
			State *struct {
				Notes *[]Note `json:"notes"`
			} `json:"state"`
		} `json:"clip"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode clip state: %w", err)
	}
	if raw.Clip == nil || raw.Clip.State == nil || raw.Clip.State.Notes == nil {
		return nil, fmt.Errorf("%w: no clip.state.notes", ErrMalformedState)
	}
	return New(*raw.Clip.State.Notes...), nil
}
