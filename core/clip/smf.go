package clip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNoMetricTicks = errors.New("clip: SMF time format is not metric ticks")

// ReadSMFFile loads a Standard MIDI File and converts one track into a state.
func ReadSMFFile(path string, track int) (s *State, err error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read midi file %s: %w", path, err)
	}
	return FromSMF(bytes.NewReader(dat), track)
}

// FromSMF converts the note on/off pairs of one track into notes whose
// ticks are rescaled to PPQN. Notes still sounding at the end of the track
// are dropped.
func FromSMF(r io.Reader, track int) (s *State, err error) {
	// smf panics on some truncated inputs
	defer func() {
		if rec := recover(); rec != nil {
			s, err = nil, fmt.Errorf("parse midi file: %v", rec)
		}
	}()

	mf, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parse midi file: %w", err)
	}
	res, ok := mf.TimeFormat.(smf.MetricTicks)
	if !ok || res == 0 {
		return nil, ErrNoMetricTicks
	}
	if track < 0 || track >= len(mf.Tracks) {
		return nil, fmt.Errorf("track %d out of range (file has %d)", track, len(mf.Tracks))
	}

	scale := func(abs int64) int {
		return int(abs * PPQN / int64(res))
	}

	var (
		abs   int64
		open  = map[[2]uint8]int64{} // channel,key -> start tick
		notes []Note
	)
	for _, ev := range mf.Tracks[track] {
		abs += int64(ev.Delta)
		msg := midi.Message(ev.Message)
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			open[[2]uint8{ch, key}] = abs
		case msg.GetNoteEnd(&ch, &key):
			k := [2]uint8{ch, key}
			start, ok := open[k]
			if !ok {
				continue
			}
			delete(open, k)
			notes = append(notes, Note{
				Number:   int(key),
				Tick:     scale(start),
				Duration: scale(abs) - scale(start),
			})
		}
	}

	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Tick < notes[j].Tick })
	return New(notes...), nil
}

// PitchName renders a note number the way gomidi names keys, e.g. "C5".
func PitchName(number int) string {
	if number < 0 || number > MaxPitch {
		return fmt.Sprintf("?%d", number)
	}
	return midi.Note(uint8(number)).String()
}
