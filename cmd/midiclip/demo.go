package main

import "github.com/ingyamilmolinar/midiclip/core/clip"

// demoClip is a one-bar arpeggio shown when no clip is supplied.
func demoClip() *clip.State {
	const sixteenth = clip.TicksPerUnit
	pitches := []int{60, 64, 67, 72, 67, 64, 60, 55}
	notes := make([]clip.Note, 0, len(pitches))
	for i, p := range pitches {
		notes = append(notes, clip.Note{Number: p, Tick: i * 2 * sixteenth, Duration: 2 * sixteenth})
	}
	return clip.New(notes...)
}
