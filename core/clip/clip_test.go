package clip

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, Identity("60,0"), Note{Number: 60, Tick: 0, Duration: 12}.Identity())
	assert.Equal(t, Identity("64,400"), Note{Number: 64, Tick: 2400}.Identity())
	assert.Equal(t, Identity("60,0.5"), Note{Number: 60, Tick: 3}.Identity())
	// duration is not part of the identity
	assert.Equal(t, Note{Number: 1, Tick: 6, Duration: 1}.Identity(), Note{Number: 1, Tick: 6, Duration: 99}.Identity())
}

func TestValidate(t *testing.T) {
	var nilState *State
	for name, s := range map[string]*State{
		"nil":      nilState,
		"no clip":  {},
		"no state": {Clip: &Clip{}},
	} {
		err := s.Validate()
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrMalformedState), name)
	}
	assert.NoError(t, New().Validate())
}

func TestIndexFirstWins(t *testing.T) {
	s := New(
		Note{Number: 60, Tick: 0, Duration: 6},
		Note{Number: 60, Tick: 0, Duration: 24},
		Note{Number: 62, Tick: 6, Duration: 6},
	)
	idx := s.Index()
	require.Len(t, idx, 2)
	assert.Equal(t, 6, idx["60,0"].Duration)
}

func TestDecode(t *testing.T) {
	s, err := Decode([]byte(`{"clip":{"state":{"notes":[{"number":60,"tick":0,"duration":12}]}}}`))
	require.NoError(t, err)
	assert.Equal(t, []Note{{Number: 60, Tick: 0, Duration: 12}}, s.Notes())

	s, err = Decode([]byte(`{"clip":{"state":{"notes":[]}}}`))
	require.NoError(t, err)
	assert.Empty(t, s.Notes())

	for _, doc := range []string{`{}`, `{"clip":{}}`, `{"clip":{"state":{}}}`} {
		_, err := Decode([]byte(doc))
		assert.ErrorIs(t, err, ErrMalformedState, doc)
	}

	_, err = Decode([]byte(`{"clip":`))
	assert.Error(t, err)
}

func writeSMF(t *testing.T, resolution uint16, tr smf.Track) *bytes.Buffer {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)
	require.NoError(t, s.Add(tr))
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestFromSMFRescalesTicks(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(96, midi.NoteOff(0, 60)) // a quarter at 96 PPQN
	tr.Add(0, midi.NoteOn(0, 64, 90))
	tr.Add(48, midi.NoteOn(0, 64, 0)) // velocity 0 ends the note
	tr.Close(0)

	s, err := FromSMF(writeSMF(t, 96, tr), 0)
	require.NoError(t, err)
	assert.Equal(t, []Note{
		{Number: 60, Tick: 0, Duration: PPQN},
		{Number: 64, Tick: PPQN, Duration: PPQN / 2},
	}, s.Notes())
}

func TestFromSMFTrackOutOfRange(t *testing.T) {
	var tr smf.Track
	tr.Close(0)
	_, err := FromSMF(writeSMF(t, 96, tr), 3)
	assert.Error(t, err)
}

func TestEmptyTrackSurvivesJSON(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.ProgramChange(0, 1))
	tr.Close(0)
	s, err := FromSMF(writeSMF(t, 96, tr), 0)
	require.NoError(t, err)
	assert.Empty(t, s.Notes())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clip":{"state":{"notes":[]}}}`, string(data))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got.Notes())
	assert.NoError(t, got.Validate())
}

func TestPitchName(t *testing.T) {
	assert.NotEmpty(t, PitchName(60))
	assert.Equal(t, "?200", PitchName(200))
}
