package ui

import (
	"image"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/bep/debounce"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/midiclip/internal/config"
	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
	"github.com/ingyamilmolinar/midiclip/internal/utils"
)

const barHeight = 40 // transport-bar height in px

// TransportControl is the play/stop/tempo surface of the audio host.
type TransportControl interface {
	Toggle() (bool, error)
	SetTempo(bpm float64) error
	Playing() bool
}

// TransportBar sits under the track: a Start/Stop toggle and a tempo box.
// Tempo commits reach the host through a debouncer so typing or repeated
// commits do not flood the plugin's scheduler.
type TransportBar struct {
	Tempo   int
	Playing bool

	control   TransportControl
	debounced func(func())
	logger    *game_log.Logger

	bounds   image.Rectangle
	tempoBox *TextInput
	playRect image.Rectangle
	pressed  bool
	playDown bool

	tempoErrAnim float64
}

func NewTransportBar(top, width, tempo int, control TransportControl, delay time.Duration, logger *game_log.Logger) *TransportBar {
	ti := NewTextInput(image.Rect(50, top+8, 120, top+30), TempoBoxStyle)
	maxDigits := len(strconv.Itoa(config.MaxTempo))
	ti.Accept = func(r rune) bool {
		return r >= '0' && r <= '9' && utf8.RuneCountInString(ti.Text) < maxDigits
	}
	ti.SetText(strconv.Itoa(tempo))
	return &TransportBar{
		Tempo:     tempo,
		Playing:   control.Playing(),
		control:   control,
		debounced: debounce.New(delay),
		logger:    logger.Named("TRANSPORT"),
		bounds:    image.Rect(0, top, width, top+barHeight),
		tempoBox:  ti,
		playRect:  image.Rect(140, top+8, 200, top+30),
	}
}

// SetTempo clamps b to 1..MaxTempo, flashing the box when it had to, and
// forwards the result to the host after the debounce delay.
func (t *TransportBar) SetTempo(b int) {
	v := int(utils.Clamp(float64(b), 1, config.MaxTempo))
	if v != b {
		t.tempoErrAnim = 1
	}
	if v == t.Tempo {
		return
	}
	t.Tempo = v
	t.debounced(func() {
		if err := t.control.SetTempo(float64(v)); err != nil {
			t.logger.Errorf("set tempo %d: %v", v, err)
		}
	})
}

// Update polls input. Clicks are ignored while inactive, e.g. during a
// region gesture that started elsewhere.
func (t *TransportBar) Update(active bool) {
	x, y := cursorPosition()
	down := isMouseButtonPressed(ebiten.MouseButtonLeft)
	edge := active && down && !t.pressed
	t.pressed = down
	t.playDown = down && pt(x, y, t.playRect)

	prev := t.tempoBox.Focused()
	t.tempoBox.Update(edge)

	if edge && pt(x, y, t.playRect) {
		playing, err := t.control.Toggle()
		if err != nil {
			t.logger.Errorf("toggle transport: %v", err)
		}
		t.Playing = playing
	}

	if !prev && t.tempoBox.Focused() {
		t.tempoBox.SetText("")
	}

	if t.tempoBox.Focused() {
		if txt := t.tempoBox.Value(); txt != "" {
			if v, err := strconv.Atoi(txt); err != nil || v < 1 || v > config.MaxTempo {
				t.tempoErrAnim = 1
			}
		}
	} else if prev {
		txt := t.tempoBox.Value()
		if v, err := strconv.Atoi(txt); err == nil && v >= 1 && v <= config.MaxTempo {
			t.SetTempo(v)
		} else if txt != "" {
			t.tempoErrAnim = 1
		}
		t.tempoBox.SetText(strconv.Itoa(t.Tempo))
	}

	t.tempoErrAnim *= 0.85
	if t.tempoErrAnim < 0.01 {
		t.tempoErrAnim = 0
	}
}

func (t *TransportBar) Draw(dst *ebiten.Image) {
	drawRect(dst, rectFrom(t.bounds), colBarBG, true)
	debugPrintAt(dst, "BPM:", 10, t.bounds.Min.Y+12)

	t.tempoBox.Draw(dst)
	if t.tempoErrAnim > 0 {
		drawRect(dst, rectFrom(t.tempoBox.Rect), fadeColor(colError, t.tempoErrAnim), false)
	}

	fill, label := colPlayButton, "Start"
	if t.Playing {
		fill, label = colStopButton, "Stop"
	}
	drawButton(dst, rectFrom(t.playRect), fill, colButtonBorder, t.playDown)
	debugPrintAt(dst, label, t.playRect.Min.X+12, t.playRect.Min.Y+3)
}
