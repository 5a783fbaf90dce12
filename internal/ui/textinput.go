package ui

import (
	"image"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenutil's debug font cell.
const (
	debugCharW = 6
	debugCharH = 16
)

// TextInput is a single-line editable box. Accept filters typed runes;
// Enter commits by dropping focus.
type TextInput struct {
	Rect    image.Rectangle
	Style   TextInputStyle
	Text    string
	Accept  func(rune) bool
	cursor  int
	focused bool
	anim    float64
	blink   int
	repeat  map[ebiten.Key]int
	chars   []rune
}

// NewTextInput constructs a text input with the given rectangle and style.
func NewTextInput(r image.Rectangle, style TextInputStyle) *TextInput {
	return &TextInput{Rect: r, Style: style, repeat: make(map[ebiten.Key]int)}
}

// Focused reports whether the input currently has focus.
func (t *TextInput) Focused() bool { return t.focused }

// SetText sets the current text and resets the cursor to the end.
func (t *TextInput) SetText(s string) {
	t.Text = s
	t.cursor = utf8.RuneCountInString(s)
}

// Value returns the current text value.
func (t *TextInput) Value() string { return t.Text }

// Update processes mouse/keyboard input. pressEdge is true only on the
// frame the left button went down.
func (t *TextInput) Update(pressEdge bool) bool {
	mx, my := cursorPosition()
	consumed := false
	if pressEdge {
		if image.Pt(mx, my).In(t.Rect) {
			t.focused = true
			t.anim = 1
			consumed = true
		} else {
			t.focused = false
		}
	}

	if !t.focused {
		t.blink = 0
		t.anim *= 0.85
		if t.anim < 0.01 {
			t.anim = 0
		}
		return consumed
	}

	t.blink = (t.blink + 1) % 60

	t.chars = inputChars(t.chars[:0])
	for _, r := range t.chars {
		if r == '\n' || r == '\r' {
			continue
		}
		if t.Accept != nil && !t.Accept(r) {
			continue
		}
		bi := byteIndex(t.Text, t.cursor)
		t.Text = t.Text[:bi] + string(r) + t.Text[bi:]
		t.cursor++
	}

	if t.keyRepeat(ebiten.KeyBackspace) && t.cursor > 0 {
		bi := byteIndex(t.Text, t.cursor)
		prev := byteIndex(t.Text, t.cursor-1)
		t.Text = t.Text[:prev] + t.Text[bi:]
		t.cursor--
	}
	if t.keyRepeat(ebiten.KeyArrowLeft) && t.cursor > 0 {
		t.cursor--
	}
	if t.keyRepeat(ebiten.KeyArrowRight) && t.cursor < utf8.RuneCountInString(t.Text) {
		t.cursor++
	}
	if t.keyRepeat(ebiten.KeyEnter) {
		t.focused = false
	}
	return consumed
}

func (t *TextInput) keyRepeat(k ebiten.Key) bool {
	if isKeyPressed(k) {
		t.repeat[k]++
		d := t.repeat[k]
		if d == 1 || d > 15 && (d-15)%3 == 0 {
			return true
		}
	} else {
		t.repeat[k] = 0
	}
	return false
}

// byteIndex returns the byte index of rune i in s.
func byteIndex(s string, i int) int {
	if i <= 0 {
		return 0
	}
	bi := 0
	for n := 0; n < i && bi < len(s); n++ {
		_, sz := utf8.DecodeRuneInString(s[bi:])
		bi += sz
	}
	return bi
}

// visibleText returns the tail of Text that fits in the box and the index
// of its first rune.
func (t *TextInput) visibleText() (string, int) {
	pad := 4
	maxRunes := (t.Rect.Dx() - pad*2) / debugCharW
	total := utf8.RuneCountInString(t.Text)
	start := 0
	if total > maxRunes {
		start = total - maxRunes
	}
	return t.Text[byteIndex(t.Text, start):], start
}

// Draw renders the box, its text and a blinking cursor while focused.
func (t *TextInput) Draw(dst *ebiten.Image) {
	t.Style.DrawAnimated(dst, rectFrom(t.Rect), t.focused, t.anim)
	txt, start := t.visibleText()
	debugPrintAt(dst, txt, t.Rect.Min.X+4, t.Rect.Min.Y+4)
	if t.focused && t.blink < 30 {
		cx := t.Rect.Min.X + 4 + debugCharW*(t.cursor-start)
		cy := t.Rect.Min.Y + 4
		drawRect(dst, rectFrom(image.Rect(cx, cy, cx+1, cy+debugCharH-2)), colorWhite, true)
	}
}
