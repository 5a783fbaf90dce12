//go:build js && wasm

package host

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
)

// pageMounter moves ebiten's canvas into the host element.
type pageMounter struct{}

func NewMounter(title string) Mounter {
	js.Global().Get("document").Set("title", title)
	return pageMounter{}
}

func (pageMounter) Mount(elementID string, width, height int) error {
	doc := js.Global().Get("document")
	el := doc.Call("getElementById", elementID)
	if el.IsNull() || el.IsUndefined() {
		return fmt.Errorf("%w: #%s", ErrHostElementNotFound, elementID)
	}
	canvas := doc.Call("querySelector", "canvas")
	if canvas.IsNull() {
		return fmt.Errorf("%w: ebiten canvas", ErrHostElementNotFound)
	}
	el.Set("innerHTML", "")
	style := canvas.Get("style")
	style.Set("width", fmt.Sprintf("%dpx", width))
	style.Set("height", fmt.Sprintf("%dpx", height))
	el.Call("appendChild", canvas)
	return nil
}

type jsAudioContext struct{ v js.Value }

func (c jsAudioContext) Resume() error  { c.v.Call("resume"); return nil }
func (c jsAudioContext) Suspend() error { c.v.Call("suspend"); return nil }
func (c jsAudioContext) Running() bool  { return c.v.Get("state").String() == "running" }
func (c jsAudioContext) CurrentTime() float64 {
	return c.v.Get("currentTime").Float()
}

// jsScheduler calls a page function with the event as a plain JS object,
// e.g. (ev) => pianoRoll.audioNode.scheduleEvents(ev).
type jsScheduler struct {
	fn     js.Value
	logger *game_log.Logger
}

func (s jsScheduler) ScheduleEvents(ev ScheduledEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	obj := js.Global().Get("JSON").Call("parse", string(b))
	s.fn.Invoke(obj)
	s.logger.Debugf("%s", b)
	return nil
}

func lookup(name string) (js.Value, error) {
	v := js.Global().Get(name)
	if v.IsUndefined() || v.IsNull() {
		return js.Value{}, fmt.Errorf("%w: %s", ErrBindingNotFound, name)
	}
	return v, nil
}

// Bind resolves the page's audio context and scheduler function by name.
func Bind(audioContextVar, schedulerFunc string, logger *game_log.Logger) (AudioContext, Scheduler, error) {
	ctx, err := lookup(audioContextVar)
	if err != nil {
		return nil, nil, err
	}
	fn, err := lookup(schedulerFunc)
	if err != nil {
		return nil, nil, err
	}
	if fn.Type() != js.TypeFunction {
		return nil, nil, fmt.Errorf("%w: %s is not a function", ErrBindingNotFound, schedulerFunc)
	}
	return jsAudioContext{v: ctx}, jsScheduler{fn: fn, logger: logger.Named("SCHEDULER")}, nil
}
