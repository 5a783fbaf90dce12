//go:build js && !test

package ui

import (
	"syscall/js"

	"github.com/ingyamilmolinar/midiclip/core/clip"
	"github.com/ingyamilmolinar/midiclip/internal/config"
)

// initJS exposes the state/render entry points the host page calls with the
// sequencer plugin's state. Work is posted to the update loop.
func (s *Surface) initJS(cfg *config.Config) {
	js.Global().Set(cfg.StateFunc, js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 1 {
			return js.ValueOf("missing state argument")
		}
		doc := args[0]
		if doc.Type() != js.TypeString {
			doc = js.Global().Get("JSON").Call("stringify", doc)
		}
		st, err := clip.Decode([]byte(doc.String()))
		if err != nil {
			s.logger.Errorf("update state: %v", err)
			return js.ValueOf(err.Error())
		}
		s.Post(func() { s.UpdateState(st) })
		return js.Null()
	}))
	js.Global().Set(cfg.RenderFunc, js.FuncOf(func(js.Value, []js.Value) any {
		s.Post(func() { s.Render() })
		return js.Null()
	}))
}
