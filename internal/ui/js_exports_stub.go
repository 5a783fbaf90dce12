//go:build !js || test

package ui

import "github.com/ingyamilmolinar/midiclip/internal/config"

func (s *Surface) initJS(*config.Config) {}
