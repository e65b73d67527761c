package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/plus3/fryer/game"
)

// A script returns the raw controller state for a frame.
type script func(frame int) [game.ControllerCount]game.RawController

var scripts = map[string]script{
	"idle": func(int) [game.ControllerCount]game.RawController {
		return [game.ControllerCount]game.RawController{}
	},
	// every controller flicks once a second, cycling through directions
	"shake": func(frame int) [game.ControllerCount]game.RawController {
		var raw [game.ControllerCount]game.RawController
		if frame%60 >= 10 {
			return raw
		}
		for i := range raw {
			raw[i] = game.RawController{Moving: true, Direction: game.Direction((frame/60 + i) % 6)}
		}
		return raw
	},
	// controller 0 presses home after ten seconds
	"quit": func(frame int) [game.ControllerCount]game.RawController {
		var raw [game.ControllerCount]game.RawController
		raw[0].Home = frame >= 600
		return raw
	},
}

func scriptNames() []string {
	return slices.Sorted(maps.Keys(scripts))
}

func lookupScript(name string) (script, error) {
	s, ok := scripts[name]
	if !ok {
		return nil, fmt.Errorf("unknown script %q, want one of %v", name, scriptNames())
	}
	return s, nil
}
