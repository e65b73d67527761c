package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/fryer/game"
)

// Binding maps one controller onto the keyboard.
type Binding struct {
	Home, One  ebiten.Key
	Directions [6]ebiten.Key // indexed by game.Direction
}

// DefaultBindings lets up to four players share a keyboard. Controller 0 also
// gets the arrow keys through ArrowBinding.
var DefaultBindings = [game.ControllerCount]Binding{
	{Home: ebiten.KeyEscape, One: ebiten.KeySpace, Directions: [6]ebiten.Key{
		game.Xp: ebiten.KeyA, game.Xn: ebiten.KeyD,
		game.Yp: ebiten.KeyS, game.Yn: ebiten.KeyW,
		game.Zp: ebiten.KeyE, game.Zn: ebiten.KeyQ,
	}},
	{Home: ebiten.KeyF1, One: ebiten.KeyH, Directions: [6]ebiten.Key{
		game.Xp: ebiten.KeyJ, game.Xn: ebiten.KeyL,
		game.Yp: ebiten.KeyK, game.Yn: ebiten.KeyI,
		game.Zp: ebiten.KeyO, game.Zn: ebiten.KeyU,
	}},
	{Home: ebiten.KeyF2, One: ebiten.KeyB, Directions: [6]ebiten.Key{
		game.Xp: ebiten.KeyF, game.Xn: ebiten.KeyG,
		game.Yp: ebiten.KeyV, game.Yn: ebiten.KeyR,
		game.Zp: ebiten.KeyT, game.Zn: ebiten.KeyC,
	}},
	{Home: ebiten.KeyF3, One: ebiten.KeyNumpad0, Directions: [6]ebiten.Key{
		game.Xp: ebiten.KeyNumpad4, game.Xn: ebiten.KeyNumpad6,
		game.Yp: ebiten.KeyNumpad2, game.Yn: ebiten.KeyNumpad8,
		game.Zp: ebiten.KeyNumpad9, game.Zn: ebiten.KeyNumpad3,
	}},
}

// ArrowBinding is an alternative direction set for controller 0.
var ArrowBinding = [6]ebiten.Key{
	game.Xp: ebiten.KeyArrowLeft, game.Xn: ebiten.KeyArrowRight,
	game.Zp: ebiten.KeyArrowUp, game.Zn: ebiten.KeyArrowDown,
	game.Yp: ebiten.KeyPageDown, game.Yn: ebiten.KeyPageUp,
}

// ReadKeys samples the raw controller state. pressed is ebiten.IsKeyPressed
// outside tests. When several directions are held the lowest one wins.
func ReadKeys(bindings [game.ControllerCount]Binding, pressed func(ebiten.Key) bool) [game.ControllerCount]game.RawController {
	var raw [game.ControllerCount]game.RawController
	for i, b := range bindings {
		r := game.RawController{Home: pressed(b.Home), One: pressed(b.One)}
		for dir, key := range b.Directions {
			held := pressed(key)
			if i == 0 {
				held = held || pressed(ArrowBinding[dir])
			}
			if held {
				r.Moving, r.Direction = true, game.Direction(dir)
				break
			}
		}
		raw[i] = r
	}
	return raw
}
