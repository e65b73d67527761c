package window_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/fryer/backend/window"
	"github.com/plus3/fryer/game"
)

func pressing(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := map[ebiten.Key]bool{}
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestReadKeys(t *testing.T) {
	t.Run("nothing held", func(t *testing.T) {
		raw := window.ReadKeys(window.DefaultBindings, pressing())
		assert.Equal(t, [game.ControllerCount]game.RawController{}, raw)
	})

	t.Run("buttons and direction per controller", func(t *testing.T) {
		raw := window.ReadKeys(window.DefaultBindings, pressing(ebiten.KeySpace, ebiten.KeyW, ebiten.KeyL))
		assert.Equal(t, game.RawController{One: true, Moving: true, Direction: game.Yn}, raw[0])
		assert.Equal(t, game.RawController{Moving: true, Direction: game.Xn}, raw[1])
		assert.Equal(t, game.RawController{}, raw[2])
	})

	t.Run("arrows drive controller 0 only", func(t *testing.T) {
		raw := window.ReadKeys(window.DefaultBindings, pressing(ebiten.KeyArrowUp))
		assert.Equal(t, game.RawController{Moving: true, Direction: game.Zp}, raw[0])
		assert.False(t, raw[1].Moving)
	})

	t.Run("lowest direction wins", func(t *testing.T) {
		raw := window.ReadKeys(window.DefaultBindings, pressing(ebiten.KeyQ, ebiten.KeyA))
		assert.Equal(t, game.Xp, raw[0].Direction)
	})
}
