package game_test

import (
	"math"
	"testing"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/ecs"
	"github.com/plus3/fryer/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animated struct {
	Id ecs.EntityId
	*game.Position
	*game.Animation
}

func runAnimation(storage *ecs.Storage, dt float64, frames int) {
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(game.NewAnimationSystem(nil))
	for range frames {
		scheduler.Once(dt)
	}
}

func TestAnimationCompletion(t *testing.T) {
	t.Run("repeat subtracts the duration and snaps to target", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		id := storage.Spawn(
			game.Position{},
			game.Animation{Duration: 1, Type: game.AnimNone, OnFinish: game.FinishRepeat, Target: game.Vec3{X: 1, Y: 2, Z: 3}},
		)

		runAnimation(storage, 0.75, 2)

		item := ecs.NewView[animated](storage).Get(id)
		require.NotNil(t, item)
		assert.InDelta(t, 0.5, item.Animation.PastTime, 1e-6)
		assert.Equal(t, game.Position{X: 1, Y: 2, Z: 3}, *item.Position)
	})

	t.Run("past time only grows until completion", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		id := storage.Spawn(game.Position{}, game.Animation{Duration: 10, OnFinish: game.FinishNone})
		view := ecs.NewView[animated](storage)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(game.NewAnimationSystem(nil))
		prev := float32(0)
		for range 8 {
			scheduler.Once(0.5)
			now := view.Get(id).Animation.PastTime
			assert.Greater(t, now, prev)
			prev = now
		}
	})

	t.Run("despawn removes the entity", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		id := storage.Spawn(game.Position{}, game.Animation{Duration: 0.5, OnFinish: game.FinishDespawn})

		runAnimation(storage, 0.25, 1)
		assert.True(t, storage.Alive(id))
		runAnimation(storage, 0.25, 1)
		assert.False(t, storage.Alive(id))
	})

	t.Run("bubble swaps x and z and drops back", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		id := storage.Spawn(
			game.Position{X: 1, Y: -6, Z: 2},
			game.Animation{Duration: 1, Type: game.AnimBubble, OnFinish: game.FinishRepeatBubble, Target: game.Vec3{X: 1, Y: -6, Z: 2}},
		)

		runAnimation(storage, 1, 1)

		item := ecs.NewView[animated](storage).Get(id)
		assert.Equal(t, game.Position{X: 2, Y: -6, Z: 1}, *item.Position)
		assert.InDelta(t, 0, item.Animation.PastTime, 1e-6)
	})

	t.Run("hand in reaches its target", func(t *testing.T) {
		storage, _ := newWorld(game.Hands)
		id := storage.Spawn(
			game.Position{},
			game.Animation{Duration: 1, Type: game.AnimHandIn, OnFinish: game.FinishNone, Target: game.Vec3{X: 1, Y: 15, Z: 15}},
		)

		runAnimation(storage, 0.5, 1)
		mid := *ecs.NewView[animated](storage).Get(id).Position
		assert.InDelta(t, 7.5, mid.Y, 1e-5)

		runAnimation(storage, 0.5, 1)
		assert.Equal(t, game.Position{X: 1, Y: 15, Z: 15}, *ecs.NewView[animated](storage).Get(id).Position)
	})

	t.Run("fryer spin orbits the centre", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		id := storage.Spawn(game.Position{Y: -10}, game.Animation{Duration: 5, Type: game.AnimFryerSpin, OnFinish: game.FinishNone})

		runAnimation(storage, 1, 3)

		pos := ecs.NewView[animated](storage).Get(id).Position
		assert.InDelta(t, float32(13.5*13.5), pos.X*pos.X+pos.Z*pos.Z, 1e-2)
		assert.Equal(t, float32(-10), pos.Y)
	})
	t.Run("test curve drifts on every axis", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		id := storage.Spawn(game.Position{X: 1, Y: -2, Z: 3}, game.Animation{Duration: 10, Type: game.AnimTest, OnFinish: game.FinishNone})

		runAnimation(storage, 0.5, 3)

		pos := *ecs.NewView[animated](storage).Get(id).Position
		assert.InDelta(t, 2.5, pos.X, 1e-6)
		assert.InDelta(t, -0.5, pos.Y, 1e-6)
		assert.InDelta(t, 4.5, pos.Z, 1e-6)
	})

	t.Run("wander curves follow their wave sums", func(t *testing.T) {
		type term struct{ freq, phase, amp float64 }
		sum := func(f func(float64) float64, t float64, terms ...term) float64 {
			var v float64
			for _, w := range terms {
				v += f(t*w.freq+w.phase) * w.amp
			}
			return v
		}
		// tail terms shared by every curve
		xTail := []term{{1.47, 5.31, 1}}
		zTail := []term{{1.83, 1.84, 1}}

		curves := []struct {
			typ  game.AnimationType
			x, z []term
		}{
			{game.AnimFryer0, []term{{0.35, 0.01, 15}, {1.07, 0.03, 2}}, []term{{0.23, 0.21, 15}, {1.13, 0.43, 2}}},
			{game.AnimFryer1, []term{{0.37, 0.45, 15}, {1.17, 0.03, 2}}, []term{{0.25, 8.41, 15}, {1.43, 0.43, 2}}},
			{game.AnimFryer2, []term{{0.22, 5.11, 15}, {1.14, 0.03, 2}}, []term{{0.42, 2.53, 15}, {1.15, 0.43, 2}}},
			{game.AnimFryer3, []term{{0.32, 9.01, 10}, {1.15, 0.03, 2}}, []term{{0.43, 2.32, 10}, {1.19, 0.43, 2}}},
		}

		for _, c := range curves {
			for _, at := range []float64{0.5, 3, 12.25} {
				storage, _ := newWorld(game.Playing)
				id := storage.Spawn(game.Position{Y: -10}, game.Animation{Duration: 100, Type: c.typ, OnFinish: game.FinishNone})

				runAnimation(storage, at, 1)

				pos := *ecs.NewView[animated](storage).Get(id).Position
				wantX := sum(math.Sin, at, append(c.x, xTail...)...)
				wantZ := sum(math.Cos, at, append(c.z, zTail...)...)
				assert.InDelta(t, wantX, pos.X, 1e-4, "%s x at %v", c.typ, at)
				assert.InDelta(t, wantZ, pos.Z, 1e-4, "%s z at %v", c.typ, at)
				assert.Equal(t, float32(-10), pos.Y, "%s keeps its height", c.typ)
			}
		}
	})
}

func TestHandChain(t *testing.T) {
	storage, session := newWorld(game.Selection)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(game.NewGameMaster(game.Servers{}))

	scheduler.Once(0.25)
	assert.Equal(t, game.Hands, session.Get().Mode)

	hands := map[assets.Name]bool{
		assets.HandThree: true, assets.HandTwo: true, assets.HandOne: true, assets.HandFist: true,
	}
	seen := map[assets.Name]bool{}
	meshes := ecs.NewView[struct{ *game.MeshInstance }](storage)

	frames := 1
	for session.Get().Mode == game.Hands {
		require.Less(t, frames, 100, "chain never finished")
		scheduler.Once(0.25)
		frames++
		for m := range meshes.Iter() {
			seen[m.MeshInstance.Model] = true
		}
		stages := 0
		for m := range meshes.Iter() {
			if hands[m.MeshInstance.Model] {
				stages++
			}
		}
		assert.LessOrEqual(t, stages, 1, "only one stage is alive at a time")
	}

	assert.Equal(t, 18, frames)
	assert.Equal(t, game.Playing, session.Get().Mode)
	for name := range hands {
		assert.True(t, seen[name], "stage %s was shown", name)
	}

	assert.Equal(t, game.PanCount, count[struct{ *game.FryAssignment }](storage))
	assert.Equal(t, game.PotatoCount, count[struct{ *game.ControllerAssignment }](storage))
	assert.Equal(t, game.PanCount+game.PotatoCount, storage.Count(), "no stage entities leak")

	// more frames never start a second round
	for range 20 {
		scheduler.Once(0.25)
	}
	assert.Equal(t, game.PanCount, count[struct{ *game.FryAssignment }](storage))
	assert.Equal(t, game.Playing, session.Get().Mode)
}

func TestSpawnRoundIsDeterministic(t *testing.T) {
	positions := func() []game.Velocity {
		storage, _ := newWorld(game.Playing)
		commands := ecs.NewCommands()
		game.SpawnRound(commands, game.RoundSeed)
		require.NoError(t, commands.Flush(storage))

		var out []game.Velocity
		for item := range ecs.NewView[struct {
			*game.Velocity
			*game.ControllerAssignment
		}](storage).Iter() {
			out = append(out, *item.Velocity)
		}
		return out
	}

	first, second := positions(), positions()
	require.Len(t, first, game.PotatoCount)
	assert.Equal(t, first, second)
	for _, v := range first {
		assert.GreaterOrEqual(t, v.X, float32(0))
		assert.Less(t, v.X, float32(0.1))
	}
}
