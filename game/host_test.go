package game_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/plus3/fryer/ecs"
	"github.com/plus3/fryer/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Run("missing servers fail before the first frame", func(t *testing.T) {
		_, err := game.NewState(game.FryArena, game.Servers{})
		assert.ErrorIs(t, err, game.ErrMissingServer)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := game.NewState("lava_pit", game.Servers{})
		assert.ErrorIs(t, err, game.ErrUnknownLevel)
	})

	t.Run("moving platform only needs a renderer", func(t *testing.T) {
		state, err := game.NewState(game.MovingPlatformTest, game.Servers{Render: &fakeRender{}})
		require.NoError(t, err)
		assert.Equal(t, []string{"exit_action", "moving_platform", "camera_update", "render_meshes"}, state.Scheduler.Names())
		assert.Equal(t, 1, count[struct{ *game.Platform }](state.Storage))
	})

	t.Run("fry arena scenery", func(t *testing.T) {
		_, servers := newFakes()
		state, err := game.NewState(game.FryArena, servers)
		require.NoError(t, err)

		assert.Equal(t, game.Selection, state.Session().Mode)
		assert.Equal(t, 1, count[struct{ *game.Camera }](state.Storage))
		assert.Equal(t, 1, count[struct{ *game.Audio }](state.Storage))
		assert.Equal(t, 20, count[struct{ *game.Animation }](state.Storage), "oil bubbles")
	})
}

func TestHostExampleRound(t *testing.T) {
	f, servers := newFakes()
	servers.Logger = zaptest.NewLogger(t)
	host, err := game.NewHost(game.FryArena, servers)
	require.NoError(t, err)
	first := host.State().ID

	require.NoError(t, host.Frame(0.25, game.Controls{}))
	assert.Equal(t, game.Hands, host.State().Session().Mode)

	for range 17 {
		require.NoError(t, host.Frame(0.25, game.Controls{}))
	}
	assert.Equal(t, game.Playing, host.State().Session().Mode)
	assert.Equal(t, game.PanCount, count[struct{ *game.FryAssignment }](host.State().Storage))
	assert.Equal(t, game.PotatoCount, count[struct{ *game.ControllerAssignment }](host.State().Storage))
	assert.Len(t, f.physics.bodies, game.PotatoCount)
	assert.Equal(t, 18, f.render.frames)
	assert.Len(t, f.audio.played, 1, "music starts once")

	// hand the round to pan 1
	pans := ecs.NewView[pan](host.State().Storage)
	for p := range pans.Iter() {
		if p.FryAssignment.ID == 1 {
			p.FryAssignment.Score = game.WinScore + 1
		}
	}
	require.NoError(t, host.Frame(0.25, game.Controls{}))
	assert.Equal(t, game.Finish, host.State().Session().Mode)
	assert.Equal(t, 1, count[struct{ *game.FryAssignment }](host.State().Storage))

	// the win animation runs for five seconds, then the level is rebuilt
	for range 19 {
		require.NoError(t, host.Frame(0.25, game.Controls{}))
		require.Equal(t, first, host.State().ID)
	}
	require.NoError(t, host.Frame(0.25, game.Controls{}))

	assert.NotEqual(t, first, host.State().ID)
	assert.Equal(t, 1, host.Swaps())
	assert.Equal(t, game.Selection, host.State().Session().Mode)
	assert.Equal(t, game.FryArena, host.State().Level)
	assert.Equal(t, 0, count[struct{ *game.FryAssignment }](host.State().Storage))
	assert.Equal(t, 1, f.render.resets)
	assert.Equal(t, 1, f.audio.stopAll)
	assert.Equal(t, 1, f.physics.resets)
}

func TestHostResetDuringFinish(t *testing.T) {
	_, servers := newFakes()
	host, err := game.NewHost(game.FryArena, servers)
	require.NoError(t, err)

	for range 18 {
		require.NoError(t, host.Frame(0.25, game.Controls{}))
	}
	var one game.Controls
	one.Controllers[0].One = true

	require.NoError(t, host.Frame(0.25, one))
	assert.Equal(t, 0, host.Swaps(), "reset is ignored while playing")

	for p := range ecs.NewView[pan](host.State().Storage).Iter() {
		p.FryAssignment.Score = game.WinScore + 1
		break
	}
	require.NoError(t, host.Frame(0.25, game.Controls{}))
	require.Equal(t, game.Finish, host.State().Session().Mode)

	require.NoError(t, host.Frame(0.25, one))
	assert.Equal(t, 1, host.Swaps())
	assert.Equal(t, game.Selection, host.State().Session().Mode)
}

func TestHostDeterminism(t *testing.T) {
	type run struct {
		potatoes []game.Position
		// animated holds, per frame, every animated entity's position in
		// iteration order
		animated [][]game.Position
	}

	trace := func() run {
		_, servers := newFakes()
		host, err := game.NewHost(game.FryArena, servers)
		require.NoError(t, err)

		var tracker game.MotionTracker
		var out run
		for i := range 60 {
			var raw [game.ControllerCount]game.RawController
			if i == 25 {
				raw[0] = game.RawController{Moving: true, Direction: game.Xp}
			}
			if i == 40 {
				// force a win so the win ease is traced too
				for p := range ecs.NewView[pan](host.State().Storage).Iter() {
					p.FryAssignment.Score = game.WinScore + 1
					break
				}
			}
			require.NoError(t, host.Frame(0.25, tracker.Update(raw)))

			var frame []game.Position
			for a := range ecs.NewView[animated](host.State().Storage).Iter() {
				frame = append(frame, *a.Position)
			}
			out.animated = append(out.animated, frame)
		}
		for p := range ecs.NewView[struct {
			*game.Position
			*game.SphereCollider
		}](host.State().Storage).Iter() {
			out.potatoes = append(out.potatoes, *p.Position)
		}
		return out
	}

	first := trace()
	require.Len(t, first.potatoes, game.PotatoCount)
	require.Len(t, first.animated, 60)
	assert.NotEmpty(t, first.animated[59])

	second := trace()
	assert.Equal(t, first.potatoes, second.potatoes)
	for i := range first.animated {
		require.Equal(t, first.animated[i], second.animated[i], "frame %d", i)
	}
}

func TestHostFailedRebuildKeepsServers(t *testing.T) {
	render, physics := &fakeRender{}, &fakePhysics{}
	host, err := game.NewHost(game.MovingPlatformTest, game.Servers{Render: render, Physics: physics})
	require.NoError(t, err)
	first := host.State().ID
	body := physics.AddSphere(0.5, true, game.Position{Y: 3}, game.Velocity{})

	// the arena also needs an audio server
	require.True(t, host.State().Session().RequestLevel(game.FryArena))
	err = host.Frame(0.25, game.Controls{})
	require.ErrorIs(t, err, game.ErrMissingServer)

	assert.Equal(t, first, host.State().ID)
	assert.Equal(t, 0, host.Swaps())
	assert.Zero(t, render.resets)
	assert.Zero(t, physics.resets)
	_, _, ok := physics.Body(body)
	assert.True(t, ok, "bodies of the live state survive")
	assert.True(t, host.Running())
}

func TestHostRun(t *testing.T) {
	_, servers := newFakes()
	servers.Logger = zap.NewNop()
	host, err := game.NewHost(game.FryArena, servers)
	require.NoError(t, err)

	frames := 0
	input := game.InputFunc(func() game.Controls {
		frames++
		var c game.Controls
		c.Controllers[0].Home = frames >= 3
		return c
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, host.Run(ctx, time.Millisecond, input))
	assert.False(t, host.Running())
	assert.Equal(t, uint64(3), host.Frames())

	t.Run("cancelled context", func(t *testing.T) {
		_, servers := newFakes()
		host, err := game.NewHost(game.FryArena, servers)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = host.Run(ctx, time.Hour, game.InputFunc(func() game.Controls { return game.Controls{} }))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
