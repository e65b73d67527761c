package game_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/ecs"
	"github.com/plus3/fryer/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSystems(t *testing.T) {
	storage, _ := newWorld(game.Playing)
	render := &fakeRender{}

	storage.Spawn(game.MeshInstance{Model: assets.Plate}, game.Position{Y: -1.5})
	storage.Spawn(game.MeshInstance{Model: assets.Potato}, game.Position{X: 1}, game.Rotation{Y: 45})
	storage.Spawn(game.Text{Value: "hello"})
	storage.Spawn(game.Position{Z: 25}, game.Camera{Up: game.Vec3{Y: 1}})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(game.NewCameraUpdateSystem(render))
	scheduler.Register(game.NewRenderMeshesSystem(render))
	scheduler.Register(game.NewRenderTextSystem(render))
	scheduler.Once(0.1)
	scheduler.Once(0.1)

	assert.ElementsMatch(t, []game.MeshDraw{
		{Model: assets.Plate, Position: game.Position{Y: -1.5}},
		{Model: assets.Potato, Position: game.Position{X: 1}, Rotation: game.Rotation{Y: 45}},
	}, render.meshes)
	require.Len(t, render.texts, 1)
	assert.Equal(t, "hello", render.texts[0].Value)
	assert.Equal(t, game.Position{Z: 25}, render.eye)
	assert.Equal(t, 2, render.cameras)
}

func TestPlayAudio(t *testing.T) {
	t.Run("starts each sound once", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		audio := &fakeAudio{}
		id := storage.Spawn(game.Audio{Asset: assets.DemoMusic, Mode: game.PlayLoop})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(game.NewPlayAudioSystem(audio, zap.NewNop()))
		scheduler.Once(0.1)
		scheduler.Once(0.1)

		assert.Equal(t, []assets.Name{assets.DemoMusic}, audio.played)
		a := ecs.NewView[struct{ *game.Audio }](storage).Get(id).Audio
		assert.True(t, a.Started)
		assert.Equal(t, game.AudioHandle(1), a.Handle)
	})

	t.Run("failures are logged and not retried", func(t *testing.T) {
		storage, _ := newWorld(game.Playing)
		audio := &fakeAudio{fail: true}
		core, logs := observer.New(zap.WarnLevel)
		storage.Spawn(game.Audio{Asset: assets.BoingSFX})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(game.NewPlayAudioSystem(audio, zap.New(core)))
		scheduler.Once(0.1)
		scheduler.Once(0.1)

		assert.Len(t, audio.played, 1)
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "sound failed to start", entry.Message)
		assert.Equal(t, "boing_sfx", entry.ContextMap()["asset"])
	})
}

func TestScoreboard(t *testing.T) {
	storage, _ := newWorld(game.Playing)
	ids := spawnPans(storage, 0, 4, 12, 1)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(game.NewScoreboardSystem())
	scheduler.Once(0.1)

	type label struct {
		*game.ScoreLabel
		*game.Text
	}
	labels := ecs.NewView[label](storage)
	texts := map[int]string{}
	for l := range labels.Iter() {
		texts[l.ScoreLabel.PanID] = l.Text.Value
	}
	assert.Equal(t, map[int]string{0: "P1  0", 1: "P2  4", 2: "P3 12", 3: "P4  1"}, texts)

	pans := ecs.NewView[pan](storage)
	pans.Get(ids[2]).FryAssignment.Score = 21
	require.NoError(t, storage.Delete(ids[3]))
	scheduler.Once(0.1)

	clear(texts)
	for l := range labels.Iter() {
		texts[l.ScoreLabel.PanID] = l.Text.Value
	}
	assert.Equal(t, map[int]string{0: "P1  0", 1: "P2  4", 2: "P3 21"}, texts)
}

func TestScoreboardZeroValue(t *testing.T) {
	storage, _ := newWorld(game.Playing)
	spawnPans(storage, 7)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.ScoreboardSystem{})
	require.NotPanics(t, func() { scheduler.Once(0.1) })

	label, ok := ecs.NewView[struct {
		*game.ScoreLabel
		*game.Text
	}](storage).First()
	require.True(t, ok)
	assert.Equal(t, "P1  7", label.Text.Value)
}
