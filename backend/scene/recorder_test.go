package scene_test

import (
	"testing"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/backend/scene"
	"github.com/plus3/fryer/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var arena = game.Camera{Up: game.Vec3{Y: 1}, LookAt: game.Vec3{Y: -6}}

func TestRecorder(t *testing.T) {
	var r scene.Recorder

	r.RenderMeshes([]game.MeshDraw{{Model: assets.Potato}})
	assert.Empty(t, r.Latest().Meshes, "nothing is visible before RenderFrame")

	r.SetCamera(arena, game.Position{Y: 27.5, Z: 25})
	r.RenderText([]game.Text{{Value: "P1  0"}})
	r.RenderFrame()

	f := r.Latest()
	assert.Len(t, f.Meshes, 1)
	assert.Len(t, f.Texts, 1)
	assert.True(t, f.HasCamera)
	assert.Equal(t, uint64(1), r.Frames())

	f.Meshes[0].Model = assets.Plate
	assert.Equal(t, assets.Potato, r.Latest().Meshes[0].Model, "Latest returns a copy")

	r.ResetWorld()
	assert.Empty(t, r.Latest().Meshes)
	assert.False(t, r.Latest().HasCamera)
}

func TestLayout(t *testing.T) {
	catalog := assets.Default()
	frame := scene.Frame{
		Meshes: []game.MeshDraw{
			{Model: assets.Potato, Position: game.Position{Z: 10}},
			{Model: assets.Plate, Position: game.Position{Y: -1.5}},
			{Model: assets.Potato, Position: game.Position{Y: 60, Z: 60}},
		},
		Camera:    arena,
		Eye:       game.Position{Y: 27.5, Z: 25},
		HasCamera: true,
	}

	sprites := scene.Layout(frame, catalog, 800, 600)
	require.Len(t, sprites, 2, "points behind the camera are dropped")
	assert.Equal(t, assets.Plate, sprites[0].Model, "farthest first")
	assert.Equal(t, assets.Potato, sprites[1].Model)
	assert.Greater(t, sprites[0].Radius, sprites[1].Radius)

	potato, _ := catalog.Model(assets.Potato)
	assert.Equal(t, potato.Glyph, sprites[1].Glyph)

	frame.HasCamera = false
	assert.Empty(t, scene.Layout(frame, catalog, 800, 600))
}
