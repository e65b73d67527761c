package scene

import (
	"cmp"
	"slices"

	"github.com/plus3/fryer/assets"
)

// Sprite is a mesh reduced to a disc on screen.
type Sprite struct {
	Model  assets.Name
	X, Y   float32
	Radius float32
	Depth  float32
	Color  assets.Color
	Glyph  string
}

// offscreen is how far past the screen edge a sprite is still kept.
const offscreen = 64

// Layout projects every mesh of f onto a width x height screen and returns
// the visible ones ordered back to front. Without a camera nothing is
// visible.
func Layout(f Frame, catalog *assets.Catalog, width, height int) []Sprite {
	if !f.HasCamera {
		return nil
	}
	cam := NewCamera(f.Camera, f.Eye, width, height, DefaultFOV)

	sprites := make([]Sprite, 0, len(f.Meshes))
	for _, m := range f.Meshes {
		p, ok := cam.Project(m.Position)
		if !ok {
			continue
		}
		if p.X < -offscreen || p.Y < -offscreen || p.X > float32(width+offscreen) || p.Y > float32(height+offscreen) {
			continue
		}
		model, ok := catalog.Model(m.Model)
		if !ok {
			continue
		}
		color := model.Color
		if model.Texture != nil {
			if tex, ok := catalog.Texture(*model.Texture); ok {
				color = tint(color, tex.Color)
			}
		}
		sprites = append(sprites, Sprite{
			Model:  m.Model,
			X:      p.X,
			Y:      p.Y,
			Radius: cam.Scale(model.Radius, p.Depth),
			Depth:  p.Depth,
			Color:  color,
			Glyph:  model.Glyph,
		})
	}

	slices.SortStableFunc(sprites, func(a, b Sprite) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return sprites
}

// tint multiplies two colours channel by channel.
func tint(a, b assets.Color) assets.Color {
	return assets.Color{
		R: uint8(uint16(a.R) * uint16(b.R) / 255),
		G: uint8(uint16(a.G) * uint16(b.G) / 255),
		B: uint8(uint16(a.B) * uint16(b.B) / 255),
	}
}
