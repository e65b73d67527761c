package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/backend/scene"
	"github.com/plus3/fryer/game"
)

// minRadius keeps far away sprites visible.
const minRadius = 1.5

// Renderer draws recorded frames onto an ebiten image.
type Renderer struct {
	*scene.Recorder
	catalog *assets.Catalog
}

func NewRenderer(catalog *assets.Catalog) *Renderer {
	return &Renderer{Recorder: &scene.Recorder{}, catalog: catalog}
}

func rgba(c assets.Color) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

func textColor(t game.Text) color.RGBA {
	return color.RGBA{uint8(t.Color >> 24), uint8(t.Color >> 16), uint8(t.Color >> 8), uint8(t.Color)}
}

// Draw paints the latest frame.
func (r *Renderer) Draw(screen *ebiten.Image) {
	frame := r.Latest()
	bounds := screen.Bounds()

	if frame.HasCamera {
		screen.Fill(color.RGBA{frame.Camera.R, frame.Camera.G, frame.Camera.B, 0xff})
	} else {
		screen.Fill(color.Black)
	}

	for _, s := range scene.Layout(frame, r.catalog, bounds.Dx(), bounds.Dy()) {
		radius := max(s.Radius, minRadius)
		vector.DrawFilledCircle(screen, s.X, s.Y, radius, rgba(s.Color), true)
		if radius > 6 {
			vector.StrokeCircle(screen, s.X, s.Y, radius, 1, color.RGBA{0, 0, 0, 0x60}, true)
		}
	}

	for _, t := range frame.Texts {
		// DebugPrint has a single font; the colour is shown as a swatch.
		vector.DrawFilledRect(screen, float32(t.X), float32(t.Y+3), 6, 8, textColor(t), false)
		ebitenutil.DebugPrintAt(screen, t.Value, t.X+10, t.Y)
	}
}
