// Package terminal runs the game in a terminal through tcell: glyph sprites,
// key-repeat controllers and a frame loop next to tcell's event pump.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/backend/scene"
	"github.com/plus3/fryer/game"
)

const (
	// cellAspect is how much taller a terminal cell is than it is wide.
	cellAspect = 2
	// text positions are given in pixels of an 8x16 font
	textCellWidth  = 8
	textCellHeight = 16
)

// Renderer draws recorded frames onto a tcell screen.
type Renderer struct {
	*scene.Recorder
	catalog *assets.Catalog
	screen  tcell.Screen
}

func NewRenderer(screen tcell.Screen, catalog *assets.Catalog) *Renderer {
	return &Renderer{Recorder: &scene.Recorder{}, catalog: catalog, screen: screen}
}

func style(c assets.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func textStyle(t game.Text) tcell.Style {
	c := t.Color
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c>>24&0xff), int32(c>>16&0xff), int32(c>>8&0xff))).Bold(true)
}

// Draw paints the latest frame and shows it.
func (r *Renderer) Draw() {
	frame := r.Latest()
	cols, rows := r.screen.Size()
	r.screen.Clear()

	// Lay out on a grid of square pixels, then squash rows.
	for _, s := range scene.Layout(frame, r.catalog, cols, rows*cellAspect) {
		glyph := '*'
		if s.Glyph != "" {
			glyph = []rune(s.Glyph)[0]
		}
		r.disc(s.X, s.Y/cellAspect, s.Radius, glyph, style(s.Color), cols, rows)
	}

	for _, t := range frame.Texts {
		x, y := t.X/textCellWidth, t.Y/textCellHeight
		for _, ch := range t.Value {
			r.screen.SetContent(x, y, ch, nil, textStyle(t))
			x++
		}
	}

	r.screen.Show()
}

// disc fills the cells covered by a circle of radius rad around (cx, cy).
// rad is in square pixels, so the vertical extent is halved.
func (r *Renderer) disc(cx, cy, rad float32, glyph rune, st tcell.Style, cols, rows int) {
	if rad < 1 {
		x, y := int(cx), int(cy)
		if x >= 0 && y >= 0 && x < cols && y < rows {
			r.screen.SetContent(x, y, glyph, nil, st)
		}
		return
	}

	ry := rad / cellAspect
	x0, x1 := max(0, int(math.Floor(float64(cx-rad)))), min(cols-1, int(math.Ceil(float64(cx+rad))))
	y0, y1 := max(0, int(math.Floor(float64(cy-ry)))), min(rows-1, int(math.Ceil(float64(cy+ry))))
	for y := y0; y <= y1; y++ {
		dy := (float32(y) + 0.5 - cy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float32(x) + 0.5 - cx) / rad
			if dx*dx+dy*dy <= 1 {
				r.screen.SetContent(x, y, glyph, nil, st)
			}
		}
	}
}
