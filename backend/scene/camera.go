// Package scene records what the game asks to render and lays it out on a
// 2D screen through the game's look-at camera. The window and terminal
// renderers both draw from it.
package scene

import (
	"math"

	"github.com/plus3/fryer/game"
)

// DefaultFOV is the vertical field of view in degrees.
const DefaultFOV = 60

// near clips points just in front of the eye.
const near = 0.1

type vec struct{ x, y, z float64 }

func (a vec) sub(b vec) vec     { return vec{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec) dot(b vec) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }
func (a vec) cross(b vec) vec {
	return vec{a.y*b.z - a.z*b.y, a.z*b.x - a.x*b.z, a.x*b.y - a.y*b.x}
}

func (a vec) norm() vec {
	l := math.Sqrt(a.dot(a))
	if l == 0 {
		return a
	}
	return vec{a.x / l, a.y / l, a.z / l}
}

func fromPos(p game.Position) vec { return vec{float64(p.X), float64(p.Y), float64(p.Z)} }
func fromVec(v game.Vec3) vec     { return vec{float64(v.X), float64(v.Y), float64(v.Z)} }

// Camera is a perspective camera fitted to a screen.
type Camera struct {
	eye                   vec
	forward, right, up    vec
	focal                 float64
	halfWidth, halfHeight float64
}

// NewCamera builds a camera looking from eye at cam.LookAt on a width x height
// screen. Screen y grows downwards.
func NewCamera(cam game.Camera, eye game.Position, width, height int, fov float64) Camera {
	if fov <= 0 {
		fov = DefaultFOV
	}
	e := fromPos(eye)
	forward := fromVec(cam.LookAt).sub(e).norm()
	worldUp := fromVec(cam.Up)
	if worldUp.dot(worldUp) == 0 {
		worldUp = vec{0, 1, 0}
	}
	right := forward.cross(worldUp).norm()
	up := right.cross(forward)

	hh := float64(height) / 2
	return Camera{
		eye:        e,
		forward:    forward,
		right:      right,
		up:         up,
		focal:      hh / math.Tan(fov*math.Pi/360),
		halfWidth:  float64(width) / 2,
		halfHeight: hh,
	}
}

// Point is a projected position.
type Point struct {
	X, Y  float32
	Depth float32
}

// Project returns where p lands on screen. ok is false for points behind the
// camera.
func (c Camera) Project(p game.Position) (Point, bool) {
	d := fromPos(p).sub(c.eye)
	z := d.dot(c.forward)
	if z < near {
		return Point{}, false
	}
	x := d.dot(c.right) * c.focal / z
	y := d.dot(c.up) * c.focal / z
	return Point{
		X:     float32(c.halfWidth + x),
		Y:     float32(c.halfHeight - y),
		Depth: float32(z),
	}, true
}

// Scale returns the on-screen size of a world length seen at depth.
func (c Camera) Scale(length, depth float32) float32 {
	if depth < near {
		return 0
	}
	return float32(float64(length) * c.focal / float64(depth))
}
