// Package physics is a small sphere simulation that serves as the game's
// physics server: gravity, a round floor and sphere-sphere contacts.
package physics

import (
	"math"

	"github.com/plus3/fryer/game"
)

// Config tunes the simulation. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	Gravity     float32
	FloorY      float32
	FloorRadius float32
	// FloorDepth is how far below FloorY a sphere is still pushed back up.
	FloorDepth  float32
	Restitution float32
	Friction    float32
	// MaxStep splits long frames into substeps of at most this length.
	MaxStep float32
}

// DefaultConfig matches the fry arena: a plate of radius 10 at y = -1.5.
func DefaultConfig() Config {
	return Config{
		Gravity:     -9.81,
		FloorY:      -1.5,
		FloorRadius: 10,
		FloorDepth:  1,
		Restitution: 0.4,
		Friction:    0.8,
		MaxStep:     1.0 / 120,
	}
}

type body struct {
	radius  float32
	gravity bool
	pos     game.Position
	vel     game.Velocity
}

// World holds every body added since the last Reset. Body indices are dense
// and stay valid until Reset.
type World struct {
	cfg    Config
	bodies []body
}

var _ game.PhysicsServer = (*World)(nil)

func New(cfg Config) *World {
	return &World{cfg: cfg}
}

func (w *World) valid(index int) bool {
	return index >= 0 && index < len(w.bodies)
}

func (w *World) AddSphere(radius float32, gravity bool, pos game.Position, vel game.Velocity) int {
	w.bodies = append(w.bodies, body{radius: radius, gravity: gravity, pos: pos, vel: vel})
	return len(w.bodies) - 1
}

func (w *World) SetVelocity(index int, vel game.Velocity) {
	if w.valid(index) {
		w.bodies[index].vel = vel
	}
}

func (w *World) Teleport(index int, pos game.Position) {
	if w.valid(index) {
		w.bodies[index].pos = pos
	}
}

func (w *World) Body(index int) (game.Position, game.Velocity, bool) {
	if !w.valid(index) {
		return game.Position{}, game.Velocity{}, false
	}
	b := w.bodies[index]
	return b.pos, b.vel, true
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

func (w *World) Reset() {
	w.bodies = w.bodies[:0]
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	steps := 1
	if w.cfg.MaxStep > 0 {
		steps = int(math.Ceil(float64(dt / w.cfg.MaxStep)))
	}
	h := dt / float32(steps)
	for range steps {
		w.integrate(h)
		w.collideFloor(h)
		w.collidePairs()
	}
}

func (w *World) integrate(h float32) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.gravity {
			b.vel.Y += w.cfg.Gravity * h
		}
		b.pos.X += b.vel.X * h
		b.pos.Y += b.vel.Y * h
		b.pos.Z += b.vel.Z * h
	}
}

func (w *World) onFloor(b *body) bool {
	if b.pos.X*b.pos.X+b.pos.Z*b.pos.Z > w.cfg.FloorRadius*w.cfg.FloorRadius {
		return false
	}
	bottom := b.pos.Y - b.radius
	return bottom < w.cfg.FloorY && bottom > w.cfg.FloorY-w.cfg.FloorDepth
}

func (w *World) collideFloor(h float32) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if !w.onFloor(b) {
			continue
		}
		b.pos.Y = w.cfg.FloorY + b.radius
		if b.vel.Y < 0 {
			b.vel.Y = -b.vel.Y * w.cfg.Restitution
		}
		damp := 1 - w.cfg.Friction*h
		if damp < 0 {
			damp = 0
		}
		b.vel.X *= damp
		b.vel.Z *= damp
	}
}

// collidePairs separates overlapping spheres and reflects their approach
// velocity. Every body has the same mass.
func (w *World) collidePairs() {
	for i := range w.bodies {
		a := &w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			b := &w.bodies[j]

			dx, dy, dz := b.pos.X-a.pos.X, b.pos.Y-a.pos.Y, b.pos.Z-a.pos.Z
			dist2 := dx*dx + dy*dy + dz*dz
			minDist := a.radius + b.radius
			if dist2 >= minDist*minDist {
				continue
			}

			dist := float32(math.Sqrt(float64(dist2)))
			var nx, ny, nz float32
			if dist == 0 {
				// concentric, pick a fixed axis
				nx = 1
			} else {
				nx, ny, nz = dx/dist, dy/dist, dz/dist
			}

			push := (minDist - dist) / 2
			a.pos.X -= nx * push
			a.pos.Y -= ny * push
			a.pos.Z -= nz * push
			b.pos.X += nx * push
			b.pos.Y += ny * push
			b.pos.Z += nz * push

			approach := (b.vel.X-a.vel.X)*nx + (b.vel.Y-a.vel.Y)*ny + (b.vel.Z-a.vel.Z)*nz
			if approach >= 0 {
				continue
			}
			impulse := -(1 + w.cfg.Restitution) * approach / 2
			a.vel.X -= impulse * nx
			a.vel.Y -= impulse * ny
			a.vel.Z -= impulse * nz
			b.vel.X += impulse * nx
			b.vel.Y += impulse * ny
			b.vel.Z += impulse * nz
		}
	}
}
