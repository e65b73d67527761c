package game

import (
	"math"

	"github.com/plus3/fryer/ecs"
)

// IntegrateMotionSystem moves entities by their velocity. Bodies owned by the
// physics server are skipped.
type IntegrateMotionSystem struct {
	Moving ecs.Query[struct {
		Position *Position
		Velocity *Velocity
		Collider *SphereCollider `ecs:"optional"`
	}]
}

func (s *IntegrateMotionSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Moving.Iter() {
		if item.Collider != nil && item.Collider.Registered {
			continue
		}
		item.Position.X += item.Velocity.X * dt
		item.Position.Y += item.Velocity.Y * dt
		item.Position.Z += item.Velocity.Z * dt
	}
}

// DefaultBounds is the half-size of the box BounceBoundsSystem keeps things in.
const DefaultBounds = 20

// BounceBoundsSystem reflects velocities of entities that left the box
// [-Bounds, Bounds] on any axis and clamps them back inside.
type BounceBoundsSystem struct {
	Moving ecs.Query[struct {
		*Position
		*Velocity
	}]
	Bounds float32
}

func bounce(p, v *float32, limit float32) {
	switch {
	case *p > limit:
		*p = limit
		*v = -float32(math.Abs(float64(*v)))
	case *p < -limit:
		*p = -limit
		*v = float32(math.Abs(float64(*v)))
	}
}

func (s *BounceBoundsSystem) Execute(frame *ecs.UpdateFrame) {
	limit := s.Bounds
	if limit <= 0 {
		limit = DefaultBounds
	}
	for item := range s.Moving.Iter() {
		bounce(&item.Position.X, &item.Velocity.X, limit)
		bounce(&item.Position.Y, &item.Velocity.Y, limit)
		bounce(&item.Position.Z, &item.Velocity.Z, limit)
	}
}

// MovingPlatformSystem sways platforms along x around the spot they were
// spawned on.
type MovingPlatformSystem struct {
	Platforms ecs.Query[struct {
		*Position
		*Platform
	}]
	Amplitude float32
	Speed     float32

	elapsed float64
}

func (s *MovingPlatformSystem) Execute(frame *ecs.UpdateFrame) {
	amp, speed := s.Amplitude, s.Speed
	if amp == 0 {
		amp = 4
	}
	if speed == 0 {
		speed = 0.5
	}

	// x(t) = x0 + amp*sin(speed*t), applied as a per-frame delta
	prev := math.Sin(s.elapsed * float64(speed))
	s.elapsed += frame.DeltaTime
	next := math.Sin(s.elapsed * float64(speed))
	dx := float32(next-prev) * amp

	for item := range s.Platforms.Iter() {
		item.Position.X += dx
	}
}
