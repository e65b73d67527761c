package game

import (
	"math/rand/v2"

	"github.com/plus3/fryer/ecs"
)

// ExitActionSystem stops the game when controller 0 presses home.
type ExitActionSystem struct {
	Session  ecs.Singleton[Session]
	Controls ecs.Singleton[Controls]
}

func (s *ExitActionSystem) Execute(frame *ecs.UpdateFrame) {
	session, controls := s.Session.Get(), s.Controls.Get()
	if session == nil || controls == nil {
		return
	}
	if session.Running {
		session.Running = !controls.Controllers[0].Home
	}
}

// StopActionSystem zeroes every velocity while controller 0 holds "one".
type StopActionSystem struct {
	Controls   ecs.Singleton[Controls]
	Velocities ecs.Query[struct{ *Velocity }]
}

func (s *StopActionSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	if controls == nil || !controls.Controllers[0].One {
		return
	}
	for item := range s.Velocities.Iter() {
		*item.Velocity = Velocity{}
	}
}

// ShakeActionSystem nudges every velocity along the direction of a gesture
// that just started on controller 0. The nudge size comes from a fixed seed,
// so every shake is the same strength.
type ShakeActionSystem struct {
	Controls   ecs.Singleton[Controls]
	Velocities ecs.Query[struct{ *Velocity }]
}

func shakeStrength() float32 {
	rng := rand.New(rand.NewPCG(RoundSeed, RoundSeed))
	return rng.Float32()*0.5 - 0.1
}

func (s *ShakeActionSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	if controls == nil {
		return
	}
	motion := controls.Controllers[0].Motion
	if motion == nil || !motion.Started {
		return
	}

	c := shakeStrength()
	dir := motion.Direction.Vec()
	for item := range s.Velocities.Iter() {
		item.Velocity.X += dir.X * c
		item.Velocity.Y += dir.Y * c
		item.Velocity.Z += dir.Z * c
	}
}

// potatoPush is the velocity change a gesture applies to its potatoes.
const potatoPush = 6

// PotatoControlSystem lets each controller flick the potatoes assigned to it.
type PotatoControlSystem struct {
	Controls ecs.Singleton[Controls]
	Potatoes ecs.Query[struct {
		*Velocity
		*ControllerAssignment
		*SphereCollider
	}]
}

func (s *PotatoControlSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	if controls == nil {
		return
	}

	var pushes [ControllerCount]Vec3
	pushed := false
	for i, c := range controls.Controllers {
		if c.Motion != nil && c.Motion.Started {
			pushes[i] = c.Motion.Direction.Vec()
			pushed = true
		}
	}
	if !pushed {
		return
	}

	for item := range s.Potatoes.Iter() {
		id := item.ControllerAssignment.ID
		if id < 0 || id >= ControllerCount {
			continue
		}
		push := pushes[id]
		item.Velocity.X += push.X * potatoPush
		item.Velocity.Y += push.Y * potatoPush
		item.Velocity.Z += push.Z * potatoPush
	}
}

// ResetLevelSystem lets controller 0 skip the win animation with "one".
type ResetLevelSystem struct {
	Session  ecs.Singleton[Session]
	Controls ecs.Singleton[Controls]
}

func (s *ResetLevelSystem) Execute(frame *ecs.UpdateFrame) {
	session, controls := s.Session.Get(), s.Controls.Get()
	if session == nil || controls == nil {
		return
	}
	if session.Mode == Finish && controls.Controllers[0].One {
		session.RequestLevel(session.Level)
	}
}
