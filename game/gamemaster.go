package game

import (
	"github.com/plus3/fryer/ecs"
)

// NewGameMaster builds the composite system that drives a round: animation,
// camera, game start and game finish, always in that order.
func NewGameMaster(servers Servers) *ecs.Sequence {
	return ecs.NewSequence(
		NewAnimationSystem(servers.logger().Named("animation")),
		&CameraMovementSystem{},
		&GameStartSystem{},
		&GameFinishSystem{},
	)
}

// GameStartSystem kicks off the intro countdown the first time it sees the
// session in Selection. The mode moves to Hands right away; the countdown's
// bootstrap entity fires on the next frame.
type GameStartSystem struct {
	Session ecs.Singleton[Session]
}

func (s *GameStartSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil || session.Mode != Selection {
		return
	}

	frame.Commands.Spawn(
		Position{},
		Animation{Type: AnimNone, OnFinish: FinishHand3},
	)
	_ = session.Advance(Hands)
}

// CameraMovementSystem drifts the camera eye vertically by Drift units per
// second. The default of zero keeps the camera still.
type CameraMovementSystem struct {
	Cameras ecs.Query[struct {
		*Position
		*Camera
	}]
	Drift float32
}

func (s *CameraMovementSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Drift == 0 {
		return
	}
	for item := range s.Cameras.Iter() {
		item.Position.Y += s.Drift * float32(frame.DeltaTime)
	}
}
