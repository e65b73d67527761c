package game

import (
	"github.com/plus3/fryer/ecs"
)

// hiddenY parks platforms out of view while a round is running.
const hiddenY = 99999

// GameFinishSystem ends the round once a pan has scored more than WinScore.
// The winner plays the win animation, every pan below WinScore is removed,
// and the mode moves to Finish.
type GameFinishSystem struct {
	Pans ecs.Query[struct {
		*FryAssignment
		*Animation
		*Position
	}]
	Scores ecs.Query[struct {
		Id ecs.EntityId
		*FryAssignment
	}]
	Platforms ecs.Query[struct {
		*Position
		*Platform
	}]
	Session ecs.Singleton[Session]
}

func (s *GameFinishSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	winner := false

	for item := range s.Pans.Iter() {
		if item.FryAssignment.Score <= WinScore || item.Animation.Type == AnimFryerWin {
			continue
		}

		*item.Animation = Animation{
			Duration: 5,
			Type:     AnimFryerWin,
			OnFinish: FinishRestart,
			Target:   item.Position.Vec().Add(Vec3{Y: 5}),
		}
		winner = true

		// A second winner in the same frame finds the mode already at Finish.
		if session != nil && session.Mode == Playing {
			_ = session.Advance(Finish)
		}
	}

	if winner {
		for item := range s.Scores.Iter() {
			if item.FryAssignment.Score < WinScore {
				frame.Commands.Delete(item.Id)
			}
		}
	}

	for item := range s.Platforms.Iter() {
		item.Position.Y = hiddenY
	}
}
