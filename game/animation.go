package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/ecs"
)

// AnimationType picks the curve an Animation moves its Position along.
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimTest
	AnimBubble
	AnimHand
	AnimFryerSpin
	AnimFryer0
	AnimFryer1
	AnimFryer2
	AnimFryer3
	AnimHandIn
	AnimHandOut
	AnimFryerWin
)

var animationTypeNames = [...]string{
	"none", "test", "bubble", "hand", "fryer_spin",
	"fryer0", "fryer1", "fryer2", "fryer3",
	"hand_in", "hand_out", "fryer_win",
}

func (t AnimationType) String() string {
	if t < 0 || int(t) >= len(animationTypeNames) {
		return fmt.Sprintf("AnimationType(%d)", int(t))
	}
	return animationTypeNames[t]
}

// OnFinish is what happens once an Animation's PastTime reaches its Duration.
type OnFinish int

const (
	FinishDespawn OnFinish = iota
	FinishRepeat
	FinishRepeatBubble
	FinishNone
	FinishHand3
	FinishHand2
	FinishHand1
	FinishHand0
	FinishStart
	FinishRestart
)

var onFinishNames = [...]string{
	"despawn", "repeat", "repeat_bubble", "none",
	"hand3", "hand2", "hand1", "hand0", "start", "restart",
}

func (f OnFinish) String() string {
	if f < 0 || int(f) >= len(onFinishNames) {
		return fmt.Sprintf("OnFinish(%d)", int(f))
	}
	return onFinishNames[f]
}

const (
	spinRadius = 13.5
	spinSpeed  = 0.2
)

// wave is one term of a wander curve: sin or cos of (t*freq + phase), scaled by amp.
type wave struct {
	freq, phase, amp float64
}

type wanderCurve struct {
	x, z [3]wave
}

var wanderCurves = map[AnimationType]wanderCurve{
	AnimFryer0: {
		x: [3]wave{{0.35, 0.01, 15}, {1.07, 0.03, 2}, {1.47, 5.31, 1}},
		z: [3]wave{{0.23, 0.21, 15}, {1.13, 0.43, 2}, {1.83, 1.84, 1}},
	},
	AnimFryer1: {
		x: [3]wave{{0.37, 0.45, 15}, {1.17, 0.03, 2}, {1.47, 5.31, 1}},
		z: [3]wave{{0.25, 8.41, 15}, {1.43, 0.43, 2}, {1.83, 1.84, 1}},
	},
	AnimFryer2: {
		x: [3]wave{{0.22, 5.11, 15}, {1.14, 0.03, 2}, {1.47, 5.31, 1}},
		z: [3]wave{{0.42, 2.53, 15}, {1.15, 0.43, 2}, {1.83, 1.84, 1}},
	},
	AnimFryer3: {
		x: [3]wave{{0.32, 9.01, 10}, {1.15, 0.03, 2}, {1.47, 5.31, 1}},
		z: [3]wave{{0.43, 2.32, 10}, {1.19, 0.43, 2}, {1.83, 1.84, 1}},
	},
}

func (c wanderCurve) at(t float32) (x, z float32) {
	var sx, sz float64
	for _, w := range c.x {
		sx += math.Sin(float64(t)*w.freq+w.phase) * w.amp
	}
	for _, w := range c.z {
		sz += math.Cos(float64(t)*w.freq+w.phase) * w.amp
	}
	return float32(sx), float32(sz)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// advance moves pos one frame along anim's curve. anim.PastTime has already
// been bumped by dt.
func advance(pos *Position, anim *Animation, dt float32) {
	switch anim.Type {
	case AnimNone:
	case AnimTest:
		pos.X += dt
		pos.Y += dt
		pos.Z += dt
	case AnimBubble, AnimHand:
		pos.Y += dt
	case AnimFryerSpin:
		a := float64(anim.PastTime * spinSpeed)
		pos.X = float32(math.Sin(a) * spinRadius)
		pos.Z = float32(math.Cos(a) * spinRadius)
	case AnimFryer0, AnimFryer1, AnimFryer2, AnimFryer3:
		pos.X, pos.Z = wanderCurves[anim.Type].at(anim.PastTime)
	case AnimHandIn, AnimHandOut, AnimFryerWin:
		// Interpolates from wherever the entity is now, not from where it
		// started, so the motion eases out.
		t := float32(1)
		if anim.Duration > 0 {
			t = anim.PastTime / anim.Duration
		}
		pos.X = lerp(pos.X, anim.Target.X, t)
		pos.Y = lerp(pos.Y, anim.Target.Y, t)
		pos.Z = lerp(pos.Z, anim.Target.Z, t)
	}
}

// handStage is one step of the intro countdown.
type handStage struct {
	mesh     assets.Name
	duration float32
	curve    AnimationType
	next     OnFinish
	rotation Rotation
	// place returns the new stage's position and target from the finishing one.
	place func(pos Position, anim Animation) (Position, Vec3)
}

func handoff(pos Position, anim Animation) (Position, Vec3) {
	return Position(anim.Target), pos.Vec()
}

var handStages = map[OnFinish]handStage{
	FinishHand3: {
		mesh: assets.HandThree, duration: 1.5, curve: AnimHandIn, next: FinishHand2,
		rotation: Rotation{Y: 90, Z: 10},
		place: func(Position, Animation) (Position, Vec3) {
			return Position{}, Vec3{1, 15, 15}
		},
	},
	FinishHand2: {
		mesh: assets.HandTwo, duration: 1.0, curve: AnimNone, next: FinishHand1,
		rotation: Rotation{Y: 90}, place: handoff,
	},
	FinishHand1: {
		mesh: assets.HandOne, duration: 1.0, curve: AnimNone, next: FinishHand0,
		rotation: Rotation{Y: 90}, place: handoff,
	},
	FinishHand0: {
		mesh: assets.HandFist, duration: 0.5, curve: AnimHandOut, next: FinishStart,
		rotation: Rotation{Y: 90},
		place: func(pos Position, anim Animation) (Position, Vec3) {
			return Position(anim.Target), Vec3{0, pos.Y - 10, 40}
		},
	},
}

// IntroDuration is the summed length of every hand stage.
const IntroDuration = 1.5 + 1.0 + 1.0 + 0.5

const (
	// WinScore is the score a pan has to beat to win the round.
	WinScore    = 20
	PanCount    = 4
	PotatoCount = 20
	// RoundSeed seeds every random draw made while setting up a round.
	RoundSeed = 10
	panDepth  = -10
	// panPhaseSpacing staggers the pans around the spin orbit.
	panPhaseSpacing = 0.25 * 30
)

var panMeshes = [PanCount]assets.Name{
	assets.FryPanBlack, assets.FryPanWhite, assets.FryPanBlue, assets.FryPanRed,
}

// AnimationSystem advances every (Position, Animation) pair and runs the
// completion transitions. Chain stages are swapped through the command
// buffer; when the last stage finishes the round is set up.
type AnimationSystem struct {
	Animated ecs.Query[struct {
		Id ecs.EntityId
		*Position
		*Animation
	}]
	Session ecs.Singleton[Session]

	logger *zap.Logger
}

func NewAnimationSystem(logger *zap.Logger) *AnimationSystem {
	return &AnimationSystem{logger: logger}
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	session := s.Session.Get()
	startPlaying := false

	for item := range s.Animated.Iter() {
		pos, anim := item.Position, item.Animation

		anim.PastTime += dt
		advance(pos, anim, dt)

		if anim.PastTime < anim.Duration {
			continue
		}

		switch anim.OnFinish {
		case FinishNone:
		case FinishDespawn:
			frame.Commands.Delete(item.Id)
		case FinishRepeat:
			anim.PastTime -= anim.Duration
			*pos = Position(anim.Target)
		case FinishRepeatBubble:
			anim.PastTime -= anim.Duration
			pos.X, pos.Z = pos.Z, pos.X
			pos.Y = anim.Target.Y
		case FinishHand3, FinishHand2, FinishHand1, FinishHand0:
			stage := handStages[anim.OnFinish]
			nextPos, target := stage.place(*pos, *anim)
			frame.Commands.Delete(item.Id)
			frame.Commands.Spawn(
				nextPos,
				stage.rotation,
				Animation{
					Duration: stage.duration,
					Type:     stage.curve,
					OnFinish: stage.next,
					Target:   target,
				},
				MeshInstance{Model: stage.mesh},
			)
			s.log().Debug("hand stage", zap.Stringer("fired", anim.OnFinish), zap.Stringer("next", stage.next))
		case FinishStart:
			startPlaying = true
			frame.Commands.Delete(item.Id)
		case FinishRestart:
			if session != nil && session.RequestLevel(session.Level) {
				s.log().Info("round over, restarting", zap.String("level", string(session.Level)))
			}
		}
	}

	// Stage swaps land before the round is set up.
	frame.Flush()

	if startPlaying && session != nil {
		if err := session.Advance(Playing); err != nil {
			s.log().Warn("start ignored", zap.Error(err))
			return
		}
		SpawnRound(frame.Commands, RoundSeed)
	}
}

func (s *AnimationSystem) log() *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

// SpawnRound queues the four pans and the seeded potatoes that make up a round.
func SpawnRound(commands *ecs.Commands, seed uint64) {
	for i, mesh := range panMeshes {
		commands.Spawn(
			MeshInstance{Model: mesh},
			Position{Y: panDepth},
			Rotation{},
			FryAssignment{ID: i},
			Animation{
				Duration: 5,
				PastTime: panPhaseSpacing * float32(i+1),
				Type:     AnimFryerSpin,
				OnFinish: FinishNone,
				Target:   Vec3{Y: panDepth},
			},
		)
	}

	const rowWidth = 10
	rng := rand.New(rand.NewPCG(seed, seed))
	for i := range PotatoCount {
		commands.Spawn(
			MeshInstance{Model: assets.Potato},
			Position{X: float32(i % rowWidth), Z: float32(i / rowWidth)},
			Velocity{
				X: rng.Float32() * 0.1,
				Y: rng.Float32() * 0.1,
				Z: rng.Float32() * 0.1,
			},
			Rotation{},
			SphereCollider{Radius: 1, Gravity: true},
			ControllerAssignment{ID: 0},
		)
	}
}
