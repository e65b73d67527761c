package game

import (
	"math/rand/v2"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/ecs"
)

const (
	// OilLevel is the height below which a potato counts as lost in the oil.
	OilLevel = -15
	// PanRadius is how far from a pan's centre a potato still lands in it.
	PanRadius = 3.5
	// panCatchHeight is the vertical band around a pan that counts as inside.
	panCatchHeight = 1.5
	dropHeight     = 5
	dropSpread     = 8
)

// RegisterColliderSystem hands every new SphereCollider to the physics server.
type RegisterColliderSystem struct {
	Colliders ecs.Query[struct {
		Collider *SphereCollider
		Position *Position
		Velocity *Velocity `ecs:"optional"`
	}]

	physics PhysicsServer
}

func NewRegisterColliderSystem(physics PhysicsServer) *RegisterColliderSystem {
	return &RegisterColliderSystem{physics: physics}
}

func (s *RegisterColliderSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Colliders.Iter() {
		c := item.Collider
		if c.Registered {
			continue
		}
		var vel Velocity
		if item.Velocity != nil {
			vel = *item.Velocity
		}
		c.BodyIndex = s.physics.AddSphere(c.Radius, c.Gravity, *item.Position, vel)
		c.Registered = true
	}
}

// PhysicsToPositionSystem steps the physics server. Velocities written by
// gameplay systems are pushed first; positions and velocities are read back
// afterwards.
type PhysicsToPositionSystem struct {
	Bodies ecs.Query[struct {
		Collider *SphereCollider
		Position *Position
		Velocity *Velocity `ecs:"optional"`
	}]

	physics PhysicsServer
}

func NewPhysicsToPositionSystem(physics PhysicsServer) *PhysicsToPositionSystem {
	return &PhysicsToPositionSystem{physics: physics}
}

func (s *PhysicsToPositionSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Bodies.Iter() {
		if item.Collider.Registered && item.Velocity != nil {
			s.physics.SetVelocity(item.Collider.BodyIndex, *item.Velocity)
		}
	}

	s.physics.Step(float32(frame.DeltaTime))

	for item := range s.Bodies.Iter() {
		if !item.Collider.Registered {
			continue
		}
		pos, vel, ok := s.physics.Body(item.Collider.BodyIndex)
		if !ok {
			continue
		}
		*item.Position = pos
		if item.Velocity != nil {
			*item.Velocity = vel
		}
	}
}

// dropPoint picks where a potato re-enters the arena.
func dropPoint(rng *rand.Rand) Position {
	return Position{
		X: (rng.Float32() - 0.5) * dropSpread,
		Y: dropHeight,
		Z: (rng.Float32() - 0.5) * dropSpread,
	}
}

func respawn(physics PhysicsServer, rng *rand.Rand, collider *SphereCollider, pos *Position, vel *Velocity) {
	*pos = dropPoint(rng)
	*vel = Velocity{}
	physics.Teleport(collider.BodyIndex, *pos)
	physics.SetVelocity(collider.BodyIndex, Velocity{})
}

type potatoView struct {
	Collider   *SphereCollider
	Position   *Position
	Velocity   *Velocity
	Controller *ControllerAssignment
}

// TeleportPotatoesSystem drops potatoes that sank into the oil back above the
// plate.
type TeleportPotatoesSystem struct {
	Potatoes ecs.Query[potatoView]

	physics PhysicsServer
	rng     *rand.Rand
}

func NewTeleportPotatoesSystem(physics PhysicsServer, seed uint64) *TeleportPotatoesSystem {
	return &TeleportPotatoesSystem{
		physics: physics,
		rng:     rand.New(rand.NewPCG(seed, seed)),
	}
}

func (s *TeleportPotatoesSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Potatoes.Iter() {
		if !item.Collider.Registered || item.Position.Y >= OilLevel {
			continue
		}
		respawn(s.physics, s.rng, item.Collider, item.Position, item.Velocity)
	}
}

// ScoreFryingPanSystem awards a point to a pan for every potato that lands in
// it and sends the potato back to the drop zone. Points are only counted
// while a round is being played.
type ScoreFryingPanSystem struct {
	Potatoes ecs.Query[potatoView]
	Pans     ecs.Query[struct {
		*FryAssignment
		*Position
	}]
	Session ecs.Singleton[Session]

	physics PhysicsServer
	rng     *rand.Rand
}

func NewScoreFryingPanSystem(physics PhysicsServer, seed uint64) *ScoreFryingPanSystem {
	return &ScoreFryingPanSystem{
		physics: physics,
		rng:     rand.New(rand.NewPCG(seed, seed)),
	}
}

// inPan reports whether p sits inside the pan centred on pan.
func inPan(p, pan Position) bool {
	dx, dy, dz := p.X-pan.X, p.Y-pan.Y, p.Z-pan.Z
	if dy < -panCatchHeight || dy > panCatchHeight {
		return false
	}
	return dx*dx+dz*dz <= PanRadius*PanRadius
}

func (s *ScoreFryingPanSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil || session.Mode != Playing {
		return
	}

	for potato := range s.Potatoes.Iter() {
		if !potato.Collider.Registered {
			continue
		}
		for pan := range s.Pans.Iter() {
			if !inPan(*potato.Position, *pan.Position) {
				continue
			}
			pan.FryAssignment.Score++
			respawn(s.physics, s.rng, potato.Collider, potato.Position, potato.Velocity)
			break
		}
	}
}

// DebugPhysicsSystem shows where the physics server thinks each registered
// body is: every body gets a marker mesh placed at the body's position, so
// drift between the server and the entity Position is visible. Markers of
// bodies that disappeared are removed.
type DebugPhysicsSystem struct {
	Colliders ecs.Query[struct{ *SphereCollider }]
	Markers   ecs.Query[struct {
		Id ecs.EntityId
		*PhysicsMarker
		*Position
	}]

	physics PhysicsServer
}

func NewDebugPhysicsSystem(physics PhysicsServer) *DebugPhysicsSystem {
	return &DebugPhysicsSystem{physics: physics}
}

func (s *DebugPhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	live := make(map[int]bool)
	for item := range s.Colliders.Iter() {
		if item.Registered {
			live[item.BodyIndex] = true
		}
	}

	marked := make(map[int]bool, len(live))
	for m := range s.Markers.Iter() {
		idx := m.PhysicsMarker.BodyIndex
		pos, _, ok := s.physics.Body(idx)
		if !live[idx] || !ok || marked[idx] {
			frame.Commands.Delete(m.Id)
			continue
		}
		*m.Position = pos
		marked[idx] = true
	}

	for item := range s.Colliders.Iter() {
		idx := item.BodyIndex
		if !item.Registered || marked[idx] {
			continue
		}
		pos, _, ok := s.physics.Body(idx)
		if !ok {
			continue
		}
		frame.Commands.Spawn(MeshInstance{Model: assets.Cube}, pos, PhysicsMarker{BodyIndex: idx})
		marked[idx] = true
	}
}
