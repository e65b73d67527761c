// Package game holds the fryer simulation: components, the systems that run
// each frame, the level table and the host that swaps game states.
package game

import (
	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/ecs"
)

// Vec3 is a plain 3D vector used for targets and camera vectors.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

type Position struct {
	X, Y, Z float32
}

// Vec returns the position as a vector.
func (p Position) Vec() Vec3 {
	return Vec3(p)
}

type Velocity struct {
	X, Y, Z float32
}

// Rotation holds Euler angles in degrees.
type Rotation struct {
	X, Y, Z float32
}

// Camera marks the entity whose Position is the eye. R, G, B is the clear colour.
type Camera struct {
	R, G, B uint8
	Up      Vec3
	LookAt  Vec3
}

type MeshInstance struct {
	Model assets.Name
}

type Text struct {
	X, Y  int
	Value string
	Size  uint32
	Color uint32 // 0xRRGGBBAA
}

// Animation drives an entity's Position along a curve picked by Type, then
// fires OnFinish once PastTime reaches Duration.
type Animation struct {
	Duration float32
	PastTime float32
	Type     AnimationType
	OnFinish OnFinish
	Target   Vec3
}

// FryAssignment marks a frying pan. Score only ever grows within a round.
type FryAssignment struct {
	ID    int
	Score int
}

// ControllerAssignment links an entity to one of the four controllers.
type ControllerAssignment struct {
	ID int
}

// SphereCollider asks the physics server for a body. BodyIndex is only valid
// once Registered is set.
type SphereCollider struct {
	Radius     float32
	Gravity    bool
	BodyIndex  int
	Registered bool
}

// PlayMode selects one-shot or looping playback.
type PlayMode int

const (
	PlayOnce PlayMode = iota
	PlayLoop
)

func (m PlayMode) String() string {
	if m == PlayLoop {
		return "loop"
	}
	return "once"
}

// AudioHandle identifies a playing sound on the audio server.
type AudioHandle uint64

type Audio struct {
	Asset   assets.Name
	Mode    PlayMode
	Handle  AudioHandle
	Started bool
}

// Platform tags movable scenery.
type Platform struct{}

// ScoreLabel ties a Text entity to the pan whose score it shows.
type ScoreLabel struct {
	PanID int
}

// PhysicsMarker tags a debug mesh that follows a physics body.
type PhysicsMarker struct {
	BodyIndex int
}

// RegisterComponents registers every component and singleton type of the game.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Rotation](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[MeshInstance](registry)
	ecs.RegisterComponent[Text](registry)
	ecs.RegisterComponent[Animation](registry)
	ecs.RegisterComponent[FryAssignment](registry)
	ecs.RegisterComponent[ControllerAssignment](registry)
	ecs.RegisterComponent[SphereCollider](registry)
	ecs.RegisterComponent[Audio](registry)
	ecs.RegisterComponent[Platform](registry)
	ecs.RegisterComponent[ScoreLabel](registry)
	ecs.RegisterComponent[PhysicsMarker](registry)
}
