package game

import (
	"go.uber.org/zap"

	"github.com/plus3/fryer/assets"
)

// MeshDraw is one mesh to draw this frame.
type MeshDraw struct {
	Model    assets.Name
	Position Position
	Rotation Rotation
}

// RenderServer draws what the simulation decided to show.
// Calls between RenderFrame calls describe one frame.
type RenderServer interface {
	RenderMeshes(meshes []MeshDraw)
	RenderText(texts []Text)
	SetCamera(camera Camera, eye Position)
	RenderFrame()
	ResetWorld()
}

// AudioServer plays sounds described by the asset catalog.
type AudioServer interface {
	Play(asset assets.Name, mode PlayMode) (AudioHandle, error)
	Stop(handle AudioHandle)
	StopAll()
}

// PhysicsServer owns rigid bodies for entities with a SphereCollider.
type PhysicsServer interface {
	AddSphere(radius float32, gravity bool, pos Position, vel Velocity) int
	SetVelocity(body int, vel Velocity)
	Teleport(body int, pos Position)
	Body(body int) (Position, Velocity, bool)
	Step(dt float32)
	Reset()
}

// Servers are the collaborators injected into a State. Any of them may be nil;
// systems that need a missing one refuse to be built.
type Servers struct {
	Render  RenderServer
	Audio   AudioServer
	Physics PhysicsServer
	Assets  *assets.Catalog
	Logger  *zap.Logger
}

func (s Servers) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
