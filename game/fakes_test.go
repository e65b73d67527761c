package game_test

import (
	"errors"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/ecs"
	"github.com/plus3/fryer/game"
)

type fakeRender struct {
	meshes  []game.MeshDraw
	texts   []game.Text
	camera  game.Camera
	eye     game.Position
	frames  int
	resets  int
	cameras int
}

func (r *fakeRender) RenderMeshes(meshes []game.MeshDraw) {
	r.meshes = append(r.meshes[:0], meshes...)
}

func (r *fakeRender) RenderText(texts []game.Text) {
	r.texts = append(r.texts[:0], texts...)
}

func (r *fakeRender) SetCamera(camera game.Camera, eye game.Position) {
	r.camera, r.eye = camera, eye
	r.cameras++
}

func (r *fakeRender) RenderFrame() { r.frames++ }
func (r *fakeRender) ResetWorld()  { r.resets++ }

var errNoDevice = errors.New("no audio device")

type fakeAudio struct {
	fail    bool
	played  []assets.Name
	stopped []game.AudioHandle
	stopAll int
	next    game.AudioHandle
}

func (a *fakeAudio) Play(asset assets.Name, mode game.PlayMode) (game.AudioHandle, error) {
	a.played = append(a.played, asset)
	if a.fail {
		return 0, errNoDevice
	}
	a.next++
	return a.next, nil
}

func (a *fakeAudio) Stop(handle game.AudioHandle) { a.stopped = append(a.stopped, handle) }
func (a *fakeAudio) StopAll()                     { a.stopAll++ }

type fakeBody struct {
	pos game.Position
	vel game.Velocity
}

// fakePhysics moves bodies in straight lines without gravity or contacts.
type fakePhysics struct {
	bodies     []fakeBody
	teleported []int
	steps      int
	resets     int
}

func (p *fakePhysics) AddSphere(radius float32, gravity bool, pos game.Position, vel game.Velocity) int {
	p.bodies = append(p.bodies, fakeBody{pos: pos, vel: vel})
	return len(p.bodies) - 1
}

func (p *fakePhysics) SetVelocity(body int, vel game.Velocity) { p.bodies[body].vel = vel }

func (p *fakePhysics) Teleport(body int, pos game.Position) {
	p.bodies[body].pos = pos
	p.teleported = append(p.teleported, body)
}

func (p *fakePhysics) Body(body int) (game.Position, game.Velocity, bool) {
	if body < 0 || body >= len(p.bodies) {
		return game.Position{}, game.Velocity{}, false
	}
	b := p.bodies[body]
	return b.pos, b.vel, true
}

func (p *fakePhysics) Step(dt float32) {
	p.steps++
	for i := range p.bodies {
		b := &p.bodies[i]
		b.pos.X += b.vel.X * dt
		b.pos.Y += b.vel.Y * dt
		b.pos.Z += b.vel.Z * dt
	}
}

func (p *fakePhysics) Reset() {
	p.bodies = nil
	p.resets++
}

type fakes struct {
	render  *fakeRender
	audio   *fakeAudio
	physics *fakePhysics
}

func newFakes() (fakes, game.Servers) {
	f := fakes{render: &fakeRender{}, audio: &fakeAudio{}, physics: &fakePhysics{}}
	return f, game.Servers{
		Render:  f.render,
		Audio:   f.audio,
		Physics: f.physics,
		Assets:  assets.Default(),
	}
}

// newWorld returns a storage with every game component registered and a
// session in mode.
func newWorld(mode game.Mode) (*ecs.Storage, *ecs.Singleton[game.Session]) {
	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	session := game.NewSession(game.FryArena)
	session.Mode = mode
	return storage, ecs.NewSingleton(storage, session)
}

func count[T any](storage *ecs.Storage) int {
	return ecs.NewView[T](storage).Count()
}
