package scene

import (
	"sync"

	"github.com/plus3/fryer/game"
)

// Frame is everything one simulation frame asked to draw.
type Frame struct {
	Meshes    []game.MeshDraw
	Texts     []game.Text
	Camera    game.Camera
	Eye       game.Position
	HasCamera bool
}

// Recorder implements game.RenderServer by collecting draw calls. RenderFrame
// publishes the collected frame; renderers read it with Latest, possibly from
// another goroutine.
type Recorder struct {
	mu      sync.Mutex
	pending Frame
	latest  Frame
	frames  uint64
}

var _ game.RenderServer = (*Recorder)(nil)

func (r *Recorder) RenderMeshes(meshes []game.MeshDraw) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending.Meshes = append(r.pending.Meshes[:0], meshes...)
}

func (r *Recorder) RenderText(texts []game.Text) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending.Texts = append(r.pending.Texts[:0], texts...)
}

func (r *Recorder) SetCamera(camera game.Camera, eye game.Position) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending.Camera, r.pending.Eye, r.pending.HasCamera = camera, eye, true
}

func (r *Recorder) RenderFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.latest.Meshes = append(r.latest.Meshes[:0], r.pending.Meshes...)
	r.latest.Texts = append(r.latest.Texts[:0], r.pending.Texts...)
	r.latest.Camera, r.latest.Eye, r.latest.HasCamera = r.pending.Camera, r.pending.Eye, r.pending.HasCamera
	r.frames++
}

// ResetWorld forgets everything recorded so far.
func (r *Recorder) ResetWorld() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = Frame{}
	r.latest = Frame{}
}

// Latest returns a copy of the last published frame.
func (r *Recorder) Latest() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Frame{
		Meshes:    append([]game.MeshDraw(nil), r.latest.Meshes...),
		Texts:     append([]game.Text(nil), r.latest.Texts...),
		Camera:    r.latest.Camera,
		Eye:       r.latest.Eye,
		HasCamera: r.latest.HasCamera,
	}
}

// Frames returns how many frames were published.
func (r *Recorder) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
