// Package debugui draws Dear ImGui windows that inspect a running ECS:
// frame timings, per-system durations and the archetype layout.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/fryer/ecs"
)

// Source is what the overlay inspects. Both fields may change between
// frames, for instance when a game rebuilds its world.
type Source struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
}

// Overlay groups the built-in windows plus any caller-supplied panels.
// Render must be called between the ImGui backend's BeginFrame and EndFrame.
type Overlay struct {
	perf       *PerformanceStats
	archetypes *ArchetypeViewer
	panels     []func()
}

func NewOverlay(historyFrames int) *Overlay {
	return &Overlay{
		perf:       NewPerformanceStats(historyFrames),
		archetypes: NewArchetypeViewer(),
	}
}

// AddPanel registers an extra render function, called every frame after the
// built-in windows.
func (o *Overlay) AddPanel(render func()) {
	o.panels = append(o.panels, render)
}

func (o *Overlay) Render(src Source, deltaTime float32) {
	o.perf.Record(deltaTime)
	if src.Storage != nil {
		o.perf.Render(src)
		o.archetypes.Render(src.Storage)
	}
	for _, render := range o.panels {
		render()
	}
}

// WantsKeyboard reports whether ImGui is consuming keyboard input this frame.
func WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}
