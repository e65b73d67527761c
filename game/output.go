package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/plus3/fryer/ecs"
)

// RenderMeshesSystem hands every visible mesh to the render server.
type RenderMeshesSystem struct {
	Meshes ecs.Query[struct {
		Mesh     *MeshInstance
		Position *Position
		Rotation *Rotation `ecs:"optional"`
	}]

	render RenderServer
	draws  []MeshDraw
}

func NewRenderMeshesSystem(render RenderServer) *RenderMeshesSystem {
	return &RenderMeshesSystem{render: render}
}

func (s *RenderMeshesSystem) Execute(frame *ecs.UpdateFrame) {
	s.draws = s.draws[:0]
	for item := range s.Meshes.Iter() {
		draw := MeshDraw{Model: item.Mesh.Model, Position: *item.Position}
		if item.Rotation != nil {
			draw.Rotation = *item.Rotation
		}
		s.draws = append(s.draws, draw)
	}
	s.render.RenderMeshes(s.draws)
}

type RenderTextSystem struct {
	Texts ecs.Query[struct{ *Text }]

	render RenderServer
	texts  []Text
}

func NewRenderTextSystem(render RenderServer) *RenderTextSystem {
	return &RenderTextSystem{render: render}
}

func (s *RenderTextSystem) Execute(frame *ecs.UpdateFrame) {
	s.texts = s.texts[:0]
	for item := range s.Texts.Iter() {
		s.texts = append(s.texts, *item.Text)
	}
	s.render.RenderText(s.texts)
}

// CameraUpdateSystem points the render server at the first camera entity.
type CameraUpdateSystem struct {
	Cameras ecs.Query[struct {
		*Camera
		*Position
	}]

	render RenderServer
}

func NewCameraUpdateSystem(render RenderServer) *CameraUpdateSystem {
	return &CameraUpdateSystem{render: render}
}

func (s *CameraUpdateSystem) Execute(frame *ecs.UpdateFrame) {
	if cam, ok := s.Cameras.First(); ok {
		s.render.SetCamera(*cam.Camera, *cam.Position)
	}
}

// PlayAudioSystem starts every Audio entity once. A sound that fails to start
// is logged and not retried.
type PlayAudioSystem struct {
	Sounds ecs.Query[struct {
		Id ecs.EntityId
		*Audio
	}]

	audio  AudioServer
	logger *zap.Logger
}

func NewPlayAudioSystem(audio AudioServer, logger *zap.Logger) *PlayAudioSystem {
	return &PlayAudioSystem{audio: audio, logger: logger}
}

func (s *PlayAudioSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Sounds.Iter() {
		if item.Audio.Started {
			continue
		}
		item.Audio.Started = true

		handle, err := s.audio.Play(item.Audio.Asset, item.Audio.Mode)
		if err != nil {
			s.logger.Warn("sound failed to start",
				zap.Stringer("asset", item.Audio.Asset),
				zap.Uint64("entity", uint64(item.Id)),
				zap.Error(err),
			)
			continue
		}
		item.Audio.Handle = handle
	}
}

// scoreColors are the label colours of the black, white, blue and red pans.
var scoreColors = [PanCount]uint32{0x808080ff, 0xf0f0f0ff, 0x3070ffff, 0xff3030ff}

const (
	scoreLabelX    = 8
	scoreLabelY    = 8
	scoreLabelStep = 20
	scoreLabelSize = 16
)

// ScoreboardSystem keeps one Text entity per pan showing its score. Labels of
// pans that are gone are removed.
type ScoreboardSystem struct {
	Pans   ecs.Query[struct{ *FryAssignment }]
	Labels ecs.Query[struct {
		Id ecs.EntityId
		*ScoreLabel
		*Text
	}]
}

func NewScoreboardSystem() *ScoreboardSystem {
	return &ScoreboardSystem{}
}

func scoreText(pan, score int) string {
	return fmt.Sprintf("P%d %2d", pan+1, score)
}

func (s *ScoreboardSystem) Execute(frame *ecs.UpdateFrame) {
	var (
		scores  [PanCount]int
		present [PanCount]bool
		labeled [PanCount]bool
	)
	for pan := range s.Pans.Iter() {
		id := pan.FryAssignment.ID
		if id < 0 || id >= PanCount {
			continue
		}
		scores[id], present[id] = pan.FryAssignment.Score, true
	}

	for label := range s.Labels.Iter() {
		id := label.ScoreLabel.PanID
		if id < 0 || id >= PanCount || !present[id] {
			frame.Commands.Delete(label.Id)
			continue
		}
		label.Text.Value = scoreText(id, scores[id])
		labeled[id] = true
	}

	for id := range PanCount {
		if !present[id] || labeled[id] {
			continue
		}
		score := scores[id]
		frame.Commands.Spawn(
			ScoreLabel{PanID: id},
			Text{
				X:     scoreLabelX,
				Y:     scoreLabelY + id*scoreLabelStep,
				Value: scoreText(id, score),
				Size:  scoreLabelSize,
				Color: scoreColors[id],
			},
		)
	}
}
