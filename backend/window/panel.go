package window

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/fryer/ecs"
	"github.com/plus3/fryer/game"
)

// sessionPanel shows the current round and lets a developer jump levels.
func (g *Game) sessionPanel() {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	state := g.host.State()
	session := state.Session()
	imgui.Text(fmt.Sprintf("State: %s", state.ID))
	imgui.Text(fmt.Sprintf("Level: %s", state.Level))
	imgui.Text(fmt.Sprintf("Mode: %s", session.Mode))
	imgui.Text(fmt.Sprintf("Rebuilds: %d", g.host.Swaps()))

	if imgui.TreeNodeStr("Pans") {
		pans := ecs.NewView[struct{ *game.FryAssignment }](state.Storage)
		for pan := range pans.Iter() {
			imgui.BulletText(fmt.Sprintf("pan %d: %d", pan.FryAssignment.ID, pan.FryAssignment.Score))
		}
		imgui.TreePop()
	}

	for _, level := range game.Levels() {
		if imgui.Button(string(level)) {
			session.RequestLevel(level)
		}
		imgui.SameLine()
	}
	imgui.NewLine()

	imgui.End()
}
