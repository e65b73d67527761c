// Package window runs the game in an ebiten window: keyboard controllers, a
// disc renderer over the scene layout and an optional ImGui debug overlay.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/fryer/ecs/debugui"
	debugui_ebiten "github.com/plus3/fryer/ecs/debugui/ebiten"
	"github.com/plus3/fryer/game"
)

type Options struct {
	Title    string
	Width    int
	Height   int
	TPS      int
	DebugUI  bool
	Bindings [game.ControllerCount]Binding
}

// Game adapts a game.Host to ebiten.Game. Every ebiten tick is one fixed
// simulation frame.
type Game struct {
	host     *game.Host
	renderer *Renderer
	opts     Options
	logger   *zap.Logger
	tracker  game.MotionTracker
	pressed  func(ebiten.Key) bool

	overlay *debugui.Overlay
	imgui   *debugui_ebiten.ImguiBackend
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wires host to a window. With DebugUI set the window is created by
// the ImGui backend.
func NewGame(host *game.Host, renderer *Renderer, opts Options, logger *zap.Logger) *Game {
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Bindings == ([game.ControllerCount]Binding{}) {
		opts.Bindings = DefaultBindings
	}
	g := &Game{
		host:     host,
		renderer: renderer,
		opts:     opts,
		logger:   logger,
		pressed:  ebiten.IsKeyPressed,
	}

	if opts.DebugUI {
		g.imgui = debugui_ebiten.NewImguiBackend(opts.Title, opts.Width, opts.Height)
		g.overlay = debugui.NewOverlay(120)
		g.overlay.AddPanel(g.sessionPanel)
	} else {
		ebiten.SetWindowSize(opts.Width, opts.Height)
		ebiten.SetWindowTitle(opts.Title)
	}
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return g
}

func (g *Game) Update() error {
	if !g.host.Running() {
		g.logger.Info("session stopped", zap.Uint64("frames", g.host.Frames()))
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}

	raw := ReadKeys(g.opts.Bindings, g.pressed)
	if g.imgui != nil && debugui.WantsKeyboard() {
		raw = [game.ControllerCount]game.RawController{}
	}

	dt := 1.0 / float64(g.opts.TPS)
	if err := g.host.Frame(dt, g.tracker.Update(raw)); err != nil {
		return err
	}

	if g.overlay != nil {
		state := g.host.State()
		g.overlay.Render(debugui.Source{Storage: state.Storage, Scheduler: state.Scheduler}, float32(dt))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run blocks until the window closes or the session stops.
func (g *Game) Run() error {
	return ebiten.RunGame(g)
}
