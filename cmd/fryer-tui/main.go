// Command fryer-tui runs the game in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/backend/audio"
	"github.com/plus3/fryer/backend/physics"
	"github.com/plus3/fryer/backend/terminal"
	"github.com/plus3/fryer/game"
	"github.com/plus3/fryer/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fryer-tui:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.LogPath == "stderr" {
		// stderr belongs to the screen
		cfg.LogPath = "fryer-tui.log"
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.HideCursor()

	catalog := assets.Default()
	mixer := audio.NewMixer(catalog, audio.SampleRate, logger.Named("audio"))
	if !cfg.Mute {
		if closeSpeaker, err := audio.Speak(mixer, time.Second/10); err != nil {
			logger.Warn("audio output unavailable", zap.Error(err))
		} else {
			defer closeSpeaker()
		}
	}

	renderer := terminal.NewRenderer(screen, catalog)
	host, err := game.NewHost(cfg.StartLevel(), game.Servers{
		Render:  renderer,
		Audio:   mixer,
		Physics: physics.New(physics.DefaultConfig()),
		Assets:  catalog,
		Logger:  logger,
	})
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := &terminal.Loop{
		Screen:   screen,
		Host:     host,
		Renderer: renderer,
		Keyboard: terminal.NewKeyboard(terminal.DefaultBindings, terminal.DefaultHold),
		Interval: cfg.Interval(),
		Logger:   logger.Named("terminal"),
	}
	logger.Info("starting", zap.String("level", cfg.Level), zap.Int("fps", cfg.FPS))
	return loop.Run(ctx)
}
