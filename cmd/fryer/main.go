// Command fryer runs the game in a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/backend/audio"
	"github.com/plus3/fryer/backend/physics"
	"github.com/plus3/fryer/backend/window"
	"github.com/plus3/fryer/game"
	"github.com/plus3/fryer/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fryer:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
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

	catalog := assets.Default()
	renderer := window.NewRenderer(catalog)
	servers := game.Servers{
		Render:  renderer,
		Physics: physics.New(physics.DefaultConfig()),
		Assets:  catalog,
		Logger:  logger,
	}

	mixer := audio.NewMixer(catalog, audio.SampleRate, logger.Named("audio"))
	servers.Audio = mixer
	if !cfg.Mute {
		// without a device the mixer still runs, it is just never pulled
		if closeSpeaker, err := audio.Speak(mixer, time.Second/10); err != nil {
			logger.Warn("audio output unavailable", zap.Error(err))
		} else {
			defer closeSpeaker()
		}
	}

	host, err := game.NewHost(cfg.StartLevel(), servers)
	if err != nil {
		return err
	}

	g := window.NewGame(host, renderer, window.Options{
		Title:   "Fryer",
		Width:   cfg.Width,
		Height:  cfg.Height,
		TPS:     cfg.FPS,
		DebugUI: cfg.DebugUI,
	}, logger.Named("window"))

	logger.Info("starting", zap.String("level", cfg.Level), zap.Int("fps", cfg.FPS), zap.Bool("mute", cfg.Mute))
	if err := g.Run(); err != nil {
		return err
	}
	logger.Info("stopped", zap.Uint64("frames", host.Frames()), zap.Int("rebuilds", host.Swaps()))
	return nil
}
