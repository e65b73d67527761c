// Package config loads the settings shared by the fryer binaries from the
// environment and command line flags, and builds their loggers.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/fryer/game"
)

var ErrInvalid = errors.New("invalid config")

// MaxFPS bounds the frame rate so Interval stays a usable ticker period.
const MaxFPS = 1000

type Config struct {
	FPS      int    `env:"FRYER_FPS"       envDefault:"60"`
	Level    string `env:"FRYER_LEVEL"     envDefault:"fry_arena"`
	LogLevel string `env:"FRYER_LOG_LEVEL" envDefault:"info"`
	LogPath  string `env:"FRYER_LOG_PATH"  envDefault:"stderr"`
	LogJSON  bool   `env:"FRYER_LOG_JSON"`
	Mute     bool   `env:"FRYER_MUTE"`
	DebugUI  bool   `env:"FRYER_DEBUG_UI"`
	Width    int    `env:"FRYER_WIDTH"     envDefault:"1280"`
	Height   int    `env:"FRYER_HEIGHT"    envDefault:"720"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds flags to cfg. The current values become the flag
// defaults, so flags override the environment.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Simulation frames per second.")
	fs.StringVar(&cfg.Level, "level", cfg.Level, "Level to start in.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error).")
	fs.StringVar(&cfg.LogPath, "log-path", cfg.LogPath, "Log destination: stderr, stdout or a file path.")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable audio output.")
	fs.BoolVar(&cfg.DebugUI, "debug-ui", cfg.DebugUI, "Show the ImGui debug overlay.")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Window width in pixels.")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Window height in pixels.")
}

func (cfg Config) Validate() error {
	var errs []error
	if cfg.FPS <= 0 || cfg.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("%w: fps must be in 1..%d, got %d", ErrInvalid, MaxFPS, cfg.FPS))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, cfg.Width, cfg.Height))
	}
	if _, err := game.Level(cfg.StartLevel()); err != nil {
		errs = append(errs, err)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

func (cfg Config) StartLevel() game.LevelName {
	return game.LevelName(cfg.Level)
}

// Interval is the wall time of one frame.
func (cfg Config) Interval() time.Duration {
	return time.Second / time.Duration(cfg.FPS)
}

// NewLogger builds a zap logger writing to LogPath at LogLevel.
func (cfg Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	encoding, encoder := "console", zap.NewDevelopmentEncoderConfig()
	if cfg.LogJSON {
		encoding, encoder = "json", zap.NewProductionEncoderConfig()
	}

	zc := zap.Config{
		Level:            level,
		Encoding:         encoding,
		EncoderConfig:    encoder,
		OutputPaths:      []string{cfg.LogPath},
		ErrorOutputPaths: []string{cfg.LogPath},
		DisableCaller:    true,
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
