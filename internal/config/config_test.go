package config_test

import (
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/fryer/game"
	"github.com/plus3/fryer/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, game.FryArena, cfg.StartLevel())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Mute)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second/60, cfg.Interval())
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("FRYER_FPS", "30")
	t.Setenv("FRYER_MUTE", "true")
	t.Setenv("FRYER_LEVEL", "moving_platform_test")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)
	assert.True(t, cfg.Mute)

	fs := flag.NewFlagSet("fryer", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-fps", "120"}))

	assert.Equal(t, 120, cfg.FPS)
	assert.True(t, cfg.Mute, "unset flags keep the environment value")
	assert.Equal(t, game.MovingPlatformTest, cfg.StartLevel())
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv("FRYER_FPS", "fast")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.FPS = 0
	cfg.Level = "lava_pit"
	cfg.LogLevel = "loud"

	err = cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, game.ErrUnknownLevel)
}

func TestValidateBoundsFPS(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	for _, fps := range []int{-1, 0, config.MaxFPS + 1, 2_000_000_000} {
		cfg.FPS = fps
		assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid, "fps %d", fps)
	}

	cfg.FPS = config.MaxFPS
	require.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.Interval())
}

func TestNewLogger(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.LogPath = filepath.Join(t.TempDir(), "fryer.log")
	cfg.LogJSON = true

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, logger.Sync())

	cfg.LogLevel = "loud"
	_, err = cfg.NewLogger()
	assert.ErrorIs(t, err, config.ErrInvalid)
}
