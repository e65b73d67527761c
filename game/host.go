package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Input supplies the controls snapshot for the next frame.
type Input interface {
	Poll() Controls
}

// InputFunc adapts a function to Input.
type InputFunc func() Controls

func (f InputFunc) Poll() Controls { return f() }

// Host owns the current State and swaps it for a fresh build whenever a
// system requests a level at the end of a frame.
type Host struct {
	servers Servers
	logger  *zap.Logger
	state   *State
	frames  uint64
	swaps   int
}

// NewHost builds the first State for level.
func NewHost(level LevelName, servers Servers) (*Host, error) {
	state, err := NewState(level, servers)
	if err != nil {
		return nil, err
	}
	logger := servers.logger().Named("host")
	logger.Info("state built", zap.String("state_id", state.ID.String()), zap.String("level", string(level)))
	return &Host{servers: servers, logger: logger, state: state}, nil
}

// State returns the current State. It changes after a rebuild.
func (h *Host) State() *State {
	return h.state
}

// Running reports whether the current session still wants frames.
func (h *Host) Running() bool {
	session := h.state.Session()
	return session != nil && session.Running
}

// Frames returns how many frames the host has run across every State.
func (h *Host) Frames() uint64 {
	return h.frames
}

// Swaps returns how many times the State was rebuilt.
func (h *Host) Swaps() int {
	return h.swaps
}

// Frame runs one frame and applies any level request made during it.
func (h *Host) Frame(dt float64, controls Controls) error {
	h.state.Step(dt, controls)
	h.frames++

	if h.servers.Render != nil {
		h.servers.Render.RenderFrame()
	}

	session := h.state.Session()
	if session == nil {
		return nil
	}
	level, ok := session.takeRequest()
	if !ok {
		return nil
	}
	return h.swap(level, session.Mode)
}

func (h *Host) swap(level LevelName, mode Mode) error {
	// Build before touching the servers so a failed rebuild leaves the
	// current State and its server-side bodies intact.
	next, err := NewState(level, h.servers)
	if err != nil {
		h.logger.Error("rebuild failed", zap.String("level", string(level)), zap.Error(err))
		return err
	}

	if h.servers.Render != nil {
		h.servers.Render.ResetWorld()
	}
	if h.servers.Audio != nil {
		h.servers.Audio.StopAll()
	}
	if h.servers.Physics != nil {
		h.servers.Physics.Reset()
	}

	h.logger.Info("state swapped",
		zap.String("old_state_id", h.state.ID.String()),
		zap.String("state_id", next.ID.String()),
		zap.String("level", string(level)),
		zap.Stringer("mode", mode),
	)
	h.state = next
	h.swaps++
	return nil
}

// Run drives frames at interval until the session stops running or ctx is
// done. dt is the measured wall time between ticks.
func (h *Host) Run(ctx context.Context, interval time.Duration, input Input) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for h.Running() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := h.Frame(dt, input.Poll()); err != nil {
				return err
			}
		}
	}
	h.logger.Info("session stopped", zap.Uint64("frames", h.frames))
	return nil
}
