// Package audio synthesises the catalog's sound recipes with beep and serves
// as the game's audio server.
package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/game"
)

// SampleRate is the rate every recipe is rendered at.
const SampleRate = beep.SampleRate(44100)

// ErrNotSound is returned when Play is given an asset that is not a sound.
var ErrNotSound = errors.New("audio: asset is not a sound")

// Mixer plays sounds into one beep stream. It is safe for the speaker
// goroutine to pull samples while the frame loop starts and stops sounds.
type Mixer struct {
	mu       sync.Mutex
	catalog  *assets.Catalog
	rate     beep.SampleRate
	mixer    *beep.Mixer
	playing  map[game.AudioHandle]*beep.Ctrl
	finished []game.AudioHandle
	next     game.AudioHandle
	logger   *zap.Logger
}

var _ game.AudioServer = (*Mixer)(nil)

func NewMixer(catalog *assets.Catalog, rate beep.SampleRate, logger *zap.Logger) *Mixer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mixer{
		catalog: catalog,
		rate:    rate,
		mixer:   &beep.Mixer{},
		playing: make(map[game.AudioHandle]*beep.Ctrl),
		logger:  logger,
	}
}

// Play starts asset. Looping sounds play until stopped; one-shot handles are
// released once the sound ends.
func (m *Mixer) Play(asset assets.Name, mode game.PlayMode) (game.AudioHandle, error) {
	sound, ok := m.catalog.Sound(asset)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotSound, asset)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	handle := m.next

	var s beep.Streamer
	if mode == game.PlayLoop {
		s = beep.Iterate(func() beep.Streamer { return render(sound, m.rate) })
	} else {
		// the callback runs inside Stream, which already holds mu
		s = beep.Seq(render(sound, m.rate), beep.Callback(func() {
			m.finished = append(m.finished, handle)
		}))
	}

	ctrl := &beep.Ctrl{Streamer: s}
	m.playing[handle] = ctrl
	m.mixer.Add(ctrl)

	m.logger.Debug("sound started", zap.Stringer("asset", asset), zap.Stringer("mode", mode), zap.Uint64("handle", uint64(handle)))
	return handle, nil
}

func (m *Mixer) Stop(handle game.AudioHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctrl, ok := m.playing[handle]; ok {
		ctrl.Streamer = nil
		delete(m.playing, handle)
	}
}

func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mixer.Clear()
	clear(m.playing)
	m.finished = m.finished[:0]
}

// Playing returns the number of sounds still running.
func (m *Mixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.playing)
}

// Stream mixes every running sound. It never drains; silence is streamed when
// nothing plays.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok = m.mixer.Stream(samples)
	for _, handle := range m.finished {
		delete(m.playing, handle)
	}
	m.finished = m.finished[:0]
	return n, ok
}

func (m *Mixer) Err() error { return nil }
