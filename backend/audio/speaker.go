package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Speak plays m through the system speaker with the given buffer latency.
// The returned function stops playback and releases the device.
func Speak(m *Mixer, latency time.Duration) (func(), error) {
	if err := speaker.Init(m.rate, m.rate.N(latency)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m)
	return speaker.Close, nil
}
