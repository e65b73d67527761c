package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/plus3/fryer/assets"
)

// oscillator plays one note of a fixed length.
type oscillator struct {
	wave     assets.Wave
	freq     float64
	phase    float64
	rate     beep.SampleRate
	length   int
	position int
	noise    *rand.Rand
}

func newOscillator(wave assets.Wave, freq float64, d time.Duration, rate beep.SampleRate) *oscillator {
	o := &oscillator{wave: wave, freq: freq, rate: rate, length: rate.N(d)}
	if wave == assets.WaveNoise {
		o.noise = rand.New(rand.NewPCG(uint64(freq), uint64(o.length)))
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case assets.WaveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case assets.WaveSaw:
			v = 2 * (o.phase - 0.5)
		case assets.WaveNoise:
			v = o.noise.Float64()*2 - 1
		default:
			v = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// withGain scales s linearly by gain.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// render turns a sound recipe into a streamer that plays it once.
func render(sound assets.Sound, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(sound.Notes))
	for _, n := range sound.Notes {
		d := time.Duration(n.Duration * float64(time.Second))
		notes = append(notes, newOscillator(sound.Wave, n.Freq, d, rate))
	}
	return withGain(beep.Seq(notes...), sound.Gain)
}
