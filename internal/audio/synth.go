// Package audio synthesizes the game's sound effects and background loop
// with beep and plays them through the system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator.
type tone struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
}

// newTone returns a streamer producing d of the given wave.
func newTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, left: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.left <= 0 {
			return i, i > 0
		}
		v := waveAt(t.wave, t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.left--
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// waveAt evaluates a unit-amplitude wave at phase in [0, 1).
func waveAt(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// shaper applies a linear attack and release to a finite stream.
type shaper struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func newShaper(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &shaper{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *shaper) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if e.release > 0 && e.pos >= releaseStart {
			gain = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *shaper) Err() error { return e.s.Err() }

// gain scales s linearly. effects.Volume works in log space, so zero
// maps to a silent stream.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
