package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-dance/internal/rhythm"
)

const (
	perfectDuration = 250 * time.Millisecond
	goodDuration    = 120 * time.Millisecond
	missDuration    = 180 * time.Millisecond
	comboNote1      = 80 * time.Millisecond
	comboNote2      = 220 * time.Millisecond
	attackTime      = 5 * time.Millisecond
)

// perfectSound is a bright bell: A5 with an octave overtone.
func perfectSound(rate beep.SampleRate) beep.Streamer {
	fund := newShaper(newTone(880, perfectDuration, WaveSine, rate), perfectDuration, attackTime, 200*time.Millisecond, rate)
	over := newShaper(newTone(1760, perfectDuration, WaveSine, rate), perfectDuration, attackTime, 120*time.Millisecond, rate)
	return beep.Mix(gain(fund, 0.7), gain(over, 0.3))
}

// goodSound is a short soft blip.
func goodSound(rate beep.SampleRate) beep.Streamer {
	blip := newTone(660, goodDuration, WaveSquare, rate)
	return gain(newShaper(blip, goodDuration, attackTime, 80*time.Millisecond, rate), 0.4)
}

// missSound is a low saw buzz.
func missSound(rate beep.SampleRate) beep.Streamer {
	buzz := newTone(110, missDuration, WaveSaw, rate)
	return gain(newShaper(buzz, missDuration, attackTime, 100*time.Millisecond, rate), 0.6)
}

// comboSound is a rising two-note chime, B5 then E6.
func comboSound(rate beep.SampleRate) beep.Streamer {
	n1 := newShaper(newTone(987.77, comboNote1, WaveSquare, rate), comboNote1, attackTime, 40*time.Millisecond, rate)
	n2 := newShaper(newTone(1318.51, comboNote2, WaveSquare, rate), comboNote2, attackTime, 180*time.Millisecond, rate)
	return gain(beep.Seq(n1, n2), 0.5)
}

// effectFor builds a fresh streamer for a session sound.
func effectFor(s rhythm.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case rhythm.SoundPerfect:
		return perfectSound(rate)
	case rhythm.SoundGood:
		return goodSound(rate)
	case rhythm.SoundMiss:
		return missSound(rate)
	case rhythm.SoundCombo:
		return comboSound(rate)
	default:
		return nil
	}
}

// Background loop tempo.
const (
	musicBPM   = 120
	musicBeats = 8
)

// bass line in Hz, one note per beat: A2 A2 C3 E3 F2 F2 G2 E2
var bassLine = [musicBeats]float64{110, 110, 130.81, 164.81, 87.31, 87.31, 98, 82.41}

// beatLoop is an endless kick-and-bass pattern.
type beatLoop struct {
	rate beep.SampleRate
	pos  int
	beat int // samples per beat
	kick int // kick length in samples
}

func newBeatLoop(rate beep.SampleRate) *beatLoop {
	return &beatLoop{
		rate: rate,
		beat: rate.N(time.Minute / musicBPM),
		kick: rate.N(90 * time.Millisecond),
	}
}

func (g *beatLoop) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		inBeat := g.pos % g.beat
		note := bassLine[(g.pos/g.beat)%musicBeats]
		t := float64(inBeat) / float64(g.rate)

		var kick float64
		if inBeat < g.kick {
			env := 1 - float64(inBeat)/float64(g.kick)
			kick = 0.45 * env * math.Sin(2*math.Pi*55*(1+2*env)*t)
		}
		// bass note decays over the beat
		bassEnv := 1 - 0.6*float64(inBeat)/float64(g.beat)
		bass := 0.25 * bassEnv * waveAt(WaveSaw, math.Mod(note*t, 1))
		hat := 0.0
		if off := inBeat - g.beat/2; off >= 0 && off < g.kick/3 {
			hat = 0.08 * waveAt(WaveNoise, 0)
		}

		v := kick + bass + hat
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *beatLoop) Err() error { return nil }
