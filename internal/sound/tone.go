package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
)

// tone is a single oscillator with an exponential decay from full level to
// floor over its duration.
type tone struct {
	freq     float64
	wave     Wave
	phase    float64
	position int
	total    int
	decay    float64 // per-sample gain multiplier
	gain     float64
	rate     beep.SampleRate
}

// NewTone returns a streamer for one decaying note. floor is the level
// reached at the end, relative to the start (0 < floor <= 1).
func NewTone(freq float64, wave Wave, duration time.Duration, floor float64, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	if floor <= 0 || floor > 1 {
		floor = 1
	}
	decay := 1.0
	if total > 1 {
		decay = math.Pow(floor, 1/float64(total-1))
	}
	return &tone{
		freq:  freq,
		wave:  wave,
		total: total,
		decay: decay,
		gain:  1,
		rate:  rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		var val float64
		switch t.wave {
		case WaveTriangle:
			val = 1 - 4*math.Abs(t.phase-0.5)
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}
		val *= t.gain
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.gain *= t.decay
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly by vol; zero or less is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
