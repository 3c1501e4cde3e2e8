package sound

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/orcaman/writerseeker"
)

// Cue names a feedback sound.
type Cue string

const (
	CueSuccess Cue = "success"
	CueFailure Cue = "failure"
)

const (
	DefaultSampleRate = beep.SampleRate(22050)

	startGain = 0.3
	endGain   = 0.01
)

// Cues lists every cue the bank renders.
func Cues() []Cue {
	return []Cue{CueSuccess, CueFailure}
}

// Streamer builds the streamer for a cue: a bright sine for a correct drop,
// a low triangle for a miss.
func Streamer(cue Cue, rate beep.SampleRate) (beep.Streamer, error) {
	var s beep.Streamer
	switch cue {
	case CueSuccess:
		s = NewTone(880, WaveSine, 300*time.Millisecond, endGain/startGain, rate)
	case CueFailure:
		s = NewTone(220, WaveTriangle, 200*time.Millisecond, endGain/startGain, rate)
	default:
		return nil, fmt.Errorf("unknown cue %q", cue)
	}
	return withVolume(s, startGain), nil
}

// Render encodes a cue as a 16-bit mono WAV file.
func Render(cue Cue, rate beep.SampleRate) ([]byte, error) {
	s, err := Streamer(cue, rate)
	if err != nil {
		return nil, err
	}
	// The WAV encoder seeks back to patch chunk sizes once the stream ends.
	ws := &writerseeker.WriterSeeker{}
	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(ws, s, format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", cue, err)
	}
	return io.ReadAll(ws.Reader())
}

// Bank holds pre-rendered cues.
type Bank struct {
	cues map[Cue][]byte
}

// NewBank renders every cue. Cues that fail to render are left out and the
// joined error is returned alongside the partial bank, so callers can keep
// serving whatever did render.
func NewBank(rate beep.SampleRate) (*Bank, error) {
	b := &Bank{cues: make(map[Cue][]byte)}
	var errs []error
	for _, cue := range Cues() {
		data, err := Render(cue, rate)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.cues[cue] = data
	}
	return b, errors.Join(errs...)
}

// Get returns the encoded WAV for a cue name.
func (b *Bank) Get(name string) ([]byte, bool) {
	if b == nil {
		return nil, false
	}
	data, ok := b.cues[Cue(name)]
	return data, ok
}
