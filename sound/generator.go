package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(48000)

// Waveform types
const (
	waveSine = iota
	waveSquare
)

// clip is mono float64 samples at unity gain.
type clip []float64

// oscillator generates raw waveform samples.
func oscillator(waveType int, freq float64, samples int) clip {
	buf := make(clip, samples)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place.
func applyEnvelope(buf clip, attack, release time.Duration) {
	total := len(buf)
	attackSamples := sampleRate.N(attack)
	releaseSamples := sampleRate.N(release)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// tone builds a single enveloped note.
func tone(waveType int, freq float64, dur time.Duration) clip {
	buf := oscillator(waveType, freq, sampleRate.N(dur))
	applyEnvelope(buf, 2*time.Millisecond, dur/3)
	return buf
}

// concat appends b to a.
func concat(a, b clip) clip {
	out := make(clip, len(a)+len(b))
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

// arpeggio concatenates short notes of equal duration.
func arpeggio(waveType int, dur time.Duration, freqs ...float64) clip {
	var out clip
	for _, f := range freqs {
		out = concat(out, tone(waveType, f, dur))
	}
	return out
}

// clipStreamer plays a precomputed clip once and then reports drained.
type clipStreamer struct {
	buf  clip
	gain float64
	pos  int
}

func newClipStreamer(buf clip, gain float64) *clipStreamer {
	return &clipStreamer{buf: buf, gain: gain}
}

func (s *clipStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			return i, true
		}
		v := s.buf[s.pos] * s.gain
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *clipStreamer) Err() error {
	return nil
}
