// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// Sine generates a sine wave on every channel.
type Sine struct {
	rate      int
	channels  int
	amplitude float32
	step      float64 // radians per frame
	phase     float64
	remaining int // frames left; negative means endless
}

// NewSine returns frames frames of a freq Hz tone. frames <= 0 makes the
// source endless.
func NewSine(rate, channels int, freq float64, amplitude float32, frames int) *Sine {
	if frames <= 0 {
		frames = -1
	}
	return &Sine{
		rate:      rate,
		channels:  channels,
		amplitude: amplitude,
		step:      2 * math.Pi * freq / float64(rate),
		remaining: frames,
	}
}

func (s *Sine) SampleRate() int { return s.rate }
func (s *Sine) Channels() int   { return s.channels }
func (s *Sine) BufSize() int    { return 1024 * s.channels }
func (s *Sine) Close() error    { return nil }

func (s *Sine) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.remaining == 0 {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if s.remaining > 0 {
		frames = min(frames, s.remaining)
		s.remaining -= frames
	}

	for f := range frames {
		v := s.amplitude * float32(math.Sin(s.phase))
		for c := range s.channels {
			dst[f*s.channels+c] = v
		}
		s.phase = math.Mod(s.phase+s.step, 2*math.Pi)
	}

	if s.remaining == 0 {
		return frames * s.channels, io.EOF
	}
	return frames * s.channels, nil
}
