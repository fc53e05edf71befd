// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiounit/utils"
)

// Resampler converts a Source to another sample rate with Catmull-Rom
// interpolation, keeping the channel count. When downsampling, input
// frames pass through a one-pole low-pass first.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// window holds source frames t-1, t, t+1, t+2; output is interpolated
	// between t and t+1 at offset pos.
	window [4][]float32
	valid  [4]bool
	pos    float64
	primed bool

	buf     []float32
	pending []float32
	srcErr  error

	lowpass bool
	state   []float32
}

func NewResampler(src Source, rate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(rate)

	r := &Resampler{
		src:      src,
		rate:     rate,
		step:     step,
		channels: channels,
		buf:      make([]float32, max(src.BufSize(), channels)/channels*channels),
		lowpass:  step > 1,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It reports false once
// the source is exhausted or failed; r.srcErr tells which.
func (r *Resampler) nextFrame(dst []float32) bool {
	for len(r.pending) < r.channels {
		if r.srcErr != nil {
			return false
		}
		n, err := r.src.ReadSamples(r.buf)
		r.pending = r.buf[:n-n%r.channels]
		if err != nil {
			r.srcErr = err
		}
		if n == 0 && err == nil {
			r.srcErr = io.ErrNoProgress
		}
	}

	copy(dst, r.pending[:r.channels])
	r.pending = r.pending[r.channels:]

	if r.lowpass {
		const alpha = 0.5
		for c := range dst {
			dst[c] = alpha*dst[c] + (1-alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}
	return true
}

func (r *Resampler) prime() {
	r.primed = true
	if !r.nextFrame(r.window[1]) {
		return
	}
	// Seed the filter with the first frame instead of silence.
	copy(r.state, r.window[1])
	copy(r.window[0], r.window[1])
	r.valid[0], r.valid[1] = true, true
	r.valid[2] = r.nextFrame(r.window[2])
	r.valid[3] = r.valid[2] && r.nextFrame(r.window[3])
}

func (r *Resampler) advance() {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.valid[:], r.valid[1:])
	r.window[3] = first
	r.valid[3] = r.valid[2] && r.nextFrame(r.window[3])
}

// ReadSamples fills dst, whose length must be a multiple of Channels,
// with frames at the target rate.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		r.prime()
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.pos >= 1 {
			r.pos--
			r.advance()
		}
		if !r.valid[1] {
			break
		}

		y0, y1, y2, y3 := r.window[0], r.window[1], r.window[2], r.window[3]
		if !r.valid[2] {
			y2 = y1
		}
		if !r.valid[3] {
			y3 = y2
		}
		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(y0[c], y1[c], y2[c], y3[c], x)
		}

		written++
		r.pos += r.step
	}

	n := written * r.channels
	if written < frames || !r.valid[1] {
		return n, r.endErr()
	}
	return n, nil
}

func (r *Resampler) endErr() error {
	if r.srcErr == nil || errors.Is(r.srcErr, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("resampler: %w", r.srcErr)
}
