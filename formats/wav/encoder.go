// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/utils"
)

// Encoder writes float32 samples as integer PCM WAV. The header is
// finalized by Close, which is why the destination must seek.
type Encoder struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	bitDepth int
	frames   int
	closed   bool
}

// NewEncoder starts a WAV stream on w.
func NewEncoder(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Encoder, error) {
	if !supportedBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if channels <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %dHz", ErrUnsupportedWavLayout, channels, sampleRate)
	}

	return &Encoder{
		enc: gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
			SourceBitDepth: bitDepth,
		},
		channels: channels,
		bitDepth: bitDepth,
	}, nil
}

// Write encodes interleaved samples; len(samples) must be whole frames.
func (e *Encoder) Write(samples []float32) error {
	if e.closed {
		return ErrEncoderClosed
	}
	if len(samples)%e.channels != 0 {
		return audio.ErrInvalidDstSize
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(e.buf.Data) < len(samples) {
		e.buf.Data = make([]int, len(samples))
	}
	e.buf.Data = e.buf.Data[:len(samples)]
	for i, s := range samples {
		e.buf.Data[i] = utils.ToPCM(s, e.bitDepth)
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	e.frames += len(samples) / e.channels
	return nil
}

// Frames is the number of frames written so far.
func (e *Encoder) Frames() int { return e.frames }

// Close patches the header sizes. It does not close the writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}

// Encode drains src into a WAV on w and returns the frames written.
func Encode(w io.WriteSeeker, src audio.Source, bitDepth int) (int, error) {
	e, err := NewEncoder(w, src.SampleRate(), src.Channels(), bitDepth)
	if err != nil {
		return 0, err
	}

	buf := make([]float32, max(src.BufSize()/src.Channels(), 1)*src.Channels())
	for {
		n, rerr := src.ReadSamples(buf)
		if err := e.Write(buf[:n-n%src.Channels()]); err != nil {
			return e.Frames(), err
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return e.Frames(), fmt.Errorf("reading source: %w", rerr)
		}
	}

	return e.Frames(), e.Close()
}
