// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer buffers of the go-audio container
// decoders to audio.Source.
package pcm

import (
	"errors"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/utils"
)

// Reader is the part of the go-audio wav and aiff decoders a Source uses.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads signed integer PCM of a fixed bit depth as float32.
type Source struct {
	r        Reader
	format   *goaudio.Format
	bitDepth int
	buf      *goaudio.IntBuffer
	closer   io.Closer
	eof      bool
}

// NewSource wraps r. If c is not nil, Close closes it.
func NewSource(r Reader, format *goaudio.Format, bitDepth int, c io.Closer) *Source {
	return &Source{r: r, format: format, bitDepth: bitDepth, closer: c}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) BufSize() int    { return 1024 * s.format.NumChannels }

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.format.NumChannels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.FromPCM(v, s.bitDepth)
	}

	switch {
	case err == nil && n == len(dst):
		return n, nil
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// A short read is the end of the data chunk.
		s.eof = true
		return n, io.EOF
	default:
		return n, err
	}
}
