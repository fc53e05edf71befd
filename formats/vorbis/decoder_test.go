// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/audiounit/audio"
)

type fakeReader struct {
	rate, channels int
	data           []float32
	empty          int // reads returning nothing before data flows
	err            error
}

func (f *fakeReader) SampleRate() int { return f.rate }
func (f *fakeReader) Channels() int   { return f.channels }

func (f *fakeReader) Read(p []float32) (int, error) {
	if f.empty > 0 {
		f.empty--
		return 0, nil
	}
	if len(f.data) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 0, io.EOF
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	s := &source{dec: &fakeReader{rate: 48000, channels: 2, data: slices.Clone(data), empty: 3}}

	buf := make([]float32, 4)
	var got []float32
	for {
		n, err := s.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if !slices.Equal(got, data) {
		t.Errorf("got %v, want %v", got, data)
	}
	if n, err := s.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after EOF = %d, %v", n, err)
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dec  *fakeReader
		dst  int
		want error
	}{
		{"partial frame", &fakeReader{channels: 2}, 3, audio.ErrInvalidDstSize},
		{"stalled", &fakeReader{channels: 1, data: []float32{1}, empty: maxEmptyReads}, 4, io.ErrNoProgress},
		{"decode error", &fakeReader{channels: 1, err: io.ErrUnexpectedEOF}, 4, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &source{dec: tt.dec}
			if _, err := s.ReadSamples(make([]float32, tt.dst)); !errors.Is(err, tt.want) {
				t.Errorf("ReadSamples() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := &source{dec: &fakeReader{rate: 22050, channels: 6}}
	if s.SampleRate() != 22050 || s.Channels() != 6 {
		t.Errorf("layout = %dHz %dch, want 22050Hz 6ch", s.SampleRate(), s.Channels())
	}
	if s.BufSize()%6 != 0 {
		t.Errorf("BufSize() = %d, not whole frames", s.BufSize())
	}
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("OggS but not really an ogg page")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotVorbis) {
			t.Errorf("Decode(%q) error = %v, want ErrNotVorbis", data, err)
		}
	}
}
