// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audiounit/audio"
)

type fakeReader struct {
	data   []int
	offset int
	err    error
}

func (f *fakeReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(buf.Data, f.data[f.offset:])
	f.offset += n
	return n, nil
}

type closeCounter int

func (c *closeCounter) Close() error {
	*c++
	return nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		data     []int
		want     []float32
	}{
		{"16 bit", 16, []int{0, 16384, -32768, 32767}, []float32{0, 0.5, -1, 32767.0 / 32768}},
		{"24 bit", 24, []int{4194304, -8388608}, []float32{0.5, -1}},
		{"32 bit", 32, []int{-1 << 30, 0}, []float32{-0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &goaudio.Format{SampleRate: 8000, NumChannels: 2}
			s := NewSource(&fakeReader{data: tt.data}, f, tt.bitDepth, nil)

			dst := make([]float32, 8)
			n, err := s.ReadSamples(dst)
			if !errors.Is(err, io.EOF) {
				t.Errorf("ReadSamples() error = %v, want io.EOF on a short read", err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() = %d, want %d", n, len(tt.want))
			}
			for i, v := range tt.want {
				if dst[i] != v {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], v)
				}
			}

			if n, err := s.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("ReadSamples() after EOF = %d, %v", n, err)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	var closes closeCounter
	s := NewSource(&fakeReader{}, &goaudio.Format{SampleRate: 22050, NumChannels: 3}, 24, &closes)

	if s.SampleRate() != 22050 || s.Channels() != 3 || s.BitDepth() != 24 {
		t.Errorf("metadata = %d/%d/%d, want 22050/3/24", s.SampleRate(), s.Channels(), s.BitDepth())
	}
	if s.BufSize()%3 != 0 {
		t.Errorf("BufSize() = %d, not whole frames", s.BufSize())
	}
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
	if err := s.Close(); err != nil || closes != 1 {
		t.Errorf("Close() = %v with %d closes, want nil and 1", err, closes)
	}
}

func TestSource_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := NewSource(&fakeReader{err: boom}, &goaudio.Format{SampleRate: 8000, NumChannels: 1}, 16, nil)
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want boom", err)
	}
}
