// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	t.Parallel()

	s := NewSine(8000, 2, 1000, 0.5, 100)
	got := readAll(t, s, 64)
	if len(got) != 200 {
		t.Fatalf("got %d samples, want 200", len(got))
	}

	for f := range 100 {
		want := 0.5 * math.Sin(2*math.Pi*1000*float64(f)/8000)
		if math.Abs(float64(got[2*f])-want) > 1e-5 {
			t.Fatalf("frame %d = %v, want %v", f, got[2*f], want)
		}
		if got[2*f] != got[2*f+1] {
			t.Fatalf("frame %d channels differ: %v, %v", f, got[2*f], got[2*f+1])
		}
	}
}

func TestSine_Endless(t *testing.T) {
	t.Parallel()

	s := NewSine(48000, 1, 440, 1, 0)
	buf := make([]float32, 4800)
	for range 50 {
		n, err := s.ReadSamples(buf)
		if n != len(buf) || err != nil {
			t.Fatalf("ReadSamples() = %d, %v; want %d, nil", n, err, len(buf))
		}
	}
	for _, v := range buf {
		if v < -1 || v > 1 {
			t.Fatalf("sample %v out of range", v)
		}
	}
	if _, err := s.ReadSamples(make([]float32, 1)); err != nil {
		t.Errorf("mono ReadSamples(1) error = %v", err)
	}
}

func TestSine_Errors(t *testing.T) {
	t.Parallel()

	s := NewSine(8000, 2, 440, 1, 1)
	if _, err := s.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}
	if n, err := s.ReadSamples(make([]float32, 4)); n != 2 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 2, io.EOF", n, err)
	}
	if n, err := s.ReadSamples(make([]float32, 4)); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = %d, %v; want 0, io.EOF", n, err)
	}
}
