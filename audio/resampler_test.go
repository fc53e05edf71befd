// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audiounit/internal/audiotest"
)

type failingSource struct {
	Source
	after int
	err   error
}

func (f *failingSource) ReadSamples(dst []float32) (int, error) {
	if f.after <= 0 {
		return 0, f.err
	}
	n, err := f.Source.ReadSamples(dst[:min(len(dst), f.after)])
	f.after -= n
	return n, err
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	src := audiotest.Constant(44100, 2, 100, 0)
	r := NewResampler(src, 8000)

	if got := r.SampleRate(); got != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", got)
	}
	if got := r.Channels(); got != 2 {
		t.Errorf("Channels() = %d, want 2", got)
	}
	if got := r.BufSize(); got != src.BufSize() {
		t.Errorf("BufSize() = %d, want %d", got, src.BufSize())
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	want := readAll(t, audiotest.Ramp(16000, 2, 3000), 512)
	got := readAll(t, NewResampler(audiotest.Ramp(16000, 2, 3000), 16000), 300)

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampler_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		channels int
	}{
		{"downsample 44.1k to 8k", 44100, 8000, 1},
		{"downsample 48k to 44.1k stereo", 48000, 44100, 2},
		{"upsample 8k to 48k", 8000, 48000, 1},
		{"upsample 22.05k to 44.1k stereo", 22050, 44100, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.Tone(tt.from, tt.channels, tt.from, 440)
			got := readAll(t, NewResampler(src, tt.to), 1000*tt.channels)

			frames := len(got) / tt.channels
			if len(got)%tt.channels != 0 {
				t.Fatalf("got %d samples, not whole frames", len(got))
			}
			if diff := frames - tt.to; diff < -10 || diff > 10 {
				t.Errorf("got %d frames, want about %d", frames, tt.to)
			}
		})
	}
}

func TestResampler_KeepsLevel(t *testing.T) {
	t.Parallel()

	for _, to := range []int{8000, 96000} {
		got := readAll(t, NewResampler(audiotest.Constant(44100, 1, 4410, 0.5), to), 256)
		for i, v := range got {
			if math.Abs(float64(v-0.5)) > 1e-5 {
				t.Fatalf("to %d: sample %d = %v, want 0.5", to, i, v)
			}
		}
	}
}

func TestResampler_UpsampledToneStaysBounded(t *testing.T) {
	t.Parallel()

	got := readAll(t, NewResampler(audiotest.Tone(8000, 1, 8000, 440), 44100), 1024)
	var peak float32
	for _, v := range got {
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	if peak < 0.9 || peak > 1.05 {
		t.Errorf("peak = %v, want about 1", peak)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.Constant(8000, 2, 10, 0), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &failingSource{Source: audiotest.Ramp(8000, 1, 1000), after: 100, err: boom}
	r := NewResampler(src, 8000)

	buf := make([]float32, 64)
	total := 0
	for {
		n, err := r.ReadSamples(buf)
		total += n
		if err == nil {
			continue
		}
		if !errors.Is(err, boom) {
			t.Fatalf("ReadSamples() error = %v, want boom", err)
		}
		if errors.Is(err, io.EOF) {
			t.Fatal("source error reported as io.EOF")
		}
		break
	}
	if total != 100 {
		t.Errorf("read %d samples before the error, want 100", total)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.Constant(8000, 1, 0, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}
