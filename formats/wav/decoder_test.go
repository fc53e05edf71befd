// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audiounit/internal/audiotest"
)

// encodeFile writes src to a temporary WAV and returns its bytes.
func encodeFile(t *testing.T, src *audiotest.Source, bitDepth int) []byte {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := Encode(f, src, bitDepth); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func readAll(t *testing.T, r interface {
	ReadSamples([]float32) (int, error)
}, size int) []float32 {
	t.Helper()

	buf := make([]float32, size)
	var out []float32
	for {
		n, err := r.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		bitDepth int
	}{
		{"16 bit mono", 8000, 1, 16},
		{"16 bit stereo", 44100, 2, 16},
		{"24 bit stereo", 48000, 2, 24},
		{"32 bit quad", 96000, 4, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			const frames = 1500
			data := encodeFile(t, audiotest.Ramp(tt.rate, tt.channels, frames), tt.bitDepth)

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != tt.rate || src.Channels() != tt.channels {
				t.Fatalf("layout = %dHz %dch, want %dHz %dch",
					src.SampleRate(), src.Channels(), tt.rate, tt.channels)
			}

			want := readAll(t, audiotest.Ramp(tt.rate, tt.channels, frames), 512)
			got := readAll(t, src, 300*tt.channels)
			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}

			// Ramp values past 1 clamp on encode.
			step := 2 / math.Pow(2, float64(tt.bitDepth-1))
			for i := range want {
				w := min(want[i], 1)
				if math.Abs(float64(got[i]-w)) > step+1e-6 {
					t.Fatalf("sample %d = %v, want %v", i, got[i], w)
				}
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := encodeFile(t, audiotest.Constant(16000, 1, 100, 0.25), 16)

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got := readAll(t, src, 64)
	if len(got) != 100 {
		t.Fatalf("decoded %d samples, want 100", len(got))
	}
	if math.Abs(float64(got[0]-0.25)) > 1e-4 {
		t.Errorf("sample = %v, want 0.25", got[0])
	}
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	valid := encodeFile(t, audiotest.Constant(8000, 1, 10, 0), 16)
	eightBit := bytes.Clone(valid)
	eightBit[34] = 8 // bits per sample in the canonical header
	float := bytes.Clone(valid)
	float[20] = 3 // WAVE_FORMAT_IEEE_FLOAT

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotWavFile},
		{"text", []byte("this is not a wav file at all, just some bytes"), ErrNotWavFile},
		{"8 bit", eightBit, ErrUnsupportedBitDepth},
		{"ieee float", float, ErrUnsupportedWavLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
