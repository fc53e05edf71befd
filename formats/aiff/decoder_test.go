// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audiounit/utils"
)

// writeAIFF encodes samples with the go-audio encoder and returns the file
// contents.
func writeAIFF(t *testing.T, rate, channels, bitDepth int, samples []float32) []byte {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "x.aiff"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: rate, NumChannels: channels},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = utils.ToPCM(s, bitDepth)
	}

	enc := goaiff.NewEncoder(f, rate, bitDepth, channels)
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func sine(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.8 * math.Sin(float64(i)/7))
	}
	return out
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		bitDepth int
	}{
		{"16 bit mono", 22050, 1, 16},
		{"16 bit stereo", 44100, 2, 16},
		{"24 bit stereo", 48000, 2, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := sine(600 * tt.channels)
			data := writeAIFF(t, tt.rate, tt.channels, tt.bitDepth, want)

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != tt.rate || src.Channels() != tt.channels {
				t.Fatalf("layout = %dHz %dch, want %dHz %dch",
					src.SampleRate(), src.Channels(), tt.rate, tt.channels)
			}

			buf := make([]float32, 128*tt.channels)
			var got []float32
			for {
				n, err := src.ReadSamples(buf)
				got = append(got, buf[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}
			tol := 2 / math.Pow(2, float64(tt.bitDepth-1))
			for i := range want {
				if math.Abs(float64(got[i]-want[i])) > tol {
					t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
				}
			}

			if err := src.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := writeAIFF(t, 8000, 1, 16, sine(50))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	eightBit := writeAIFF(t, 8000, 1, 8, sine(50))

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotAiffFile},
		{"wav header", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), ErrNotAiffFile},
		{"8 bit", eightBit, ErrUnsupportedBitDepth},
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
