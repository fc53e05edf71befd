// SPDX-License-Identifier: EPL-2.0

package recorder

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/audiounit"
	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/format"
	"github.com/ik5/audiounit/formats/wav"
	"github.com/ik5/audiounit/internal/audiotest"
)

func newRecorder(t *testing.T, opts ...Option) (*Recorder, *audiotest.Backend, *audiotest.Unit) {
	t.Helper()

	b := audiotest.New()
	r, err := New(append(opts, WithUnitOptions(audiounit.WithBackend(b)))...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, b, b.Last()
}

// pattern is the value of the i-th captured sample.
func pattern(i int) float32 { return float32(i%200)/200 - 0.5 }

func feed(b *audiotest.Backend, sim *audiotest.Unit) {
	n := 0
	b.SetInput(sim, func(_ int, data []byte) {
		s := audiotest.Samples[float32](data)
		for i := range s {
			s[i] = pattern(n)
			n++
		}
	})
}

func uint32Property(t *testing.T, b *audiotest.Backend, sim *audiotest.Unit, id, scope, elem uint32) uint32 {
	t.Helper()

	v, ok := b.Property(sim, id, scope, elem)
	if !ok {
		t.Fatalf("property %d/%d/%d not set", id, scope, elem)
	}
	return audiotest.Samples[uint32](v)[0]
}

type result struct {
	frames int
	err    error
}

// record runs Record on a temporary file while the test drives cycles
// input cycles of frames frames, then cancels and returns the file.
func record(t *testing.T, r *Recorder, b *audiotest.Backend, sim *audiotest.Unit, cycles int, frames uint32) (*os.File, result) {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "rec.wav"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan result, 1)
	go func() {
		n, err := r.Record(ctx, f)
		done <- result{n, err}
	}()

	for c := range cycles {
		if st := b.InputCycle(sim, frames); st != 0 {
			t.Fatalf("input cycle %d status = %d", c, st)
		}
	}
	cancel()

	select {
	case res := <-done:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			t.Fatal(err)
		}
		return f, res
	case <-time.After(10 * time.Second):
		t.Fatal("Record did not return after cancel")
		return nil, result{}
	}
}

func decode(t *testing.T, f *os.File) (audio.Source, []float32) {
	t.Helper()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	buf := make([]float32, 256*src.Channels())
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return src, out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestNew_ConfiguresInput(t *testing.T) {
	t.Parallel()

	r, b, sim := newRecorder(t, WithDevice(77))

	if want := audiotest.Apple("auou", "ahal"); sim.Description() != want {
		t.Errorf("opened %+v, want the HAL output unit", sim.Description())
	}
	if got := uint32Property(t, b, sim, uint32(audiounit.PropertyEnableIO), 1, 1); got != 1 {
		t.Errorf("input EnableIO = %d, want 1", got)
	}
	if got := uint32Property(t, b, sim, uint32(audiounit.PropertyEnableIO), 2, 0); got != 0 {
		t.Errorf("output EnableIO = %d, want 0", got)
	}
	if got, _ := r.Unit().CurrentDevice(); got != 77 {
		t.Errorf("CurrentDevice() = %d, want 77", got)
	}

	want := format.New(44100, format.F32, 2, true)
	if r.Format() != want {
		t.Errorf("Format() = %s, want %s", r.Format(), want)
	}
	got, err := r.Unit().StreamFormatOf(audiounit.ScopeOutput, audiounit.ElementInput)
	if err != nil || got != want {
		t.Errorf("client format = %s, %v; want %s", got, err, want)
	}
	if !b.Installed(sim, true) {
		t.Error("input callback not installed")
	}
	if !b.Initialized(sim) {
		t.Error("unit not initialized")
	}
}

func TestRecorder_Record(t *testing.T) {
	t.Parallel()

	r, b, sim := newRecorder(t)
	feed(b, sim)

	f, res := record(t, r, b, sim, 5, 256)
	if res.err != nil {
		t.Fatalf("Record() error = %v", res.err)
	}
	if res.frames != 5*256 {
		t.Errorf("Record() = %d frames, want %d", res.frames, 5*256)
	}
	if b.Running(sim) {
		t.Error("unit still running after Record")
	}
	if r.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", r.Dropped())
	}

	src, got := decode(t, f)
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("wav layout = %dHz %dch, want 44100Hz 2ch", src.SampleRate(), src.Channels())
	}
	if len(got) != 5*256*2 {
		t.Fatalf("decoded %d samples, want %d", len(got), 5*256*2)
	}
	for i, v := range got {
		if math.Abs(float64(v-pattern(i))) > 1.0/16384 {
			t.Fatalf("sample %d = %v, want %v", i, v, pattern(i))
		}
	}

	if _, err := r.Record(context.Background(), f); !errors.Is(err, ErrAlreadyRecorded) {
		t.Errorf("second Record() error = %v, want ErrAlreadyRecorded", err)
	}
}

func TestRecorder_MonoResampled(t *testing.T) {
	t.Parallel()

	r, b, sim := newRecorder(t, WithMono(), WithRate(22050), WithBitDepth(24))
	feed(b, sim)

	f, res := record(t, r, b, sim, 4, 512)
	if res.err != nil {
		t.Fatalf("Record() error = %v", res.err)
	}

	src, got := decode(t, f)
	if src.SampleRate() != 22050 || src.Channels() != 1 {
		t.Fatalf("wav layout = %dHz %dch, want 22050Hz 1ch", src.SampleRate(), src.Channels())
	}
	if diff := len(got) - 1024; diff < -2 || diff > 2 {
		t.Errorf("decoded %d frames, want about 1024", len(got))
	}
	if res.frames != len(got) {
		t.Errorf("Record() = %d frames, file holds %d", res.frames, len(got))
	}
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	t.Parallel()

	// 0.01 s at 44.1 kHz holds 441 frames.
	r, b, sim := newRecorder(t, WithBuffer(0.01))
	feed(b, sim)

	for range 2 {
		if st := b.InputCycle(sim, 256); st != 0 {
			t.Fatalf("status = %d", st)
		}
	}
	if got, want := r.Dropped(), uint64((512-441)*2); got != want {
		t.Errorf("Dropped() = %d, want %d", got, want)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	b := audiotest.New()
	b.Fail("SetProperty", audiotest.StatusPropertyNotWritable)
	_, err := New(WithUnitOptions(audiounit.WithBackend(b)))
	if !errors.Is(err, &audiounit.StatusError{Code: int32(audiotest.StatusPropertyNotWritable)}) {
		t.Fatalf("New() error = %v, want not writable", err)
	}
	if !b.Disposed(b.Last()) {
		t.Error("unit leaked after a failed New")
	}
}

func TestRecorder_Close(t *testing.T) {
	t.Parallel()

	r, b, sim := newRecorder(t)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !b.Disposed(sim) {
		t.Error("unit not disposed")
	}
	if _, err := r.Source().ReadSamples(make([]float32, 2)); !errors.Is(err, audio.ErrCaptureClosed) {
		t.Errorf("ReadSamples() after Close error = %v, want ErrCaptureClosed", err)
	}
}
