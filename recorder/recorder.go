// SPDX-License-Identifier: EPL-2.0

package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ik5/audiounit"
	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/format"
	"github.com/ik5/audiounit/formats/wav"
)

// Recorder captures the input element of a HAL output unit. The input
// callback copies each cycle into an audio.Capture; Record drains it to a
// WAV file on the calling goroutine.
type Recorder struct {
	unit    *audiounit.AudioUnit
	capture *audio.Capture
	format  format.StreamFormat
	opts    options
	log     *zap.Logger

	recorded atomic.Bool
}

// New opens a HAL output unit with input enabled and output disabled,
// and installs the input callback.
func New(opts ...Option) (*Recorder, error) {
	o := newOptions(opts)

	u, err := audiounit.New(audiounit.IOHALOutput, o.unitOptions()...)
	if err != nil {
		return nil, fmt.Errorf("opening input unit: %w", err)
	}

	r := &Recorder{
		unit: u,
		opts: o,
		log:  o.logger.With(zap.Stringer("unit", u.ID())),
	}
	if err := r.configure(); err != nil {
		u.Dispose()
		return nil, err
	}

	r.log.Debug("recorder ready",
		zap.Stringer("format", r.format), zap.Int("buffered_frames", o.bufferFrames(r.format)))
	return r, nil
}

func (r *Recorder) configure() error {
	u := r.unit
	if err := u.Uninitialize(); err != nil {
		return err
	}
	if err := u.EnableIO(audiounit.ScopeInput, audiounit.ElementInput, true); err != nil {
		return fmt.Errorf("enabling input: %w", err)
	}
	if err := u.EnableIO(audiounit.ScopeOutput, audiounit.ElementOutput, false); err != nil {
		return fmt.Errorf("disabling output: %w", err)
	}
	if r.opts.device != 0 {
		if err := u.SetCurrentDevice(r.opts.device); err != nil {
			return fmt.Errorf("selecting device %d: %w", r.opts.device, err)
		}
	}

	hw, err := u.StreamFormatOf(audiounit.ScopeInput, audiounit.ElementInput)
	if err != nil {
		return fmt.Errorf("reading device format: %w", err)
	}
	channels := hw.Channels
	if r.opts.channels > 0 {
		channels = uint32(r.opts.channels)
	}

	r.format = format.New(hw.SampleRate, format.F32, channels, true)
	if err := u.SetStreamFormatOf(r.format, audiounit.ScopeOutput, audiounit.ElementInput); err != nil {
		return fmt.Errorf("setting capture format %s: %w", r.format, err)
	}

	r.capture = audio.NewCapture(int(r.format.SampleRate), int(channels), r.opts.bufferFrames(r.format))
	if err := audiounit.SetInputCallback[float32](u, r.input); err != nil {
		return fmt.Errorf("installing input callback: %w", err)
	}
	return u.Initialize()
}

// input runs on the audio thread.
func (r *Recorder) input(args *audiounit.RenderArgs[float32]) error {
	if len(args.Data) > 0 {
		r.capture.Write(args.Data[0])
	}
	return nil
}

// Format is the format the input callback receives.
func (r *Recorder) Format() format.StreamFormat { return r.format }

// Unit exposes the underlying HAL unit for property access.
func (r *Recorder) Unit() *audiounit.AudioUnit { return r.unit }

// Source returns the captured stream for consumers other than Record.
func (r *Recorder) Source() audio.Source { return r.capture }

// Dropped is the number of samples lost because the consumer fell behind.
func (r *Recorder) Dropped() uint64 { return r.capture.Dropped() }

// Record starts the unit and writes what it captures to w as WAV until ctx
// is done. It returns the frames written. A recorder records once.
func (r *Recorder) Record(ctx context.Context, w io.WriteSeeker) (int, error) {
	if !r.recorded.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRecorded
	}

	var src audio.Source = r.capture
	if r.opts.mono && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}
	if r.opts.rate > 0 && r.opts.rate != src.SampleRate() {
		src = audio.NewResampler(src, r.opts.rate)
	}

	if err := r.unit.Start(); err != nil {
		return 0, fmt.Errorf("starting capture: %w", err)
	}
	r.log.Debug("recording started",
		zap.Int("rate", src.SampleRate()), zap.Int("channels", src.Channels()), zap.Int("bits", r.opts.bits))

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		r.capture.CloseWrite()
	}()

	frames, err := wav.Encode(w, src, r.opts.bits)
	if serr := r.unit.Stop(); serr != nil && err == nil {
		err = fmt.Errorf("stopping capture: %w", serr)
	}
	if err != nil {
		return frames, fmt.Errorf("recording: %w", err)
	}

	r.log.Info("recording finished",
		zap.Int("frames", frames), zap.Uint64("dropped_samples", r.capture.Dropped()))
	return frames, nil
}

// Close tears down the unit and wakes anything reading Source.
func (r *Recorder) Close() error {
	return errors.Join(r.unit.Close(), r.capture.Close())
}
