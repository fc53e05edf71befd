// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ik5/audiounit"
	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/format"
)

// Player pulls an audio.Source from an output unit's render callback.
// Once the source ends, the unit renders silence and Done is closed.
type Player struct {
	unit   *audiounit.AudioUnit
	src    audio.Source
	format format.StreamFormat
	log    *zap.Logger

	frames atomic.Uint64
	err    atomic.Pointer[error]
	ended  bool

	done     chan struct{}
	doneOnce sync.Once
}

// New opens an output unit and prepares it to play src. The source is
// read as interleaved float32 at its own rate; the unit converts to the
// device format.
func New(src audio.Source, opts ...Option) (*Player, error) {
	o := newOptions(opts)

	if src.Channels() <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %dHz", ErrInvalidSource, src.Channels(), src.SampleRate())
	}
	if o.volume != 1 {
		src = audio.NewGain(src, o.volume)
	}

	u, err := audiounit.New(o.typ, o.unitOptions()...)
	if err != nil {
		return nil, fmt.Errorf("opening output unit: %w", err)
	}

	p := &Player{
		unit:   u,
		src:    src,
		format: format.New(float64(src.SampleRate()), format.F32, uint32(src.Channels()), true),
		log:    o.logger.With(zap.Stringer("unit", u.ID())),
		done:   make(chan struct{}),
	}
	if err := p.configure(); err != nil {
		u.Dispose()
		return nil, err
	}

	p.log.Debug("player ready", zap.Stringer("format", p.format))
	return p, nil
}

func (p *Player) configure() error {
	if err := p.unit.Uninitialize(); err != nil {
		return err
	}
	if err := p.unit.SetStreamFormat(p.format, audiounit.ScopeInput); err != nil {
		return fmt.Errorf("setting stream format %s: %w", p.format, err)
	}
	if err := audiounit.SetRenderCallback[float32](p.unit, p.render); err != nil {
		return fmt.Errorf("installing render callback: %w", err)
	}
	return p.unit.Initialize()
}

// render runs on the audio thread.
func (p *Player) render(args *audiounit.RenderArgs[float32]) error {
	if len(args.Data) == 0 {
		return nil
	}
	out := args.Data[0]
	n := 0

	for !p.ended && n < len(out) {
		m, err := p.src.ReadSamples(out[n:])
		n += m
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.err.CompareAndSwap(nil, &err)
			}
			p.ended = true
			p.doneOnce.Do(func() { close(p.done) })
			break
		}
		if m == 0 {
			// Underrun; try again next cycle.
			break
		}
	}

	clear(out[n:])
	p.frames.Add(uint64(n / int(p.format.Channels)))
	if n == 0 && args.Flags != nil {
		*args.Flags |= audiounit.ActionOutputIsSilence
	}
	return nil
}

// Format is the stream format the render callback produces.
func (p *Player) Format() format.StreamFormat { return p.format }

// Unit exposes the underlying output unit for property access.
func (p *Player) Unit() *audiounit.AudioUnit { return p.unit }

func (p *Player) Start() error {
	if err := p.unit.Start(); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	p.log.Debug("playback started")
	return nil
}

func (p *Player) Stop() error {
	if err := p.unit.Stop(); err != nil {
		return fmt.Errorf("stopping playback: %w", err)
	}
	p.log.Debug("playback stopped", zap.Uint64("frames", p.frames.Load()))
	return nil
}

// Done is closed once the source is exhausted or fails.
func (p *Player) Done() <-chan struct{} { return p.done }

// Frames is the number of source frames rendered so far.
func (p *Player) Frames() uint64 { return p.frames.Load() }

// Err returns the error that ended the source early, if any.
func (p *Player) Err() error {
	if err := p.err.Load(); err != nil {
		return *err
	}
	return nil
}

// Wait blocks until the source ends or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		if err := p.Err(); err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
		p.log.Debug("playback finished", zap.Uint64("frames", p.frames.Load()))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears down the unit and closes the source.
func (p *Player) Close() error {
	return errors.Join(p.unit.Close(), p.src.Close())
}
