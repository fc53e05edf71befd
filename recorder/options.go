// SPDX-License-Identifier: EPL-2.0

package recorder

import (
	"go.uber.org/zap"

	"github.com/ik5/audiounit"
	"github.com/ik5/audiounit/format"
)

type Option func(*options)

type options struct {
	logger   *zap.Logger
	device   uint32
	channels int
	mono     bool
	rate     int
	bits     int
	buffer   float64
	unitOps  []audiounit.Option
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), bits: 16, buffer: 4}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) unitOptions() []audiounit.Option {
	return append([]audiounit.Option{audiounit.WithLogger(o.logger)}, o.unitOps...)
}

func (o options) bufferFrames(f format.StreamFormat) int {
	return max(int(o.buffer*f.SampleRate), 1)
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDevice records from an AudioDeviceID instead of the default input.
func WithDevice(id uint32) Option {
	return func(o *options) { o.device = id }
}

// WithChannels captures the first n device channels.
func WithChannels(n int) Option {
	return func(o *options) { o.channels = n }
}

// WithMono averages the captured channels into one before writing.
func WithMono() Option {
	return func(o *options) { o.mono = true }
}

// WithRate resamples to hz before writing.
func WithRate(hz int) Option {
	return func(o *options) { o.rate = hz }
}

// WithBitDepth sets the WAV sample size: 16, 24 or 32.
func WithBitDepth(bits int) Option {
	return func(o *options) { o.bits = bits }
}

// WithBuffer sizes the capture ring in seconds of audio.
func WithBuffer(seconds float64) Option {
	return func(o *options) { o.buffer = seconds }
}

// WithUnitOptions passes opts through to audiounit.New.
func WithUnitOptions(opts ...audiounit.Option) Option {
	return func(o *options) { o.unitOps = append(o.unitOps, opts...) }
}
