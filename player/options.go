// SPDX-License-Identifier: EPL-2.0

package player

import (
	"go.uber.org/zap"

	"github.com/ik5/audiounit"
)

type Option func(*options)

type options struct {
	typ     audiounit.Typer
	logger  *zap.Logger
	volume  float32
	unitOps []audiounit.Option
}

func newOptions(opts []Option) options {
	o := options{
		typ:    audiounit.IODefaultOutput,
		logger: zap.NewNop(),
		volume: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) unitOptions() []audiounit.Option {
	return append([]audiounit.Option{audiounit.WithLogger(o.logger)}, o.unitOps...)
}

// WithLogger logs player and unit lifecycle events to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOutput plays through an output unit other than the default output,
// such as audiounit.IOSystemOutput.
func WithOutput(t audiounit.Typer) Option {
	return func(o *options) { o.typ = t }
}

// WithVolume scales every sample by v.
func WithVolume(v float32) Option {
	return func(o *options) { o.volume = v }
}

// WithUnitOptions passes opts through to audiounit.New.
func WithUnitOptions(opts ...audiounit.Option) Option {
	return func(o *options) { o.unitOps = append(o.unitOps, opts...) }
}
