// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"go.uber.org/zap"

	"github.com/ik5/audiounit/internal/native"
)

// Option configures New and NewWithFlags.
type Option func(*options)

type options struct {
	backend native.Backend
	logger  *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = native.Default()
	}
	return o
}

// WithLogger sets the logger for lifecycle and callback registration
// events. Nothing is logged from the audio thread.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBackend replaces AudioToolbox with another implementation of the
// native calls, such as the simulator in internal/audiotest.
func WithBackend(b native.Backend) Option {
	return func(o *options) { o.backend = b }
}
