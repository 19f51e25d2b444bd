package tz

import "go.uber.org/zap"

const defaultCapacity = 4096

type options struct {
	capacity int
	logger   *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{capacity: defaultCapacity, logger: zap.NewNop()}
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

// Option configures a Cache or a table loaded by LoadTableFile.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithCapacity bounds the number of resolutions a Cache retains. Values
// below one are ignored.
func WithCapacity(n int) Option {
	return optionFunc(func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	})
}

// WithLogger sets the logger used for loads, misses and evictions.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}
