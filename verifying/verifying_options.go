package verifying

import (
	"runtime"

	"go.uber.org/zap"
)

type option struct {
	logger *zap.Logger
	// maximum number of instances verified concurrently by VerifyBatch
	workers int
}

func applyOpts(options ...OptionFunc) *option {
	opts := &option{
		logger:  zap.NewNop(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}

type OptionFunc func(*option)

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers bounds the concurrency of VerifyBatch. Values below 1 are ignored.
func WithWorkers(n int) OptionFunc {
	return func(o *option) {
		if n > 0 {
			o.workers = n
		}
	}
}
