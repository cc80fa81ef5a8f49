package proving

import (
	"errors"

	"go.uber.org/zap"
)

type option struct {
	logger *zap.Logger
	// How many squarings between two progress log lines.
	// 0 - no progress logging
	logRate uint64
}

func (o *option) validate() error {
	if o.logger == nil {
		return errors.New("`logger` is required")
	}
	return nil
}

func applyOpts(opts ...OptionFunc) (*option, error) {
	options := &option{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

type OptionFunc func(*option) error

// WithLogger sets the logger used to report progress.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithLogRate logs progress every rate squarings.
func WithLogRate(rate uint64) OptionFunc {
	return func(o *option) error {
		o.logRate = rate
		return nil
	}
}
