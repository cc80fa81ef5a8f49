package proving

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/shared"
)

// Solution is the result of evaluating the delay function.
type Solution struct {
	// Output is start^(2^numSteps) mod N.
	Output *big.Int
	// MeetsDifficulty reports whether the difficulty hash of Output does not exceed the target.
	MeetsDifficulty bool
}

// Evaluate performs numSteps sequential squarings starting at start and checks the
// output against the difficulty target. numSteps = 0 yields the start element.
func Evaluate(ctx context.Context, g *shared.Group, start *big.Int, numSteps uint64, binding shared.KeyBinding, target *big.Int, opts ...OptionFunc) (*Solution, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errors.New("`group` is required")
	}
	if err := g.Element(start); err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	if binding == nil {
		return nil, errors.New("`binding` is required")
	}
	if target == nil {
		return nil, errors.New("`target` is required")
	}
	logger := options.logger

	logger.Info("evaluating delay function", zap.Uint64("steps", numSteps), zap.Int("modulusBits", g.Modulus().BitLen()))
	began := time.Now()

	s := &squarer{group: g, logger: logger, logRate: options.logRate}
	y, err := s.square(ctx, start, numSteps)
	if err != nil {
		return nil, err
	}

	meets := shared.MeetsTarget(binding.DifficultyHash(y), target)
	logger.Info("evaluation completed",
		zap.Uint64("steps", numSteps),
		zap.Duration("duration", time.Since(began)),
		zap.Bool("meetsDifficulty", meets),
	)

	return &Solution{Output: y, MeetsDifficulty: meets}, nil
}
