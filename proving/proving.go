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

// GenerateProof builds the halving proof that output = start^(2^numSteps) mod N.
// The output must come from Evaluate with the same start and numSteps; a wrong
// output yields a proof that does not verify.
//
// Each round emits the midpoint of the current claim, folds both halves into a single
// claim of half the length and continues until one squaring is left. Computing all
// midpoints costs about numSteps squarings in total.
func GenerateProof(ctx context.Context, g *shared.Group, start, output *big.Int, numSteps uint64, opts ...OptionFunc) (*shared.Proof, error) {
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
	if err := g.Element(output); err != nil {
		return nil, fmt.Errorf("invalid output: %w", err)
	}
	logger := options.logger

	numRounds := shared.NumRounds(numSteps)
	logger.Info("generating proof", zap.Uint64("steps", numSteps), zap.Int("rounds", numRounds))
	began := time.Now()

	s := &squarer{group: g, logger: logger, logRate: options.logRate}
	proof := &shared.Proof{Midpoints: make([]*big.Int, 0, numRounds)}
	x, y, t := new(big.Int).Set(start), new(big.Int).Set(output), numSteps

	for round := 0; t > 1; round++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mu, err := s.square(ctx, x, t/2)
		if err != nil {
			return nil, err
		}
		proof.Midpoints = append(proof.Midpoints, mu)

		x, y, t = g.Fold(x, y, mu, t)
		logger.Debug("proof round completed", zap.Int("round", round), zap.Uint64("remaining", t))
	}

	logger.Info("proof generated",
		zap.Int("rounds", len(proof.Midpoints)),
		zap.Duration("duration", time.Since(began)),
	)
	return proof, nil
}
