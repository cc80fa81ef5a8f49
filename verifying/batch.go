package verifying

import (
	"context"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/seqpow/shared"
)

// Instance is one claimed solution submitted for verification.
type Instance struct {
	Group    *shared.Group
	Start    *big.Int
	Output   *big.Int
	NumSteps uint64
	Proof    *shared.Proof
	Binding  shared.KeyBinding
	Target   *big.Int
}

// VerifyBatch verifies instances concurrently and returns one result per instance,
// in input order. A nil entry means the instance is valid. Instances not started
// before ctx is cancelled report the context error.
func VerifyBatch(ctx context.Context, instances []Instance, opts ...OptionFunc) []error {
	options := applyOpts(opts...)
	results := make([]error, len(instances))

	var eg errgroup.Group
	eg.SetLimit(options.workers)
	for i := range instances {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = err
				return nil
			}
			in := instances[i]
			results[i] = Verify(in.Group, in.Start, in.Output, in.NumSteps, in.Proof, in.Binding, in.Target, WithLogger(options.logger))
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, err := range results {
		if err != nil {
			failed++
		}
	}
	options.logger.Info("batch verified", zap.Int("instances", len(instances)), zap.Int("failed", failed))
	return results
}
