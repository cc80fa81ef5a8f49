package proving

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/oracle"
	"github.com/spacemeshos/seqpow/shared"
)

// Result is a complete solution attempt: the proof, the public inputs a verifier
// needs and whether the output meets the difficulty target.
type Result struct {
	Proof           *shared.Proof
	Metadata        *shared.ProofMetadata
	MeetsDifficulty bool
}

// Prover runs the full pipeline for one VRF key: derive the start element from a
// seed, evaluate and prove.
type Prover struct {
	oracle *oracle.Oracle
	opts   []OptionFunc
	logger *zap.Logger
}

// NewProver returns a Prover bound to the given oracle. The options are forwarded to
// Evaluate and GenerateProof.
func NewProver(o *oracle.Oracle, opts ...OptionFunc) (*Prover, error) {
	if o == nil {
		return nil, errors.New("`oracle` is required")
	}
	options, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	return &Prover{
		oracle: o,
		opts:   opts,
		logger: options.logger,
	}, nil
}

// Generate solves one instance. A proof is produced even when the output misses the
// target; callers decide whether to keep it.
func (p *Prover) Generate(ctx context.Context, seed, target *big.Int, numSteps uint64) (*Result, error) {
	if seed == nil || seed.Sign() < 0 {
		return nil, errors.New("invalid `seed`; expected: non-negative integer")
	}
	if target == nil || target.Sign() < 0 {
		return nil, errors.New("invalid `target`; expected: non-negative integer")
	}

	g := p.oracle.Group()
	start := p.oracle.DeriveStart(seed)
	p.logger.Debug("derived start element", zap.String("seed", seed.Text(16)))

	solution, err := Evaluate(ctx, g, start, numSteps, p.oracle, target, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	proof, err := GenerateProof(ctx, g, start, solution.Output, numSteps, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}

	return &Result{
		Proof: proof,
		Metadata: &shared.ProofMetadata{
			Modulus:   g.Modulus(),
			PublicKey: p.oracle.PublicKey(),
			Seed:      new(big.Int).Set(seed),
			Target:    new(big.Int).Set(target),
			Start:     start,
			Output:    solution.Output,
			NumSteps:  numSteps,
		},
		MeetsDifficulty: solution.MeetsDifficulty,
	}, nil
}
