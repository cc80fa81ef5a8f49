package verifying

import (
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/shared"
)

var (
	ErrDifficultyNotMet = errors.New("output does not meet the difficulty target")
	ErrProofLength      = errors.New("unexpected proof length")
	ErrInvalidProof     = errors.New("invalid proof")
)

// Verify checks a claimed output of the delay function. Two independent checks must
// pass: the difficulty hash of the output has to meet the target, and the proof has
// to establish output = start^(2^numSteps) mod N. A proof alone never makes an
// output acceptable.
//
// Malformed input yields an error, never a panic.
func Verify(g *shared.Group, start, output *big.Int, numSteps uint64, proof *shared.Proof, binding shared.KeyBinding, target *big.Int, opts ...OptionFunc) error {
	options := applyOpts(opts...)

	if binding == nil {
		return errors.New("`binding` is required")
	}
	if target == nil {
		return errors.New("`target` is required")
	}
	if err := checkInputs(g, start, output, proof); err != nil {
		return err
	}

	if !shared.MeetsTarget(binding.DifficultyHash(output), target) {
		options.logger.Debug("difficulty check failed", zap.Uint64("steps", numSteps))
		return ErrDifficultyNotMet
	}

	if err := verifyProof(g, start, output, numSteps, proof); err != nil {
		options.logger.Debug("proof check failed", zap.Uint64("steps", numSteps), zap.Error(err))
		return err
	}
	return nil
}

// VerifyProof checks only the proof, without the difficulty gate.
func VerifyProof(g *shared.Group, start, output *big.Int, numSteps uint64, proof *shared.Proof) bool {
	if err := checkInputs(g, start, output, proof); err != nil {
		return false
	}
	return verifyProof(g, start, output, numSteps, proof) == nil
}

func checkInputs(g *shared.Group, start, output *big.Int, proof *shared.Proof) error {
	if g == nil {
		return errors.New("`group` is required")
	}
	if proof == nil {
		return fmt.Errorf("%w: nil proof", ErrInvalidProof)
	}
	if err := g.Element(start); err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	if err := g.Element(output); err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}
	return nil
}

// verifyProof replays the prover's transcript. The proof length is checked before any
// midpoint is read.
func verifyProof(g *shared.Group, start, output *big.Int, numSteps uint64, proof *shared.Proof) error {
	expected := shared.NumRounds(numSteps)
	if len(proof.Midpoints) != expected {
		return fmt.Errorf("%w; expected: %d, given: %d", ErrProofLength, expected, len(proof.Midpoints))
	}
	for i, mu := range proof.Midpoints {
		if err := g.Element(mu); err != nil {
			return fmt.Errorf("%w: midpoint %d: %v", ErrInvalidProof, i, err)
		}
	}

	x, y, t := start, output, numSteps
	for _, mu := range proof.Midpoints {
		x, y, t = g.Fold(x, y, mu, t)
	}

	if !g.Terminal(x, y, t) {
		return ErrInvalidProof
	}
	return nil
}
