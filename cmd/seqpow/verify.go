package main

import (
	"fmt"
	"math/big"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/oracle"
	"github.com/spacemeshos/seqpow/shared"
	"github.com/spacemeshos/seqpow/verifying"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <proof file>...",
	Short: "Verify stored proofs against the configured parameters",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := cfg.Group()
		if err != nil {
			return err
		}
		target, err := cfg.Target(g)
		if err != nil {
			return err
		}

		instances := make([]verifying.Instance, len(args))
		for i, filename := range args {
			in, err := loadInstance(filename, g, target)
			if err != nil {
				return err
			}
			instances[i] = *in
		}

		workers := int(cfg.Workers)
		if workers == 0 {
			workers = runtime.NumCPU()
		}
		results := verifying.VerifyBatch(cmd.Context(), instances,
			verifying.WithWorkers(workers),
			verifying.WithLogger(logger),
		)

		failed := 0
		for i, err := range results {
			if err != nil {
				failed++
				logger.Error("cli: proof rejected", zap.String("file", args[i]), zap.Error(err))
				continue
			}
			logger.Info("cli: proof is valid", zap.String("file", args[i]))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d proofs rejected", failed, len(args))
		}
		return nil
	},
}

// loadInstance reads a proof bundle and checks that it was produced for the configured
// parameters. The start element is recomputed from the seed rather than trusted.
func loadInstance(filename string, g *shared.Group, target *big.Int) (*verifying.Instance, error) {
	proof, m, err := shared.FetchProof(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if m.Modulus.Cmp(g.Modulus()) != 0 {
		return nil, shared.ConfigMismatchError{
			Param:    "Modulus",
			Expected: g.Modulus().Text(16),
			Found:    m.Modulus.Text(16),
			Path:     filename,
		}
	}
	if m.NumSteps != cfg.NumSteps {
		return nil, shared.ConfigMismatchError{
			Param:    "NumSteps",
			Expected: fmt.Sprint(cfg.NumSteps),
			Found:    fmt.Sprint(m.NumSteps),
			Path:     filename,
		}
	}
	if m.Target.Cmp(target) != 0 {
		return nil, shared.ConfigMismatchError{
			Param:    "Target",
			Expected: target.Text(16),
			Found:    m.Target.Text(16),
			Path:     filename,
		}
	}

	o, err := oracle.New(oracle.WithGroup(g), oracle.WithPublicKey(m.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if o.DeriveStart(m.Seed).Cmp(m.Start) != 0 {
		return nil, fmt.Errorf("%s: start element does not match seed and public key", filename)
	}

	return &verifying.Instance{
		Group:    g,
		Start:    m.Start,
		Output:   m.Output,
		NumSteps: m.NumSteps,
		Proof:    proof,
		Binding:  o,
		Target:   target,
	}, nil
}
