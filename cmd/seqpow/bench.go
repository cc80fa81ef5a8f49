package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"runtime"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/config"
	"github.com/spacemeshos/seqpow/oracle"
	"github.com/spacemeshos/seqpow/proving"
	"github.com/spacemeshos/seqpow/shared"
	"github.com/spacemeshos/seqpow/verifying"
	"github.com/spacemeshos/seqpow/vrf"
)

var (
	benchMinSteps uint64
	benchMaxSteps uint64
)

// benchKeySeed fixes the public key so that runs are comparable.
var benchKeySeed = make([]byte, 32)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure evaluation, proving and verification time for growing step counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if benchMinSteps == 0 || benchMinSteps > benchMaxSteps {
			return fmt.Errorf("invalid step range; expected: 0 < min <= max, given: [%d, %d]", benchMinSteps, benchMaxSteps)
		}

		g, err := cfg.Group()
		if err != nil {
			return err
		}
		seed, err := shared.ReduceHash(config.DefaultSeedHash, g)
		if err != nil {
			return err
		}
		target, err := cfg.Target(g)
		if err != nil {
			return err
		}
		key, err := vrf.NewKeyFromSeed(benchKeySeed)
		if err != nil {
			return err
		}
		o, err := oracle.New(oracle.WithGroup(g), oracle.WithPublicKey(key.Public()))
		if err != nil {
			return err
		}

		logger.Info("bench config",
			zap.Int("modulusBits", g.Modulus().BitLen()),
			zap.String("seed", seed.Text(16)),
			zap.String("target", target.Text(16)),
		)

		data := make([][]string, 0)
		for steps := benchMinSteps; steps <= benchMaxSteps; steps *= 2 {
			row, err := benchSteps(cmd.Context(), g, o, seed, target, steps)
			if err != nil {
				return err
			}
			data = append(data, row)
		}

		header := []string{"steps", "rounds", "proof size", "meets target", "evaluate", "prove", "verify"}
		report(g, header, data)
		return nil
	},
}

func init() {
	benchCmd.Flags().Uint64Var(&benchMinSteps, "min-steps", 1<<10, "smallest step count")
	benchCmd.Flags().Uint64Var(&benchMaxSteps, "max-steps", 1<<18, "largest step count")
}

func benchSteps(ctx context.Context, g *shared.Group, o *oracle.Oracle, seed, target *big.Int, steps uint64) ([]string, error) {
	start := o.DeriveStart(seed)

	t := time.Now()
	sol, err := proving.Evaluate(ctx, g, start, steps, o, target)
	if err != nil {
		return nil, err
	}
	eEval := time.Since(t)

	t = time.Now()
	proof, err := proving.GenerateProof(ctx, g, start, sol.Output, steps)
	if err != nil {
		return nil, err
	}
	eProve := time.Since(t)

	t = time.Now()
	if !verifying.VerifyProof(g, start, sol.Output, steps, proof) {
		return nil, fmt.Errorf("proof for %d steps rejected", steps)
	}
	eVerify := time.Since(t)

	encoded, err := shared.Encode(proof, &shared.ProofMetadata{
		Modulus:   g.Modulus(),
		PublicKey: o.PublicKey(),
		Seed:      seed,
		Target:    target,
		Start:     start,
		Output:    sol.Output,
		NumSteps:  steps,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("bench step completed", zap.Uint64("steps", steps), zap.Duration("evaluate", eEval))

	return []string{
		strconv.FormatUint(steps, 10),
		strconv.Itoa(len(proof.Midpoints)),
		bytefmt.ByteSize(uint64(len(encoded))),
		strconv.FormatBool(sol.MeetsDifficulty),
		eEval.Round(time.Millisecond).String(),
		eProve.Round(time.Millisecond).String(),
		eVerify.Round(time.Microsecond).String(),
	}, nil
}

func report(g *shared.Group, header []string, data [][]string) {
	model := "unknown"
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		model = info[0].ModelName
	}
	fmt.Printf("\n\nBENCHMARKS: modulus=%d bits, cpu=%v (%d cores)\n", g.Modulus().BitLen(), model, runtime.NumCPU())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}
