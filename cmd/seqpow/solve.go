package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/config"
	"github.com/spacemeshos/seqpow/oracle"
	"github.com/spacemeshos/seqpow/proving"
	"github.com/spacemeshos/seqpow/shared"
	"github.com/spacemeshos/seqpow/vrf"
)

var (
	seedHash string
	keyFile  string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Evaluate the delay function for a seed, prove it and store the proof",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if keyFile == "" {
			keyFile = filepath.Join(cfg.DataDir, vrf.KeyFileName)
		}
		key, err := vrf.LoadKey(keyFile)
		if err != nil {
			return err
		}

		g, err := cfg.Group()
		if err != nil {
			return err
		}
		seed, err := shared.ReduceHash(seedHash, g)
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
		target, err := cfg.Target(g)
		if err != nil {
			return err
		}

		o, err := oracle.New(oracle.WithGroup(g), oracle.WithPublicKey(key.Public()))
		if err != nil {
			return err
		}
		prover, err := proving.NewProver(o, proving.WithLogger(logger), proving.WithLogRate(cfg.LogRate))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		res, err := prover.Generate(ctx, seed, target, cfg.NumSteps)
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("cli: solving interrupted")
			return nil
		case err != nil:
			return err
		}

		if !res.MeetsDifficulty {
			logger.Warn("cli: output does not meet the difficulty target; proof not stored",
				zap.String("output", res.Metadata.Output.Text(16)),
			)
			return errors.New("difficulty target not met")
		}

		filename, err := shared.PersistProof(cfg.DataDir, res.Proof, res.Metadata)
		if err != nil {
			return err
		}
		logger.Info("cli: proof stored", zap.String("file", filename), zap.Int("rounds", len(res.Proof.Midpoints)))
		fmt.Println(filename)
		return nil
	},
}

func init() {
	solveCmd.Flags().StringVar(&seedHash, "seed", config.DefaultSeedHash, "seed, as a hex digest (e.g. the previous block hash)")
	solveCmd.Flags().StringVar(&keyFile, "key", "", "path to the key file (default: <datadir>/key.bin)")
}
