package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/seqpow/config"
)

var (
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()

	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "seqpow",
	Short: "Sequential-squaring proof of work with succinct proofs",
	Long: `seqpow evaluates a verifiable delay function over an RSA group,
proves the result with a halving proof and checks solutions against a
difficulty target bound to a VRF public key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := loadConfig(cmd.Flags(), configFile)
		if err != nil {
			return err
		}
		if err := config.Validate(loaded); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		logger, err = newLogger(logLevel)
		return err
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a configuration file (toml, yaml or json)")
	flags.StringVar(&logLevel, "logLevel", zapcore.InfoLevel.String(), "log level (debug, info, warn, error, dpanic, panic, fatal)")

	flags.String("datadir", cfg.DataDir, "filesystem datadir path")
	flags.String("modulus", cfg.Modulus, "RSA modulus, decimal or 0x-prefixed hex")
	flags.Uint64("steps", cfg.NumSteps, "number of sequential squarings")
	flags.String("target", cfg.TargetHash, "difficulty target, as a hex digest")
	flags.Uint64("lograte", cfg.LogRate, "squarings between progress log lines (0 disables them)")
	flags.Uint("workers", cfg.Workers, "proofs verified in parallel (0 means one per CPU)")
	flags.Bool("allow-small-modulus", cfg.AllowSmallModulus, "accept moduli below the minimum size; for tests only")

	rootCmd.AddCommand(keygenCmd, solveCmd, verifyCmd, benchCmd, configCmd)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	return logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println("cli:", err)
		os.Exit(1)
	}
}
