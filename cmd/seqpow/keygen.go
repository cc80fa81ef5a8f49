package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/vrf"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the VRF key pair and store it in the datadir",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		key, err := vrf.GenerateKey(nil)
		if err != nil {
			return err
		}

		filename, err := vrf.SaveKey(cfg.DataDir, key)
		switch {
		case errors.Is(err, vrf.ErrKeyFileExists):
			return fmt.Errorf("%w; if you're trying to create a new identity delete %s and try again", err, vrf.KeyFileName)
		case err != nil:
			return err
		}

		logger.Info("cli: key generated", zap.String("file", filename), zap.Stringer("publicKey", key.Public()))
		fmt.Println(key.Public())
		return nil
	},
}
