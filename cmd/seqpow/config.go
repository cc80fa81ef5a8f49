package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spacemeshos/seqpow/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(*cobra.Command, []string) {
		spew.Dump(cfg)
	},
}

// loadConfig merges, in increasing priority, the defaults, the optional config file
// and the flags changed on the command line. Flag names match the mapstructure keys
// of config.Config.
func loadConfig(flags *pflag.FlagSet, file string) (config.Config, error) {
	vip := viper.New()

	if file != "" {
		vip.SetConfigFile(smutil.GetCanonicalPath(file))
		if err := vip.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := vip.BindPFlags(flags); err != nil {
		return config.Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg := config.DefaultConfig()
	if err := vip.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.DataDir = smutil.GetCanonicalPath(cfg.DataDir)
	return cfg, nil
}
