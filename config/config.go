package config

import (
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/spacemeshos/smutil"

	"github.com/spacemeshos/seqpow/shared"
)

// RSA2048Modulus is the RSA-2048 challenge number, whose factorization is unknown.
const RSA2048Modulus = "251959084756578934940271832400483985714292821262040320277771378360436620207075955562640185258807" +
	"844069182906412495150821892985591491761845028084891200728449926873928072877767359714183472702618" +
	"963750149718246911650776133798590957000973304597488084284017974291006424586918171951187461215151" +
	"726546322822168699875491824224336372590851418654620435767984233871847744479207399342365848238242" +
	"811981638150106748104516603773060562016196762561338441436038339044149526344321901146575444541784" +
	"240209246165157233507787077498171257724679629263863563732899121548314381678998850404453640235273" +
	"81951378636564391212010397122822120720357"

const (
	DefaultDataDirName = "data"

	// DefaultSeedHash and DefaultTargetHash are 256-bit digests standing in for a
	// previous block hash and a difficulty target.
	DefaultSeedHash   = "1eeb30c7163271850b6d018e8282093ac6755a771da6267edf6c9b4fce9242ba"
	DefaultTargetHash = "07fb30c7163271850b6d018e8282093ac6755a771da6267edf6c9b4fce9242ba"

	DefaultNumSteps = 1 << 16
	DefaultLogRate  = 1 << 14

	MinModulusBits = 1024
	MaxNumSteps    = 1 << 40
)

var DefaultDataDir = filepath.Join(smutil.GetUserHomeDirectory(), "seqpow", DefaultDataDirName)

type Config struct {
	DataDir string `mapstructure:"datadir"`

	// Protocol params.
	Modulus    string `mapstructure:"modulus"`
	NumSteps   uint64 `mapstructure:"steps"`
	TargetHash string `mapstructure:"target"`

	// LogRate is the number of squarings between progress log lines. 0 disables them.
	LogRate uint64 `mapstructure:"lograte"`
	// Workers bounds the number of proofs verified in parallel. 0 means one per CPU.
	Workers uint `mapstructure:"workers"`

	// AllowSmallModulus disables the minimum modulus size check. Test networks only.
	AllowSmallModulus bool `mapstructure:"allow-small-modulus"`
}

func DefaultConfig() Config {
	return Config{
		DataDir:    DefaultDataDir,
		Modulus:    RSA2048Modulus,
		NumSteps:   DefaultNumSteps,
		TargetHash: DefaultTargetHash,
		LogRate:    DefaultLogRate,
	}
}

// MainnetConfig returns the parameters of a network where one evaluation is meant to
// take minutes on commodity hardware.
func MainnetConfig() Config {
	cfg := DefaultConfig()
	cfg.NumSteps = 1 << 26
	cfg.LogRate = 1 << 20
	return cfg
}

// ParseModulus parses a modulus given in decimal, or in hex with a 0x prefix.
func ParseModulus(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %q", shared.ErrInvalidModulus, s)
	}
	return n, nil
}

// Group returns the group defined by the configured modulus.
func (cfg Config) Group() (*shared.Group, error) {
	n, err := ParseModulus(cfg.Modulus)
	if err != nil {
		return nil, err
	}
	return shared.NewGroup(n)
}

// Target returns the configured difficulty target reduced into the group.
func (cfg Config) Target(g *shared.Group) (*big.Int, error) {
	return shared.ReduceHash(cfg.TargetHash, g)
}

func Validate(cfg Config) error {
	if cfg.DataDir == "" {
		return errors.New("invalid `DataDir`; expected: non-empty")
	}

	g, err := cfg.Group()
	if err != nil {
		return fmt.Errorf("invalid `Modulus`: %w", err)
	}

	if bits := g.Modulus().BitLen(); !cfg.AllowSmallModulus && bits < MinModulusBits {
		return fmt.Errorf("invalid `Modulus`; expected: >= %d bits, given: %d", MinModulusBits, bits)
	}

	if cfg.NumSteps == 0 {
		return errors.New("invalid `NumSteps`; expected: > 0, given: 0")
	}

	if cfg.NumSteps > MaxNumSteps {
		return fmt.Errorf("invalid `NumSteps`; expected: <= %d, given: %d", uint64(MaxNumSteps), cfg.NumSteps)
	}

	if _, err := cfg.Target(g); err != nil {
		return fmt.Errorf("invalid `TargetHash`: %w", err)
	}

	return nil
}
