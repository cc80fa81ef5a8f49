// Package oracle derives the delay function's public inputs from a VRF public key:
// the start element of the squaring chain and the difficulty hash of its output.
package oracle

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spacemeshos/seqpow/shared"
)

var _ shared.KeyBinding = (*Oracle)(nil)

type option struct {
	group     *shared.Group
	publicKey []byte
}

func (o *option) validate() error {
	if o.group == nil {
		return errors.New("`group` is required")
	}

	if len(o.publicKey) == 0 {
		return errors.New("`publicKey` is required")
	}

	return nil
}

// OptionFunc is a function that sets an option for an Oracle instance.
type OptionFunc func(*option) error

// WithGroup sets the group the oracle maps into.
func WithGroup(g *shared.Group) OptionFunc {
	return func(opts *option) error {
		opts.group = g
		return nil
	}
}

// WithModulus sets the group by its modulus.
func WithModulus(n *big.Int) OptionFunc {
	return func(opts *option) error {
		g, err := shared.NewGroup(n)
		if err != nil {
			return err
		}
		opts.group = g
		return nil
	}
}

// WithPublicKey sets the VRF public key that inputs and outputs are bound to.
func WithPublicKey(pk []byte) OptionFunc {
	return func(opts *option) error {
		if len(pk) == 0 {
			return errors.New("invalid `publicKey`; expected: non-empty")
		}
		opts.publicKey = append([]byte(nil), pk...)
		return nil
	}
}

// Oracle binds a group and a VRF public key. It holds no mutable state and is safe
// for concurrent use.
type Oracle struct {
	group     *shared.Group
	publicKey []byte
}

// New returns an Oracle. Both a group and a public key are required.
func New(opts ...OptionFunc) (*Oracle, error) {
	options := &option{}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if err := options.validate(); err != nil {
		return nil, fmt.Errorf("invalid oracle options: %w", err)
	}

	return &Oracle{
		group:     options.group,
		publicKey: options.publicKey,
	}, nil
}

func (o *Oracle) Group() *shared.Group {
	return o.group
}

func (o *Oracle) PublicKey() []byte {
	return append([]byte(nil), o.publicKey...)
}

// DeriveStart implements shared.KeyBinding.
func (o *Oracle) DeriveStart(seed *big.Int) *big.Int {
	return DeriveStart(o.group, o.publicKey, seed)
}

// DifficultyHash implements shared.KeyBinding.
func (o *Oracle) DifficultyHash(candidate *big.Int) *big.Int {
	return DifficultyHash(o.group, o.publicKey, candidate)
}
