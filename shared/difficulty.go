package shared

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// KeyBinding binds delay-function inputs and outputs to a VRF public key.
// The proof core depends on the VRF only through this capability.
//
//go:generate mockgen -package mocks -destination mocks/binding.go github.com/spacemeshos/seqpow/shared KeyBinding
type KeyBinding interface {
	// DeriveStart maps a seed into the start element of the squaring chain.
	DeriveStart(seed *big.Int) *big.Int
	// DifficultyHash binds a candidate output to the public key.
	DifficultyHash(candidate *big.Int) *big.Int
}

// MeetsTarget reports whether a difficulty hash does not exceed the target.
func MeetsTarget(hashState, target *big.Int) bool {
	return hashState.Cmp(target) <= 0
}

// ReduceHash parses a hex digest (e.g. a block header hash) and reduces it modulo N.
func ReduceHash(digest string, g *Group) (*big.Int, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(digest, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid digest %q: %w", digest, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("invalid digest: empty")
	}
	return g.Reduce(new(big.Int).SetBytes(b)), nil
}
