package shared

import (
	"math/big"

	"github.com/spacemeshos/sha256-simd"
)

// ChallengeSize is the size in bytes of a Fiat-Shamir challenge exponent.
const ChallengeSize = 16

var challengeTag = []byte("seqpow/fiat-shamir/v1")

// Challenge hashes the modulus together with an ordered tuple of group elements into
// a 128-bit exponent. Prover and verifier call it with identical inputs, so their
// transcripts never diverge. Elements must be canonical residues.
func (g *Group) Challenge(elems ...*big.Int) *big.Int {
	h := sha256.New()
	h.Write(challengeTag)
	h.Write(g.Pad(g.n))
	for _, e := range elems {
		h.Write(g.Pad(e))
	}
	sum := h.Sum(nil)
	return new(big.Int).SetBytes(sum[:ChallengeSize])
}
