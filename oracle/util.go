package oracle

import (
	"encoding/binary"
	"math/big"

	"github.com/spacemeshos/sha256-simd"

	"github.com/spacemeshos/seqpow/shared"
)

var (
	startTag      = []byte("seqpow/start/v1")
	difficultyTag = []byte("seqpow/difficulty/v1")
)

// extraBytes of hash output on top of the modulus length keep the bias of the final
// reduction negligible.
const extraBytes = 16

// DeriveStart maps a seed and a public key into the group by expanding a SHA-256
// stream to ByteLen(N)+16 bytes and reducing it modulo N.
func DeriveStart(g *shared.Group, publicKey []byte, seed *big.Int) *big.Int {
	seedBytes := g.Pad(g.Reduce(seed))
	out := make([]byte, 0, g.ByteLen()+extraBytes+sha256.Size)

	var ctr [4]byte
	for i := uint32(0); len(out) < g.ByteLen()+extraBytes; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		hh := sha256.New()
		hh.Write(startTag)
		writeLengthPrefixed(hh, publicKey)
		hh.Write(g.Pad(g.Modulus()))
		hh.Write(seedBytes)
		hh.Write(ctr[:])
		out = hh.Sum(out)
	}

	return g.Reduce(new(big.Int).SetBytes(out[:g.ByteLen()+extraBytes]))
}

// DifficultyHash binds a candidate output to the public key. The result is a 256-bit
// integer comparable against a difficulty target with shared.MeetsTarget.
func DifficultyHash(g *shared.Group, publicKey []byte, candidate *big.Int) *big.Int {
	hh := sha256.New()
	hh.Write(difficultyTag)
	writeLengthPrefixed(hh, publicKey)
	hh.Write(g.Pad(g.Modulus()))
	hh.Write(g.Pad(g.Reduce(candidate)))
	return new(big.Int).SetBytes(hh.Sum(nil))
}

func writeLengthPrefixed(w interface{ Write([]byte) (int, error) }, b []byte) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(b)))
	w.Write(l[:])
	w.Write(b)
}
