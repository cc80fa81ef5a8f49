package shared

import (
	"fmt"
	"math/big"
)

var bigOne = big.NewInt(1)

// Group is the multiplicative group of integers modulo N, where N is an RSA-type
// modulus of unknown factorization. A Group never changes after construction and
// is safe for concurrent use; every operation returns a freshly allocated value.
type Group struct {
	n       *big.Int
	byteLen int
}

// NewGroup returns the group defined by the modulus n. The modulus must be odd and greater than 1.
func NewGroup(n *big.Int) (*Group, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidModulus)
	}
	if n.Cmp(bigOne) <= 0 {
		return nil, fmt.Errorf("%w: expected: > 1, given: %v", ErrInvalidModulus, n)
	}
	if n.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: expected: odd, given: %v", ErrInvalidModulus, n)
	}

	return &Group{
		n:       new(big.Int).Set(n),
		byteLen: (n.BitLen() + 7) / 8,
	}, nil
}

// Modulus returns a copy of N.
func (g *Group) Modulus() *big.Int {
	return new(big.Int).Set(g.n)
}

// ByteLen is the length of the fixed-width big-endian encoding of group elements.
func (g *Group) ByteLen() int {
	return g.byteLen
}

// Equal reports whether both groups share the same modulus.
func (g *Group) Equal(other *Group) bool {
	return other != nil && g.n.Cmp(other.n) == 0
}

// Element checks that x is a canonical residue, i.e. 0 <= x < N.
func (g *Group) Element(x *big.Int) error {
	if x == nil {
		return fmt.Errorf("%w: nil", ErrInvalidElement)
	}
	if x.Sign() < 0 || x.Cmp(g.n) >= 0 {
		return fmt.Errorf("%w: expected: [0, %d-bit modulus), given: %d-bit value (sign %d)",
			ErrInvalidElement, g.n.BitLen(), x.BitLen(), x.Sign())
	}
	return nil
}

// Reduce maps any integer into [0, N).
func (g *Group) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, g.n)
}

func (g *Group) Mul(a, b *big.Int) *big.Int {
	res := new(big.Int).Mul(a, b)
	return res.Mod(res, g.n)
}

func (g *Group) Square(a *big.Int) *big.Int {
	return g.Mul(a, a)
}

// Exp returns a^e mod N. The exponent must not be negative.
func (g *Group) Exp(a, e *big.Int) *big.Int {
	if e.Sign() < 0 {
		panic(fmt.Sprintf("shared: negative exponent %v", e))
	}
	return new(big.Int).Exp(a, e, g.n)
}

// ExpPow2 returns a^(2^k) mod N, computed by k sequential squarings.
func (g *Group) ExpPow2(a *big.Int, k uint64) *big.Int {
	res := new(big.Int).Set(a)
	for i := uint64(0); i < k; i++ {
		res.Mul(res, res)
		res.Mod(res, g.n)
	}
	return res
}

// Pad returns the fixed-width big-endian encoding of a canonical residue.
func (g *Group) Pad(x *big.Int) []byte {
	return x.FillBytes(make([]byte, g.byteLen))
}
