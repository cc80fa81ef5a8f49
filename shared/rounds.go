package shared

import "math/big"

// NextStepCount halves the remaining number of squarings t. If the result is odd
// and not 1 it is rounded up to the next even number, and squared reports that the
// current output claim must be squared once to match.
func NextStepCount(t uint64) (next uint64, squared bool) {
	next = t / 2
	if next%2 != 0 && next != 1 {
		return next + 1, true
	}
	return next, false
}

// NumRounds is the number of halving rounds, and therefore of proof midpoints,
// for a chain of t squarings.
func NumRounds(t uint64) int {
	n := 0
	for t > 1 {
		t, _ = NextStepCount(t)
		n++
	}
	return n
}

// Fold merges the claims x -> mu and mu -> y, which together make up a chain of t
// squarings, into one claim x' -> y' over the next step count. The random linear
// combination uses the Fiat-Shamir challenge of (x, y, mu).
//
// For odd t the midpoint mu is reached after t/2 squarings and y after t/2+1 more,
// so mu is squared once on the x side to align both claims.
func (g *Group) Fold(x, y, mu *big.Int, t uint64) (nx, ny *big.Int, nt uint64) {
	r := g.Challenge(x, y, mu)

	muX := mu
	if t%2 != 0 {
		muX = g.Square(mu)
	}
	nx = g.Mul(g.Exp(x, r), muX)
	ny = g.Mul(g.Exp(mu, r), y)

	nt, squared := NextStepCount(t)
	if squared {
		ny = g.Square(ny)
	}
	return nx, ny, nt
}

// Terminal checks the claim left after the last round: y = x^2 for a single
// squaring, y = x for an empty chain.
func (g *Group) Terminal(x, y *big.Int, t uint64) bool {
	switch t {
	case 0:
		return x.Cmp(y) == 0
	case 1:
		return g.Square(x).Cmp(y) == 0
	default:
		return false
	}
}
