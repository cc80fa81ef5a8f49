package shared

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextStepCount(t *testing.T) {
	tt := []struct {
		t       uint64
		next    uint64
		squared bool
	}{
		{2, 1, false},
		{3, 1, false},
		{4, 2, false},
		{5, 2, false},
		{6, 4, true},
		{7, 4, true},
		{8, 4, false},
		{1000, 500, false},
		{1002, 502, true},
	}
	for _, tc := range tt {
		next, squared := NextStepCount(tc.t)
		require.Equal(t, tc.next, next, "t: %d", tc.t)
		require.Equal(t, tc.squared, squared, "t: %d", tc.t)
	}
}

func TestNumRounds(t *testing.T) {
	tt := map[uint64]int{
		0: 0, 1: 0, 2: 1, 3: 1, 4: 2, 5: 2, 7: 3, 8: 3, 16: 4, 1000: 10,
	}
	for steps, rounds := range tt {
		require.Equal(t, rounds, NumRounds(steps), "steps: %d", steps)
	}

	// Logarithmic in the number of steps.
	require.LessOrEqual(t, NumRounds(1<<40), 41)
}

func TestFold_PreservesClaim(t *testing.T) {
	n, ok := new(big.Int).SetString("998244359987710471", 10) // 1000000007 * 998244353
	require.True(t, ok)
	g, err := NewGroup(n)
	require.NoError(t, err)

	x := big.NewInt(123456789)
	for steps := uint64(2); steps <= 40; steps++ {
		steps := steps
		t.Run(fmt.Sprintf("steps=%d", steps), func(t *testing.T) {
			y := g.ExpPow2(x, steps)
			mu := g.ExpPow2(x, steps/2)

			nx, ny, nt := g.Fold(x, y, mu, steps)
			next, _ := NextStepCount(steps)
			require.Equal(t, next, nt)
			require.Zero(t, g.ExpPow2(nx, nt).Cmp(ny))
		})
	}
}

func TestFold_WorkedExample(t *testing.T) {
	g := toyGroup(t)
	x, y, mu := big.NewInt(5), big.NewInt(1123), big.NewInt(625)

	r := g.Challenge(x, y, mu)
	nx, ny, nt := g.Fold(x, y, mu, 5)

	require.EqualValues(t, 2, nt)
	require.Zero(t, g.Mul(g.Exp(x, r), g.Square(mu)).Cmp(nx))
	require.Zero(t, g.Mul(g.Exp(mu, r), y).Cmp(ny))
}

func TestTerminal(t *testing.T) {
	g := toyGroup(t)
	x := big.NewInt(5)

	require.True(t, g.Terminal(x, big.NewInt(5), 0))
	require.False(t, g.Terminal(x, big.NewInt(25), 0))
	require.True(t, g.Terminal(x, big.NewInt(25), 1))
	require.False(t, g.Terminal(x, big.NewInt(5), 1))
	require.False(t, g.Terminal(x, big.NewInt(625), 2))
}
