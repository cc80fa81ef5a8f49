package proving

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/seqpow/config"
	"github.com/spacemeshos/seqpow/oracle"
	"github.com/spacemeshos/seqpow/shared"
	"github.com/spacemeshos/seqpow/verifying"
)

var (
	publicKey = []byte("0123456789abcdef0123456789abcdef")
	// the easiest target; every difficulty hash meets it
	maxTarget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

func rsaGroup(tb testing.TB) *shared.Group {
	n, err := config.ParseModulus(config.RSA2048Modulus)
	require.NoError(tb, err)
	g, err := shared.NewGroup(n)
	require.NoError(tb, err)
	return g
}

func toyGroup(tb testing.TB) *shared.Group {
	g, err := shared.NewGroup(big.NewInt(3233))
	require.NoError(tb, err)
	return g
}

func testOracle(tb testing.TB, g *shared.Group) *oracle.Oracle {
	o, err := oracle.New(oracle.WithGroup(g), oracle.WithPublicKey(publicKey))
	require.NoError(tb, err)
	return o
}

func TestEvaluate(t *testing.T) {
	g := toyGroup(t)
	o := testOracle(t, g)

	for _, steps := range []uint64{0, 1, 2, 5, 16, 100} {
		steps := steps
		t.Run(fmt.Sprintf("steps=%d", steps), func(t *testing.T) {
			sol, err := Evaluate(context.Background(), g, big.NewInt(5), steps, o, maxTarget, WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)
			require.Zero(t, g.ExpPow2(big.NewInt(5), steps).Cmp(sol.Output))
			require.True(t, sol.MeetsDifficulty)
		})
	}
}

func TestEvaluate_WorkedExample(t *testing.T) {
	g := toyGroup(t)

	sol, err := Evaluate(context.Background(), g, big.NewInt(5), 5, testOracle(t, g), maxTarget)
	require.NoError(t, err)
	require.Zero(t, big.NewInt(1123).Cmp(sol.Output))
}

func TestEvaluate_Deterministic(t *testing.T) {
	g := rsaGroup(t)
	o := testOracle(t, g)
	start := o.DeriveStart(big.NewInt(42))

	a, err := Evaluate(context.Background(), g, start, 1000, o, maxTarget)
	require.NoError(t, err)
	b, err := Evaluate(context.Background(), g, start, 1000, o, maxTarget)
	require.NoError(t, err)
	require.Zero(t, a.Output.Cmp(b.Output))
}

func TestEvaluate_Difficulty(t *testing.T) {
	g := rsaGroup(t)
	o := testOracle(t, g)
	start := o.DeriveStart(big.NewInt(7))

	sol, err := Evaluate(context.Background(), g, start, 64, o, maxTarget)
	require.NoError(t, err)
	require.True(t, sol.MeetsDifficulty)

	h := o.DifficultyHash(sol.Output)

	sol, err = Evaluate(context.Background(), g, start, 64, o, h)
	require.NoError(t, err)
	require.True(t, sol.MeetsDifficulty, "a hash equal to the target meets it")

	sol, err = Evaluate(context.Background(), g, start, 64, o, new(big.Int).Sub(h, big.NewInt(1)))
	require.NoError(t, err)
	require.False(t, sol.MeetsDifficulty)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	g := toyGroup(t)
	o := testOracle(t, g)
	ctx := context.Background()

	_, err := Evaluate(ctx, nil, big.NewInt(5), 1, o, maxTarget)
	require.Error(t, err)

	_, err = Evaluate(ctx, g, big.NewInt(3233), 1, o, maxTarget)
	require.ErrorIs(t, err, shared.ErrInvalidElement)

	_, err = Evaluate(ctx, g, big.NewInt(-1), 1, o, maxTarget)
	require.ErrorIs(t, err, shared.ErrInvalidElement)

	_, err = Evaluate(ctx, g, big.NewInt(5), 1, nil, maxTarget)
	require.Error(t, err)

	_, err = Evaluate(ctx, g, big.NewInt(5), 1, o, nil)
	require.Error(t, err)

	_, err = Evaluate(ctx, g, big.NewInt(5), 1, o, maxTarget, WithLogger(nil))
	require.Error(t, err)
}

func TestEvaluate_Cancel(t *testing.T) {
	g := rsaGroup(t)
	o := testOracle(t, g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol, err := Evaluate(ctx, g, o.DeriveStart(big.NewInt(1)), 1<<30, o, maxTarget)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, sol)
}

func TestGenerateProof_NumRounds(t *testing.T) {
	g := toyGroup(t)
	start := big.NewInt(7)

	tt := []struct {
		steps  uint64
		rounds int
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 2}, {7, 3}, {8, 3}, {16, 4}, {1000, 10},
	}
	for _, tc := range tt {
		tc := tc
		t.Run(fmt.Sprintf("steps=%d", tc.steps), func(t *testing.T) {
			output := g.ExpPow2(start, tc.steps)
			proof, err := GenerateProof(context.Background(), g, start, output, tc.steps)
			require.NoError(t, err)
			require.Len(t, proof.Midpoints, tc.rounds)
			require.Equal(t, tc.rounds, shared.NumRounds(tc.steps))
		})
	}
}

func TestGenerateProof_WorkedExample(t *testing.T) {
	g := toyGroup(t)
	x0 := big.NewInt(5)
	y0 := g.ExpPow2(x0, 5)

	proof, err := GenerateProof(context.Background(), g, x0, y0, 5, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.Len(t, proof.Midpoints, 2)

	// Round 0: t = 5, the midpoint sits after 2 squarings.
	mu0 := proof.Midpoints[0]
	require.Zero(t, big.NewInt(625).Cmp(mu0))
	require.Zero(t, g.ExpPow2(x0, 2).Cmp(mu0))

	r0 := g.Challenge(x0, y0, mu0)
	x1 := g.Mul(g.Exp(x0, r0), g.Square(mu0))
	y1 := g.Mul(g.Exp(mu0, r0), y0)

	// 5 -> 2 without a forced squaring, the folded claim still covers 2 squarings.
	require.Zero(t, g.ExpPow2(x1, 2).Cmp(y1))

	// Round 1: t = 2, the midpoint is one squaring of x1.
	mu1 := proof.Midpoints[1]
	require.Zero(t, big.NewInt(1864).Cmp(mu1))
	require.Zero(t, g.Square(x1).Cmp(mu1))

	x2, y2, t2 := g.Fold(x1, y1, mu1, 2)
	require.EqualValues(t, 1, t2)
	require.Zero(t, g.Square(x2).Cmp(y2))

	require.True(t, verifying.VerifyProof(g, x0, y0, 5, proof))
}

func TestGenerateProof_Completeness(t *testing.T) {
	g := rsaGroup(t)
	o := testOracle(t, g)
	start := o.DeriveStart(big.NewInt(2024))

	for steps := uint64(0); steps <= 70; steps++ {
		steps := steps
		t.Run(fmt.Sprintf("steps=%d", steps), func(t *testing.T) {
			t.Parallel()
			output := g.ExpPow2(start, steps)
			proof, err := GenerateProof(context.Background(), g, start, output, steps)
			require.NoError(t, err)
			require.True(t, verifying.VerifyProof(g, start, output, steps, proof))
		})
	}
}

func TestGenerateProof_Deterministic(t *testing.T) {
	g := rsaGroup(t)
	start := testOracle(t, g).DeriveStart(big.NewInt(3))
	output := g.ExpPow2(start, 333)

	a, err := GenerateProof(context.Background(), g, start, output, 333)
	require.NoError(t, err)
	b, err := GenerateProof(context.Background(), g, start, output, 333)
	require.NoError(t, err)

	require.Len(t, b.Midpoints, len(a.Midpoints))
	for i := range a.Midpoints {
		require.Zero(t, a.Midpoints[i].Cmp(b.Midpoints[i]), "midpoint %d", i)
	}
}

func TestGenerateProof_WrongOutput(t *testing.T) {
	g := rsaGroup(t)
	start := testOracle(t, g).DeriveStart(big.NewInt(3))
	output := g.ExpPow2(start, 100)
	wrong := g.Mul(output, big.NewInt(2))

	proof, err := GenerateProof(context.Background(), g, start, wrong, 100)
	require.NoError(t, err)
	require.False(t, verifying.VerifyProof(g, start, wrong, 100, proof))
}

func TestGenerateProof_Cancel(t *testing.T) {
	g := rsaGroup(t)
	start := testOracle(t, g).DeriveStart(big.NewInt(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proof, err := GenerateProof(ctx, g, start, start, 1<<30)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, proof)
}

func TestProver_Generate(t *testing.T) {
	g := rsaGroup(t)
	o := testOracle(t, g)

	p, err := NewProver(o, WithLogger(zaptest.NewLogger(t)), WithLogRate(100))
	require.NoError(t, err)

	seed := big.NewInt(123456789)
	res, err := p.Generate(context.Background(), seed, maxTarget, 500)
	require.NoError(t, err)
	require.True(t, res.MeetsDifficulty)

	m := res.Metadata
	require.Zero(t, g.Modulus().Cmp(m.Modulus))
	require.Equal(t, publicKey, m.PublicKey)
	require.Zero(t, seed.Cmp(m.Seed))
	require.Zero(t, maxTarget.Cmp(m.Target))
	require.Zero(t, o.DeriveStart(seed).Cmp(m.Start))
	require.EqualValues(t, 500, m.NumSteps)
	require.Zero(t, g.ExpPow2(m.Start, 500).Cmp(m.Output))

	require.NoError(t, verifying.Verify(g, m.Start, m.Output, m.NumSteps, res.Proof, o, m.Target))
}

func TestProver_Generate_MissedTarget(t *testing.T) {
	g := rsaGroup(t)
	p, err := NewProver(testOracle(t, g))
	require.NoError(t, err)

	// Target 0 is met only by a zero hash.
	res, err := p.Generate(context.Background(), big.NewInt(1), big.NewInt(0), 32)
	require.NoError(t, err)
	require.False(t, res.MeetsDifficulty)
	require.True(t, verifying.VerifyProof(g, res.Metadata.Start, res.Metadata.Output, 32, res.Proof))
}

func TestProver_InvalidInput(t *testing.T) {
	_, err := NewProver(nil)
	require.Error(t, err)

	p, err := NewProver(testOracle(t, toyGroup(t)))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), nil, maxTarget, 1)
	require.Error(t, err)
	_, err = p.Generate(context.Background(), big.NewInt(-1), maxTarget, 1)
	require.Error(t, err)
	_, err = p.Generate(context.Background(), big.NewInt(1), big.NewInt(-1), 1)
	require.Error(t, err)
}

func BenchmarkEvaluate(b *testing.B) {
	g := rsaGroup(b)
	o := testOracle(b, g)
	start := o.DeriveStart(big.NewInt(1))

	for _, steps := range []uint64{1 << 10, 1 << 14} {
		steps := steps
		b.Run(fmt.Sprintf("steps=%d", steps), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, err := Evaluate(context.Background(), g, start, steps, o, maxTarget)
				require.NoError(b, err)
			}
		})
	}
}

func BenchmarkGenerateProof(b *testing.B) {
	g := rsaGroup(b)
	start := testOracle(b, g).DeriveStart(big.NewInt(1))

	for _, steps := range []uint64{1 << 10, 1 << 14} {
		steps := steps
		output := g.ExpPow2(start, steps)
		b.Run(fmt.Sprintf("steps=%d", steps), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, err := GenerateProof(context.Background(), g, start, output, steps)
				require.NoError(b, err)
			}
		})
	}
}
