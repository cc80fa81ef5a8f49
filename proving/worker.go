package proving

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/spacemeshos/seqpow/shared"
)

// squarer performs chains of sequential modular squarings. Every squaring depends on
// the previous one, so a chain runs on a single goroutine by construction.
type squarer struct {
	group   *shared.Group
	logger  *zap.Logger
	logRate uint64
}

// square returns x^(2^k) mod N. The context is checked before every squaring; on
// cancellation no partial result is returned.
func (s *squarer) square(ctx context.Context, x *big.Int, k uint64) (*big.Int, error) {
	n := s.group.Modulus()
	y := new(big.Int).Set(x)
	tmp := new(big.Int)

	for i := uint64(0); i < k; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		tmp.Mul(y, y)
		y.Mod(tmp, n)

		if s.logRate > 0 && (i+1)%s.logRate == 0 {
			s.logger.Debug("squaring progress", zap.Uint64("done", i+1), zap.Uint64("total", k))
		}
	}
	return y, nil
}
