package types

import (
	"fmt"
	"math/bits"

	"github.com/shopspring/decimal"
)

// PriceScale converts a rational price into its fixed-point ordering key.
// Every node must use the same constant or order books diverge.
const PriceScale = 10_000_000

// Price is an exact rational trade price. D must be positive; that invariant
// is owned by the caller constructing the offer.
type Price struct {
	N int32
	D int32
}

// Key derives the fixed-point ordering key floor(N*PriceScale/D). The
// widened multiply keeps the full int32 range exact and the truncating
// division is bit-for-bit reproducible, which makes the key safe to use as a
// cross-node sort column. Operands are non-negative.
func (p Price) Key() int64 {
	hi, lo := bits.Mul64(uint64(p.N), PriceScale)
	q, _ := bits.Div64(hi, lo, uint64(p.D))
	return int64(q)
}

// Decimal renders the exact ratio for display. Never use this for ordering,
// only Key is deterministic.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p.N), 0).Div(decimal.New(int64(p.D), 0))
}

func (p Price) String() string {
	return fmt.Sprintf("%d/%d", p.N, p.D)
}
