package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceKey(t *testing.T) {
	// floor(10000000/3), the canonical truncation case
	assert.Equal(t, int64(3333333), Price{N: 1, D: 3}.Key())
	assert.Equal(t, int64(5000000), Price{N: 1, D: 2}.Key())
	assert.Equal(t, int64(30000000), Price{N: 3, D: 1}.Key())
	assert.Equal(t, int64(0), Price{N: 0, D: 1}.Key())

	// full int32 range stays exact through the widened multiply
	assert.Equal(t, int64(math.MaxInt32)*PriceScale, Price{N: math.MaxInt32, D: 1}.Key())
	assert.Equal(t, int64(14287981683300), Price{N: math.MaxInt32, D: 1503}.Key())
}

func TestPriceKeyOrdering(t *testing.T) {
	// 1/3 < 1/2 scaled
	assert.Less(t, Price{N: 1, D: 3}.Key(), Price{N: 1, D: 2}.Key())
	// equal ratios collapse to the same key
	assert.Equal(t, Price{N: 1, D: 2}.Key(), Price{N: 2, D: 4}.Key())
}

func TestPriceDecimal(t *testing.T) {
	assert.Equal(t, "3", Price{N: 3, D: 1}.Decimal().String())
	assert.Equal(t, "0.5", Price{N: 1, D: 2}.Decimal().String())
	assert.Equal(t, "3/1", Price{N: 3, D: 1}.String())
}
