package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellingPriceSlashRangeAveragesToInteger(t *testing.T) {
	price, ok := SellingPrice("3300/3500")

	require.True(t, ok)
	assert.Equal(t, 3400.0, price)
}

func TestSellingPriceIgnoresNonPositiveRangeParts(t *testing.T) {
	price, ok := SellingPrice("3900/abc")

	require.True(t, ok)
	assert.Equal(t, 3900.0, price)
}

func TestSellingPriceSingleValuePassesThroughUnrounded(t *testing.T) {
	price, ok := SellingPrice("3,450.5")

	require.True(t, ok)
	assert.Equal(t, 3450.5, price)
}

func TestSellingPriceAbsentCases(t *testing.T) {
	for _, raw := range []string{"", "  ", "0", "-5", "abc", "abc/def"} {
		_, ok := SellingPrice(raw)
		assert.False(t, ok, "expected %q to be absent", raw)
	}
}

func TestBuyingPriceSpacedHyphenRangeAveragesToInteger(t *testing.T) {
	price, ok := BuyingPrice("3,300 - 3,500")

	require.True(t, ok)
	assert.Equal(t, 3400.0, price)
}

func TestBuyingPriceSingleValuePassesThroughUnrounded(t *testing.T) {
	price, ok := BuyingPrice(" 3,300 ")

	require.True(t, ok)
	assert.Equal(t, 3300.0, price)
}

func TestBuyingPriceUnspacedHyphenIsNotARange(t *testing.T) {
	// "3,300-3,500" is not split; it fails the single-number parse instead.
	_, ok := BuyingPrice("3,300-3,500")

	assert.False(t, ok)
}

func TestBuyingPriceAbsentCases(t *testing.T) {
	for _, raw := range []string{"", "0", "-120", "n/a"} {
		_, ok := BuyingPrice(raw)
		assert.False(t, ok, "expected %q to be absent", raw)
	}
}
