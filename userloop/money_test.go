package userloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "0.42", FormatMoney(42))
	assert.Equal(t, "1.00", FormatMoney(100))
	assert.Equal(t, "1.42", FormatMoney(142))
	assert.Equal(t, "-0.42", FormatMoney(-42))
	assert.Equal(t, "-1.00", FormatMoney(-100))
	assert.Equal(t, "-1.42", FormatMoney(-142))
	assert.Equal(t, "123.42", FormatMoney(12342))
	assert.Equal(t, "-123.42", FormatMoney(-12342))
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 42, 100, 142, 12342, 999999} {
		parsed, ok := ParseMoney(FormatMoney(n))
		require.True(t, ok, "n=%d", n)
		assert.Equal(t, n, parsed)
	}
}

func TestParseMoneyRejectsBadShapes(t *testing.T) {
	for _, s := range []string{"", "1", "1.0", "1.000", ".42", "1,00", "-1.00", "1.00 ", "abc"} {
		_, ok := ParseMoney(s)
		assert.False(t, ok, "%q must not parse", s)
	}
}

func TestParseStockDelta(t *testing.T) {
	n, ok := ParseStockDelta("5", 2)
	require.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = ParseStockDelta("+5", 2)
	require.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = ParseStockDelta("-3", 2)
	require.True(t, ok)
	assert.Equal(t, -3, n)

	_, ok = ParseStockDelta("5x", 2)
	assert.False(t, ok)
	_, ok = ParseStockDelta("", 2)
	assert.False(t, ok)
}

func TestSuggestSellPrice(t *testing.T) {
	// 100 at 5% margin → 105; rounding is always up.
	assert.Equal(t, 105, SuggestSellPrice(100, 0.05))
	assert.Equal(t, 106, SuggestSellPrice(101, 0.05))
	assert.Equal(t, 0, SuggestSellPrice(0, 0.05))
}
