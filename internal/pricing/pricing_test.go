package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPriceAddsDeltas(t *testing.T) {
	assert.Equal(t, Money(3500), UnitPrice(3000, []Money{500}))
	assert.Equal(t, Money(4500), UnitPrice(4500, nil))
	assert.Equal(t, Money(4200), UnitPrice(4500, []Money{-300}))
}

func TestUnitPriceClampsAtZero(t *testing.T) {
	assert.Equal(t, Money(0), UnitPrice(100, []Money{-500}))
}

func TestLineSubtotal(t *testing.T) {
	got, err := LineSubtotal(4500, 2)
	require.NoError(t, err)
	assert.Equal(t, Money(9000), got)
}

func TestLineSubtotalRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1, -99} {
		_, err := LineSubtotal(4500, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", qty)
	}
}

func TestFormatARS(t *testing.T) {
	assert.Equal(t, "$0", FormatARS(0))
	assert.Equal(t, "$800", FormatARS(800))
	assert.Equal(t, "$12.500", FormatARS(12500))
	assert.Equal(t, "$1.250.000", FormatARS(1250000))
	assert.Equal(t, "-$800", FormatARS(-800))
}
