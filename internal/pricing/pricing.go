package pricing

import (
	"errors"
	"fmt"
	"strconv"
)

// Money is a monetary amount in integer minor units. The storefront displays
// zero-decimal currency, so arithmetic stays in plain integers and repeated
// additions never drift.
type Money int64

// ErrInvalidQuantity is returned when a quantity is zero or negative.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// InvalidSelectionError reports a selected option that does not fit the
// product it was selected for.
type InvalidSelectionError struct {
	Reason string
}

func (e InvalidSelectionError) Error() string {
	return "invalid selection: " + e.Reason
}

// UnitPrice adds a set of option price deltas to a base price. Deltas are
// signed; the result is clamped at zero so a removal-heavy selection can
// never produce a negative price.
func UnitPrice(base Money, deltas []Money) Money {
	total := base
	for _, d := range deltas {
		total += d
	}
	if total < 0 {
		return 0
	}
	return total
}

// LineSubtotal multiplies a unit price by a quantity.
func LineSubtotal(unit Money, quantity int) (Money, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	return unit * Money(quantity), nil
}

// FormatARS renders an amount the way the storefront does: "$" followed by
// the integer value with dots as thousand separators.
func FormatARS(m Money) string {
	neg := m < 0
	if neg {
		m = -m
	}
	digits := strconv.FormatInt(int64(m), 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	if neg {
		return fmt.Sprintf("-$%s", out)
	}
	return fmt.Sprintf("$%s", out)
}
