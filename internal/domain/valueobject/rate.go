package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Rate – immutable value object
// ---------------------------------------------------------------------------

// Rate is a periodic interest rate with exactly two decimal digits of
// percentage precision, stored as integer basis points. 0 bps is 0.00%,
// 10000 bps is 100.00%. No floating point representation exists.
type Rate struct {
	bps int64
}

const maxRateBps = 10000

// NewRateBps creates a Rate from integer basis points.
func NewRateBps(bps int64) (Rate, error) {
	if bps < 0 || bps > maxRateBps {
		return Rate{}, fmt.Errorf("rate must be between 0.00%% and 100.00%%, got %d bps", bps)
	}
	return Rate{bps: bps}, nil
}

// ParseRatePercent creates a Rate from a percent string such as "2.00" or
// "12.5". More than two decimal digits is an error.
func ParseRatePercent(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	scaled := d.Shift(2)
	if !scaled.IsInteger() {
		return Rate{}, fmt.Errorf("rate %q has more than two decimal digits", s)
	}
	return NewRateBps(scaled.IntPart())
}

// Bps returns the rate in basis points.
func (r Rate) Bps() int64 { return r.bps }

// IsZero reports a 0.00% rate.
func (r Rate) IsZero() bool { return r.bps == 0 }

// Equal returns true when both rates carry the same value.
func (r Rate) Equal(other Rate) bool { return r.bps == other.bps }

// Fraction returns the exact decimal fraction (2.00% -> 0.02) used for the
// per-row interest multiplication.
func (r Rate) Fraction() decimal.Decimal {
	return decimal.New(r.bps, -4)
}

// Percent returns the two-decimal percent representation, e.g. "2.00".
func (r Rate) Percent() string {
	return decimal.New(r.bps, -2).StringFixed(2)
}

// String returns the percent representation with a trailing percent sign.
func (r Rate) String() string { return r.Percent() + "%" }
