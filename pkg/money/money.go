// Package money is the rounding kernel for the installment engine. Every
// stored monetary value is a signed integer count of minor units (cents);
// decimals appear only transiently, for the single rate multiplication or
// division a schedule row needs, and are collapsed back to cents here.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// IsZero reports whether the currency has not been initialised.
func (c Currency) IsZero() bool {
	return c.code == ""
}

// Common currencies.
var (
	USD = MustCurrency("USD")
	EUR = MustCurrency("EUR")
	GBP = MustCurrency("GBP")
)

var half = decimal.New(5, -1)

// RoundCents rounds a decimal amount of cents to a whole cent, half up.
// This is the only rounding implementation in the engine; every call site
// that collapses a decimal to minor units goes through it, so two call
// sites can never disagree on a boundary value.
func RoundCents(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// DistributeEvenly splits total cents into parts equal shares. When the
// split does not divide evenly the whole remainder lands on the last share:
// earlier shares may already be settled and must not move.
func DistributeEvenly(total int64, parts int) []int64 {
	if parts <= 0 {
		return nil
	}
	base := total / int64(parts)
	out := make([]int64, parts)
	for i := range out {
		out[i] = base
	}
	out[parts-1] += total - base*int64(parts)
	return out
}

// Format renders cents as "<units>.<fraction> <code>", e.g. "1234.56 USD".
func Format(cents int64, c Currency) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, c.Code())
}
