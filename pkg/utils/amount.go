package utils

import (
	"fmt"
	"math"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotInteger = fmt.Errorf("%w: amount must be a whole number of minor units", domain.ErrValidation)
	ErrAmountTooLarge   = fmt.Errorf("%w: amount is too large", domain.ErrValidation)
	ErrAmountMalformed  = fmt.Errorf("%w: amount is not a number", domain.ErrValidation)
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// MinorUnits converts a decoded amount to int64 minor units. Sign is left to
// the caller.
func MinorUnits(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, ErrAmountNotInteger
	}
	if d.Abs().GreaterThan(maxAmount) {
		return 0, ErrAmountTooLarge
	}
	return d.IntPart(), nil
}

// ParseMinorUnits parses s and converts it with MinorUnits.
func ParseMinorUnits(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrAmountMalformed
	}
	return MinorUnits(d)
}
