package domain

import (
	"github.com/shopspring/decimal"

	"github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// Amounts are stored as int64 minor currency units. User input arrives as a
// decimal string ("12.34") and is converted exactly, never through floats.

var minorUnitFactor = decimal.NewFromInt(100)

// ParseAmount converts a decimal amount string to minor units.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.NewValidationError("Amount must be a decimal number")
	}
	minor := d.Mul(minorUnitFactor)
	if !minor.IsInteger() {
		return 0, errors.NewValidationError("Amount must not have more than two decimal places")
	}
	return minor.IntPart(), nil
}

// FormatAmount renders minor units as a decimal amount string with two places.
func FormatAmount(minor int64) string {
	return decimal.NewFromInt(minor).Div(minorUnitFactor).StringFixed(2)
}
