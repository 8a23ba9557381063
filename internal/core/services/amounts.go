package services

import (
	"fmt"

	"github.com/hisabat-app/hisabat_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// parseAmountField parses a decimal submitted as a form string. Multipart
// forms cannot bind decimal.Decimal directly, so the services parse amounts
// themselves and name the failing field in the error.
func parseAmountField(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a decimal number", apperrors.ErrValidation, field)
	}
	return d, nil
}

// parsePositiveAmountField parses a form amount that must be strictly positive.
func parsePositiveAmountField(field, value string) (decimal.Decimal, error) {
	d, err := parseAmountField(field, value)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	return d, nil
}
