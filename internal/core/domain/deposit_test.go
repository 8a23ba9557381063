package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDepositIsPartialAndRemainder(t *testing.T) {
	testCases := []struct {
		name      string
		amount    string
		total     string
		partial   bool
		remainder string
	}{
		{name: "full payment with matching total", amount: "500", total: "500", partial: false, remainder: "0"},
		{name: "full payment without total", amount: "500", total: "0", partial: false, remainder: "0"},
		{name: "partial payment", amount: "300", total: "500", partial: true, remainder: "200"},
		{name: "fractional remainder", amount: "300.25", total: "500.00", partial: true, remainder: "199.75"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := Deposit{
				Amount:      decimal.RequireFromString(tc.amount),
				TotalAmount: decimal.RequireFromString(tc.total),
			}
			assert.Equal(t, tc.partial, d.IsPartial())
			assert.True(t, d.Remainder().Equal(decimal.RequireFromString(tc.remainder)),
				"remainder = %s, want %s", d.Remainder(), tc.remainder)
		})
	}
}
