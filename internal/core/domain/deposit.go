package domain

import "github.com/shopspring/decimal"

// DepositStatus is the lifecycle state of a deposit.
type DepositStatus string

const (
	DepositStatusActive   DepositStatus = "active"
	DepositStatusApplied  DepositStatus = "applied"
	DepositStatusRefunded DepositStatus = "refunded"
)

// Deposit is an up-front payment taken from a customer. Amount is what was
// actually received; TotalAmount, when set, is the agreed full price of the
// underlying work. TotalAmount greater than Amount makes the deposit partial
// and the difference becomes a receivable.
type Deposit struct {
	DepositID   string          `json:"depositID"`
	CustomerID  string          `json:"customerID"`
	Amount      decimal.Decimal `json:"amount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Description string          `json:"description"`
	Status      DepositStatus   `json:"status"`
	ReceiptKey  string          `json:"receiptKey,omitempty"`
	AuditFields
}

// IsPartial reports whether the deposit covers less than the agreed total.
func (d Deposit) IsPartial() bool {
	return d.TotalAmount.IsPositive() && d.TotalAmount.GreaterThan(d.Amount)
}

// Remainder is the unpaid portion of the agreed total. Zero for full deposits.
func (d Deposit) Remainder() decimal.Decimal {
	if !d.IsPartial() {
		return decimal.Zero
	}
	return d.TotalAmount.Sub(d.Amount)
}
