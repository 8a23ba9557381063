package domain

import "github.com/shopspring/decimal"

// IncomeSource identifies what kind of ledger event produced an income entry.
type IncomeSource string

const (
	IncomeSourceDeposit           IncomeSource = "deposit"
	IncomeSourceReceivablePayment IncomeSource = "receivable_payment"
)

// IncomeEntry is a row in the income ledger. Entries are append-only and are
// written inside the same database transaction as the mutation that earned
// the money.
type IncomeEntry struct {
	IncomeID    string          `json:"incomeID"`
	Amount      decimal.Decimal `json:"amount"`
	Source      IncomeSource    `json:"source"`
	ReferenceID string          `json:"referenceID"`
	Description string          `json:"description"`
	AuditFields
}
