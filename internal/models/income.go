package models

import "github.com/shopspring/decimal"

// IncomeEntry represents the income_entries table.
type IncomeEntry struct {
	IncomeID    string          `db:"income_id"`
	Amount      decimal.Decimal `db:"amount"`
	Source      string          `db:"source"`
	ReferenceID string          `db:"reference_id"`
	Description string          `db:"description"`
	AuditFields
}
