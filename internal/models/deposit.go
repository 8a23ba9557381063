package models

import "github.com/shopspring/decimal"

// DepositStatus mirrors domain.DepositStatus at the persistence layer.
type DepositStatus string

// Deposit represents the deposits table.
type Deposit struct {
	DepositID   string          `db:"deposit_id"`
	CustomerID  string          `db:"customer_id"`
	Amount      decimal.Decimal `db:"amount"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Description string          `db:"description"`
	Status      DepositStatus   `db:"status"`
	ReceiptKey  string          `db:"receipt_key"`
	AuditFields
}
