package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus mirrors domain.ReceivableStatus at the persistence layer.
type ReceivableStatus string

// Receivable represents the receivables table.
type Receivable struct {
	ReceivableID string           `db:"receivable_id"`
	CustomerID   string           `db:"customer_id"`
	Amount       decimal.Decimal  `db:"amount"`
	PaidAmount   decimal.Decimal  `db:"paid_amount"`
	DueDate      time.Time        `db:"due_date"`
	Description  string           `db:"description"`
	Notes        string           `db:"notes"`
	Status       ReceivableStatus `db:"status"`
	AuditFields
}
