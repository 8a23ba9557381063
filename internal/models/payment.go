package models

import "github.com/shopspring/decimal"

// Payment represents the payments table. IdempotencyKey carries a unique
// index when non-empty.
type Payment struct {
	PaymentID      string          `db:"payment_id"`
	ReceivableID   string          `db:"receivable_id"`
	Amount         decimal.Decimal `db:"amount"`
	ReceiptKey     string          `db:"receipt_key"`
	IdempotencyKey string          `db:"idempotency_key"`
	AuditFields
}
