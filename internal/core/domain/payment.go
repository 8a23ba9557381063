package domain

import "github.com/shopspring/decimal"

// Payment is a single recorded payment against a receivable.
// IdempotencyKey, when present, uniquely identifies the submission so that a
// retried request cannot apply twice.
type Payment struct {
	PaymentID      string          `json:"paymentID"`
	ReceivableID   string          `json:"receivableID"`
	Amount         decimal.Decimal `json:"amount"`
	ReceiptKey     string          `json:"receiptKey,omitempty"`
	IdempotencyKey string          `json:"-"`
	AuditFields
}
