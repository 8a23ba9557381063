package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus is the lifecycle state of a receivable.
type ReceivableStatus string

const (
	ReceivableStatusPending   ReceivableStatus = "pending"
	ReceivableStatusPaid      ReceivableStatus = "paid"
	ReceivableStatusOverdue   ReceivableStatus = "overdue"
	ReceivableStatusCancelled ReceivableStatus = "cancelled"
)

// Receivable is an amount a customer owes, tracked until fully paid or
// cancelled. PaidAmount accumulates recorded payments and never exceeds
// Amount. DueDate is a calendar date; the time portion is always midnight UTC.
type Receivable struct {
	ReceivableID string           `json:"receivableID"`
	CustomerID   string           `json:"customerID"`
	Amount       decimal.Decimal  `json:"amount"`
	PaidAmount   decimal.Decimal  `json:"paidAmount"`
	DueDate      time.Time        `json:"dueDate"`
	Description  string           `json:"description"`
	Notes        string           `json:"notes,omitempty"`
	Status       ReceivableStatus `json:"status"`
	AuditFields
}

// Remaining is the balance still owed.
func (r Receivable) Remaining() decimal.Decimal {
	return r.Amount.Sub(r.PaidAmount)
}

// IsClosed reports whether the receivable accepts no further payments.
func (r Receivable) IsClosed() bool {
	return r.Status == ReceivableStatusPaid || r.Status == ReceivableStatusCancelled
}

// DeriveReceivableStatus computes the status a receivable should carry given
// its balances and due date. Cancelled is sticky: once a receivable is
// cancelled no payment or due-date change revives it. Paid takes precedence
// over overdue, so settling a late receivable in full marks it paid.
func DeriveReceivableStatus(current ReceivableStatus, amount, paidAmount decimal.Decimal, dueDate, now time.Time) ReceivableStatus {
	if current == ReceivableStatusCancelled {
		return ReceivableStatusCancelled
	}
	if paidAmount.GreaterThanOrEqual(amount) {
		return ReceivableStatusPaid
	}
	if dateOnly(dueDate).Before(dateOnly(now)) {
		return ReceivableStatusOverdue
	}
	return ReceivableStatusPending
}

// dateOnly truncates to the UTC calendar date so that due-date comparisons
// ignore the time of day.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
