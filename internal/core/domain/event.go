package domain

// EventKind names a domain event published after a ledger mutation commits.
type EventKind string

const (
	EventDepositCreated    EventKind = "deposit.created"
	EventDepositUpdated    EventKind = "deposit.updated"
	EventDepositDeleted    EventKind = "deposit.deleted"
	EventReceivableCreated EventKind = "receivable.created"
	EventReceivableUpdated EventKind = "receivable.updated"
	EventReceivableDeleted EventKind = "receivable.deleted"
	EventPaymentApplied    EventKind = "payment.applied"
)

// Event is the payload delivered to in-process subscribers. Events fire only
// after the owning database transaction has committed.
type Event struct {
	Kind        EventKind
	ReferenceID string
}
