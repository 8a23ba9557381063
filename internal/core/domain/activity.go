package domain

// ActivityKind classifies an entry in the activity feed.
type ActivityKind string

const (
	ActivityDepositAdded      ActivityKind = "deposit_added"
	ActivityDepositDeleted    ActivityKind = "deposit_deleted"
	ActivityReceivableAdded   ActivityKind = "receivable_added"
	ActivityReceivableDeleted ActivityKind = "receivable_deleted"
	ActivityReceivablePaid    ActivityKind = "receivable_paid"
)

// Activity is one entry in the append-only activity feed shown on the
// dashboard. Recording an activity is best-effort: it happens after the
// owning transaction commits and a failure only logs.
type Activity struct {
	ActivityID  string       `json:"activityID"`
	Kind        ActivityKind `json:"kind"`
	Description string       `json:"description"`
	AuditFields
}
