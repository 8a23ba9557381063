package models

// Activity represents the activities table.
type Activity struct {
	ActivityID  string `db:"activity_id"`
	Kind        string `db:"kind"`
	Description string `db:"description"`
	AuditFields
}
