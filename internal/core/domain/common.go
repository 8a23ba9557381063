package domain

import "time"

// AuditFields holds the timestamps common to every persisted entity.
// Authorship fields are intentionally absent: user identity lives in the
// surrounding system, not in this ledger.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
