package models

// Customer represents the customers table (owned by the wider system,
// read-only here).
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	AuditFields
}
