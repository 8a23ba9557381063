package domain

// Customer is the read-only directory entry this service validates
// deposits and receivables against. The wider system owns the table;
// this module never mutates it.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	AuditFields
}
