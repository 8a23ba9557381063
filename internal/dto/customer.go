package dto

import (
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
)

// CustomerResponse defines the data returned for a customer directory entry.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to CustomerResponse DTOs
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return res
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListCustomersResponse wraps the customer list with the pagination token.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}
