package repositories

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
)

// CustomerReader defines read operations over the customer directory.
// The directory is owned by the wider system; this module never writes it.
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers using token-based pagination.
	// It returns the customers, a token for the next page, and an error.
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)
}

// CustomerRepositoryFacade is the full customer repository surface.
type CustomerRepositoryFacade interface {
	CustomerReader
}
