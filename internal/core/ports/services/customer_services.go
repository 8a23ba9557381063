package services

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// CustomerReaderSvc defines read operations over the customer directory.
type CustomerReaderSvc interface {
	// GetCustomerByID resolves a customer by its ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated customer list.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error)
}

// CustomerSvcFacade is the full customer service surface (read-only).
type CustomerSvcFacade interface {
	CustomerReaderSvc
}
