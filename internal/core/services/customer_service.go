package services

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// customerService exposes the read-only customer directory.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// GetCustomerByID resolves a customer by its ID.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

// ListCustomers retrieves a paginated customer list.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	customers, nextToken, err := s.customerRepo.ListCustomers(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListCustomersResponse{
		Customers: dto.ToListCustomerResponse(customers),
		NextToken: nextToken,
	}, nil
}
