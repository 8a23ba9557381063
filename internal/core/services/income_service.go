package services

import (
	"context"

	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// incomeService exposes the income ledger reads. Entries are written inside
// deposit and payment transactions, never through this service.
type incomeService struct {
	incomeRepo portsrepo.IncomeRepositoryFacade
}

// NewIncomeService creates a new IncomeService.
func NewIncomeService(incomeRepo portsrepo.IncomeRepositoryFacade) portssvc.IncomeSvcFacade {
	return &incomeService{incomeRepo: incomeRepo}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

// ListIncome retrieves a paginated list of income entries, newest first.
func (s *incomeService) ListIncome(ctx context.Context, params dto.ListIncomeParams) (*dto.ListIncomeResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.incomeRepo.ListIncomeEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListIncomeResponse{
		Entries:   dto.ToListIncomeEntryResponse(entries),
		NextToken: nextToken,
	}, nil
}
