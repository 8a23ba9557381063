package services

import (
	"github.com/hisabat-app/hisabat_backend/internal/core/events"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
)

// NewServiceContainer wires the repositories and adapters into the full set
// of application services.
func NewServiceContainer(provider *portsrepo.RepositoryProvider, publisher events.Publisher, remainderDueDays int) *portssvc.ServiceContainer {
	customerSvc := NewCustomerService(provider.CustomerRepo)
	activitySvc := NewActivityService(provider.ActivityRepo)

	return &portssvc.ServiceContainer{
		Customer: customerSvc,
		Activity: activitySvc,
		Deposit: NewDepositService(
			provider.DepositRepo,
			provider.ReceivableRepo,
			provider.IncomeRepo,
			customerSvc,
			activitySvc,
			provider.Attachments,
			publisher,
			remainderDueDays,
		),
		Receivable: NewReceivableService(
			provider.ReceivableRepo,
			provider.IncomeRepo,
			customerSvc,
			activitySvc,
			provider.Attachments,
			publisher,
		),
		Income:    NewIncomeService(provider.IncomeRepo),
		Dashboard: NewDashboardService(provider.DashboardRepo, provider.StatsCache),
	}
}
