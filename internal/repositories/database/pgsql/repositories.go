package pgsql

import (
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the database-backed repositories. The
// attachment store and stats cache are adapters with their own constructors;
// the caller fills those fields in.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CustomerRepo:   newPgxCustomerRepository(pool),
		DepositRepo:    newPgxDepositRepository(pool),
		ReceivableRepo: newPgxReceivableRepository(pool),
		IncomeRepo:     newPgxIncomeRepository(pool),
		ActivityRepo:   newPgxActivityRepository(pool),
		DashboardRepo:  newPgxDashboardRepository(pool),
	}
}
