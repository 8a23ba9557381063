package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hisabat-app/hisabat_backend/internal/apperrors"
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat_backend/internal/models"
	"github.com/hisabat-app/hisabat_backend/internal/utils/mapping"
	"github.com/hisabat-app/hisabat_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIncomeRepository struct {
	pool *pgxpool.Pool
}

// newPgxIncomeRepository creates a new repository for the income ledger.
func newPgxIncomeRepository(pool *pgxpool.Pool) portsrepo.IncomeRepositoryFacade {
	return &PgxIncomeRepository{pool: pool}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

// SaveIncomeEntryInTx inserts an income entry within an existing transaction.
// The income ledger is append-only; there is no update or delete path.
func (r *PgxIncomeRepository) SaveIncomeEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error {
	m := mapping.ToModelIncomeEntry(entry)

	query := `
		INSERT INTO income_entries (income_id, amount, source, reference_id, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		m.IncomeID,
		m.Amount,
		m.Source,
		m.ReferenceID,
		m.Description,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: income entry with ID %s already exists", apperrors.ErrDuplicate, m.IncomeID)
		}
		return fmt.Errorf("failed to save income entry %s: %w", m.IncomeID, err)
	}
	return nil
}

// ListIncomeEntries retrieves a page of income entries ordered by creation time descending.
func (r *PgxIncomeRepository) ListIncomeEntries(ctx context.Context, limit int, nextToken *string) ([]domain.IncomeEntry, *string, error) {
	query := `
		SELECT income_id, amount, source, reference_id, description, created_at, last_updated_at
		FROM income_entries
	`
	args := []interface{}{limit + 1}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (created_at, income_id) < ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += `
		ORDER BY created_at DESC, income_id DESC
		LIMIT $1;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list income entries: %w", err)
	}
	defer rows.Close()

	var modelEntries []models.IncomeEntry
	for rows.Next() {
		var m models.IncomeEntry
		if err := rows.Scan(&m.IncomeID, &m.Amount, &m.Source, &m.ReferenceID, &m.Description, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan income entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating income entry rows: %w", err)
	}

	var token *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[limit-1]
		t := pagination.EncodeToken(last.CreatedAt, last.IncomeID)
		token = &t
	}

	return mapping.ToDomainIncomeEntrySlice(modelEntries), token, nil
}
