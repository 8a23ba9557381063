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

type PgxDepositRepository struct {
	BaseRepository
}

// newPgxDepositRepository creates a new repository for deposit data.
func newPgxDepositRepository(pool *pgxpool.Pool) portsrepo.DepositRepositoryWithTx {
	return &PgxDepositRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepositRepositoryWithTx = (*PgxDepositRepository)(nil)

const depositColumns = `deposit_id, customer_id, amount, total_amount, description, status, receipt_key, created_at, last_updated_at`

func scanDeposit(row pgx.Row) (models.Deposit, error) {
	var m models.Deposit
	err := row.Scan(
		&m.DepositID,
		&m.CustomerID,
		&m.Amount,
		&m.TotalAmount,
		&m.Description,
		&m.Status,
		&m.ReceiptKey,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveDepositInTx inserts a new deposit within an existing transaction.
// Deposit creation shares its transaction with the remainder receivable and
// the income entry, so all three land or none do.
func (r *PgxDepositRepository) SaveDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error {
	m := mapping.ToModelDeposit(deposit)

	query := `
		INSERT INTO deposits (` + depositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.DepositID,
		m.CustomerID,
		m.Amount,
		m.TotalAmount,
		m.Description,
		m.Status,
		m.ReceiptKey,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: deposit with ID %s already exists", apperrors.ErrDuplicate, m.DepositID)
		}
		return fmt.Errorf("failed to save deposit %s: %w", m.DepositID, err)
	}
	return nil
}

// FindDepositForUpdate locks the deposit row for the duration of the
// transaction and returns its current state.
func (r *PgxDepositRepository) FindDepositForUpdate(ctx context.Context, tx pgx.Tx, depositID string) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE deposit_id = $1 FOR UPDATE;`

	m, err := scanDeposit(tx.QueryRow(ctx, query, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock deposit %s: %w", depositID, err)
	}

	d := mapping.ToDomainDeposit(m)
	return &d, nil
}

// UpdateDepositInTx persists changes to an existing deposit within an existing
// transaction. Callers hold the row lock from FindDepositForUpdate.
func (r *PgxDepositRepository) UpdateDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error {
	m := mapping.ToModelDeposit(deposit)

	query := `
		UPDATE deposits
		SET customer_id = $2, amount = $3, total_amount = $4, description = $5,
		    status = $6, receipt_key = $7, last_updated_at = $8
		WHERE deposit_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.DepositID,
		m.CustomerID,
		m.Amount,
		m.TotalAmount,
		m.Description,
		m.Status,
		m.ReceiptKey,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit %s: %w", m.DepositID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDeposit removes a deposit permanently. Income posted when the deposit
// was taken is never reversed.
func (r *PgxDepositRepository) DeleteDeposit(ctx context.Context, depositID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM deposits WHERE deposit_id = $1;`, depositID)
	if err != nil {
		return fmt.Errorf("failed to delete deposit %s: %w", depositID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDepositByID retrieves a deposit by its ID.
func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE deposit_id = $1;`

	m, err := scanDeposit(r.Pool.QueryRow(ctx, query, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deposit by ID %s: %w", depositID, err)
	}

	d := mapping.ToDomainDeposit(m)
	return &d, nil
}

// ListDeposits retrieves a page of deposits ordered by creation time descending.
func (r *PgxDepositRepository) ListDeposits(ctx context.Context, limit int, nextToken *string, customerID *string) ([]domain.Deposit, *string, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits`
	args := []interface{}{limit + 1}
	var conditions []string

	if customerID != nil && *customerID != "" {
		args = append(args, *customerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, id)
		conditions = append(conditions, fmt.Sprintf("(created_at, deposit_id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += `
		ORDER BY created_at DESC, deposit_id DESC
		LIMIT $1;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	defer rows.Close()

	var modelDeposits []models.Deposit
	for rows.Next() {
		m, err := scanDeposit(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan deposit row: %w", err)
		}
		modelDeposits = append(modelDeposits, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating deposit rows: %w", err)
	}

	var token *string
	if len(modelDeposits) > limit {
		modelDeposits = modelDeposits[:limit]
		last := modelDeposits[limit-1]
		t := pagination.EncodeToken(last.CreatedAt, last.DepositID)
		token = &t
	}

	return mapping.ToDomainDepositSlice(modelDeposits), token, nil
}
