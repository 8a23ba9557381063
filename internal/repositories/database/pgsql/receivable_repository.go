package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/apperrors"
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat_backend/internal/models"
	"github.com/hisabat-app/hisabat_backend/internal/utils/mapping"
	"github.com/hisabat-app/hisabat_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReceivableRepository struct {
	BaseRepository
}

// newPgxReceivableRepository creates a new repository for receivable data.
func newPgxReceivableRepository(pool *pgxpool.Pool) portsrepo.ReceivableRepositoryWithTx {
	return &PgxReceivableRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceivableRepositoryWithTx = (*PgxReceivableRepository)(nil)

const receivableColumns = `receivable_id, customer_id, amount, paid_amount, due_date, description, notes, status, created_at, last_updated_at`

func scanReceivable(row pgx.Row) (models.Receivable, error) {
	var m models.Receivable
	err := row.Scan(
		&m.ReceivableID,
		&m.CustomerID,
		&m.Amount,
		&m.PaidAmount,
		&m.DueDate,
		&m.Description,
		&m.Notes,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func insertReceivable(ctx context.Context, exec interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}, receivable domain.Receivable) error {
	m := mapping.ToModelReceivable(receivable)

	query := `
		INSERT INTO receivables (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := exec.Exec(ctx, query,
		m.ReceivableID,
		m.CustomerID,
		m.Amount,
		m.PaidAmount,
		m.DueDate,
		m.Description,
		m.Notes,
		m.Status,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: receivable with ID %s already exists", apperrors.ErrDuplicate, m.ReceivableID)
		}
		return fmt.Errorf("failed to save receivable %s: %w", m.ReceivableID, err)
	}
	return nil
}

// SaveReceivable inserts a new receivable.
func (r *PgxReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	return insertReceivable(ctx, r.Pool, receivable)
}

// SaveReceivableInTx inserts a new receivable within an existing transaction.
// Used when a partial deposit creates its remainder receivable.
func (r *PgxReceivableRepository) SaveReceivableInTx(ctx context.Context, tx pgx.Tx, receivable domain.Receivable) error {
	return insertReceivable(ctx, tx, receivable)
}

// UpdateReceivableInTx persists changes to an existing receivable within an
// existing transaction. Callers hold the row lock from FindReceivableForUpdate,
// so the full-row overwrite cannot clobber a concurrently applied payment.
func (r *PgxReceivableRepository) UpdateReceivableInTx(ctx context.Context, tx pgx.Tx, receivable domain.Receivable) error {
	m := mapping.ToModelReceivable(receivable)

	query := `
		UPDATE receivables
		SET customer_id = $2, amount = $3, paid_amount = $4, due_date = $5,
		    description = $6, notes = $7, status = $8, last_updated_at = $9
		WHERE receivable_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ReceivableID,
		m.CustomerID,
		m.Amount,
		m.PaidAmount,
		m.DueDate,
		m.Description,
		m.Notes,
		m.Status,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update receivable %s: %w", m.ReceivableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteReceivable removes a receivable permanently. Payments already
// recorded against it keep their rows and their posted income.
func (r *PgxReceivableRepository) DeleteReceivable(ctx context.Context, receivableID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM receivables WHERE receivable_id = $1;`, receivableID)
	if err != nil {
		return fmt.Errorf("failed to delete receivable %s: %w", receivableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReceivableByID retrieves a receivable by its ID.
func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE receivable_id = $1;`

	m, err := scanReceivable(r.Pool.QueryRow(ctx, query, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receivable by ID %s: %w", receivableID, err)
	}

	d := mapping.ToDomainReceivable(m)
	return &d, nil
}

// FindReceivableForUpdate locks the receivable row for the duration of the
// transaction and returns its current state. Concurrent payments serialize here.
func (r *PgxReceivableRepository) FindReceivableForUpdate(ctx context.Context, tx pgx.Tx, receivableID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE receivable_id = $1 FOR UPDATE;`

	m, err := scanReceivable(tx.QueryRow(ctx, query, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock receivable %s: %w", receivableID, err)
	}

	d := mapping.ToDomainReceivable(m)
	return &d, nil
}

// ApplyPaymentInTx updates the receivable's paid amount and status within an
// existing transaction. Callers hold the row lock from FindReceivableForUpdate.
func (r *PgxReceivableRepository) ApplyPaymentInTx(ctx context.Context, tx pgx.Tx, receivableID string, paidAmount decimal.Decimal, status domain.ReceivableStatus, updatedAt time.Time) error {
	query := `
		UPDATE receivables
		SET paid_amount = $2, status = $3, last_updated_at = $4
		WHERE receivable_id = $1;
	`
	tag, err := tx.Exec(ctx, query, receivableID, paidAmount, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to apply payment to receivable %s: %w", receivableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePaymentInTx persists a payment row within an existing transaction. A
// replayed idempotency key violates the unique index and maps to ErrDuplicate.
func (r *PgxReceivableRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	var idemKey sql.NullString
	if m.IdempotencyKey != "" {
		idemKey = sql.NullString{String: m.IdempotencyKey, Valid: true}
	}

	query := `
		INSERT INTO payments (payment_id, receivable_id, amount, receipt_key, idempotency_key, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.ReceivableID,
		m.Amount,
		m.ReceiptKey,
		idemKey,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment already recorded for idempotency key", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// ListPaymentsByReceivable retrieves the payment history of a receivable, newest first.
func (r *PgxReceivableRepository) ListPaymentsByReceivable(ctx context.Context, receivableID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, receivable_id, amount, receipt_key, idempotency_key, created_at, last_updated_at
		FROM payments
		WHERE receivable_id = $1
		ORDER BY created_at DESC, payment_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, receivableID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for receivable %s: %w", receivableID, err)
	}
	defer rows.Close()

	var modelPayments []models.Payment
	for rows.Next() {
		var m models.Payment
		var idemKey sql.NullString
		if err := rows.Scan(&m.PaymentID, &m.ReceivableID, &m.Amount, &m.ReceiptKey, &idemKey, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		if idemKey.Valid {
			m.IdempotencyKey = idemKey.String
		}
		modelPayments = append(modelPayments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	return mapping.ToDomainPaymentSlice(modelPayments), nil
}

// receivableStatusFilter returns the SQL condition and bind value for a
// status filter. Stored rows keep the status they had when last written, so a
// pending row whose due date has passed must match overdue queries rather
// than pending ones; today is the UTC calendar date used as the boundary.
func receivableStatusFilter(status domain.ReceivableStatus, today time.Time, argIndex int) (string, any) {
	switch status {
	case domain.ReceivableStatusOverdue:
		return fmt.Sprintf("(status = 'overdue' OR (status = 'pending' AND due_date < $%d))", argIndex), today
	case domain.ReceivableStatusPending:
		return fmt.Sprintf("(status = 'pending' AND due_date >= $%d)", argIndex), today
	default:
		return fmt.Sprintf("status = $%d", argIndex), status
	}
}

// ListReceivables retrieves a page of receivables ordered by creation time descending.
func (r *PgxReceivableRepository) ListReceivables(ctx context.Context, limit int, nextToken *string, customerID *string, status *domain.ReceivableStatus) ([]domain.Receivable, *string, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables`
	args := []interface{}{limit + 1}
	var conditions []string

	if customerID != nil && *customerID != "" {
		args = append(args, *customerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if status != nil && *status != "" {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		cond, arg := receivableStatusFilter(*status, today, len(args)+1)
		args = append(args, arg)
		conditions = append(conditions, cond)
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, id)
		conditions = append(conditions, fmt.Sprintf("(created_at, receivable_id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += `
		ORDER BY created_at DESC, receivable_id DESC
		LIMIT $1;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list receivables: %w", err)
	}
	defer rows.Close()

	var modelReceivables []models.Receivable
	for rows.Next() {
		m, err := scanReceivable(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan receivable row: %w", err)
		}
		modelReceivables = append(modelReceivables, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating receivable rows: %w", err)
	}

	var token *string
	if len(modelReceivables) > limit {
		modelReceivables = modelReceivables[:limit]
		last := modelReceivables[limit-1]
		t := pagination.EncodeToken(last.CreatedAt, last.ReceivableID)
		token = &t
	}

	return mapping.ToDomainReceivableSlice(modelReceivables), token, nil
}
