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
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCustomerRepository reads the customer directory. The directory is owned
// by the wider system, so this repository exposes no writes.
type PgxCustomerRepository struct {
	pool *pgxpool.Pool
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{pool: pool}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, phone, created_at, last_updated_at
		FROM customers
		WHERE customer_id = $1;
	`
	var m models.Customer
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}

	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

// ListCustomers retrieves a page of customers ordered by creation time descending.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	args := []interface{}{limit + 1}
	query := `
		SELECT customer_id, name, phone, created_at, last_updated_at
		FROM customers
	`
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (created_at, customer_id) < ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += `
		ORDER BY created_at DESC, customer_id DESC
		LIMIT $1;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var modelCustomers []models.Customer
	for rows.Next() {
		var m models.Customer
		if err := rows.Scan(&m.CustomerID, &m.Name, &m.Phone, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		modelCustomers = append(modelCustomers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating customer rows: %w", err)
	}

	var token *string
	if len(modelCustomers) > limit {
		modelCustomers = modelCustomers[:limit]
		last := modelCustomers[limit-1]
		t := pagination.EncodeToken(last.CreatedAt, last.CustomerID)
		token = &t
	}

	return mapping.ToDomainCustomerSlice(modelCustomers), token, nil
}
