package repository

import (
	"context"
	"errors"
	"fmt"

	"graphql-crm/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const customerEmailConstraint = "customers_email_key"

var customerColumns = []string{"c.id", "c.name", "c.email", "c.phone", "c.created_at"}

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

func scanCustomer(row rowScanner) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	return c, err
}

// BeginTx starts a new database transaction.
func (r *customerRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a customer within the provided transaction.
func (r *customerRepository) Create(ctx context.Context, tx pgx.Tx, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, customerEmailConstraint) {
			r.logger.Debug().Str("email", customer.Email).Msg("email already exists")
			return model.ErrEmailExists
		}
		r.logger.Error().
			Err(err).
			Str("customer_id", customer.ID.String()).
			Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customer.ID.String()).
		Msg("customer created successfully")

	return nil
}

// EmailExists reports whether a customer with the exact email exists.
func (r *customerRepository) EmailExists(ctx context.Context, tx pgx.Tx, email string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to check email uniqueness")
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return exists, nil
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return r.getOne(ctx, r.pool, "c.id", id, "")
}

// GetByIDForShare retrieves a customer within tx and holds a share lock on
// the row until tx ends.
func (r *customerRepository) GetByIDForShare(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Customer, error) {
	return r.getOne(ctx, tx, "c.id", id, "FOR SHARE")
}

// GetByEmail retrieves a customer by exact email.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.getOne(ctx, r.pool, "c.email", email, "")
}

func (r *customerRepository) getOne(ctx context.Context, q querier, column string, value any, lock string) (*model.Customer, error) {
	qb := psql.Select(customerColumns...).
		From("customers c").
		Where(column+" = ?", value)
	if lock != "" {
		qb = qb.Suffix(lock)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build customer query: %w", err)
	}

	c, err := scanCustomer(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("lookup", column).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("lookup", column).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// List retrieves the filtered customers inside the requested window.
func (r *customerRepository) List(ctx context.Context, filter model.CustomerFilter, page model.PageRequest) ([]model.Customer, error) {
	qb := psql.Select(customerColumns...).From("customers c")
	if preds := customerPredicates(filter); len(preds) > 0 {
		qb = qb.Where(preds)
	}

	qb, err := applyPage(qb, page, customerSortColumns, "c.created_at", "c.id")
	if err != nil {
		return nil, err
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build customer query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", page.Limit).
			Int("offset", page.Offset).
			Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating customer rows")
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Count returns the number of customers matching the filter.
func (r *customerRepository) Count(ctx context.Context, filter model.CustomerFilter) (int, error) {
	qb := psql.Select("COUNT(*)").From("customers c")
	if preds := customerPredicates(filter); len(preds) > 0 {
		qb = qb.Where(preds)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build customer count query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count customers")
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return count, nil
}
