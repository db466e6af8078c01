package repository

import (
	"context"
	"errors"
	"fmt"

	"graphql-crm/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var productColumns = []string{"p.id", "p.name", "p.price", "p.stock", "p.created_at"}

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt)
	return p, err
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Stock, product.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", product.ID.String()).
			Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.getOne(ctx, psql.Select(productColumns...).
		From("products p").
		Where("p.id = ?", id))
}

// GetByName retrieves the oldest product with the exact name.
func (r *productRepository) GetByName(ctx context.Context, name string) (*model.Product, error) {
	return r.getOne(ctx, psql.Select(productColumns...).
		From("products p").
		Where("p.name = ?", name).
		OrderBy("p.created_at", "p.id").
		Limit(1))
}

func (r *productRepository) getOne(ctx context.Context, qb sq.SelectBuilder) (*model.Product, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	p, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDsForShare retrieves products within tx and holds a share lock on
// every returned row until tx ends.
func (r *productRepository) GetByIDsForShare(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY name, id
		FOR SHARE
	`

	return r.queryProducts(ctx, tx, query, ids)
}

// ListByOrderID retrieves the products attached to an order.
func (r *productRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.stock, p.created_at
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		WHERE op.order_id = $1
		ORDER BY p.name, p.id
	`

	return r.queryProducts(ctx, r.pool, query, orderID)
}

// List retrieves the filtered products inside the requested window.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter, page model.PageRequest) ([]model.Product, error) {
	qb := psql.Select(productColumns...).From("products p")
	if preds := productPredicates(filter); len(preds) > 0 {
		qb = qb.Where(preds)
	}

	qb, err := applyPage(qb, page, productSortColumns, "p.created_at", "p.id")
	if err != nil {
		return nil, err
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	return r.queryProducts(ctx, r.pool, query, args...)
}

// Count returns the number of products matching the filter.
func (r *productRepository) Count(ctx context.Context, filter model.ProductFilter) (int, error) {
	qb := psql.Select("COUNT(*)").From("products p")
	if preds := productPredicates(filter); len(preds) > 0 {
		qb = qb.Where(preds)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build product count query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) queryProducts(ctx context.Context, q querier, query string, args ...any) ([]model.Product, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
