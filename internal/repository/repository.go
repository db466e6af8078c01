package repository

import (
	"context"

	"graphql-crm/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a customer within the provided transaction.
	// Returns model.ErrEmailExists when the email is already taken.
	Create(ctx context.Context, tx pgx.Tx, customer *model.Customer) error

	// EmailExists reports whether a customer with the exact email exists.
	EmailExists(ctx context.Context, tx pgx.Tx, email string) (bool, error)

	// GetByID retrieves a single customer, or nil when none matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// GetByIDForShare retrieves a customer within tx and share-locks the row,
	// or returns nil when none matches.
	GetByIDForShare(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Customer, error)

	// GetByEmail retrieves a customer by exact email, or nil when none matches.
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)

	// List retrieves the filtered customers inside the requested window.
	List(ctx context.Context, filter model.CustomerFilter, page model.PageRequest) ([]model.Customer, error)

	// Count returns the number of customers matching the filter.
	Count(ctx context.Context, filter model.CustomerFilter) (int, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// GetByID retrieves a single product, or nil when none matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDsForShare retrieves every existing product among ids within tx
	// and share-locks the returned rows. Missing ids are simply absent.
	GetByIDsForShare(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.Product, error)

	// GetByName retrieves the oldest product with the exact name, or nil.
	GetByName(ctx context.Context, name string) (*model.Product, error)

	// ListByOrderID retrieves the products attached to an order.
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.Product, error)

	// List retrieves the filtered products inside the requested window.
	List(ctx context.Context, filter model.ProductFilter, page model.PageRequest) ([]model.Product, error)

	// Count returns the number of products matching the filter.
	Count(ctx context.Context, filter model.ProductFilter) (int, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// AddProducts associates products with an order within the provided transaction.
	AddProducts(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) error

	// GetByID retrieves a single order, or nil when none matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByCustomerID retrieves every order placed by a customer.
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// List retrieves the filtered orders inside the requested window.
	List(ctx context.Context, filter model.OrderFilter, page model.PageRequest) ([]model.Order, error)

	// Count returns the number of orders matching the filter.
	Count(ctx context.Context, filter model.OrderFilter) (int, error)
}
