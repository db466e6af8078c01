package service

import (
	"context"

	"graphql-crm/internal/model"

	"github.com/google/uuid"
)

// CustomerService defines operations for customer management.
type CustomerService interface {
	// CreateCustomer validates and persists a single customer.
	// Expected failures are returned as model.DomainError or model.ValidationErrors.
	CreateCustomer(ctx context.Context, input model.CustomerInput) (*model.Customer, error)

	// BulkCreateCustomers persists every valid entry and reports the rest.
	// Only infrastructure failures are returned as an error.
	BulkCreateCustomers(ctx context.Context, inputs []model.CustomerInput) (*model.BulkCreateResult, error)

	// GetByID retrieves a customer. Malformed or unknown ids yield nil.
	GetByID(ctx context.Context, id string) (*model.Customer, error)

	// GetByEmail retrieves a customer by exact email.
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)

	// List retrieves a window of the filtered customers.
	List(ctx context.Context, filter model.CustomerFilter, page model.PageRequest) ([]model.Customer, error)

	// Count returns the size of the filtered customer set.
	Count(ctx context.Context, filter model.CustomerFilter) (int, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// CreateProduct validates and persists a product.
	CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// GetByID retrieves a product. Malformed or unknown ids yield nil.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByName retrieves the oldest product with the exact name.
	GetByName(ctx context.Context, name string) (*model.Product, error)

	// ListByOrder retrieves the products attached to an order.
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Product, error)

	// List retrieves a window of the filtered products.
	List(ctx context.Context, filter model.ProductFilter, page model.PageRequest) ([]model.Product, error)

	// Count returns the size of the filtered product set.
	Count(ctx context.Context, filter model.ProductFilter) (int, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder creates an order for an existing customer and its products.
	CreateOrder(ctx context.Context, input model.OrderInput) (*model.Order, error)

	// GetByID retrieves an order. Malformed or unknown ids yield nil.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// ListByCustomer retrieves every order placed by a customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// List retrieves a window of the filtered orders.
	List(ctx context.Context, filter model.OrderFilter, page model.PageRequest) ([]model.Order, error)

	// Count returns the size of the filtered order set.
	Count(ctx context.Context, filter model.OrderFilter) (int, error)
}
