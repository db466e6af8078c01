package service

import (
	"context"
	"fmt"
	"time"

	"graphql-crm/internal/model"
	"graphql-crm/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder checks the customer, then the product list, then every
// product, and writes the order with its products in one transaction. The
// customer and product rows are read inside that transaction under a share
// lock, so the total is a snapshot of the prices the order was written with.
func (s *orderService) CreateOrder(ctx context.Context, input model.OrderInput) (*model.Order, error) {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		s.logger.Debug().Str("customer_id", input.CustomerID).Msg("malformed customer ID")
		return nil, model.ErrCustomerNotFound
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var order *model.Order
	order, err = s.createInTx(ctx, tx, customerID, input)
	if err != nil {
		return nil, err
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("customer_id", customerID.String()).
		Str("total_amount", order.TotalAmount.StringFixed(2)).
		Msg("order created successfully")

	return order, nil
}

func (s *orderService) createInTx(ctx context.Context, tx pgx.Tx, customerID uuid.UUID, input model.OrderInput) (*model.Order, error) {
	customer, err := s.customerRepo.GetByIDForShare(ctx, tx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if customer == nil {
		s.logger.Debug().Str("customer_id", customerID.String()).Msg("customer not found")
		return nil, model.ErrCustomerNotFound
	}

	if len(input.ProductIDs) == 0 {
		s.logger.Debug().Msg("order without products rejected")
		return nil, model.ErrNoProducts
	}

	productIDs, ok := parseProductIDs(input.ProductIDs)
	if !ok {
		s.logger.Debug().Strs("product_ids", input.ProductIDs).Msg("malformed product ID")
		return nil, model.ErrProductNotFound
	}

	products, err := s.productRepo.GetByIDsForShare(ctx, tx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve products")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if len(products) != len(productIDs) {
		s.logger.Warn().
			Int("requested", len(productIDs)).
			Int("found", len(products)).
			Msg("product validation failed")
		return nil, model.ErrProductNotFound
	}

	total := model.OrderTotal(products)
	if total.GreaterThan(model.MaxAmount) {
		s.logger.Debug().Str("total_amount", total.String()).Msg("order total out of range")
		return nil, model.ErrTotalTooLarge
	}

	order := &model.Order{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		TotalAmount: total,
		OrderDate:   time.Now().UTC(),
	}
	if input.OrderDate != nil {
		order.OrderDate = input.OrderDate.UTC()
	}

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.orderRepo.AddProducts(ctx, tx, order.ID, productIDs); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("product_count", len(productIDs)).
			Msg("failed to attach products")
		return nil, fmt.Errorf("failed to attach order products: %w", err)
	}

	return order, nil
}

// parseProductIDs parses and de-duplicates ids, keeping first occurrence
// order. ok is false when any id is malformed.
func parseProductIDs(raw []string) (ids []uuid.UUID, ok bool) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids = make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, false
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, true
}

// GetByID retrieves an order. Malformed or unknown ids yield nil.
func (s *orderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id).Msg("order not found")
	}

	return order, nil
}

// ListByCustomer retrieves every order placed by a customer.
func (s *orderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to get customer orders")
		return nil, fmt.Errorf("failed to get customer orders: %w", err)
	}
	return orders, nil
}

// List retrieves a window of the filtered orders.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter, page model.PageRequest) ([]model.Order, error) {
	orders, err := s.orderRepo.List(ctx, filter, page)
	if err != nil {
		if _, ok := model.Messages(err); ok {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Count returns the size of the filtered order set.
func (s *orderService) Count(ctx context.Context, filter model.OrderFilter) (int, error) {
	count, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
