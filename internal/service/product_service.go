package service

import (
	"context"
	"fmt"
	"time"

	"graphql-crm/internal/model"
	"graphql-crm/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		validate:    newValidator(),
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// CreateProduct validates and persists a product. Prices are stored with
// two decimal places.
func (s *productService) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	input = normalizeProductInput(input)

	if err := validateStruct(s.validate, input); err != nil {
		s.logger.Debug().Err(err).Msg("product input rejected")
		return nil, err
	}

	product := &model.Product{
		ID:        uuid.New(),
		Name:      input.Name,
		Price:     input.Price,
		Stock:     input.Stock,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("price", product.Price.StringFixed(2)).
		Msg("product created successfully")

	return product, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		s.logger.Debug().Str("product_id", id).Msg("malformed product ID")
		return nil, nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetByName retrieves the oldest product with the exact name.
func (s *productService) GetByName(ctx context.Context, name string) (*model.Product, error) {
	product, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to get product by name")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListByOrder retrieves the products attached to an order.
func (s *productService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Product, error) {
	products, err := s.productRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order products")
		return nil, fmt.Errorf("failed to get order products: %w", err)
	}
	return products, nil
}

// List retrieves a window of the filtered products.
func (s *productService) List(ctx context.Context, filter model.ProductFilter, page model.PageRequest) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, filter, page)
	if err != nil {
		if _, ok := model.Messages(err); ok {
			return nil, err
		}
		s.logger.Error().Err(err).
			Int("limit", page.Limit).
			Int("offset", page.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", page.Limit).
		Int("offset", page.Offset).
		Msg("retrieved products")

	return products, nil
}

// Count returns the size of the filtered product set.
func (s *productService) Count(ctx context.Context, filter model.ProductFilter) (int, error) {
	count, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
