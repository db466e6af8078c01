package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"graphql-crm/internal/model"
	"graphql-crm/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	repo     repository.CustomerRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		repo:     repo,
		validate: newValidator(),
		logger:   logger.With().Str("service", "customer").Logger(),
	}
}

// CreateCustomer validates and persists a single customer.
func (s *customerService) CreateCustomer(ctx context.Context, input model.CustomerInput) (*model.Customer, error) {
	input = normalizeCustomerInput(input)

	if err := validateStruct(s.validate, input); err != nil {
		s.logger.Debug().Err(err).Msg("customer input rejected")
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	customer, err := s.insert(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info().
		Str("customer_id", customer.ID.String()).
		Msg("customer created successfully")

	return customer, nil
}

// BulkCreateCustomers processes entries in input order inside one
// transaction. Each entry runs in its own savepoint so a rejected entry
// leaves the others intact.
func (s *customerService) BulkCreateCustomers(ctx context.Context, inputs []model.CustomerInput) (*model.BulkCreateResult, error) {
	result := &model.BulkCreateResult{
		Customers: []model.Customer{},
		Errors:    []string{},
	}
	if len(inputs) == 0 {
		return result, nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to bulk create customers: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for i, input := range inputs {
		input = normalizeCustomerInput(input)

		var customer *model.Customer
		customer, err = s.insertSavepoint(ctx, tx, input)
		if err != nil {
			msgs, ok := model.Messages(err)
			if !ok {
				s.logger.Error().Err(err).Int("index", i).Msg("bulk create aborted")
				return nil, fmt.Errorf("failed to bulk create customers: %w", err)
			}
			err = nil
			result.Errors = append(result.Errors,
				fmt.Sprintf("Customer %d (%s): %s", i+1, input.Email, strings.Join(msgs, "; ")))
			continue
		}

		result.Customers = append(result.Customers, *customer)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to bulk create customers: %w", err)
	}

	result.SuccessCount = len(result.Customers)
	result.ErrorCount = len(result.Errors)

	s.logger.Info().
		Int("success_count", result.SuccessCount).
		Int("error_count", result.ErrorCount).
		Msg("bulk customer import finished")

	return result, nil
}

// insertSavepoint validates and inserts one bulk entry inside a nested transaction.
func (s *customerService) insertSavepoint(ctx context.Context, tx pgx.Tx, input model.CustomerInput) (*model.Customer, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create savepoint: %w", err)
	}

	customer, err := s.insert(ctx, sp, input)
	if err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback savepoint")
			return nil, fmt.Errorf("failed to rollback savepoint: %w", rbErr)
		}
		return nil, err
	}

	if err := sp.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to release savepoint: %w", err)
	}

	return customer, nil
}

// insert checks email uniqueness and writes the customer row.
func (s *customerService) insert(ctx context.Context, tx pgx.Tx, input model.CustomerInput) (*model.Customer, error) {
	exists, err := s.repo.EmailExists(ctx, tx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	if exists {
		s.logger.Debug().Str("email", input.Email).Msg("email already exists")
		return nil, model.ErrEmailExists
	}

	customer := &model.Customer{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, tx, customer); err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetByID retrieves a customer. Malformed or unknown ids yield nil.
func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	customer, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// GetByEmail retrieves a customer by exact email.
func (s *customerService) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	customer, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get customer by email")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// List retrieves a window of the filtered customers.
func (s *customerService) List(ctx context.Context, filter model.CustomerFilter, page model.PageRequest) ([]model.Customer, error) {
	customers, err := s.repo.List(ctx, filter, page)
	if err != nil {
		if _, ok := model.Messages(err); ok {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// Count returns the size of the filtered customer set.
func (s *customerService) Count(ctx context.Context, filter model.CustomerFilter) (int, error) {
	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count customers")
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
