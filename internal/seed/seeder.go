package seed

import (
	"context"
	"fmt"
	"strings"

	"graphql-crm/internal/model"
	"graphql-crm/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Report summarises a seeding run. Errors holds expected per-record
// failures; the run continues past them.
type Report struct {
	CustomersCreated int
	CustomersSkipped int
	ProductsCreated  int
	ProductsSkipped  int
	OrdersCreated    int
	Errors           []string
}

func (r *Report) fail(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Seeder loads fixtures through the services, so every record passes the
// same validation as an API request.
type Seeder struct {
	customers service.CustomerService
	products  service.ProductService
	orders    service.OrderService
	clear     func(ctx context.Context) error
	logger    zerolog.Logger
}

// NewSeeder creates a new seeder. clear empties every table and is only
// called when a run asks for it.
func NewSeeder(
	customers service.CustomerService,
	products service.ProductService,
	orders service.OrderService,
	clear func(ctx context.Context) error,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		customers: customers,
		products:  products,
		orders:    orders,
		clear:     clear,
		logger:    logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads fixture. Customers whose email exists and products whose name
// exists are skipped, so a fixture can be applied repeatedly. Orders are
// always created. The returned error is set only for infrastructure
// failures.
func (s *Seeder) Run(ctx context.Context, fixture *Fixture, clear bool) (*Report, error) {
	if clear {
		s.logger.Warn().Msg("clearing existing data")
		if err := s.clear(ctx); err != nil {
			return nil, err
		}
	}

	report := &Report{}

	if err := s.seedCustomers(ctx, fixture.Customers, report); err != nil {
		return nil, err
	}
	if err := s.seedProducts(ctx, fixture.Products, report); err != nil {
		return nil, err
	}
	if err := s.seedOrders(ctx, fixture.Orders, report); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("customers_created", report.CustomersCreated).
		Int("customers_skipped", report.CustomersSkipped).
		Int("products_created", report.ProductsCreated).
		Int("products_skipped", report.ProductsSkipped).
		Int("orders_created", report.OrdersCreated).
		Int("errors", len(report.Errors)).
		Msg("seeding completed")

	return report, nil
}

func (s *Seeder) seedCustomers(ctx context.Context, inputs []model.CustomerInput, report *Report) error {
	pending := make([]model.CustomerInput, 0, len(inputs))
	for _, in := range inputs {
		existing, err := s.customers.GetByEmail(ctx, strings.TrimSpace(in.Email))
		if err != nil {
			return fmt.Errorf("failed to look up customer %s: %w", in.Email, err)
		}
		if existing != nil {
			report.CustomersSkipped++
			continue
		}
		pending = append(pending, in)
	}

	if len(pending) == 0 {
		return nil
	}

	result, err := s.customers.BulkCreateCustomers(ctx, pending)
	if err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}

	report.CustomersCreated += result.SuccessCount
	report.Errors = append(report.Errors, result.Errors...)
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context, inputs []model.ProductInput, report *Report) error {
	for i, in := range inputs {
		existing, err := s.products.GetByName(ctx, strings.TrimSpace(in.Name))
		if err != nil {
			return fmt.Errorf("failed to look up product %s: %w", in.Name, err)
		}
		if existing != nil {
			report.ProductsSkipped++
			continue
		}

		if _, err := s.products.CreateProduct(ctx, in); err != nil {
			msgs, ok := model.Messages(err)
			if !ok {
				return fmt.Errorf("failed to seed product %s: %w", in.Name, err)
			}
			report.fail("Product %d (%s): %s", i+1, in.Name, strings.Join(msgs, "; "))
			continue
		}
		report.ProductsCreated++
	}
	return nil
}

func (s *Seeder) seedOrders(ctx context.Context, fixtures []OrderFixture, report *Report) error {
	for i, of := range fixtures {
		customer, err := s.customers.GetByEmail(ctx, of.CustomerEmail)
		if err != nil {
			return fmt.Errorf("failed to look up customer %s: %w", of.CustomerEmail, err)
		}
		if customer == nil {
			report.fail("Order %d: customer %s not found", i+1, of.CustomerEmail)
			continue
		}

		productIDs, missing, err := s.resolveProducts(ctx, of.ProductNames)
		if err != nil {
			return err
		}
		if missing != "" {
			report.fail("Order %d: product %s not found", i+1, missing)
			continue
		}

		ids := make([]string, len(productIDs))
		for j, id := range productIDs {
			ids[j] = id.String()
		}

		_, err = s.orders.CreateOrder(ctx, model.OrderInput{
			CustomerID: customer.ID.String(),
			ProductIDs: ids,
			OrderDate:  of.OrderDate,
		})
		if err != nil {
			msgs, ok := model.Messages(err)
			if !ok {
				return fmt.Errorf("failed to seed order %d: %w", i+1, err)
			}
			report.fail("Order %d: %s", i+1, strings.Join(msgs, "; "))
			continue
		}
		report.OrdersCreated++
	}
	return nil
}

// resolveProducts maps names to ids. missing is the first unknown name.
func (s *Seeder) resolveProducts(ctx context.Context, names []string) (ids []uuid.UUID, missing string, err error) {
	ids = make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		p, err := s.products.GetByName(ctx, name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to look up product %s: %w", name, err)
		}
		if p == nil {
			return nil, name, nil
		}
		ids = append(ids, p.ID)
	}
	return ids, "", nil
}
