// Command seed populates the CRM database with sample or fixture data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"graphql-crm/internal/config"
	"graphql-crm/internal/database"
	"graphql-crm/internal/repository"
	"graphql-crm/internal/seed"
	"graphql-crm/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	clear bool
	file  string
	s3    bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the CRM database",
		Long: `Populate the CRM database with the built-in sample data, or with a
fixture file (.json, .jsonl, optionally gzipped). Existing customers and
products are skipped, so seeding is safe to repeat.`,
		Example: `  seed
  seed --clear
  seed --file fixtures/sample.jsonl.gz --s3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.s3 && opts.file == "" {
				return fmt.Errorf("--s3 requires --file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.clear, "clear", false, "delete all customers, products and orders first")
	flags.StringVarP(&opts.file, "file", "f", "", "fixture file to load instead of the built-in data")
	flags.BoolVar(&opts.s3, "s3", false, "look for --file in the configured S3 bucket before the local file system")

	return cmd
}

func run(ctx context.Context, opts options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadForSeed()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fixture, err := loadFixture(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	customerRepo := repository.NewCustomerRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	seeder := seed.NewSeeder(
		service.NewCustomerService(customerRepo, logger),
		service.NewProductService(productRepo, logger),
		service.NewOrderService(orderRepo, customerRepo, productRepo, logger),
		func(ctx context.Context) error { return database.Clear(ctx, pool) },
		logger,
	)

	report, err := seeder.Run(ctx, fixture, opts.clear)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	for _, msg := range report.Errors {
		logger.Warn().Str("error", msg).Msg("record skipped")
	}
	fmt.Printf("Customers: %d created, %d already present\n", report.CustomersCreated, report.CustomersSkipped)
	fmt.Printf("Products:  %d created, %d already present\n", report.ProductsCreated, report.ProductsSkipped)
	fmt.Printf("Orders:    %d created\n", report.OrdersCreated)
	if n := len(report.Errors); n > 0 {
		fmt.Printf("%d records failed, see log for details\n", n)
	}

	return nil
}

func loadFixture(ctx context.Context, cfg *config.Config, opts options, logger zerolog.Logger) (*seed.Fixture, error) {
	if opts.file == "" {
		logger.Info().Msg("using built-in sample data")
		return seed.DefaultFixture(), nil
	}

	fileLoader := seed.NewFileLoader(logger)

	var s3Loader seed.Loader
	if opts.s3 || cfg.S3.Enabled {
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3 bucket is not configured (set S3_BUCKET)")
		}
		l, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	}

	fixture, err := seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger).Load(ctx, opts.file)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}
	return fixture, nil
}
