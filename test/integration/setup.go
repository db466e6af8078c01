// Package integration runs the whole stack, from HTTP to PostgreSQL,
// against a disposable database container.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"graphql-crm/internal/database"
	"graphql-crm/internal/graph"
	"graphql-crm/internal/handler"
	"graphql-crm/internal/repository"
	"graphql-crm/internal/router"
	"graphql-crm/internal/seed"
	"graphql-crm/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestAPIKey is the key the test server accepts.
const TestAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a migrated PostgreSQL test container and connection
// pool. It skips the test in -short mode.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromConnString(ctx, connStr, func(cfg *pgxpool.Config) {
		cfg.MaxConns = 10
		cfg.MinConns = 2
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Stack is the fully wired application around a test database.
type Stack struct {
	Handler http.Handler
	Seeder  *seed.Seeder
}

// NewStack wires repositories, services, the GraphQL schema and the router
// the same way cmd/api does.
func NewStack(t *testing.T, db *TestDB) *Stack {
	t.Helper()

	logger := zerolog.Nop()

	customerRepo := repository.NewCustomerRepository(db.Pool, logger)
	productRepo := repository.NewProductRepository(db.Pool, logger)
	orderRepo := repository.NewOrderRepository(db.Pool, logger)

	customerService := service.NewCustomerService(customerRepo, logger)
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, customerRepo, productRepo, logger)

	resolver := graph.NewResolver(customerService, productService, orderService, graph.Options{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}, logger)
	schema, err := graph.NewSchema(resolver)
	require.NoError(t, err)

	mux := router.New(
		handler.NewGraphQLHandler(schema, false, logger),
		handler.NewHealthHandler(db.Pool, logger),
		TestAPIKey,
		logger,
	)

	seeder := seed.NewSeeder(customerService, productService, orderService,
		func(ctx context.Context) error { return database.Clear(ctx, db.Pool) },
		logger,
	)

	return &Stack{Handler: mux, Seeder: seeder}
}

// Response is a decoded GraphQL response.
type Response struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Do posts a GraphQL request to the stack and decodes the response.
func (s *Stack) Do(t *testing.T, query string, variables map[string]interface{}) *Response {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", TestAPIKey)
	w := httptest.NewRecorder()

	s.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

// CleanupDB removes all rows from the application tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if err := database.Clear(context.Background(), pool); err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}
