package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables lists every application table, children first.
var Tables = []string{"order_products", "orders", "products", "customers"}

// Clear removes all rows from the application tables in one statement.
func Clear(ctx context.Context, pool *pgxpool.Pool) error {
	query := "TRUNCATE TABLE " + strings.Join(Tables, ", ")
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to clear tables: %w", err)
	}
	return nil
}
