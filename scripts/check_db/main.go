// check_db verifies the configured database is reachable and prints the
// row count of every application table.
// Run: go run ./scripts/check_db
package main

import (
	"context"
	"fmt"
	"os"

	"graphql-crm/internal/config"
	"graphql-crm/internal/database"

	"github.com/jackc/pgx/v5"
)

func main() {
	cfg, err := config.LoadForSeed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName, version string
	err = conn.QueryRow(ctx, "SELECT current_database(), version()").Scan(&dbName, &version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s\n", dbName)
	fmt.Printf("Server: %s\n", version)

	fmt.Println("\nTables:")
	for _, table := range database.Tables {
		var exists bool
		err = conn.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup of %s failed: %v\n", table, err)
			os.Exit(1)
		}
		if !exists {
			fmt.Printf("  - %-15s missing (run migrations)\n", table)
			continue
		}

		var count int64
		if err := conn.QueryRow(ctx, "SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count); err != nil {
			fmt.Fprintf(os.Stderr, "Count of %s failed: %v\n", table, err)
			os.Exit(1)
		}
		fmt.Printf("  - %-15s %d rows\n", table, count)
	}
}
