// generate_fixtures writes a gzipped JSON-lines fixture for the seed
// command: the built-in sample data followed by generated customers,
// products and orders.
// Run: go run ./scripts/generate_fixtures -customers 500 -products 100 -orders 2000
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"graphql-crm/internal/model"
	"graphql-crm/internal/seed"

	"github.com/shopspring/decimal"
)

func main() {
	out := flag.String("out", "data/fixtures/sample.jsonl.gz", "output file")
	customers := flag.Int("customers", 100, "generated customers")
	products := flag.Int("products", 50, "generated products")
	orders := flag.Int("orders", 300, "generated orders")
	seedValue := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	fixture := generate(rand.New(rand.NewSource(*seedValue)), *customers, *products, *orders)

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}
	if err := writeFixture(*out, fixture); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d customers, %d products and %d orders\n",
		*out, len(fixture.Customers), len(fixture.Products), len(fixture.Orders))
}

func generate(rng *rand.Rand, customers, products, orders int) *seed.Fixture {
	fixture := seed.DefaultFixture()

	for i := 1; i <= customers; i++ {
		in := model.CustomerInput{
			Name:  fmt.Sprintf("Customer %04d", i),
			Email: fmt.Sprintf("customer%04d@example.com", i),
		}
		if i%3 != 0 {
			phone := fmt.Sprintf("+1555%07d", rng.Intn(10_000_000))
			in.Phone = &phone
		}
		fixture.Customers = append(fixture.Customers, in)
	}

	for i := 1; i <= products; i++ {
		fixture.Products = append(fixture.Products, model.ProductInput{
			Name:  fmt.Sprintf("Product %04d", i),
			Price: decimal.New(int64(100+rng.Intn(200_000)), -2),
			Stock: rng.Intn(60),
		})
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < orders; i++ {
		customer := fixture.Customers[rng.Intn(len(fixture.Customers))]

		n := 1 + rng.Intn(4)
		names := make([]string, 0, n)
		seen := map[string]bool{}
		for len(names) < n {
			name := fixture.Products[rng.Intn(len(fixture.Products))].Name
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}

		date := start.Add(time.Duration(rng.Intn(365*24)) * time.Hour)
		fixture.Orders = append(fixture.Orders, seed.OrderFixture{
			CustomerEmail: customer.Email,
			ProductNames:  names,
			OrderDate:     &date,
		})
	}

	return fixture
}

func writeFixture(path string, fixture *seed.Fixture) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	enc := json.NewEncoder(gzipWriter)

	for i := range fixture.Customers {
		if err := enc.Encode(map[string]interface{}{"customer": fixture.Customers[i]}); err != nil {
			return fmt.Errorf("failed to write customer: %w", err)
		}
	}
	for i := range fixture.Products {
		if err := enc.Encode(map[string]interface{}{"product": fixture.Products[i]}); err != nil {
			return fmt.Errorf("failed to write product: %w", err)
		}
	}
	for i := range fixture.Orders {
		if err := enc.Encode(map[string]interface{}{"order": fixture.Orders[i]}); err != nil {
			return fmt.Errorf("failed to write order: %w", err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return nil
}
