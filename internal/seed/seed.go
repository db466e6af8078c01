// Package seed populates the CRM with fixture data.
package seed

import (
	"context"
	"time"

	"graphql-crm/internal/model"

	"github.com/shopspring/decimal"
)

// Fixture is a complete data set to load.
type Fixture struct {
	Customers []model.CustomerInput `json:"customers"`
	Products  []model.ProductInput  `json:"products"`
	Orders    []OrderFixture        `json:"orders"`
}

// OrderFixture references its customer by email and its products by name,
// so fixtures stay valid across databases.
type OrderFixture struct {
	CustomerEmail string     `json:"customerEmail"`
	ProductNames  []string   `json:"productNames"`
	OrderDate     *time.Time `json:"orderDate,omitempty"`
}

// Loader defines the interface for loading fixture files.
type Loader interface {
	// Load reads a fixture file. Plain or gzipped .json and .jsonl files are
	// supported.
	Load(ctx context.Context, path string) (*Fixture, error)
}

// DefaultFixture returns the built-in sample data set.
func DefaultFixture() *Fixture {
	phone := func(s string) *string { return &s }
	price := decimal.RequireFromString

	return &Fixture{
		Customers: []model.CustomerInput{
			{Name: "Alice Johnson", Email: "alice@example.com", Phone: phone("+1234567890")},
			{Name: "Bob Smith", Email: "bob@example.com", Phone: phone("123-456-7890")},
			{Name: "Carol White", Email: "carol@example.com"},
			{Name: "David Brown", Email: "david@example.com", Phone: phone("+15551234567")},
		},
		Products: []model.ProductInput{
			{Name: "Laptop", Price: price("999.99"), Stock: 10},
			{Name: "Phone", Price: price("499.99"), Stock: 25},
			{Name: "Headphones", Price: price("79.99"), Stock: 40},
			{Name: "Mouse", Price: price("29.99"), Stock: 5},
			{Name: "Keyboard", Price: price("49.99"), Stock: 0},
		},
		Orders: []OrderFixture{
			{CustomerEmail: "alice@example.com", ProductNames: []string{"Laptop", "Mouse"}},
			{CustomerEmail: "alice@example.com", ProductNames: []string{"Headphones"}},
			{CustomerEmail: "bob@example.com", ProductNames: []string{"Phone", "Headphones"}},
			{CustomerEmail: "carol@example.com", ProductNames: []string{"Keyboard", "Mouse"}},
		},
	}
}
