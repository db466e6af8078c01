package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order. TotalAmount is a snapshot taken when
// the order is created and is never recomputed.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CustomerID  uuid.UUID       `json:"customerId" db:"customer_id"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`
	OrderDate   time.Time       `json:"orderDate" db:"order_date"`
}

// OrderInput is the payload accepted by createOrder.
type OrderInput struct {
	CustomerID string     `json:"customerId"`
	ProductIDs []string   `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate,omitempty"`
}

// OrderTotal sums product prices exactly.
func OrderTotal(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
