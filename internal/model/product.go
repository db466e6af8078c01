package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product counts as low stock.
const LowStockThreshold = 10

// MaxAmount is the largest money value the store can hold, NUMERIC(10,2).
var MaxAmount = decimal.RequireFromString("99999999.99")

// Product represents an item in the catalogue.
type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// ProductInput is the payload accepted by createProduct.
type ProductInput struct {
	Name  string          `json:"name" validate:"required,max=200"`
	Price decimal.Decimal `json:"price" validate:"gt=0,lte=99999999.99"`
	Stock int             `json:"stock" validate:"gte=0"`
}
