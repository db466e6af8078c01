package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// A nil field in a filter means "no constraint on that field". Non-nil
// fields are combined with AND.

// CustomerFilter narrows allCustomers.
type CustomerFilter struct {
	Name           *string
	NameIcontains  *string
	Email          *string
	EmailIcontains *string
	CreatedAtGte   *time.Time
	CreatedAtLte   *time.Time
	PhonePattern   *string
}

// ProductFilter narrows allProducts.
type ProductFilter struct {
	Name          *string
	NameIcontains *string
	PriceGte      *decimal.Decimal
	PriceLte      *decimal.Decimal
	Stock         *int
	StockGte      *int
	StockLte      *int
	LowStock      *bool
}

// OrderFilter narrows allOrders.
type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   *string
	ProductName    *string
	ProductID      *string
}

// SortField is one ORDER BY term.
type SortField struct {
	Field      string
	Descending bool
}

// PageRequest is the window of a filtered result set to fetch.
type PageRequest struct {
	Offset int
	Limit  int
	Sort   []SortField
}
