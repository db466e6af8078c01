package repository

import (
	"graphql-crm/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Filter translation. Every present field adds one conjunct; empty strings
// are treated like absent fields.

var customerSortColumns = map[string]string{
	"name":       "c.name",
	"email":      "c.email",
	"createdAt":  "c.created_at",
	"created_at": "c.created_at",
}

var productSortColumns = map[string]string{
	"name":       "p.name",
	"price":      "p.price",
	"stock":      "p.stock",
	"createdAt":  "p.created_at",
	"created_at": "p.created_at",
}

var orderSortColumns = map[string]string{
	"totalAmount":  "o.total_amount",
	"total_amount": "o.total_amount",
	"orderDate":    "o.order_date",
	"order_date":   "o.order_date",
}

func customerPredicates(f model.CustomerFilter) sq.And {
	var and sq.And

	if v := str(f.Name); v != "" {
		and = append(and, sq.ILike{"c.name": containsPattern(v)})
	}
	if v := str(f.NameIcontains); v != "" {
		and = append(and, sq.ILike{"c.name": containsPattern(v)})
	}
	if v := str(f.Email); v != "" {
		and = append(and, sq.ILike{"c.email": containsPattern(v)})
	}
	if v := str(f.EmailIcontains); v != "" {
		and = append(and, sq.ILike{"c.email": containsPattern(v)})
	}
	if f.CreatedAtGte != nil {
		and = append(and, sq.GtOrEq{"c.created_at": *f.CreatedAtGte})
	}
	if f.CreatedAtLte != nil {
		and = append(and, sq.LtOrEq{"c.created_at": *f.CreatedAtLte})
	}
	if v := str(f.PhonePattern); v != "" {
		and = append(and, sq.ILike{"c.phone": prefixPattern(v)})
	}

	return and
}

func productPredicates(f model.ProductFilter) sq.And {
	var and sq.And

	if v := str(f.Name); v != "" {
		and = append(and, sq.ILike{"p.name": containsPattern(v)})
	}
	if v := str(f.NameIcontains); v != "" {
		and = append(and, sq.ILike{"p.name": containsPattern(v)})
	}
	if f.PriceGte != nil {
		and = append(and, sq.GtOrEq{"p.price": *f.PriceGte})
	}
	if f.PriceLte != nil {
		and = append(and, sq.LtOrEq{"p.price": *f.PriceLte})
	}
	if f.Stock != nil {
		and = append(and, sq.Eq{"p.stock": *f.Stock})
	}
	if f.StockGte != nil {
		and = append(and, sq.GtOrEq{"p.stock": *f.StockGte})
	}
	if f.StockLte != nil {
		and = append(and, sq.LtOrEq{"p.stock": *f.StockLte})
	}
	if f.LowStock != nil && *f.LowStock {
		and = append(and, sq.Lt{"p.stock": model.LowStockThreshold})
	}

	return and
}

func orderPredicates(f model.OrderFilter) sq.And {
	var and sq.And

	if f.TotalAmountGte != nil {
		and = append(and, sq.GtOrEq{"o.total_amount": *f.TotalAmountGte})
	}
	if f.TotalAmountLte != nil {
		and = append(and, sq.LtOrEq{"o.total_amount": *f.TotalAmountLte})
	}
	if f.OrderDateGte != nil {
		and = append(and, sq.GtOrEq{"o.order_date": *f.OrderDateGte})
	}
	if f.OrderDateLte != nil {
		and = append(and, sq.LtOrEq{"o.order_date": *f.OrderDateLte})
	}
	if v := str(f.CustomerName); v != "" {
		and = append(and, sq.Expr(
			"EXISTS (SELECT 1 FROM customers fc WHERE fc.id = o.customer_id AND fc.name ILIKE ?)",
			containsPattern(v),
		))
	}
	if v := str(f.ProductName); v != "" {
		and = append(and, sq.Expr(
			"EXISTS (SELECT 1 FROM order_products fop JOIN products fp ON fp.id = fop.product_id "+
				"WHERE fop.order_id = o.id AND fp.name ILIKE ?)",
			containsPattern(v),
		))
	}
	if v := str(f.ProductID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			// No product can carry a malformed id.
			and = append(and, sq.Expr("FALSE"))
		} else {
			and = append(and, sq.Expr(
				"EXISTS (SELECT 1 FROM order_products fop WHERE fop.order_id = o.id AND fop.product_id = ?)",
				id,
			))
		}
	}

	return and
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
