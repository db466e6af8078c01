package graph

import (
	"time"

	"graphql-crm/internal/model"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

func inputFields(fields map[string]graphql.Input) graphql.InputObjectConfigFieldMap {
	m := make(graphql.InputObjectConfigFieldMap, len(fields))
	for name, typ := range fields {
		m[name] = &graphql.InputObjectFieldConfig{Type: typ}
	}
	return m
}

var customerFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerFilterInput",
	Fields: inputFields(map[string]graphql.Input{
		"name":           graphql.String,
		"nameIcontains":  graphql.String,
		"email":          graphql.String,
		"emailIcontains": graphql.String,
		"createdAtGte":   graphql.DateTime,
		"createdAtLte":   graphql.DateTime,
		"phonePattern":   graphql.String,
	}),
})

var productFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductFilterInput",
	Fields: inputFields(map[string]graphql.Input{
		"name":          graphql.String,
		"nameIcontains": graphql.String,
		"priceGte":      Decimal,
		"priceLte":      Decimal,
		"stock":         graphql.Int,
		"stockGte":      graphql.Int,
		"stockLte":      graphql.Int,
		"lowStock":      graphql.Boolean,
	}),
})

var orderFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderFilterInput",
	Fields: inputFields(map[string]graphql.Input{
		"totalAmountGte": Decimal,
		"totalAmountLte": Decimal,
		"orderDateGte":   graphql.DateTime,
		"orderDateLte":   graphql.DateTime,
		"customerName":   graphql.String,
		"productName":    graphql.String,
		"productId":      graphql.ID,
	}),
})

var customerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(Decimal)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 0},
	},
})

var orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"productIds": &graphql.InputObjectFieldConfig{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID))),
		},
		"orderDate": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

// Argument coercion. The executor has already validated types, so a
// missing or null key simply yields a nil pointer.

func argString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func argInt(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func argBool(m map[string]interface{}, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}
	return nil
}

func argDecimal(m map[string]interface{}, key string) *decimal.Decimal {
	if v, ok := m[key].(decimal.Decimal); ok {
		return &v
	}
	return nil
}

func argTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	}
	return nil
}

func argMap(args map[string]interface{}, key string) map[string]interface{} {
	m, _ := args[key].(map[string]interface{})
	return m
}

func customerFilterFrom(m map[string]interface{}) model.CustomerFilter {
	return model.CustomerFilter{
		Name:           argString(m, "name"),
		NameIcontains:  argString(m, "nameIcontains"),
		Email:          argString(m, "email"),
		EmailIcontains: argString(m, "emailIcontains"),
		CreatedAtGte:   argTime(m, "createdAtGte"),
		CreatedAtLte:   argTime(m, "createdAtLte"),
		PhonePattern:   argString(m, "phonePattern"),
	}
}

func productFilterFrom(m map[string]interface{}) model.ProductFilter {
	return model.ProductFilter{
		Name:          argString(m, "name"),
		NameIcontains: argString(m, "nameIcontains"),
		PriceGte:      argDecimal(m, "priceGte"),
		PriceLte:      argDecimal(m, "priceLte"),
		Stock:         argInt(m, "stock"),
		StockGte:      argInt(m, "stockGte"),
		StockLte:      argInt(m, "stockLte"),
		LowStock:      argBool(m, "lowStock"),
	}
}

func orderFilterFrom(m map[string]interface{}) model.OrderFilter {
	return model.OrderFilter{
		TotalAmountGte: argDecimal(m, "totalAmountGte"),
		TotalAmountLte: argDecimal(m, "totalAmountLte"),
		OrderDateGte:   argTime(m, "orderDateGte"),
		OrderDateLte:   argTime(m, "orderDateLte"),
		CustomerName:   argString(m, "customerName"),
		ProductName:    argString(m, "productName"),
		ProductID:      argString(m, "productId"),
	}
}

func customerInputFrom(m map[string]interface{}) model.CustomerInput {
	in := model.CustomerInput{Phone: argString(m, "phone")}
	if v := argString(m, "name"); v != nil {
		in.Name = *v
	}
	if v := argString(m, "email"); v != nil {
		in.Email = *v
	}
	return in
}

func productInputFrom(m map[string]interface{}) model.ProductInput {
	var in model.ProductInput
	if v := argString(m, "name"); v != nil {
		in.Name = *v
	}
	if v := argDecimal(m, "price"); v != nil {
		in.Price = *v
	}
	if v := argInt(m, "stock"); v != nil {
		in.Stock = *v
	}
	return in
}

func orderInputFrom(m map[string]interface{}) model.OrderInput {
	in := model.OrderInput{
		ProductIDs: []string{},
		OrderDate:  argTime(m, "orderDate"),
	}
	if v := argString(m, "customerId"); v != nil {
		in.CustomerID = *v
	}
	if list, ok := m["productIds"].([]interface{}); ok {
		for _, item := range list {
			if id, ok := item.(string); ok {
				in.ProductIDs = append(in.ProductIDs, id)
			}
		}
	}
	return in
}
