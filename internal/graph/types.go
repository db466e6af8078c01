package graph

import (
	"fmt"

	"graphql-crm/internal/model"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
)

// types holds every named type of the schema. Object fields are thunks so
// Customer and Order can reference each other.
type types struct {
	customer *graphql.Object
	product  *graphql.Object
	order    *graphql.Object

	customerConnection *relay.GraphQLConnectionDefinitions
	productConnection  *relay.GraphQLConnectionDefinitions
	orderConnection    *relay.GraphQLConnectionDefinitions

	customerPayload *graphql.Object
	bulkPayload     *graphql.Object
	productPayload  *graphql.Object
	orderPayload    *graphql.Object
}

func (r *Resolver) newTypes() *types {
	t := &types{}

	t.customer = graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: resolveID},
				"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"phone":     &graphql.Field{Type: graphql.String, Resolve: resolvePhone},
				"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"orders": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.order))),
					Resolve: r.customerOrders,
				},
			}
		}),
	})

	t.product = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: resolveID},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(Decimal)},
			"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	t.order = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: resolveID},
				"customer": &graphql.Field{
					Type:    graphql.NewNonNull(t.customer),
					Resolve: r.orderCustomer,
				},
				"products": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.product))),
					Resolve: r.orderProducts,
				},
				"totalAmount": &graphql.Field{Type: graphql.NewNonNull(Decimal)},
				"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			}
		}),
	})

	t.customerConnection = newConnection("Customer", t.customer)
	t.productConnection = newConnection("Product", t.product)
	t.orderConnection = newConnection("Order", t.order)

	t.customerPayload = payloadType("CreateCustomerPayload", "customer", t.customer)
	t.productPayload = payloadType("CreateProductPayload", "product", t.product)
	t.orderPayload = payloadType("CreateOrderPayload", "order", t.order)
	t.bulkPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.customer)))},
			"errors":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"successCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"errorCount":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	return t
}

func newConnection(name string, node *graphql.Object) *relay.GraphQLConnectionDefinitions {
	return relay.ConnectionDefinitions(relay.ConnectionConfig{
		Name:     name,
		NodeType: node,
		ConnectionFields: graphql.Fields{
			"totalCount": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Int),
				Description: "Number of items matching the filter.",
			},
		},
	})
}

// payloadType builds the {<entity>, message, success, errors} result of a
// single-entity mutation.
func payloadType(name, field string, entity *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			field:     &graphql.Field{Type: entity},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"errors":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		},
	})
}

func resolveID(p graphql.ResolveParams) (interface{}, error) {
	switch v := p.Source.(type) {
	case *model.Customer:
		return v.ID.String(), nil
	case model.Customer:
		return v.ID.String(), nil
	case *model.Product:
		return v.ID.String(), nil
	case model.Product:
		return v.ID.String(), nil
	case *model.Order:
		return v.ID.String(), nil
	case model.Order:
		return v.ID.String(), nil
	}
	return nil, fmt.Errorf("unexpected source %T", p.Source)
}

func resolvePhone(p graphql.ResolveParams) (interface{}, error) {
	c, ok := asCustomer(p.Source)
	if !ok || c.Phone == nil {
		return nil, nil
	}
	return *c.Phone, nil
}

func asCustomer(src interface{}) (*model.Customer, bool) {
	switch v := src.(type) {
	case *model.Customer:
		return v, v != nil
	case model.Customer:
		return &v, true
	}
	return nil, false
}

func asOrder(src interface{}) (*model.Order, bool) {
	switch v := src.(type) {
	case *model.Order:
		return v, v != nil
	case model.Order:
		return &v, true
	}
	return nil, false
}
