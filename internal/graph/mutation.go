package graph

import (
	"graphql-crm/internal/model"

	"github.com/graphql-go/graphql"
)

// Result messages of the single-entity mutations.
const (
	msgCustomerCreated = "Customer created successfully!"
	msgCustomerFailed  = "Failed to create customer"
	msgProductCreated  = "Product created successfully!"
	msgProductFailed   = "Failed to create product"
	msgOrderCreated    = "Order created successfully!"
	msgOrderFailed     = "Failed to create order"
)

type customerPayload struct {
	Customer *model.Customer `json:"customer"`
	Message  string          `json:"message"`
	Success  bool            `json:"success"`
	Errors   []string        `json:"errors"`
}

type productPayload struct {
	Product *model.Product `json:"product"`
	Message string         `json:"message"`
	Success bool           `json:"success"`
	Errors  []string       `json:"errors"`
}

type orderPayload struct {
	Order   *model.Order `json:"order"`
	Message string       `json:"message"`
	Success bool         `json:"success"`
	Errors  []string     `json:"errors"`
}

func (r *Resolver) mutationType(t *types) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type:    graphql.NewNonNull(t.customerPayload),
				Args:    inputArg(customerInput),
				Resolve: r.createCustomer,
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: graphql.NewNonNull(t.bulkPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInput))),
					},
				},
				Resolve: r.bulkCreateCustomers,
			},
			"createProduct": &graphql.Field{
				Type:    graphql.NewNonNull(t.productPayload),
				Args:    inputArg(productInput),
				Resolve: r.createProduct,
			},
			"createOrder": &graphql.Field{
				Type:    graphql.NewNonNull(t.orderPayload),
				Args:    inputArg(orderInput),
				Resolve: r.createOrder,
			},
		},
	})
}

func inputArg(input *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
	}
}

func (r *Resolver) createCustomer(p graphql.ResolveParams) (interface{}, error) {
	input := customerInputFrom(argMap(p.Args, "input"))

	customer, err := r.customers.CreateCustomer(p.Context, input)
	if err != nil {
		msgs, ok := model.Messages(err)
		if !ok {
			return nil, r.internal(p.Context, "createCustomer", err)
		}
		return customerPayload{Message: msgCustomerFailed, Errors: msgs}, nil
	}

	return customerPayload{
		Customer: customer,
		Message:  msgCustomerCreated,
		Success:  true,
		Errors:   []string{},
	}, nil
}

func (r *Resolver) bulkCreateCustomers(p graphql.ResolveParams) (interface{}, error) {
	raw, _ := p.Args["input"].([]interface{})
	inputs := make([]model.CustomerInput, 0, len(raw))
	for _, item := range raw {
		m, _ := item.(map[string]interface{})
		inputs = append(inputs, customerInputFrom(m))
	}

	result, err := r.customers.BulkCreateCustomers(p.Context, inputs)
	if err != nil {
		return nil, r.internal(p.Context, "bulkCreateCustomers", err)
	}

	return result, nil
}

func (r *Resolver) createProduct(p graphql.ResolveParams) (interface{}, error) {
	input := productInputFrom(argMap(p.Args, "input"))

	product, err := r.products.CreateProduct(p.Context, input)
	if err != nil {
		msgs, ok := model.Messages(err)
		if !ok {
			return nil, r.internal(p.Context, "createProduct", err)
		}
		return productPayload{Message: msgProductFailed, Errors: msgs}, nil
	}

	return productPayload{
		Product: product,
		Message: msgProductCreated,
		Success: true,
		Errors:  []string{},
	}, nil
}

func (r *Resolver) createOrder(p graphql.ResolveParams) (interface{}, error) {
	input := orderInputFrom(argMap(p.Args, "input"))

	order, err := r.orders.CreateOrder(p.Context, input)
	if err != nil {
		msgs, ok := model.Messages(err)
		if !ok {
			return nil, r.internal(p.Context, "createOrder", err)
		}
		return orderPayload{Message: msgOrderFailed, Errors: msgs}, nil
	}

	return orderPayload{
		Order:   order,
		Message: msgOrderCreated,
		Success: true,
		Errors:  []string{},
	}, nil
}
