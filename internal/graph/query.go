package graph

import (
	"context"

	"graphql-crm/internal/model"

	"github.com/graphql-go/graphql"
)

func (r *Resolver) queryType(t *types) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, GraphQL!", nil
				},
			},
			"allCustomers": &graphql.Field{
				Type:    graphql.NewNonNull(t.customerConnection.ConnectionType),
				Args:    connectionArgs(customerFilterInput),
				Resolve: r.allCustomers,
			},
			"allProducts": &graphql.Field{
				Type:    graphql.NewNonNull(t.productConnection.ConnectionType),
				Args:    connectionArgs(productFilterInput),
				Resolve: r.allProducts,
			},
			"allOrders": &graphql.Field{
				Type:    graphql.NewNonNull(t.orderConnection.ConnectionType),
				Args:    connectionArgs(orderFilterInput),
				Resolve: r.allOrders,
			},
			"customer": &graphql.Field{
				Type:    t.customer,
				Args:    idArg(),
				Resolve: r.customer,
			},
			"product": &graphql.Field{
				Type:    t.product,
				Args:    idArg(),
				Resolve: r.product,
			},
			"order": &graphql.Field{
				Type:    t.order,
				Args:    idArg(),
				Resolve: r.order,
			},
		},
	})
}

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

// paginate counts the filtered set, resolves the relay window against it
// and fetches only the rows inside the window.
func paginate[T any](
	ctx context.Context,
	r *Resolver,
	op string,
	args map[string]interface{},
	count func() (int, error),
	list func(model.PageRequest) ([]T, error),
) (interface{}, error) {
	total, err := count()
	if err != nil {
		return nil, r.internal(ctx, op, err)
	}

	w, err := newWindow(args, total, r.opts.DefaultPageSize, r.opts.MaxPageSize)
	if err != nil {
		return nil, err
	}

	nodes := []interface{}{}
	if !w.Empty() {
		items, err := list(w.Page(parseOrderBy(args["orderBy"])))
		if err != nil {
			if _, ok := model.Messages(err); ok {
				return nil, err
			}
			return nil, r.internal(ctx, op, err)
		}
		for i := range items {
			nodes = append(nodes, &items[i])
		}
	}

	return w.build(nodes, total), nil
}

func (r *Resolver) allCustomers(p graphql.ResolveParams) (interface{}, error) {
	filter := customerFilterFrom(argMap(p.Args, "filter"))
	return paginate(p.Context, r, "allCustomers", p.Args,
		func() (int, error) { return r.customers.Count(p.Context, filter) },
		func(page model.PageRequest) ([]model.Customer, error) { return r.customers.List(p.Context, filter, page) },
	)
}

func (r *Resolver) allProducts(p graphql.ResolveParams) (interface{}, error) {
	filter := productFilterFrom(argMap(p.Args, "filter"))
	return paginate(p.Context, r, "allProducts", p.Args,
		func() (int, error) { return r.products.Count(p.Context, filter) },
		func(page model.PageRequest) ([]model.Product, error) { return r.products.List(p.Context, filter, page) },
	)
}

func (r *Resolver) allOrders(p graphql.ResolveParams) (interface{}, error) {
	filter := orderFilterFrom(argMap(p.Args, "filter"))
	return paginate(p.Context, r, "allOrders", p.Args,
		func() (int, error) { return r.orders.Count(p.Context, filter) },
		func(page model.PageRequest) ([]model.Order, error) { return r.orders.List(p.Context, filter, page) },
	)
}

func (r *Resolver) customer(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	c, err := r.customers.GetByID(p.Context, id)
	if err != nil {
		return nil, r.internal(p.Context, "customer", err)
	}
	if c == nil {
		return nil, nil
	}
	return c, nil
}

func (r *Resolver) product(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	product, err := r.products.GetByID(p.Context, id)
	if err != nil {
		return nil, r.internal(p.Context, "product", err)
	}
	if product == nil {
		return nil, nil
	}
	return product, nil
}

func (r *Resolver) order(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	o, err := r.orders.GetByID(p.Context, id)
	if err != nil {
		return nil, r.internal(p.Context, "order", err)
	}
	if o == nil {
		return nil, nil
	}
	return o, nil
}

// Relation fields.

func (r *Resolver) customerOrders(p graphql.ResolveParams) (interface{}, error) {
	c, ok := asCustomer(p.Source)
	if !ok {
		return []model.Order{}, nil
	}
	orders, err := r.orders.ListByCustomer(p.Context, c.ID)
	if err != nil {
		return nil, r.internal(p.Context, "Customer.orders", err)
	}
	return orders, nil
}

func (r *Resolver) orderCustomer(p graphql.ResolveParams) (interface{}, error) {
	o, ok := asOrder(p.Source)
	if !ok {
		return nil, nil
	}
	c, err := r.customers.GetByID(p.Context, o.CustomerID.String())
	if err != nil {
		return nil, r.internal(p.Context, "Order.customer", err)
	}
	if c == nil {
		return nil, nil
	}
	return c, nil
}

func (r *Resolver) orderProducts(p graphql.ResolveParams) (interface{}, error) {
	o, ok := asOrder(p.Source)
	if !ok {
		return []model.Product{}, nil
	}
	products, err := r.products.ListByOrder(p.Context, o.ID)
	if err != nil {
		return nil, r.internal(p.Context, "Order.products", err)
	}
	return products, nil
}
