// Package graph exposes the CRM over GraphQL. Types and resolvers are
// registered in static field tables when the schema is built.
package graph

import (
	"context"
	"errors"

	"graphql-crm/internal/service"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"
)

// errInternal replaces infrastructure failures in client responses; the
// cause is logged.
var errInternal = errors.New("internal server error")

// Options bounds relay pagination.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Resolver owns the services every field resolver delegates to.
type Resolver struct {
	customers service.CustomerService
	products  service.ProductService
	orders    service.OrderService
	opts      Options
	logger    zerolog.Logger
}

// NewResolver creates the root resolver.
func NewResolver(
	customers service.CustomerService,
	products service.ProductService,
	orders service.OrderService,
	opts Options,
	logger zerolog.Logger,
) *Resolver {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = 20
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	return &Resolver{
		customers: customers,
		products:  products,
		orders:    orders,
		opts:      opts,
		logger:    logger.With().Str("component", "resolver").Logger(),
	}
}

// NewSchema builds the executable schema.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := r.newTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(t),
		Mutation: r.mutationType(t),
	})
}

// log returns the request-scoped logger when the HTTP middleware installed
// one, the resolver logger otherwise.
func (r *Resolver) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &r.logger
}

// internal logs an infrastructure failure and hides it from the client.
func (r *Resolver) internal(ctx context.Context, op string, err error) error {
	r.log(ctx).Error().Err(err).Str("operation", op).Msg("resolver failed")
	return errInternal
}
