package handler

import (
	"context"
	"net/http"

	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/rs/zerolog"
)

// GraphQLHandler serves the GraphQL endpoint over GET and POST.
type GraphQLHandler struct {
	inner  *gqlhandler.Handler
	logger zerolog.Logger
}

// NewGraphQLHandler creates a new GraphQL handler. When playground is set,
// browsers requesting the endpoint get the GraphQL Playground IDE.
func NewGraphQLHandler(schema graphql.Schema, playground bool, logger zerolog.Logger) *GraphQLHandler {
	h := &GraphQLHandler{
		logger: logger.With().Str("handler", "graphql").Logger(),
	}
	h.inner = gqlhandler.New(&gqlhandler.Config{
		Schema:           &schema,
		Pretty:           true,
		Playground:       playground,
		ResultCallbackFn: h.logResult,
	})
	return h
}

// ServeHTTP implements http.Handler.
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	h.inner.ServeHTTP(w, r)
}

func (h *GraphQLHandler) logResult(ctx context.Context, params *graphql.Params, result *graphql.Result, _ []byte) {
	if !result.HasErrors() {
		return
	}

	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = &h.logger
	}
	for _, err := range result.Errors {
		log.Debug().
			Str("operation", params.OperationName).
			Str("error", err.Message).
			Msg("graphql error")
	}
}
