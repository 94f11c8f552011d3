package server

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/hmans/todos/internal/graph"
	"github.com/hmans/todos/internal/metrics"
	"github.com/hmans/todos/internal/todo"
)

// GraphQLOptions controls the optional parts of the GraphQL handler.
type GraphQLOptions struct {
	Introspection   bool
	ComplexityLimit int
	Metrics         *metrics.Metrics
}

// NewGraphQLHandler builds the gqlgen handler serving the todo schema.
func NewGraphQLHandler(resolver *graph.Resolver, opts GraphQLOptions, logger *zap.Logger) *handler.Server {
	srv := handler.New(graph.NewExecutableSchema(graph.Config{Resolvers: resolver}))

	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))

	if opts.Introspection {
		srv.Use(extension.Introspection{})
	}
	srv.Use(extension.AutomaticPersistedQuery{
		Cache: lru.New[string](100),
	})
	if opts.ComplexityLimit > 0 {
		srv.Use(extension.FixedComplexityLimit(opts.ComplexityLimit))
	}
	if opts.Metrics != nil {
		srv.Use(metrics.Tracer{Metrics: opts.Metrics})
	}

	srv.SetErrorPresenter(func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)
		fields := []zap.Field{
			zap.String("path", gqlErr.Path.String()),
			zap.String("message", gqlErr.Message),
		}
		switch todo.KindOf(err) {
		case todo.KindValidation, todo.KindNotFound:
			logger.Warn("graphql request rejected", fields...)
		default:
			logger.Error("graphql request failed", append(fields, zap.Error(err))...)
		}
		return gqlErr
	})

	srv.SetRecoverFunc(func(ctx context.Context, err any) error {
		logger.Error("panic in resolver", zap.String("panic", fmt.Sprint(err)), zap.Stack("stack"))
		return gqlerror.Errorf("internal system error")
	})

	return srv
}
