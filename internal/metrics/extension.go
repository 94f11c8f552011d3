package metrics

import (
	"context"
	"time"

	"github.com/99designs/gqlgen/graphql"
)

// Tracer is a gqlgen handler extension that feeds Metrics.
type Tracer struct {
	Metrics *Metrics
}

var _ interface {
	graphql.HandlerExtension
	graphql.ResponseInterceptor
	graphql.FieldInterceptor
} = Tracer{}

func (Tracer) ExtensionName() string {
	return "Metrics"
}

func (Tracer) Validate(graphql.ExecutableSchema) error {
	return nil
}

func (t Tracer) InterceptResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	start := time.Now()
	resp := next(ctx)

	// Responses that fail before an operation is chosen carry no operation context.
	operation := "unknown"
	if graphql.HasOperationContext(ctx) {
		if opCtx := graphql.GetOperationContext(ctx); opCtx.Operation != nil {
			operation = string(opCtx.Operation.Operation)
		}
	}

	status := StatusOK
	if resp == nil || len(resp.Errors) > 0 {
		status = StatusError
	}
	t.Metrics.RecordOperation(operation, status, time.Since(start))

	return resp
}

func (t Tracer) InterceptField(ctx context.Context, next graphql.Resolver) (any, error) {
	res, err := next(ctx)

	fc := graphql.GetFieldContext(ctx)
	if fc == nil || !fc.IsResolver {
		return res, err
	}

	status := StatusOK
	if err != nil {
		status = StatusError
	}
	t.Metrics.FieldResolutionsTotal.WithLabelValues(fc.Object, fc.Field.Name, status).Inc()

	return res, err
}
