package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opencensus.io/trace"
)

// StartServiceSpan starts a span named component.method
func StartServiceSpan(ctx context.Context, component, method string) (context.Context, *trace.Span) {
	ctx, span := trace.StartSpan(ctx, component+"."+method)
	span.AddAttributes(trace.StringAttribute("component", component))
	return ctx, span
}

// EndSpan records err on the span, if any, and ends it
func EndSpan(span *trace.Span, err error) {
	if err != nil {
		span.SetStatus(trace.Status{
			Code:    spanStatus(err),
			Message: err.Error(),
		})
	}
	span.End()
}

// spanStatus keeps aborted requests apart from real failures
func spanStatus(err error) int32 {
	switch {
	case errors.Is(err, context.Canceled):
		return trace.StatusCodeCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return trace.StatusCodeDeadlineExceeded
	default:
		return trace.StatusCodeUnknown
	}
}

// AddAttribute tags the span in ctx. No-op without a span.
func AddAttribute(ctx context.Context, key string, value interface{}) {
	span := trace.FromContext(ctx)
	if span == nil {
		return
	}

	var attr trace.Attribute
	switch v := value.(type) {
	case string:
		attr = trace.StringAttribute(key, v)
	case bool:
		attr = trace.BoolAttribute(key, v)
	case int:
		attr = trace.Int64Attribute(key, int64(v))
	case int64:
		attr = trace.Int64Attribute(key, v)
	case time.Duration:
		attr = trace.Int64Attribute(key+"_ms", v.Milliseconds())
	case fmt.Stringer:
		attr = trace.StringAttribute(key, v.String())
	default:
		attr = trace.StringAttribute(key, fmt.Sprint(v))
	}
	span.AddAttributes(attr)
}
