package pubsub

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/trace"
)

// TraceHeaders carries a span context inside a message body.
type TraceHeaders struct {
	TraceID    string `json:"trace_id" avro:"trace_id"`
	SpanID     string `json:"span_id" avro:"span_id"`
	TraceFlags string `json:"trace_flags" avro:"trace_flags"`
}

func ExtractTraceFromContext(ctx context.Context) TraceHeaders {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return TraceHeaders{}
	}

	return TraceHeaders{
		TraceID:    spanCtx.TraceID().String(),
		SpanID:     spanCtx.SpanID().String(),
		TraceFlags: strconv.FormatUint(uint64(spanCtx.TraceFlags()), 16),
	}
}

// InjectTraceIntoContext returns ctx unchanged when headers are incomplete
// or malformed.
func InjectTraceIntoContext(ctx context.Context, headers TraceHeaders) context.Context {
	traceID, err := trace.TraceIDFromHex(headers.TraceID)
	if err != nil {
		return ctx
	}

	spanID, err := trace.SpanIDFromHex(headers.SpanID)
	if err != nil {
		return ctx
	}

	var flags trace.TraceFlags
	if parsed, err := strconv.ParseUint(headers.TraceFlags, 16, 8); err == nil {
		flags = trace.TraceFlags(parsed)
	}

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		Remote:     true,
	})

	return trace.ContextWithSpanContext(ctx, spanCtx)
}
