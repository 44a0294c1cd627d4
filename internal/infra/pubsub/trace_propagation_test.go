package pubsub_test

import (
	"context"

	"firmgen-server/internal/infra/pubsub"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var _ = ginkgo.Describe("Trace propagation", func() {
	var (
		tp   *trace.TracerProvider
		ctx  context.Context
		span oteltrace.Span
	)

	ginkgo.BeforeEach(func() {
		tp = trace.NewTracerProvider(trace.WithSpanProcessor(tracetest.NewSpanRecorder()))
		ctx, span = tp.Tracer("test").Start(context.Background(), "build.publish")
	})

	ginkgo.AfterEach(func() {
		span.End()
		_ = tp.Shutdown(context.Background())
	})

	ginkgo.It("should carry the span context across a message", func() {
		headers := pubsub.ExtractTraceFromContext(ctx)
		gomega.Expect(headers.TraceID).To(gomega.Equal(span.SpanContext().TraceID().String()))
		gomega.Expect(headers.SpanID).To(gomega.Equal(span.SpanContext().SpanID().String()))

		restored := oteltrace.SpanContextFromContext(pubsub.InjectTraceIntoContext(context.Background(), headers))
		gomega.Expect(restored.TraceID()).To(gomega.Equal(span.SpanContext().TraceID()))
		gomega.Expect(restored.SpanID()).To(gomega.Equal(span.SpanContext().SpanID()))
		gomega.Expect(restored.IsRemote()).To(gomega.BeTrue())
		gomega.Expect(restored.IsSampled()).To(gomega.BeTrue())
	})

	ginkgo.It("should return empty headers without a span", func() {
		headers := pubsub.ExtractTraceFromContext(context.Background())
		gomega.Expect(headers).To(gomega.Equal(pubsub.TraceHeaders{}))
	})

	ginkgo.It("should leave the context alone for malformed headers", func() {
		base := context.Background()
		result := pubsub.InjectTraceIntoContext(base, pubsub.TraceHeaders{TraceID: "zz", SpanID: "01"})
		gomega.Expect(oteltrace.SpanContextFromContext(result).IsValid()).To(gomega.BeFalse())
	})
})
