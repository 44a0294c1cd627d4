package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"firmgen-server/internal/infra/node"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type pingController struct{}

func (pingController) AddRoutes(router *http.ServeMux) {
	router.HandleFunc("GET /ping/{name}", func(w http.ResponseWriter, r *http.Request) {
		ReplyJSONResponse(w, http.StatusOK, map[string]string{"pong": GetPathParam(r, "name")})
	})
}

var _ = ginkgo.Describe("HTTPServer", func() {
	var (
		tp       *trace.TracerProvider
		recorder *tracetest.SpanRecorder
	)

	ginkgo.BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		tp = trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
		otel.SetTracerProvider(tp)
	})

	ginkgo.AfterEach(func() {
		_ = tp.Shutdown(context.Background())
	})

	ginkgo.Context("TracingMiddleware", func() {
		ginkgo.It("should add a span to the request context", func() {
			handler := createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gomega.Expect(GetSpanFromContext(r).SpanContext().HasSpanID()).To(gomega.BeTrue())
				w.WriteHeader(http.StatusTeapot)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusTeapot))
			gomega.Expect(recorder.Ended()).To(gomega.HaveLen(1))
			gomega.Expect(rec.Header().Get("X-B3-TraceId")).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("should continue an incoming b3 trace", func() {
			handler := createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("X-B3-TraceId", "463ac35c9f6413ad48485a3953bb6124")
			req.Header.Set("X-B3-SpanId", "a2fb4a1d1a96d312")
			req.Header.Set("X-B3-Sampled", "1")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			spans := recorder.Ended()
			gomega.Expect(spans).To(gomega.HaveLen(1))
			gomega.Expect(spans[0].SpanContext().TraceID().String()).To(gomega.Equal("463ac35c9f6413ad48485a3953bb6124"))
		})
	})

	ginkgo.Context("NewServer", func() {
		var server *StandardServer

		ginkgo.BeforeEach(func() {
			server = NewServer(ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}}, pingController{})
		})

		ginkgo.It("should serve healthz", func() {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body struct {
				Status string `json:"status"`
				Node   struct {
					Version string `json:"version"`
				} `json:"node"`
			}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Status).To(gomega.Equal("success"))
			gomega.Expect(body.Node.Version).To(gomega.Equal(node.Version))
		})

		ginkgo.It("should route controllers with path values", func() {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/esp32", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.MatchJSON(`{"pong":"esp32"}`))
		})

		ginkgo.It("should answer allowed CORS preflights", func() {
			req := httptest.NewRequest(http.MethodOptions, "/ping/esp32", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)

			gomega.Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(gomega.Equal("http://localhost:5173"))
		})

		ginkgo.It("should expose prometheus metrics", func() {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Context("helpers", func() {
		ginkgo.It("should reply errors as json", func() {
			rec := httptest.NewRecorder()
			ReplyWithError(rec, http.StatusBadRequest, "bad input")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(rec.Header().Get("Content-Type")).To(gomega.Equal("application/json"))
			gomega.Expect(rec.Body.String()).To(gomega.MatchJSON(`{"message":"bad input"}`))
		})

		ginkgo.It("should decode json bodies", func() {
			var body struct {
				Board string `json:"board"`
			}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"board":"ESP32"}`))

			gomega.Expect(DecodeJSONBody(req, &body)).To(gomega.Succeed())
			gomega.Expect(body.Board).To(gomega.Equal("ESP32"))
		})

		ginkgo.It("should reject malformed bodies", func() {
			var body map[string]any
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"board":`))

			gomega.Expect(DecodeJSONBody(req, &body)).NotTo(gomega.Succeed())
		})

		ginkgo.It("should read query params", func() {
			req := httptest.NewRequest(http.MethodGet, "/sensors?board=ESP8266", nil)
			gomega.Expect(GetQueryParam(req, "board")).To(gomega.Equal("ESP8266"))
		})
	})
})
