package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"firmgen-server/internal/infra/node"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	_defaultAddress   = ":3000"
	_readHeaderTimeout = 10 * time.Second
)

type Server interface {
	Run() error
	Shutdown(context.Context) error
}

type ServerConfig struct {
	Address        string
	AllowedOrigins []string
}

var _ Server = &StandardServer{}

type StandardServer struct {
	server *http.Server
}

func NewServer(config ServerConfig, controllers ...Controller) *StandardServer {
	router := http.NewServeMux()
	router.Handle("GET /healthz", getHealthz())
	router.Handle("GET /metrics", promhttp.Handler())
	for _, controller := range controllers {
		controller.AddRoutes(router)
	}

	origins := config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})

	address := config.Address
	if address == "" {
		address = _defaultAddress
	}

	return &StandardServer{
		server: &http.Server{
			Addr:              address,
			ReadHeaderTimeout: _readHeaderTimeout,
			Handler: c.Handler(
				MetricsMiddleware()(
					createTracingMiddleware()(router),
				),
			),
		},
	}
}

// Handler exposes the full middleware chain, mainly for httptest.
func (s *StandardServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *StandardServer) Run() error {
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *StandardServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func createTracingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			propagator := b3.New()
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := otel.Tracer("firmgen-server").Start(ctx, "http.request",
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.user_agent", r.UserAgent()),
					attribute.String("component", "http-server"),
				),
			)
			defer span.End()

			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", wrapped.statusCode))
		})
	}
}

type healthResponse struct {
	Status string    `json:"status"`
	Node   node.Info `json:"node"`
}

func getHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		GetSpanFromContext(r).SetAttributes(attribute.String("endpoint", "healthz"))
		ReplyJSONResponse(w, http.StatusOK, healthResponse{Status: "success", Node: node.Current()})
	}
}
