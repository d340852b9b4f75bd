package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

const defaultServiceName = "librarian"

type routerConfig struct {
	serviceName    string
	metricsHandler http.Handler
	tracerProvider trace.TracerProvider
}

// RouterOption configures the router.
type RouterOption func(*routerConfig)

// WithServiceName sets the service name reported by the tracing middleware.
func WithServiceName(name string) RouterOption {
	return func(cfg *routerConfig) {
		cfg.serviceName = name
	}
}

// WithMetricsHandler replaces the handler mounted at /metrics.
func WithMetricsHandler(handler http.Handler) RouterOption {
	return func(cfg *routerConfig) {
		cfg.metricsHandler = handler
	}
}

// WithTracerProvider sets the tracer provider of the tracing middleware. The global one is used otherwise.
func WithTracerProvider(provider trace.TracerProvider) RouterOption {
	return func(cfg *routerConfig) {
		cfg.tracerProvider = provider
	}
}

// NewRouter creates the gin engine with all circulation routes, /healthz and /metrics.
func NewRouter(circulation Circulation, opts ...RouterOption) *gin.Engine {
	cfg := routerConfig{
		serviceName:    defaultServiceName,
		metricsHandler: promhttp.Handler(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	var tracingOpts []otelgin.Option
	if cfg.tracerProvider != nil {
		tracingOpts = append(tracingOpts, otelgin.WithTracerProvider(cfg.tracerProvider))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.serviceName, tracingOpts...))

	router.GET("/healthz", HealthCheck)
	router.GET("/metrics", gin.WrapH(cfg.metricsHandler))

	h := NewHandlers(circulation)

	api := router.Group("/api")

	books := api.Group("/books")
	books.POST("", h.AddBook)
	books.DELETE("/:bookId", h.RemoveBook)
	books.GET("/:bookId/status", h.GetBookStatus)

	api.POST("/patrons", h.RegisterPatron)

	transactions := api.Group("/transactions")
	transactions.POST("/:bookId/reserve", h.ReserveBook)
	transactions.POST("/:bookId/borrow", h.BorrowBook)
	transactions.POST("/:bookId/return", h.ReturnBook)
	transactions.DELETE("/:bookId/cancel-reservation/:customerId", h.CancelReservation)
	transactions.POST("/notifications/set", h.SetNotification)
	transactions.DELETE("/notifications/disable/:customerId/:bookId", h.DisableNotification)

	return router
}

// HealthCheck answers liveness probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
