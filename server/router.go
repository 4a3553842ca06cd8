package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/metrics"
	"github.com/programme-lv/writing/tracing"
)

type RouteRegistrar interface {
	RegisterRoutes(r chi.Router, jwtKey []byte)
}

type RouterOptions struct {
	ServiceName    string
	Env            string
	LogLevel       slog.Level
	LogJSON        bool
	AllowedOrigins []string
	JwtKey         []byte
	Pinger         Pinger
	Registry       *prometheus.Registry
}

func NewRouter(o RouterOptions, handlers ...RouteRegistrar) *chi.Mux {
	r := chi.NewRouter()

	httpLogger := httplog.NewLogger(o.ServiceName, httplog.Options{
		LogLevel:         o.LogLevel,
		JSON:             o.LogJSON,
		Concise:          true,
		RequestHeaders:   false,
		MessageFieldName: "message",
		Tags: map[string]string{
			"env": o.Env,
		},
	})

	r.Use(middleware.RequestID)
	r.Use(tracing.Middleware)
	r.Use(httplog.RequestLogger(httpLogger))
	r.Use(contextLogger)
	r.Use(metrics.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Get("/healthz", HealthHandler(o.Pinger))
	if o.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(o.Registry))
	}

	for _, h := range handlers {
		h.RegisterRoutes(r, o.JwtKey)
	}

	return r
}

// contextLogger makes the request-scoped httplog logger available through
// logger.FromContext, tagged with the request and trace ids.
func contextLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithLogger(r.Context(), httplog.LogEntry(r.Context()))
		ctx = logger.WithRequestID(ctx, middleware.GetReqID(ctx))
		if traceID := tracing.TraceID(ctx); traceID != "" {
			ctx = logger.WithAttrs(ctx, "trace_id", traceID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
