package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/programme-lv/writing/writing/domain"
	"github.com/programme-lv/writing/writing/srvc"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "writing_store_query_duration_seconds",
			Help:    "Duration of submission store queries in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"driver", "outcome"},
	)
)

// NewRegistry returns a registry holding the service collectors and the
// Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HttpRequestsTotal,
		HttpRequestDuration,
		StoreQueryDuration,
	)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Middleware records request count and latency labelled by chi route
// pattern, so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HttpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		HttpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type meteredRepo struct {
	repo   srvc.SubmRepo
	driver string
}

// NewMeteredRepo times every ListByUser call of repo.
func NewMeteredRepo(repo srvc.SubmRepo, driver string) srvc.SubmRepo {
	return &meteredRepo{repo: repo, driver: driver}
}

func (m *meteredRepo) ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error) {
	start := time.Now()
	subms, err := m.repo.ListByUser(ctx, userID)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreQueryDuration.WithLabelValues(m.driver, outcome).Observe(time.Since(start).Seconds())
	return subms, err
}
