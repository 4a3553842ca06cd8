package server

import (
	"context"
	"net/http"
	"time"

	"github.com/programme-lv/writing/httpjson"
	"github.com/programme-lv/writing/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the submission store is reachable.
func HealthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if p != nil {
			if err := p.Ping(ctx); err != nil {
				logger.FromContext(ctx).Warn("health check failed", "error", err)
				httpjson.WriteJson(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpjson.WriteSuccessJson(w, map[string]string{"status": "ok"})
	}
}
