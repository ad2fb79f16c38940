package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopmallhq/shopmall-backend/pkg/config"
	"github.com/shopmallhq/shopmall-backend/pkg/logger"
)

// Pinger is anything the readiness probe can ask for a heartbeat.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

func writeHealth(w http.ResponseWriter, status int, payload map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// HealthLive reports process liveness. It is unenveloped so probes stay dumb.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopMall-Env", cfg.App.Env)
		writeHealth(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies and degrades to 503 when any are down.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopMall-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		payload := map[string]string{"status": "ready"}
		status := http.StatusOK
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "readiness check failed: "+name, err)
				}
				payload[name] = "down"
				payload["status"] = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			payload[name] = "up"
		}

		writeHealth(w, status, payload)
	}
}
