package controllers

import (
	"net/http"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
	redisclient "github.com/dev-arham/ecommerce-server/pkg/redis"
)

// Health reports liveness of the server and its backing stores.
func Health(database *db.Client, cache *redisclient.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{"server": "ok"}
		healthy := true

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				logg.Error(ctx, "postgres health check failed", err)
				checks["postgres"] = "down"
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				logg.Error(ctx, "redis health check failed", err)
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, "Health check.", checks)
	}
}
