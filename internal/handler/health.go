package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pitchside/platform/internal/infra"
)

// HealthHandler checks Postgres and Redis reachability.
func HealthHandler(pool *pgxpool.Pool, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"postgres": "ok",
			"redis":    "ok",
		}
		healthy := true

		if err := infra.HealthCheck(r.Context(), pool); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		}
		if rdb != nil {
			if err := rdb.Ping(r.Context()).Err(); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			}
		}

		status := "healthy"
		code := http.StatusOK
		if !healthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
