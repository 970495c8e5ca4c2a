package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	pkgdb "github.com/sahanmw/wrenchworks-backend/pkg/db"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
	pkgredis "github.com/sahanmw/wrenchworks-backend/pkg/redis"
)

const readinessTimeout = 3 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WrenchWorks-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies and reports per-component status.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pkgdb.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WrenchWorks-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		components := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				components["postgres"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.postgres", err)
				}
			} else {
				components["postgres"] = "up"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				components["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.redis", err)
				}
			} else {
				components["redis"] = "up"
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(components))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "components": components})
	}
}
