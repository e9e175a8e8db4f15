package controllers

import (
	"context"
	"net/http"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/responses"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

const envHeader = "X-Storefront-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady requires the guest cart store. The remote API only degrades
// readiness since guest carts keep working without it.
func HealthReady(cfg *config.Config, logg *logger.Logger, store Pinger, remote Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx := r.Context()

		checks := map[string]string{"store": "ok", "remote": "ok"}
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "guest cart store not configured"))
			return
		}
		if err := store.Ping(ctx); err != nil {
			checks["store"] = "unavailable"
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "guest cart store unavailable").WithDetails(checks))
			return
		}

		status := "ready"
		if remote != nil {
			if err := remote.Ping(ctx); err != nil {
				status = "degraded"
				checks["remote"] = "unavailable"
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "remote api unreachable")
				}
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": status, "checks": checks})
	}
}
