package controllers

import (
	"net/http"

	"github.com/verdantcare/dispensary-backend/api/responses"
	ordersvc "github.com/verdantcare/dispensary-backend/internal/orders"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
)

// DashboardStats aggregates orders per UTC day with revenue at current
// catalog prices.
func DashboardStats(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
