package controllers

import (
	"net/http"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	billingsvc "github.com/sahanmw/wrenchworks-backend/internal/billing"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

// BillingLedger returns the merged expense ledger: manual expenses plus
// the cost entries derived from completed jobs.
func BillingLedger(svc billingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.Ledger(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}

// BillingSummary returns revenue, expense, and profit figures for a
// date window.
func BillingSummary(svc billingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, end, err := validators.ParseQueryWindow(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.WindowSummary(r.Context(), tenantID, start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
