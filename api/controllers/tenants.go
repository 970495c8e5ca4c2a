package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	tenantsvc "github.com/sahanmw/wrenchworks-backend/internal/tenants"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type updateTenantSettingsRequest struct {
	Name             *string          `json:"name,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Address          *string          `json:"address,omitempty"`
	CurrencyCode     *string          `json:"currency_code,omitempty" validate:"omitempty,len=3"`
	DefaultLaborRate *decimal.Decimal `json:"default_labor_rate,omitempty"`
	ThemeColor       *string          `json:"theme_color,omitempty"`
	Services         *[]string        `json:"services,omitempty"`
}

// TenantProfile returns the caller's workshop profile and settings.
func TenantProfile(svc tenantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.Get(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}

// TenantUpdateSettings applies workshop settings: profile fields, the
// default labor rate, theme color, and offered services.
func TenantUpdateSettings(svc tenantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateTenantSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.UpdateSettings(r.Context(), tenantID, tenantsvc.UpdateSettingsInput{
			Name:             body.Name,
			Phone:            body.Phone,
			Address:          body.Address,
			CurrencyCode:     body.CurrencyCode,
			DefaultLaborRate: body.DefaultLaborRate,
			ThemeColor:       body.ThemeColor,
			Services:         body.Services,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}
