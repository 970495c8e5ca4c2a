package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	vehiclesvc "github.com/sahanmw/wrenchworks-backend/internal/vehicles"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type createVehicleRequest struct {
	CustomerID   uuid.UUID `json:"customer_id" validate:"required"`
	LicensePlate string    `json:"license_plate" validate:"required"`
	Make         string    `json:"make" validate:"required"`
	Model        string    `json:"model" validate:"required"`
	Year         *int      `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Color        *string   `json:"color,omitempty"`
}

type updateVehicleRequest struct {
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	LicensePlate *string    `json:"license_plate,omitempty"`
	Make         *string    `json:"make,omitempty"`
	Model        *string    `json:"model,omitempty"`
	Year         *int       `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Color        *string    `json:"color,omitempty"`
}

// VehicleCreate registers a vehicle under an existing customer.
func VehicleCreate(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createVehicleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Create(r.Context(), tenantID, vehiclesvc.CreateVehicleInput{
			CustomerID:   body.CustomerID,
			LicensePlate: body.LicensePlate,
			Make:         body.Make,
			Model:        body.Model,
			Year:         body.Year,
			Color:        body.Color,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

// VehicleUpdate applies a partial update, including reassignment to a
// different customer.
func VehicleUpdate(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicleID, err := pathUUID(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateVehicleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Update(r.Context(), tenantID, vehicleID, vehiclesvc.UpdateVehicleInput{
			CustomerID:   body.CustomerID,
			LicensePlate: body.LicensePlate,
			Make:         body.Make,
			Model:        body.Model,
			Year:         body.Year,
			Color:        body.Color,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}

// VehicleDelete removes a vehicle with no open job cards.
func VehicleDelete(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicleID, err := pathUUID(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, vehicleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// VehicleDetail returns one vehicle.
func VehicleDetail(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicleID, err := pathUUID(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Get(r.Context(), tenantID, vehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}

// VehicleList returns vehicles for the workshop, optionally filtered
// by owner via the customer_id query parameter.
func VehicleList(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if raw := r.URL.Query().Get("customer_id"); raw != "" {
			customerID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
				return
			}
			vehicles, err := svc.ListByCustomer(r.Context(), tenantID, customerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, vehicles)
			return
		}

		vehicles, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicles)
	}
}

// VehicleLookupByPlate resolves a license plate to the registered vehicle.
func VehicleLookupByPlate(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plate := validators.SanitizeString(r.URL.Query().Get("plate"), 32)
		if plate == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "plate query parameter required"))
			return
		}

		vehicle, err := svc.GetByPlate(r.Context(), tenantID, plate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}
