package controllers

import (
	"net/http"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	customersvc "github.com/sahanmw/wrenchworks-backend/internal/customers"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type createCustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   string  `json:"phone" validate:"required"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type updateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// CustomerCreate registers a new customer for the caller's workshop.
func CustomerCreate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createCustomerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), tenantID, customersvc.CreateCustomerInput{
			Name:    body.Name,
			Phone:   body.Phone,
			Email:   body.Email,
			Address: body.Address,
			Notes:   body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// CustomerUpdate applies a partial update to a customer.
func CustomerUpdate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := pathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), tenantID, customerID, customersvc.UpdateCustomerInput{
			Name:    body.Name,
			Phone:   body.Phone,
			Email:   body.Email,
			Address: body.Address,
			Notes:   body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// CustomerDelete removes a customer with no remaining vehicles.
func CustomerDelete(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := pathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CustomerDetail returns one customer.
func CustomerDetail(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := pathUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), tenantID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// CustomerList returns all customers for the workshop.
func CustomerList(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customers, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customers)
	}
}
