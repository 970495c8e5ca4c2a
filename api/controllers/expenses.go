package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	expensesvc "github.com/sahanmw/wrenchworks-backend/internal/expenses"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type createExpenseRequest struct {
	JobCardID   *uuid.UUID      `json:"job_card_id,omitempty"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"required"`
	AmountLKR   decimal.Decimal `json:"amount_lkr"`
	Date        time.Time       `json:"date" validate:"required"`
}

type updateExpenseRequest struct {
	JobCardID   *uuid.UUID       `json:"job_card_id,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	AmountLKR   *decimal.Decimal `json:"amount_lkr,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// ExpenseCreate records a manual ledger expense.
func ExpenseCreate(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "expense service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createExpenseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expense, err := svc.Create(r.Context(), tenantID, expensesvc.CreateExpenseInput{
			JobCardID:   body.JobCardID,
			Category:    body.Category,
			Description: body.Description,
			AmountLKR:   body.AmountLKR,
			Date:        body.Date,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

// ExpenseUpdate applies a partial update to a manual expense.
func ExpenseUpdate(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "expense service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expenseID, err := pathUUID(r, "expenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateExpenseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expense, err := svc.Update(r.Context(), tenantID, expenseID, expensesvc.UpdateExpenseInput{
			JobCardID:   body.JobCardID,
			Category:    body.Category,
			Description: body.Description,
			AmountLKR:   body.AmountLKR,
			Date:        body.Date,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, expense)
	}
}

// ExpenseDelete removes a manual expense.
func ExpenseDelete(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "expense service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expenseID, err := pathUUID(r, "expenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, expenseID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ExpenseDetail returns one manual expense.
func ExpenseDetail(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "expense service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expenseID, err := pathUUID(r, "expenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expense, err := svc.Get(r.Context(), tenantID, expenseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, expense)
	}
}

// ExpenseList returns the workshop's manual expenses.
func ExpenseList(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "expense service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expenses, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, expenses)
	}
}
