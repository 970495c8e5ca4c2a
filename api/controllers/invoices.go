package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	invoicesvc "github.com/sahanmw/wrenchworks-backend/internal/invoices"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type updateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// InvoiceList returns the workshop's invoices.
func InvoiceList(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoices, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoices)
	}
}

// InvoiceDetail returns one invoice.
func InvoiceDetail(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoiceID, err := pathUUID(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Get(r.Context(), tenantID, invoiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// InvoiceByJobCard resolves the invoice minted for a completed job card.
func InvoiceByJobCard(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.GetByJobCard(r.Context(), tenantID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// InvoiceSetStatus flips payment status (unpaid, paid, cancelled).
func InvoiceSetStatus(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoiceID, err := pathUUID(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateInvoiceStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseInvoiceStatus(strings.TrimSpace(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		invoice, err := svc.SetStatus(r.Context(), tenantID, invoiceID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// InvoicePDF streams the invoice document. The render runs into a
// buffer first so failures still produce a JSON error body.
func InvoicePDF(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoiceID, err := pathUUID(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var buf bytes.Buffer
		if err := svc.RenderPDF(r.Context(), &buf, tenantID, invoiceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, invoiceID))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil && logg != nil {
			logg.Error(r.Context(), "invoice.pdf.stream", err)
		}
	}
}
