package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	reportsvc "github.com/sahanmw/wrenchworks-backend/internal/reports"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportFinancial returns the financial report for a window as JSON.
func ReportFinancial(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
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

		report, err := svc.Build(r.Context(), tenantID, start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

// ReportFinancialPDF streams the window report as a PDF document.
func ReportFinancialPDF(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
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

		var buf bytes.Buffer
		if err := svc.RenderPDF(r.Context(), &buf, tenantID, start, end); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", reportAttachment(start, end, "pdf"))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil && logg != nil {
			logg.Error(r.Context(), "report.pdf.stream", err)
		}
	}
}

// ReportFinancialXLSX streams the window report as a spreadsheet.
func ReportFinancialXLSX(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
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

		var buf bytes.Buffer
		if err := svc.RenderXLSX(r.Context(), &buf, tenantID, start, end); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", contentTypeXLSX)
		w.Header().Set("Content-Disposition", reportAttachment(start, end, "xlsx"))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil && logg != nil {
			logg.Error(r.Context(), "report.xlsx.stream", err)
		}
	}
}

func reportAttachment(start, end time.Time, ext string) string {
	return fmt.Sprintf(`attachment; filename="financial-report-%s-%s.%s"`,
		start.Format("2006-01-02"), end.Format("2006-01-02"), ext)
}
