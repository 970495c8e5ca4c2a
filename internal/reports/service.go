package reports

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sahanmw/wrenchworks-backend/internal/billing"
	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/documents"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

// Service builds financial report documents for arbitrary date windows.
type Service interface {
	Build(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (*documents.FinancialReport, error)
	RenderPDF(ctx context.Context, w io.Writer, tenantID uuid.UUID, start, end time.Time) error
	RenderXLSX(ctx context.Context, w io.Writer, tenantID uuid.UUID, start, end time.Time) error
}

type summarizer interface {
	WindowSummary(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (*billing.Summary, error)
}

type tenantLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

type service struct {
	billing summarizer
	tenants tenantLoader
	cfg     config.ReportsConfig
}

// NewService constructs the report service.
func NewService(billingSvc summarizer, tenants tenantLoader, cfg config.ReportsConfig) (Service, error) {
	if billingSvc == nil {
		return nil, fmt.Errorf("billing service required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant loader required")
	}
	if cfg.MaxLineItems <= 0 {
		return nil, fmt.Errorf("max line items must be positive")
	}
	return &service{billing: billingSvc, tenants: tenants, cfg: cfg}, nil
}

// Build assembles the report content. The line item list is bounded at
// the configured maximum; the overflow count is carried so renderers
// can show a "+N more" notice.
func (s *service) Build(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (*documents.FinancialReport, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workshop for report")
	}
	summary, err := s.billing.WindowSummary(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	report := &documents.FinancialReport{
		WorkshopName:  tenant.Name,
		CurrencyCode:  tenant.CurrencyCode,
		PeriodStart:   summary.PeriodStart,
		PeriodEnd:     summary.PeriodEnd,
		Revenue:       summary.Revenue,
		TotalExpenses: summary.TotalExpenses,
		Profit:        summary.Profit,
		JobCount:      summary.JobCount,
		ExpenseCount:  summary.ExpenseCount,
	}

	categories := make([]documents.CategoryTotal, 0, len(summary.ByCategory))
	for category, amount := range summary.ByCategory {
		categories = append(categories, documents.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})
	report.Categories = categories

	entries := summary.Entries
	if len(entries) > s.cfg.MaxLineItems {
		report.TruncatedCount = len(entries) - s.cfg.MaxLineItems
		entries = entries[:s.cfg.MaxLineItems]
	}
	for _, entry := range entries {
		report.Lines = append(report.Lines, documents.ReportLine{
			Date:        entry.Date,
			Category:    entry.Category,
			Description: entry.Description,
			Source:      entry.Source,
			Amount:      entry.AmountLKR,
		})
	}
	return report, nil
}

func (s *service) RenderPDF(ctx context.Context, w io.Writer, tenantID uuid.UUID, start, end time.Time) error {
	report, err := s.Build(ctx, tenantID, start, end)
	if err != nil {
		return err
	}
	if err := documents.RenderFinancialReportPDF(w, *report); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render report pdf")
	}
	return nil
}

func (s *service) RenderXLSX(ctx context.Context, w io.Writer, tenantID uuid.UUID, start, end time.Time) error {
	report, err := s.Build(ctx, tenantID, start, end)
	if err != nil {
		return err
	}
	if err := documents.RenderFinancialReportXLSX(w, *report); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render report xlsx")
	}
	return nil
}
