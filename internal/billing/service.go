package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

// Service assembles the unified expense ledger and window summaries.
type Service interface {
	Ledger(ctx context.Context, tenantID uuid.UUID) ([]LedgerEntry, error)
	WindowSummary(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (*Summary, error)
}

// Summary is the financial rollup of one date window.
type Summary struct {
	PeriodStart   time.Time                  `json:"period_start"`
	PeriodEnd     time.Time                  `json:"period_end"`
	Revenue       decimal.Decimal            `json:"revenue"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	Profit        decimal.Decimal            `json:"profit"`
	JobCount      int                        `json:"job_count"`
	ExpenseCount  int                        `json:"expense_count"`
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
	Entries       []LedgerEntry              `json:"entries"`
}

type expenseSource interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error)
}

type completedJobSource interface {
	ListCompletedWithLines(ctx context.Context, tenantID uuid.UUID) ([]models.JobCard, error)
}

type laborRateSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

type service struct {
	expenses expenseSource
	jobs     completedJobSource
	tenants  laborRateSource
	logg     *logger.Logger
}

// NewService constructs the billing aggregation service.
func NewService(expenses expenseSource, jobs completedJobSource, tenants laborRateSource, logg *logger.Logger) (Service, error) {
	if expenses == nil {
		return nil, fmt.Errorf("expense source required")
	}
	if jobs == nil {
		return nil, fmt.Errorf("job source required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{expenses: expenses, jobs: jobs, tenants: tenants, logg: logg}, nil
}

// Ledger computes the merged ledger. Individual source failures degrade
// to empty contributions; only a total failure of every source is
// returned as an error.
func (s *service) Ledger(ctx context.Context, tenantID uuid.UUID) ([]LedgerEntry, error) {
	manual, jobs, rate, err := s.fetchSources(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ComputeLedger(manual, jobs, rate), nil
}

// WindowSummary computes the financial rollup for [start, end], end
// inclusive to the last instant of its day.
func (s *service) WindowSummary(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (*Summary, error) {
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window end precedes start")
	}
	manual, jobs, rate, err := s.fetchSources(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	ledger := ComputeLedger(manual, jobs, rate)
	entries := FilterEntries(ledger, start, end)
	windowJobs := FilterJobs(jobs, start, end)

	revenue := Revenue(windowJobs)
	totalExpenses := TotalAmount(entries)
	start, clampedEnd := ClampWindow(start, end)

	return &Summary{
		PeriodStart:   start,
		PeriodEnd:     clampedEnd,
		Revenue:       revenue,
		TotalExpenses: totalExpenses,
		Profit:        revenue.Sub(totalExpenses),
		JobCount:      len(windowJobs),
		ExpenseCount:  len(entries),
		ByCategory:    CategoryBreakdown(entries),
		Entries:       entries,
	}, nil
}

// fetchSources gathers the three aggregation inputs best-effort. A
// failed source contributes nothing and its error is collected; when
// every source fails the combined error is returned.
func (s *service) fetchSources(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, []models.JobCard, decimal.Decimal, error) {
	var errs error

	manual, err := s.expenses.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logg.Warn(ctx, "expense source degraded to empty: "+err.Error())
		errs = multierr.Append(errs, fmt.Errorf("manual expenses: %w", err))
		manual = nil
	}

	jobs, err := s.jobs.ListCompletedWithLines(ctx, tenantID)
	if err != nil {
		s.logg.Warn(ctx, "job source degraded to empty: "+err.Error())
		errs = multierr.Append(errs, fmt.Errorf("completed jobs: %w", err))
		jobs = nil
	}

	rate := decimal.Zero
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		s.logg.Warn(ctx, "labor rate source degraded to zero: "+err.Error())
		errs = multierr.Append(errs, fmt.Errorf("tenant labor rate: %w", err))
	} else {
		rate = tenant.DefaultLaborRate
	}

	if len(multierr.Errors(errs)) == 3 {
		return nil, nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "all billing sources failed")
	}
	return manual, jobs, rate, nil
}
