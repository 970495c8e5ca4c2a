package billing

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type stubExpenseSource struct {
	rows []models.Expense
	err  error
}

func (s *stubExpenseSource) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error) {
	return s.rows, s.err
}

type stubJobSource struct {
	rows []models.JobCard
	err  error
}

func (s *stubJobSource) ListCompletedWithLines(ctx context.Context, tenantID uuid.UUID) ([]models.JobCard, error) {
	return s.rows, s.err
}

type stubTenantSource struct {
	tenant *models.Tenant
	err    error
}

func (s *stubTenantSource) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.tenant, s.err
}

func newBillingService(t *testing.T, expenses *stubExpenseSource, jobs *stubJobSource, tenants *stubTenantSource) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(expenses, jobs, tenants, logg)
	require.NoError(t, err)
	return svc
}

func TestWindowSummaryComputesProfit(t *testing.T) {
	tenantID := uuid.New()
	done := time.Date(2026, time.June, 10, 15, 0, 0, 0, time.UTC)
	job := models.JobCard{
		ID:               uuid.New(),
		EstimatedCostLKR: decimal.RequireFromString("20000"),
		CompletedAt:      &done,
	}
	job.Parts = []models.JobPart{{
		ID:            uuid.New(),
		Name:          "gasket",
		Quantity:      1,
		CostAtTimeLKR: decimal.RequireFromString("1500"),
	}}

	svc := newBillingService(t,
		&stubExpenseSource{rows: []models.Expense{{
			ID:        uuid.New(),
			Category:  "utilities",
			AmountLKR: decimal.RequireFromString("3500"),
			Date:      time.Date(2026, time.June, 5, 9, 0, 0, 0, time.UTC),
		}}},
		&stubJobSource{rows: []models.JobCard{job}},
		&stubTenantSource{tenant: &models.Tenant{ID: tenantID, DefaultLaborRate: decimal.RequireFromString("1500")}},
	)

	summary, err := svc.WindowSummary(context.Background(), tenantID,
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, summary.Revenue.Equal(decimal.RequireFromString("20000")))
	assert.True(t, summary.TotalExpenses.Equal(decimal.RequireFromString("5000")))
	assert.True(t, summary.Profit.Equal(decimal.RequireFromString("15000")))
	assert.Equal(t, 1, summary.JobCount)
	assert.Equal(t, 2, summary.ExpenseCount)
	assert.True(t, summary.ByCategory["parts"].Equal(decimal.RequireFromString("1500")))
}

func TestWindowSummaryRejectsInvertedWindow(t *testing.T) {
	svc := newBillingService(t, &stubExpenseSource{}, &stubJobSource{}, &stubTenantSource{tenant: &models.Tenant{}})

	_, err := svc.WindowSummary(context.Background(), uuid.New(),
		time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}

func TestLedgerDegradesPartialSourceFailure(t *testing.T) {
	tenantID := uuid.New()
	svc := newBillingService(t,
		&stubExpenseSource{err: errors.New("db down")},
		&stubJobSource{rows: nil},
		&stubTenantSource{tenant: &models.Tenant{ID: tenantID}},
	)

	entries, err := svc.Ledger(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedgerFailsWhenAllSourcesFail(t *testing.T) {
	svc := newBillingService(t,
		&stubExpenseSource{err: errors.New("db down")},
		&stubJobSource{err: errors.New("db down")},
		&stubTenantSource{err: errors.New("db down")},
	)

	_, err := svc.Ledger(context.Background(), uuid.New())
	require.Error(t, err)
}
