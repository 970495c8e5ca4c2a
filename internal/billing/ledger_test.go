package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func completedJob(completedAt time.Time, estimatedCost string) models.JobCard {
	done := completedAt
	return models.JobCard{
		ID:               uuid.New(),
		Status:           enums.JobStatusCompleted,
		EstimatedCostLKR: decimal.RequireFromString(estimatedCost),
		CompletedAt:      &done,
		CreatedAt:        completedAt.Add(-72 * time.Hour),
	}
}

func TestComputeLedgerMergesAndSorts(t *testing.T) {
	manual := []models.Expense{
		{
			ID:        uuid.New(),
			Category:  "rent",
			AmountLKR: decimal.RequireFromString("30000"),
			Date:      date(2026, time.January, 5),
		},
	}
	job := completedJob(date(2026, time.January, 20), "10000")
	job.Parts = []models.JobPart{{
		ID:            uuid.New(),
		Name:          "radiator",
		Quantity:      2,
		CostAtTimeLKR: decimal.RequireFromString("1500"),
	}}
	name := "Nimal"
	job.Labor = []models.JobLabor{{
		ID:             uuid.New(),
		TechnicianName: &name,
		Description:    "radiator swap",
		Hours:          decimal.RequireFromString("2"),
		HourlyRateLKR:  decimal.RequireFromString("3000"),
	}}

	laborRate := decimal.RequireFromString("1200")
	entries := ComputeLedger(manual, []models.JobCard{job}, laborRate)

	require.Len(t, entries, 3)
	// Sorted date descending: both synthetic entries (Jan 20) first.
	assert.True(t, entries[0].IsAutomatic)
	assert.True(t, entries[1].IsAutomatic)
	assert.False(t, entries[2].IsAutomatic)

	byCategory := map[string]LedgerEntry{}
	for _, entry := range entries {
		byCategory[entry.Category] = entry
	}
	// Parts at cost, not billed price.
	assert.True(t, byCategory["parts"].AmountLKR.Equal(decimal.RequireFromString("3000")))
	// Labor at the tenant cost rate, not the invoiced 3000/h.
	assert.True(t, byCategory["labor"].AmountLKR.Equal(decimal.RequireFromString("2400")))
	assert.Equal(t, SystemSource, byCategory["labor"].Source)
	assert.Contains(t, byCategory["labor"].Description, "Nimal")
	assert.Equal(t, "Manual", byCategory["rent"].Source)
}

func TestComputeLedgerUnnamedTechnician(t *testing.T) {
	job := completedJob(date(2026, time.February, 2), "0")
	job.Labor = []models.JobLabor{{
		ID:          uuid.New(),
		Description: "diagnostics",
		Hours:       decimal.RequireFromString("1"),
	}}

	entries := ComputeLedger(nil, []models.JobCard{job}, decimal.RequireFromString("1000"))
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Description, "Technician")
}

func TestFilterEntriesInclusiveEndOfDay(t *testing.T) {
	entries := []LedgerEntry{
		{AmountLKR: decimal.RequireFromString("2500"),
			Date: time.Date(2026, time.January, 31, 18, 45, 0, 0, time.UTC)},
	}

	january := FilterEntries(entries,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC))
	require.Len(t, january, 1)
	assert.True(t, TotalAmount(january).Equal(decimal.RequireFromString("2500")))

	february := FilterEntries(entries,
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, february)
	assert.True(t, TotalAmount(february).IsZero())
}

func TestFilterJobsFallsBackToCreatedAt(t *testing.T) {
	legacy := models.JobCard{
		ID:        uuid.New(),
		Status:    enums.JobStatusCompleted,
		CreatedAt: date(2026, time.March, 15),
	}

	march := FilterJobs([]models.JobCard{legacy},
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC))
	assert.Len(t, march, 1)

	april := FilterJobs([]models.JobCard{legacy},
		time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, april)
}

func TestRevenueCountsOnlyCompletedJobs(t *testing.T) {
	completed := []models.JobCard{
		completedJob(date(2026, time.May, 3), "10000"),
		completedJob(date(2026, time.May, 9), "15000"),
	}

	// The aggregation input already excludes open work; a pending card
	// never reaches Revenue.
	assert.True(t, Revenue(completed).Equal(decimal.RequireFromString("25000")))
}

func TestCategoryBreakdownDefaultsUnknownToOther(t *testing.T) {
	entries := []LedgerEntry{
		{Category: "parts", AmountLKR: decimal.RequireFromString("100")},
		{Category: "catering", AmountLKR: decimal.RequireFromString("40")},
		{Category: "", AmountLKR: decimal.RequireFromString("60")},
	}

	breakdown := CategoryBreakdown(entries)
	assert.True(t, breakdown["parts"].Equal(decimal.RequireFromString("100")))
	assert.True(t, breakdown["other"].Equal(decimal.RequireFromString("100")))
}
