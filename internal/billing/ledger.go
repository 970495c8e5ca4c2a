package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// LedgerEntry is one row of the unified expense ledger: a manual
// expense passed through, or a synthetic entry derived from a completed
// job's parts consumption or labor cost.
type LedgerEntry struct {
	ID          uuid.UUID       `json:"id"`
	JobCardID   *uuid.UUID      `json:"job_card_id,omitempty"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	AmountLKR   decimal.Decimal `json:"amount_lkr"`
	Date        time.Time       `json:"date"`
	IsAutomatic bool            `json:"is_automatic"`
}

// SystemSource labels synthetic ledger entries.
const SystemSource = "Job System"

// ComputeLedger merges manual expenses with synthetic entries derived
// from completed jobs, sorted by date descending.
//
// Parts consumed by a completed job enter at cost (cost_at_time x qty),
// category "parts". Logged labor enters at hours x laborRate, the
// tenant's default labor rate: a cost basis deliberately distinct from
// the hourly_rate_lkr billed on the invoice. Both are dated by the
// job's billing date (completion time, or creation time for jobs whose
// completion predates that column).
func ComputeLedger(manual []models.Expense, completedJobs []models.JobCard, laborRate decimal.Decimal) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(manual))

	for _, expense := range manual {
		entries = append(entries, LedgerEntry{
			ID:          expense.ID,
			JobCardID:   expense.JobCardID,
			Category:    enums.Normalize(expense.Category),
			Description: expense.Description,
			Source:      "Manual",
			AmountLKR:   expense.AmountLKR,
			Date:        expense.Date,
			IsAutomatic: false,
		})
	}

	for _, job := range completedJobs {
		date := job.BillingDate()
		jobID := job.ID
		for _, part := range job.Parts {
			cost := part.LineCost()
			if !cost.IsPositive() {
				continue
			}
			entries = append(entries, LedgerEntry{
				ID:          part.ID,
				JobCardID:   &jobID,
				Category:    enums.ExpenseCategoryParts.String(),
				Description: part.Name,
				Source:      SystemSource,
				AmountLKR:   cost,
				Date:        date,
				IsAutomatic: true,
			})
		}
		for _, labor := range job.Labor {
			amount := labor.Hours.Mul(laborRate)
			if !amount.IsPositive() {
				continue
			}
			technician := "Technician"
			if labor.TechnicianName != nil && *labor.TechnicianName != "" {
				technician = *labor.TechnicianName
			}
			entries = append(entries, LedgerEntry{
				ID:          labor.ID,
				JobCardID:   &jobID,
				Category:    enums.ExpenseCategoryLabor.String(),
				Description: technician + ": " + labor.Description,
				Source:      SystemSource,
				AmountLKR:   amount,
				Date:        date,
				IsAutomatic: true,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}

// Revenue sums the estimated cost of completed jobs. Pending and
// cancelled work contributes nothing.
func Revenue(completedJobs []models.JobCard) decimal.Decimal {
	total := decimal.Zero
	for _, job := range completedJobs {
		total = total.Add(job.EstimatedCostLKR)
	}
	return total
}

// ClampWindow normalizes an inclusive date window: the end bound is
// pushed to the last instant of its day so a window of [Jan 1, Jan 31]
// catches entries recorded during Jan 31.
func ClampWindow(start, end time.Time) (time.Time, time.Time) {
	clampedEnd := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59,
		int(999*time.Millisecond), end.Location())
	return start, clampedEnd
}

// FilterEntries keeps ledger entries dated within the inclusive window.
func FilterEntries(entries []LedgerEntry, start, end time.Time) []LedgerEntry {
	start, end = ClampWindow(start, end)
	filtered := make([]LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// FilterJobs keeps jobs whose billing date falls within the inclusive
// window.
func FilterJobs(jobs []models.JobCard, start, end time.Time) []models.JobCard {
	start, end = ClampWindow(start, end)
	filtered := make([]models.JobCard, 0, len(jobs))
	for _, job := range jobs {
		date := job.BillingDate()
		if date.Before(start) || date.After(end) {
			continue
		}
		filtered = append(filtered, job)
	}
	return filtered
}

// CategoryBreakdown totals ledger amounts per category. Unknown
// categories fold into "other".
func CategoryBreakdown(entries []LedgerEntry) map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		category := enums.Normalize(entry.Category)
		breakdown[category] = breakdown[category].Add(entry.AmountLKR)
	}
	return breakdown
}

// TotalAmount sums a slice of ledger entries.
func TotalAmount(entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.AmountLKR)
	}
	return total
}
