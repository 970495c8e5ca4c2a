package jobs

import (
	"math"
	"time"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// ApplyTransition mutates the job card for a status change from its
// currently persisted status to next. Side effects are keyed off the
// previous status, not a transition graph: any status may move to any
// other, and the rules below fire in order.
//
//  1. Entering in_progress starts the timer; started_at is stamped only
//     the first time.
//  2. Leaving in_progress accrues the open timer segment into
//     total_labor_time, rounded to the nearest minute, and clears it.
//     A missing last_start_time accrues nothing.
//  3. Entering completed stamps completed_at.
//  4. Leaving completed clears completed_at. The invoice, if one was
//     generated, is untouched.
//
// Invoice generation on completion is the service's job; it happens in
// the same transaction as the status write.
func ApplyTransition(job *models.JobCard, next enums.JobStatus, now time.Time) {
	prev := job.Status

	if prev == enums.JobStatusInProgress && next != enums.JobStatusInProgress {
		if job.LastStartTime != nil {
			job.TotalLaborTime += roundedMinutes(now.Sub(*job.LastStartTime))
			job.LastStartTime = nil
		}
	}

	if next == enums.JobStatusInProgress && prev != enums.JobStatusInProgress {
		start := now
		job.LastStartTime = &start
		if job.StartedAt == nil {
			job.StartedAt = &start
		}
	}

	if next == enums.JobStatusCompleted && prev != enums.JobStatusCompleted {
		done := now
		job.CompletedAt = &done
	}

	if prev == enums.JobStatusCompleted && next != enums.JobStatusCompleted {
		job.CompletedAt = nil
	}

	job.Status = next
}

// EfficiencyPct derives the estimate-vs-actual ratio from the timer.
// It is never stored: 100 when no time is logged, 0 when time is logged
// against a zero estimate, otherwise round(100*estimated/actual hours).
func EfficiencyPct(job models.JobCard) int {
	if job.TotalLaborTime <= 0 {
		return 100
	}
	estimated, _ := job.EstimatedHours.Float64()
	if estimated <= 0 {
		return 0
	}
	actualHours := float64(job.TotalLaborTime) / 60.0
	return int(math.Round(100 * estimated / actualHours))
}

func roundedMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}
