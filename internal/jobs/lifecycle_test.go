package jobs

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

func TestApplyTransitionStartsTimer(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	job := &models.JobCard{Status: enums.JobStatusPending}

	ApplyTransition(job, enums.JobStatusInProgress, now)

	if job.Status != enums.JobStatusInProgress {
		t.Fatalf("expected in_progress, got %s", job.Status)
	}
	if job.LastStartTime == nil || !job.LastStartTime.Equal(now) {
		t.Fatalf("expected last_start_time %v, got %v", now, job.LastStartTime)
	}
	if job.StartedAt == nil || !job.StartedAt.Equal(now) {
		t.Fatalf("expected started_at %v, got %v", now, job.StartedAt)
	}
}

func TestApplyTransitionPreservesStartedAt(t *testing.T) {
	first := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	job := &models.JobCard{Status: enums.JobStatusPending}
	ApplyTransition(job, enums.JobStatusInProgress, first)
	ApplyTransition(job, enums.JobStatusWaitingParts, first.Add(5*time.Minute))

	resume := first.Add(2 * time.Hour)
	ApplyTransition(job, enums.JobStatusInProgress, resume)

	if !job.StartedAt.Equal(first) {
		t.Fatalf("started_at moved on resume: got %v, want %v", job.StartedAt, first)
	}
	if !job.LastStartTime.Equal(resume) {
		t.Fatalf("expected last_start_time %v, got %v", resume, job.LastStartTime)
	}
}

func TestApplyTransitionAccruesRoundedMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	job := &models.JobCard{Status: enums.JobStatusPending}
	ApplyTransition(job, enums.JobStatusInProgress, start)

	// 90 seconds rounds to 2 minutes.
	ApplyTransition(job, enums.JobStatusWaitingParts, start.Add(90*time.Second))

	if job.TotalLaborTime != 2 {
		t.Fatalf("expected 2 accrued minutes, got %d", job.TotalLaborTime)
	}
	if job.LastStartTime != nil {
		t.Fatalf("expected cleared last_start_time, got %v", job.LastStartTime)
	}
}

func TestApplyTransitionLeaveInProgressWithoutTimer(t *testing.T) {
	job := &models.JobCard{Status: enums.JobStatusInProgress, TotalLaborTime: 7}

	ApplyTransition(job, enums.JobStatusPending, time.Now())

	if job.TotalLaborTime != 7 {
		t.Fatalf("expected unchanged labor time, got %d", job.TotalLaborTime)
	}
}

func TestApplyTransitionCompletionStampsAndClears(t *testing.T) {
	now := time.Date(2026, 3, 12, 17, 30, 0, 0, time.UTC)
	job := &models.JobCard{Status: enums.JobStatusInProgress}
	start := now.Add(-10 * time.Minute)
	job.LastStartTime = &start

	ApplyTransition(job, enums.JobStatusCompleted, now)

	if job.CompletedAt == nil || !job.CompletedAt.Equal(now) {
		t.Fatalf("expected completed_at %v, got %v", now, job.CompletedAt)
	}
	if job.LastStartTime != nil {
		t.Fatal("expected timer stopped on completion")
	}
	if job.TotalLaborTime != 10 {
		t.Fatalf("expected 10 accrued minutes, got %d", job.TotalLaborTime)
	}

	ApplyTransition(job, enums.JobStatusInProgress, now.Add(time.Hour))
	if job.CompletedAt != nil {
		t.Fatalf("expected completed_at cleared on reopen, got %v", job.CompletedAt)
	}
}

func TestEfficiencyPct(t *testing.T) {
	cases := []struct {
		name           string
		estimatedHours string
		laborMinutes   int
		want           int
	}{
		{"noTimeLogged", "3", 0, 100},
		{"noEstimate", "0", 45, 0},
		{"aheadOfEstimate", "2", 90, 133},
		{"behindEstimate", "2", 150, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := models.JobCard{
				EstimatedHours: decimal.RequireFromString(tc.estimatedHours),
				TotalLaborTime: tc.laborMinutes,
			}
			if got := EfficiencyPct(job); got != tc.want {
				t.Fatalf("expected %d%%, got %d%%", tc.want, got)
			}
		})
	}
}
