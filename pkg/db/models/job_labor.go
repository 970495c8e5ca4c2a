package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobLabor is a billable time entry. It is independent of the job card's
// timer: the timer feeds the efficiency display, labor entries are what
// get invoiced.
type JobLabor struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID       uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	JobCardID      uuid.UUID       `gorm:"column:job_card_id;type:uuid;not null;index" json:"job_card_id"`
	TechnicianID   *uuid.UUID      `gorm:"column:technician_id;type:uuid" json:"technician_id,omitempty"`
	TechnicianName *string         `gorm:"column:technician_name" json:"technician_name,omitempty"`
	Description    string          `gorm:"column:description;not null" json:"description"`
	Hours          decimal.Decimal `gorm:"column:hours;type:numeric(8,2);not null" json:"hours"`
	HourlyRateLKR  decimal.Decimal `gorm:"column:hourly_rate_lkr;type:numeric(12,2);not null" json:"hourly_rate_lkr"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// LineTotal returns hours times the billed hourly rate.
func (l JobLabor) LineTotal() decimal.Decimal {
	return l.Hours.Mul(l.HourlyRateLKR)
}
