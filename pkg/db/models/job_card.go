package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// JobCard is the central work-order entity.
//
// Invariants:
//   - LastStartTime is non-nil iff Status == in_progress and the timer has
//     been started since the last stop. TotalLaborTime accrues only on the
//     transition out of in_progress.
//   - CompletedAt is non-nil iff Status == completed; set on entry, cleared
//     on exit.
//   - Archived is one-way and only reachable from completed.
type JobCard struct {
	ID                   uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID             uuid.UUID        `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	VehicleID            uuid.UUID        `gorm:"column:vehicle_id;type:uuid;not null;index" json:"vehicle_id"`
	AssignedTechnicianID *uuid.UUID       `gorm:"column:assigned_technician_id;type:uuid" json:"assigned_technician_id,omitempty"`
	Status               enums.JobStatus  `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	Description          string           `gorm:"column:description;not null" json:"description"`
	TechnicianNotes      *string          `gorm:"column:technician_notes" json:"technician_notes,omitempty"`
	Mileage              *int             `gorm:"column:mileage" json:"mileage,omitempty"`
	EstimatedHours       decimal.Decimal  `gorm:"column:estimated_hours;type:numeric(8,2);not null;default:0" json:"estimated_hours"`
	EstimatedCostLKR     decimal.Decimal  `gorm:"column:estimated_cost_lkr;type:numeric(12,2);not null;default:0" json:"estimated_cost_lkr"`
	StartedAt            *time.Time       `gorm:"column:started_at" json:"started_at,omitempty"`
	LastStartTime        *time.Time       `gorm:"column:last_start_time" json:"last_start_time,omitempty"`
	TotalLaborTime       int              `gorm:"column:total_labor_time;not null;default:0" json:"total_labor_time"`
	CompletedAt          *time.Time       `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Archived             bool             `gorm:"column:archived;not null;default:false" json:"archived"`
	Parts                []JobPart        `gorm:"foreignKey:JobCardID;constraint:OnDelete:CASCADE" json:"parts,omitempty"`
	Labor                []JobLabor       `gorm:"foreignKey:JobCardID;constraint:OnDelete:CASCADE" json:"labor,omitempty"`
	CreatedAt            time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BillingDate is the date used for financial windowing: completion time
// when recorded, creation time otherwise.
func (j JobCard) BillingDate() time.Time {
	if j.CompletedAt != nil {
		return *j.CompletedAt
	}
	return j.CreatedAt
}
