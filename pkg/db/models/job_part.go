package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// JobPart is a line item on a job card: either an inventory part
// (Kind=inventory, PartID set, stock adjusted atomically) or a custom
// item (Kind=custom, PartID nil, stock untouched). Price and cost are
// snapshots taken at add time and never track later part edits.
type JobPart struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID       uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	JobCardID      uuid.UUID         `gorm:"column:job_card_id;type:uuid;not null;index" json:"job_card_id"`
	Kind           enums.JobPartKind `gorm:"column:kind;type:text;not null" json:"kind"`
	PartID         *uuid.UUID        `gorm:"column:part_id;type:uuid" json:"part_id,omitempty"`
	Name           string            `gorm:"column:name;not null" json:"name"`
	Quantity       int               `gorm:"column:quantity;not null" json:"quantity"`
	PriceAtTimeLKR decimal.Decimal   `gorm:"column:price_at_time_lkr;type:numeric(12,2);not null" json:"price_at_time_lkr"`
	CostAtTimeLKR  decimal.Decimal   `gorm:"column:cost_at_time_lkr;type:numeric(12,2);not null" json:"cost_at_time_lkr"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// LineTotal returns quantity times the billed price snapshot.
func (p JobPart) LineTotal() decimal.Decimal {
	return p.PriceAtTimeLKR.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// LineCost returns quantity times the cost snapshot.
func (p JobPart) LineCost() decimal.Decimal {
	return p.CostAtTimeLKR.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
