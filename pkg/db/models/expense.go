package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a manual freestanding ledger entry, optionally linked to a
// job card. System-derived expenses (parts consumed, labor cost) are
// synthesized at aggregation time and never stored in this table.
type Expense struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID    uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	JobCardID   *uuid.UUID      `gorm:"column:job_card_id;type:uuid" json:"job_card_id,omitempty"`
	Category    string          `gorm:"column:category;not null" json:"category"`
	Description string          `gorm:"column:description;not null" json:"description"`
	AmountLKR   decimal.Decimal `gorm:"column:amount_lkr;type:numeric(12,2);not null" json:"amount_lkr"`
	Date        time.Time       `gorm:"column:date;not null;index" json:"date"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
