package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// Invoice is created exactly once per job card, at the moment the job
// first transitions into completed. Totals are frozen at that instant
// and never recomputed if parts or labor change afterward.
type Invoice struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID       uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	JobCardID      uuid.UUID           `gorm:"column:job_card_id;type:uuid;not null;uniqueIndex" json:"job_card_id"`
	SubtotalLKR    decimal.Decimal     `gorm:"column:subtotal_lkr;type:numeric(12,2);not null;default:0" json:"subtotal_lkr"`
	TaxLKR         decimal.Decimal     `gorm:"column:tax_lkr;type:numeric(12,2);not null;default:0" json:"tax_lkr"`
	DiscountLKR    decimal.Decimal     `gorm:"column:discount_lkr;type:numeric(12,2);not null;default:0" json:"discount_lkr"`
	TotalAmountLKR decimal.Decimal     `gorm:"column:total_amount_lkr;type:numeric(12,2);not null;default:0" json:"total_amount_lkr"`
	Status         enums.InvoiceStatus `gorm:"column:status;type:text;not null;default:'Unpaid'" json:"status"`
	IssuedAt       time.Time           `gorm:"column:issued_at;not null" json:"issued_at"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
