package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Tenant is one workshop's isolated partition. Every domain row carries
// its tenant id; queries never cross partitions.
type Tenant struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string          `gorm:"column:name;not null" json:"name"`
	Phone            *string         `gorm:"column:phone" json:"phone,omitempty"`
	Address          *string         `gorm:"column:address" json:"address,omitempty"`
	CurrencyCode     string          `gorm:"column:currency_code;not null;default:'LKR'" json:"currency_code"`
	DefaultLaborRate decimal.Decimal `gorm:"column:default_labor_rate;type:numeric(12,2);not null;default:0" json:"default_labor_rate"`
	ThemeColor       string          `gorm:"column:theme_color;not null;default:'#1e40af'" json:"theme_color"`
	Services         pq.StringArray  `gorm:"column:services;type:text[]" json:"services"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
