package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Part is an inventory item. Stock is mutated either by direct edits or
// by the conditional stock transaction job part additions run through.
type Part struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID      uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Name          string          `gorm:"column:name;not null" json:"name"`
	PartNumber    *string         `gorm:"column:part_number" json:"part_number,omitempty"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	MinStockLevel int             `gorm:"column:min_stock_level;not null;default:0" json:"min_stock_level"`
	CostLKR       decimal.Decimal `gorm:"column:cost_lkr;type:numeric(12,2);not null;default:0" json:"cost_lkr"`
	PriceLKR      decimal.Decimal `gorm:"column:price_lkr;type:numeric(12,2);not null;default:0" json:"price_lkr"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// LowStock reports whether the part has fallen to or below its minimum level.
func (p Part) LowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
