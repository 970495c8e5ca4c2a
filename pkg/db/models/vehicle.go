package models

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle belongs to exactly one customer. The license plate is treated
// as unique within a tenant for lookup purposes.
type Vehicle struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID     uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	CustomerID   uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index" json:"customer_id"`
	LicensePlate string    `gorm:"column:license_plate;not null;index" json:"license_plate"`
	Make         string    `gorm:"column:make;not null" json:"make"`
	Model        string    `gorm:"column:model;not null" json:"model"`
	Year         *int      `gorm:"column:year" json:"year,omitempty"`
	Color        *string   `gorm:"column:color" json:"color,omitempty"`
	JobCards     []JobCard `gorm:"foreignKey:VehicleID" json:"job_cards,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
