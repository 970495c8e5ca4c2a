package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer owns zero or more vehicles. Deletion is blocked while any
// vehicle still references the customer; cascading is an explicit client
// action, not a database-side cascade.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone;not null" json:"phone"`
	Email     *string   `gorm:"column:email" json:"email,omitempty"`
	Address   *string   `gorm:"column:address" json:"address,omitempty"`
	Notes     *string   `gorm:"column:notes" json:"notes,omitempty"`
	Vehicles  []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
