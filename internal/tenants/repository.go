package tenants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
)

// Repository persists tenant (workshop) rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a tenant repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new tenant row.
func (r *Repository) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	if err := r.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// Update saves the full tenant row.
func (r *Repository) Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	if err := r.db.WithContext(ctx).Save(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// FindByID loads a tenant by its primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
