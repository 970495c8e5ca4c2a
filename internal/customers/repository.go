package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
)

// Repository persists customer rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Update saves the full customer row.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer row by ID within the tenant.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Customer{}).
		Error
}

// FindByID loads a customer scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		First(&customer, "tenant_id = ? AND id = ?", tenantID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListByTenant returns all customers for the tenant, newest first.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error) {
	var rows []models.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// CountVehicles returns the number of vehicles owned by the customer.
func (r *Repository) CountVehicles(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).
		Error
	return count, err
}
