package expenses

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
)

// Repository persists manual expense ledger entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an expense repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new expense row.
func (r *Repository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// Update saves the full expense row.
func (r *Repository) Update(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := r.db.WithContext(ctx).Save(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense row by ID within the tenant.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Expense{}).
		Error
}

// FindByID loads an expense scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		First(&expense, "tenant_id = ? AND id = ?", tenantID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListByTenant returns all manual expenses for the tenant, newest first.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error) {
	var rows []models.Expense
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("date DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListByWindow returns manual expenses dated within [start, end].
func (r *Repository) ListByWindow(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	var rows []models.Expense
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, start, end).
		Order("date DESC").
		Find(&rows).
		Error
	return rows, err
}
