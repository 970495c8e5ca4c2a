package invoices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// Repository defines persistence operations for invoices.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	ExistsForJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error)
	FindByJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (*models.Invoice, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.InvoiceStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an invoice repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *repository) ExistsForJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("tenant_id = ? AND job_card_id = ?", tenantID, jobCardID).
		Count(&count).
		Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		First(&invoice, "tenant_id = ? AND id = ?", tenantID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) FindByJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		First(&invoice, "tenant_id = ? AND job_card_id = ?", tenantID, jobCardID).
		Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Invoice, error) {
	var rows []models.Invoice
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("issued_at DESC").
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.InvoiceStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
