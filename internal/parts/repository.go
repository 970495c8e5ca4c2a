package parts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/pagination"
)

// Repository defines persistence operations for inventory parts. Stock
// mutations go through the conditional update methods so concurrent
// decrements can never drive a quantity negative.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, part *models.Part) (*models.Part, error)
	Update(ctx context.Context, part *models.Part) (*models.Part, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Part, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Part, error)
	ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]models.Part, error)
	DecrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a parts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, part *models.Part) (*models.Part, error) {
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

func (r *repository) Update(ctx context.Context, part *models.Part) (*models.Part, error) {
	if err := r.db.WithContext(ctx).Save(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Part{}).
		Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Part, error) {
	var part models.Part
	err := r.db.WithContext(ctx).
		First(&part, "tenant_id = ? AND id = ?", tenantID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// ListByTenant pages the catalog newest first using a keyset on
// (created_at, id).
func (r *repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Part, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var rows []models.Part
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]models.Part, error) {
	var rows []models.Part
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stock_quantity <= min_stock_level", tenantID).
		Order("stock_quantity ASC").
		Find(&rows).
		Error
	return rows, err
}

// DecrementStock subtracts quantity if and only if enough stock remains.
// Returns (false, nil) when the guard rejected the update.
func (r *repository) DecrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Part{}).
		Where("tenant_id = ? AND id = ? AND stock_quantity >= ?", tenantID, partID, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// IncrementStock adds quantity back unconditionally.
func (r *repository) IncrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Part{}).
		Where("tenant_id = ? AND id = ?", tenantID, partID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).
		Error
}
