package jobs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// Repository defines persistence operations for job cards and their
// line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, job *models.JobCard) (*models.JobCard, error)
	Update(ctx context.Context, job *models.JobCard) (*models.JobCard, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.JobCard, error)
	FindDetail(ctx context.Context, tenantID, id uuid.UUID) (*models.JobCard, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]models.JobCard, error)
	ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]models.JobCard, error)
	ListCompletedWithLines(ctx context.Context, tenantID uuid.UUID) ([]models.JobCard, error)
	CreatePart(ctx context.Context, part *models.JobPart) (*models.JobPart, error)
	FindPart(ctx context.Context, tenantID, jobCardID, partLineID uuid.UUID) (*models.JobPart, error)
	DeletePart(ctx context.Context, tenantID, partLineID uuid.UUID) error
	CreateLabor(ctx context.Context, labor *models.JobLabor) (*models.JobLabor, error)
	DeleteLabor(ctx context.Context, tenantID, jobCardID, laborID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a job card repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, job *models.JobCard) (*models.JobCard, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (r *repository) Update(ctx context.Context, job *models.JobCard) (*models.JobCard, error) {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a job card; parts and labor rows cascade.
func (r *repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.JobCard{}).
		Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.JobCard, error) {
	var job models.JobCard
	err := r.db.WithContext(ctx).
		First(&job, "tenant_id = ? AND id = ?", tenantID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FindDetail loads a job card with its parts and labor entries.
func (r *repository) FindDetail(ctx context.Context, tenantID, id uuid.UUID) (*models.JobCard, error) {
	var job models.JobCard
	err := r.db.WithContext(ctx).
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Labor", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&job, "tenant_id = ? AND id = ?", tenantID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListByTenant returns job cards newest first, hiding archived cards
// unless asked for.
func (r *repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]models.JobCard, error) {
	qb := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if !includeArchived {
		qb = qb.Where("archived = ?", false)
	}
	var rows []models.JobCard
	err := qb.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]models.JobCard, error) {
	var rows []models.JobCard
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND vehicle_id = ?", tenantID, vehicleID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListCompletedWithLines returns completed job cards with parts and
// labor preloaded, the input set for billing aggregation.
func (r *repository) ListCompletedWithLines(ctx context.Context, tenantID uuid.UUID) ([]models.JobCard, error) {
	var rows []models.JobCard
	err := r.db.WithContext(ctx).
		Preload("Parts").
		Preload("Labor").
		Where("tenant_id = ? AND status = ?", tenantID, enums.JobStatusCompleted).
		Order("completed_at DESC").
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) CreatePart(ctx context.Context, part *models.JobPart) (*models.JobPart, error) {
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

func (r *repository) FindPart(ctx context.Context, tenantID, jobCardID, partLineID uuid.UUID) (*models.JobPart, error) {
	var part models.JobPart
	err := r.db.WithContext(ctx).
		First(&part, "tenant_id = ? AND job_card_id = ? AND id = ?", tenantID, jobCardID, partLineID).
		Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *repository) DeletePart(ctx context.Context, tenantID, partLineID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, partLineID).
		Delete(&models.JobPart{}).
		Error
}

func (r *repository) CreateLabor(ctx context.Context, labor *models.JobLabor) (*models.JobLabor, error) {
	if err := r.db.WithContext(ctx).Create(labor).Error; err != nil {
		return nil, err
	}
	return labor, nil
}

func (r *repository) DeleteLabor(ctx context.Context, tenantID, jobCardID, laborID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND job_card_id = ? AND id = ?", tenantID, jobCardID, laborID).
		Delete(&models.JobLabor{}).
		Error
}
