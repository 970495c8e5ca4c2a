package vehicles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// Repository persists vehicle rows.
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

// Create inserts a new vehicle row.
func (r *Repository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Update saves the full vehicle row.
func (r *Repository) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := r.db.WithContext(ctx).Save(vehicle).Error; err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete removes a vehicle row by ID within the tenant.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Vehicle{}).
		Error
}

// FindByID loads a vehicle scoped to the tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		First(&vehicle, "tenant_id = ? AND id = ?", tenantID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindByPlate looks a vehicle up by license plate, case-insensitively.
func (r *Repository) FindByPlate(ctx context.Context, tenantID uuid.UUID, plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND UPPER(license_plate) = ?", tenantID, strings.ToUpper(strings.TrimSpace(plate))).
		First(&vehicle).
		Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListByCustomer returns all vehicles owned by the customer.
func (r *Repository) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]models.Vehicle, error) {
	var rows []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListByTenant returns all vehicles for the tenant, newest first.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error) {
	var rows []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// CountOpenJobCards counts job cards on the vehicle that are neither
// completed nor cancelled.
func (r *Repository) CountOpenJobCards(ctx context.Context, tenantID, vehicleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobCard{}).
		Where("tenant_id = ? AND vehicle_id = ? AND status NOT IN ?", tenantID, vehicleID,
			[]enums.JobStatus{enums.JobStatusCompleted, enums.JobStatusCancelled}).
		Count(&count).
		Error
	return count, err
}
