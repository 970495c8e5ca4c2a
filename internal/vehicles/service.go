package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

// Service exposes vehicle registry operations.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateVehicleInput) (*models.Vehicle, error)
	Update(ctx context.Context, tenantID, vehicleID uuid.UUID, input UpdateVehicleInput) (*models.Vehicle, error)
	Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error
	Get(ctx context.Context, tenantID, vehicleID uuid.UUID) (*models.Vehicle, error)
	GetByPlate(ctx context.Context, tenantID uuid.UUID, plate string) (*models.Vehicle, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error)
	ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]models.Vehicle, error)
}

// CreateVehicleInput holds the validated payload to create a vehicle.
type CreateVehicleInput struct {
	CustomerID   uuid.UUID
	LicensePlate string
	Make         string
	Model        string
	Year         *int
	Color        *string
}

// UpdateVehicleInput holds optional mutation values for a vehicle.
type UpdateVehicleInput struct {
	CustomerID   *uuid.UUID
	LicensePlate *string
	Make         *string
	Model        *string
	Year         *int
	Color        *string
}

type vehicleStore interface {
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
	FindByPlate(ctx context.Context, tenantID uuid.UUID, plate string) (*models.Vehicle, error)
	ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]models.Vehicle, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error)
	CountOpenJobCards(ctx context.Context, tenantID, vehicleID uuid.UUID) (int64, error)
}

type customerLoader interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error)
}

type service struct {
	repo      vehicleStore
	customers customerLoader
}

// NewService constructs the vehicle service.
func NewService(repo vehicleStore, customers customerLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo, customers: customers}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateVehicleInput) (*models.Vehicle, error) {
	plate := normalizePlate(input.LicensePlate)
	if plate == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "license plate required")
	}
	if _, err := s.customers.FindByID(ctx, tenantID, input.CustomerID); err != nil {
		return nil, notFoundOr(err, "customer not found")
	}

	vehicle := &models.Vehicle{
		TenantID:     tenantID,
		CustomerID:   input.CustomerID,
		LicensePlate: plate,
		Make:         strings.TrimSpace(input.Make),
		Model:        strings.TrimSpace(input.Model),
		Year:         input.Year,
		Color:        input.Color,
	}
	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, tenantID, vehicleID uuid.UUID, input UpdateVehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, notFoundOr(err, "vehicle not found")
	}
	if input.CustomerID != nil {
		if _, err := s.customers.FindByID(ctx, tenantID, *input.CustomerID); err != nil {
			return nil, notFoundOr(err, "customer not found")
		}
		vehicle.CustomerID = *input.CustomerID
	}
	if input.LicensePlate != nil {
		plate := normalizePlate(*input.LicensePlate)
		if plate == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "license plate cannot be empty")
		}
		vehicle.LicensePlate = plate
	}
	if input.Make != nil {
		vehicle.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		vehicle.Year = input.Year
	}
	if input.Color != nil {
		vehicle.Color = input.Color
	}
	updated, err := s.repo.Update(ctx, vehicle)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
	}
	return updated, nil
}

// Delete removes a vehicle only when it has no open job cards.
func (s *service) Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, vehicleID); err != nil {
		return notFoundOr(err, "vehicle not found")
	}
	open, err := s.repo.CountOpenJobCards(ctx, tenantID, vehicleID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open job cards")
	}
	if open > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle has open job cards").
			WithDetails(map[string]any{"open_job_cards": open})
	}
	if err := s.repo.Delete(ctx, tenantID, vehicleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vehicle")
	}
	return nil
}

func (s *service) Get(ctx context.Context, tenantID, vehicleID uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, notFoundOr(err, "vehicle not found")
	}
	return vehicle, nil
}

func (s *service) GetByPlate(ctx context.Context, tenantID uuid.UUID, plate string) (*models.Vehicle, error) {
	if normalizePlate(plate) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "license plate required")
	}
	vehicle, err := s.repo.FindByPlate(ctx, tenantID, plate)
	if err != nil {
		return nil, notFoundOr(err, "vehicle not found")
	}
	return vehicle, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicles")
	}
	return rows, nil
}

func (s *service) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]models.Vehicle, error) {
	rows, err := s.repo.ListByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer vehicles")
	}
	return rows, nil
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
