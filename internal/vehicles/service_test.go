package vehicles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

func TestCreateNormalizesPlate(t *testing.T) {
	store := &stubVehicleStore{}
	svc, err := NewService(store, &stubCustomerLoader{customer: &models.Customer{ID: uuid.New()}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.Create(context.Background(), uuid.New(), CreateVehicleInput{
		CustomerID:   uuid.New(),
		LicensePlate: "  cab-1234 ",
		Make:         " Toyota ",
		Model:        "Aqua",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.LicensePlate != "CAB-1234" {
		t.Fatalf("expected normalized plate CAB-1234, got %q", created.LicensePlate)
	}
	if created.Make != "Toyota" {
		t.Fatalf("expected trimmed make, got %q", created.Make)
	}
}

func TestCreateRequiresPlate(t *testing.T) {
	svc, _ := NewService(&stubVehicleStore{}, &stubCustomerLoader{customer: &models.Customer{}})

	_, err := svc.Create(context.Background(), uuid.New(), CreateVehicleInput{
		CustomerID:   uuid.New(),
		LicensePlate: "   ",
		Make:         "Toyota",
		Model:        "Aqua",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc, _ := NewService(&stubVehicleStore{}, &stubCustomerLoader{err: gorm.ErrRecordNotFound})

	_, err := svc.Create(context.Background(), uuid.New(), CreateVehicleInput{
		CustomerID:   uuid.New(),
		LicensePlate: "CAB-1234",
		Make:         "Toyota",
		Model:        "Aqua",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteBlockedByOpenJobCards(t *testing.T) {
	store := &stubVehicleStore{vehicle: &models.Vehicle{ID: uuid.New()}, openJobs: 2}
	svc, _ := NewService(store, &stubCustomerLoader{customer: &models.Customer{}})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if store.deleted {
		t.Fatal("vehicle must not be deleted while job cards are open")
	}
}

func TestDeleteSucceedsWhenIdle(t *testing.T) {
	store := &stubVehicleStore{vehicle: &models.Vehicle{ID: uuid.New()}}
	svc, _ := NewService(store, &stubCustomerLoader{customer: &models.Customer{}})

	if err := svc.Delete(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !store.deleted {
		t.Fatal("expected repo delete")
	}
}

func TestGetByPlateRequiresValue(t *testing.T) {
	svc, _ := NewService(&stubVehicleStore{}, &stubCustomerLoader{customer: &models.Customer{}})

	_, err := svc.GetByPlate(context.Background(), uuid.New(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type stubVehicleStore struct {
	vehicle  *models.Vehicle
	openJobs int64
	deleted  bool
}

func (s *stubVehicleStore) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	return vehicle, nil
}

func (s *stubVehicleStore) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	return vehicle, nil
}

func (s *stubVehicleStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	s.deleted = true
	return nil
}

func (s *stubVehicleStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	if s.vehicle == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.vehicle, nil
}

func (s *stubVehicleStore) FindByPlate(ctx context.Context, tenantID uuid.UUID, plate string) (*models.Vehicle, error) {
	if s.vehicle == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.vehicle, nil
}

func (s *stubVehicleStore) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]models.Vehicle, error) {
	return nil, nil
}

func (s *stubVehicleStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error) {
	return nil, nil
}

func (s *stubVehicleStore) CountOpenJobCards(ctx context.Context, tenantID, vehicleID uuid.UUID) (int64, error) {
	return s.openJobs, nil
}

type stubCustomerLoader struct {
	customer *models.Customer
	err      error
}

func (s *stubCustomerLoader) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.customer, nil
}
