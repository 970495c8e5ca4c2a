package customers

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

// Service exposes customer registry operations.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateCustomerInput) (*models.Customer, error)
	Update(ctx context.Context, tenantID, customerID uuid.UUID, input UpdateCustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
	Get(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error)
}

// CreateCustomerInput holds the validated payload to create a customer.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
	Notes   *string
}

// UpdateCustomerInput holds optional mutation values for a customer.
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

type customerStore interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error)
	CountVehicles(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
}

type service struct {
	repo customerStore
}

// NewService constructs the customer service.
func NewService(repo customerStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	customer := &models.Customer{
		TenantID: tenantID,
		Name:     name,
		Phone:    strings.TrimSpace(input.Phone),
		Email:    input.Email,
		Address:  input.Address,
		Notes:    input.Notes,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, tenantID, customerID uuid.UUID, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, notFoundOr(err, "customer not found")
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be empty")
		}
		customer.Name = name
	}
	if input.Phone != nil {
		customer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}
	updated, err := s.repo.Update(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return updated, nil
}

// Delete removes a customer only when no vehicles reference it. Callers
// wanting a cascade delete the vehicles first, explicitly.
func (s *service) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, customerID); err != nil {
		return notFoundOr(err, "customer not found")
	}
	count, err := s.repo.CountVehicles(ctx, tenantID, customerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customer vehicles")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "customer still owns vehicles").
			WithDetails(map[string]any{"vehicle_count": count})
	}
	if err := s.repo.Delete(ctx, tenantID, customerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

func (s *service) Get(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, notFoundOr(err, "customer not found")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return rows, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
